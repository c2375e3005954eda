package registry

import (
	"strings"

	"github.com/alexisbeaulieu97/weave/internal/pipeline"
	"github.com/alexisbeaulieu97/weave/internal/value"
)

// compilerConstructorSuffix is the naming convention Use inspects to
// decide whether a ComponentConstructor installs a compiler rather
// than a component.
const compilerConstructorSuffix = "Compiler"

// Use installs item — either a ComponentConstructor or an
// already-built value.Value — as a compiler (when its name ends in
// "Compiler") or a component. The registration name is chosen from
// name, then the instance's own "name" member, then a nested
// "settings.tag" member, then the constructor's Name. When
// onlyIfNotExists is true and the resolved name is already
// registered, Use is a no-op.
func (r *Registry) Use(item any, name string, isSingleton bool, onlyIfNotExists bool) (string, error) {
	switch v := item.(type) {
	case ComponentConstructor:
		if strings.HasSuffix(v.Name, compilerConstructorSuffix) {
			return r.useCompiler(v, name)
		}
		return r.useComponent(v.New(value.Null(), r), name, v.Name, isSingleton, onlyIfNotExists), nil
	case value.Value:
		return r.useComponent(v, name, "component", isSingleton, onlyIfNotExists), nil
	default:
		return "", nil
	}
}

func (r *Registry) useCompiler(cc ComponentConstructor, name string) (string, error) {
	instance := cc.New(value.Null(), r)
	c, ok := instance.Component().(pipeline.Compiler)
	if !ok {
		return "", nil
	}
	resolved := name
	if resolved == "" {
		resolved = c.Name()
	}
	r.RegisterCompiler(resolved, c)
	return resolved, nil
}

func (r *Registry) useComponent(instance value.Value, name, ctorName string, isSingleton bool, onlyIfNotExists bool) string {
	if register, ok := instance.Component().(interface{ Register(*Registry) }); ok {
		register.Register(r)
	}

	resolved := name
	if resolved == "" {
		resolved = memberString(instance, "name")
	}
	if resolved == "" {
		resolved = nestedMemberString(instance, "settings", "tag")
	}
	if resolved == "" {
		resolved = ctorName
	}

	r.mu.RLock()
	_, exists := r.factories[resolved]
	r.mu.RUnlock()
	if onlyIfNotExists && exists {
		return resolved
	}

	r.Register(resolved, instance, isSingleton)
	return resolved
}

func memberString(v value.Value, key string) string {
	if v.Kind() != value.KindComponent && v.Kind() != value.KindObject {
		return ""
	}
	if v.Kind() == value.KindObject {
		if m, ok := v.Object().Get(key); ok {
			return m.String()
		}
		return ""
	}
	members, ok := v.Component().(interface {
		Member(string) (value.Value, bool)
	})
	if !ok {
		return ""
	}
	m, ok := members.Member(key)
	if !ok {
		return ""
	}
	return m.String()
}

func nestedMemberString(v value.Value, outer, inner string) string {
	var mid value.Value
	switch v.Kind() {
	case value.KindObject:
		m, ok := v.Object().Get(outer)
		if !ok {
			return ""
		}
		mid = m
	case value.KindComponent:
		members, ok := v.Component().(interface {
			Member(string) (value.Value, bool)
		})
		if !ok {
			return ""
		}
		m, ok := members.Member(outer)
		if !ok {
			return ""
		}
		mid = m
	default:
		return ""
	}
	return memberString(mid, inner)
}
