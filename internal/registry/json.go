package registry

import (
	"github.com/alexisbeaulieu97/weave/internal/value"
	werrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// classNameField is the synthetic property ToJSON adds and FromJSON
// consumes and strips.
const classNameField = "className"

// ToJSON returns a shallow copy of instance's object fields plus a
// className field. Go has no runtime class-name introspection, so the
// caller supplies className explicitly — ordinarily the name under
// which the instance's constructor was added via AddClass.
func ToJSON(instance value.Value, className string) value.Value {
	out := value.NewObject()
	if instance.Kind() == value.KindObject {
		for _, k := range instance.Object().Keys() {
			v, _ := instance.Object().Get(k)
			out.Object().Set(k, v)
		}
	}
	out.Object().Set(classNameField, value.String(className))
	return out
}

// FromJSON looks up obj's className in the registry's class table,
// constructs a fresh instance with settings, then either calls the
// instance's "fromJSON" member (if present) or shallow-merges obj's
// fields into it. The className field never appears on the result.
func (r *Registry) FromJSON(obj value.Value, settings value.Value) (value.Value, error) {
	if obj.Kind() != value.KindObject {
		return value.Null(), werrors.NewPathNotFound(classNameField)
	}
	nameVal, ok := obj.Object().Get(classNameField)
	if !ok {
		return value.Null(), werrors.NewPathNotFound(classNameField)
	}
	className := nameVal.String()

	r.mu.RLock()
	ctor, ok := r.classes[className]
	r.mu.RUnlock()
	if !ok {
		return value.Null(), werrors.NewPipelineNotFound(className)
	}

	instance := ctor(settings, r)
	stripped := stripClassName(obj)

	if members, ok := instance.Component().(interface {
		Member(string) (value.Value, bool)
	}); ok {
		if fn, ok := members.Member("fromJSON"); ok && fn.Callable() {
			return fn.Func()(instance, stripped)
		}
	}

	if instance.Kind() == value.KindObject {
		for _, k := range stripped.Object().Keys() {
			v, _ := stripped.Object().Get(k)
			instance.Object().Set(k, v)
		}
	}
	return instance, nil
}

func stripClassName(obj value.Value) value.Value {
	out := value.NewObject()
	for _, k := range obj.Object().Keys() {
		if k == classNameField {
			continue
		}
		v, _ := obj.Object().Get(k)
		out.Object().Set(k, v)
	}
	return out
}
