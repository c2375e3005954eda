// Package registry implements the process-wide component container
// described in §4.C: a factory map with singleton and transient
// entries, a parent fallback chain, wildcard lookup memoized behind a
// best-key cache, and the configuration/pipeline/compiler side tables
// that share the same strict-then-wildcard resolution shape.
package registry

import (
	"sync"

	"github.com/alexisbeaulieu97/weave/internal/pipeline"
	"github.com/alexisbeaulieu97/weave/internal/value"
	"github.com/alexisbeaulieu97/weave/internal/wildcard"
	werrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// Constructor builds a component instance from caller-supplied
// settings and the owning registry. It stands in for the "value is a
// constructor function" branch of register(): Go closures carry no
// introspectable name, so Use requires one to be supplied explicitly
// via ComponentConstructor.Name rather than derived at runtime.
type Constructor func(settings value.Value, container *Registry) value.Value

// FactoryItem is one registered entry: either a constructed singleton
// instance, or a remembered constructor invoked fresh on every Get.
type FactoryItem struct {
	Instance    value.Value
	IsSingleton bool
	Ctor        Constructor
}

// ComponentConstructor pairs a Constructor with the name Use would
// otherwise have obtained by reflecting on a class name.
type ComponentConstructor struct {
	Name string
	New  Constructor
}

// Registry is a process-wide (or scoped, via a parent chain) store of
// components, configurations, pipelines, and compilers.
type Registry struct {
	mu     sync.RWMutex
	parent *Registry

	classes map[string]Constructor

	factories    map[string]*FactoryItem
	factoryOrder []string

	configurations map[string]value.Value
	configOrder    []string

	pipelines     map[string]*pipeline.Pipeline
	pipelineOrder []string

	compilers map[string]pipeline.Compiler

	cacheBestKeys  map[string]string
	cachePipelines map[string]string
}

// New constructs an empty registry, optionally chained to parent for
// fallback lookups.
func New(parent *Registry) *Registry {
	return &Registry{
		parent:         parent,
		classes:        make(map[string]Constructor),
		factories:      make(map[string]*FactoryItem),
		configurations: make(map[string]value.Value),
		pipelines:      make(map[string]*pipeline.Pipeline),
		compilers:      make(map[string]pipeline.Compiler),
		cacheBestKeys:  make(map[string]string),
		cachePipelines: make(map[string]string),
	}
}

// AddClass indexes a constructor under name for later use by
// fromJSON's className dispatch.
func (r *Registry) AddClass(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[name] = ctor
}

// Register installs a FactoryItem under name. When isSingleton is
// true, a Constructor is invoked immediately with no settings;
// otherwise it is remembered and invoked fresh on every Get. Passing
// an already-built value.Value always registers it as a singleton
// instance. Registering invalidates the wildcard best-key cache.
func (r *Registry) Register(name string, item any, isSingleton bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fi := &FactoryItem{IsSingleton: isSingleton}
	switch v := item.(type) {
	case Constructor:
		if isSingleton {
			fi.Instance = v(value.Null(), r)
		} else {
			fi.Ctor = v
		}
	case value.Value:
		fi.Instance = v
		fi.IsSingleton = true
	default:
		fi.Instance = value.Null()
		fi.IsSingleton = true
	}

	if _, exists := r.factories[name]; !exists {
		r.factoryOrder = append(r.factoryOrder, name)
	}
	r.factories[name] = fi
	r.cacheBestKeys = make(map[string]string)
}

// Get resolves name: strict lookup, then parent delegation, then
// wildcard fallback memoized in cacheBestKeys. A singleton's
// applySettings member (if present on the instance) is invoked with
// settings before the instance is returned; a transient entry is
// constructed fresh via its Constructor.
func (r *Registry) Get(name string) (value.Value, bool) {
	return r.GetWithSettings(name, value.Null())
}

// GetWithSettings is Get with an explicit settings argument forwarded
// to a singleton's applySettings member, or to a transient
// Constructor.
func (r *Registry) GetWithSettings(name string, settings value.Value) (value.Value, bool) {
	r.mu.RLock()
	item, key, ok := r.lookup(name)
	r.mu.RUnlock()
	if !ok {
		return value.Null(), false
	}
	return r.resolveItem(item, key, settings), true
}

func (r *Registry) lookup(name string) (*FactoryItem, string, bool) {
	if fi, ok := r.factories[name]; ok {
		return fi, name, true
	}
	if r.parent != nil {
		if fi, key, ok := r.parent.lookup(name); ok {
			return fi, key, true
		}
	}
	if key, ok := r.bestKey(name); ok {
		return r.factories[key], key, true
	}
	return nil, "", false
}

func (r *Registry) resolveItem(fi *FactoryItem, key string, settings value.Value) value.Value {
	if fi.IsSingleton {
		applySettings(fi.Instance, settings)
		return fi.Instance
	}
	if fi.Ctor == nil {
		return value.Null()
	}
	return fi.Ctor(settings, r)
}

// applySettings invokes an instance's "applySettings" member, if it
// has one, purely for the side effect of reconfiguring it in place.
func applySettings(instance, settings value.Value) {
	if instance.Kind() != value.KindComponent {
		return
	}
	members, ok := instance.Component().(interface {
		Member(string) (value.Value, bool)
	})
	if !ok {
		return
	}
	fn, ok := members.Member("applySettings")
	if !ok || !fn.Callable() {
		return
	}
	_, _ = fn.Func()(settings)
}

// bestKey returns the first registered key (insertion order) matching
// name as a glob, memoized. Either side may carry the wildcards.
func (r *Registry) bestKey(name string) (string, bool) {
	if key, ok := r.cacheBestKeys[name]; ok {
		return key, key != ""
	}
	for _, key := range r.factoryOrder {
		if wildcard.Match(name, key) || wildcard.Match(key, name) {
			r.cacheBestKeys[name] = key
			return key, true
		}
	}
	r.cacheBestKeys[name] = ""
	return "", false
}

// RegisterConfiguration installs cfg under tag. A no-op when tag is
// already present and overwrite is false.
func (r *Registry) RegisterConfiguration(tag string, cfg value.Value, overwrite bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.configurations[tag]; exists && !overwrite {
		return
	}
	if _, exists := r.configurations[tag]; !exists {
		r.configOrder = append(r.configOrder, tag)
	}
	r.configurations[tag] = cfg
}

// GetConfiguration resolves tag: strict, then wildcard over
// registered configuration tags.
func (r *Registry) GetConfiguration(tag string) (value.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cfg, ok := r.configurations[tag]; ok {
		return cfg, true
	}
	for _, key := range r.configOrder {
		if wildcard.Match(tag, key) || wildcard.Match(key, tag) {
			return r.configurations[key], true
		}
	}
	if r.parent != nil {
		return r.parent.GetConfiguration(tag)
	}
	return value.Null(), false
}

// RegisterCompiler installs c under name, selectable from a pipeline's
// leading "// compiler=NAME" directive.
func (r *Registry) RegisterCompiler(name string, c pipeline.Compiler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compilers[name] = c
}

// GetCompiler resolves name; CompilerNotFound callers are expected to
// fall back to the default compiler themselves.
func (r *Registry) GetCompiler(name string) (pipeline.Compiler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.compilers[name]; ok {
		return c, nil
	}
	if r.parent != nil {
		return r.parent.GetCompiler(name)
	}
	return nil, werrors.NewCompilerNotFound(name)
}

// ComponentNames returns every registered component name, in insertion
// order, for CLI inspection (e.g. `weave list`).
func (r *Registry) ComponentNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.factoryOrder))
	copy(out, r.factoryOrder)
	return out
}

// PipelineTags returns every registered pipeline tag, in insertion
// order, for CLI inspection (e.g. `weave list`).
func (r *Registry) PipelineTags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.pipelineOrder))
	copy(out, r.pipelineOrder)
	return out
}
