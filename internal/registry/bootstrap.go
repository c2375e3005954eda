package registry

import (
	"github.com/alexisbeaulieu97/weave/internal/config"
	"github.com/alexisbeaulieu97/weave/internal/value"
	werrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// LoadBootstrap is the bridge from the YAML ambient config layer into
// the core registry: it installs every configured component by
// registering its indexed constructor (singleton or transient per
// ComponentSpec.Singleton) and every named configuration via
// RegisterConfiguration. It
// performs no component-specific logic itself — components remain
// the external collaborator surface the core excludes, so a
// ComponentSpec's Name must already have a Constructor indexed under
// it via AddClass (the host wires its built-in components before
// calling LoadBootstrap); an unknown name raises PipelineNotFound,
// reusing the same "name not in the indexed table" error the JSON
// class-dispatch path uses.
func (r *Registry) LoadBootstrap(cfg config.BootstrapConfig) error {
	for tag, raw := range cfg.Configurations {
		r.RegisterConfiguration(tag, value.FromAny(raw), true)
	}
	for _, spec := range cfg.Components {
		r.mu.RLock()
		ctor, ok := r.classes[spec.Name]
		r.mu.RUnlock()
		if !ok {
			return werrors.NewPipelineNotFound(spec.Name)
		}
		settings := value.FromAny(spec.Settings)
		r.Register(spec.Name, Constructor(func(_ value.Value, container *Registry) value.Value {
			return ctor(settings, container)
		}), spec.Singleton)
	}
	return nil
}
