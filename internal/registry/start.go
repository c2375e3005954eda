package registry

import (
	"context"

	"github.com/alexisbeaulieu97/weave/internal/value"
)

// StartSingletons awaits every registered singleton's "start" member,
// if present, in factory insertion order — the sequencing the
// container's own Start relies on before running the main pipeline.
func (r *Registry) StartSingletons(ctx context.Context) error {
	r.mu.RLock()
	order := append([]string(nil), r.factoryOrder...)
	r.mu.RUnlock()

	for _, name := range order {
		r.mu.RLock()
		fi, ok := r.factories[name]
		r.mu.RUnlock()
		if !ok || !fi.IsSingleton {
			continue
		}
		members, ok := fi.Instance.Component().(interface {
			Member(string) (value.Value, bool)
		})
		if !ok {
			continue
		}
		fn, ok := members.Member("start")
		if !ok || !fn.Callable() {
			continue
		}
		if _, err := fn.Func()(value.Null()); err != nil {
			return err
		}
	}
	return nil
}
