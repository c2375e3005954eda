package container

import (
	"github.com/alexisbeaulieu97/weave/internal/config"
)

// LoadBootstrapFile reads path as a bootstrap YAML document and
// installs its components and configurations into the container's
// registry.
func (c *Container) LoadBootstrapFile(path string) error {
	cfg, err := config.LoadBootstrapFile(path)
	if err != nil {
		return err
	}
	return c.Registry.LoadBootstrap(*cfg)
}
