// Package config loads and validates the YAML bootstrap document that
// seeds a container before its main pipeline runs: which components
// to install, their singleton/transient mode and settings, and the
// named configurations made available via getConfiguration.
package config

// BootstrapConfig is the top-level YAML document.
type BootstrapConfig struct {
	Version        string                 `yaml:"version" validate:"required,semver"`
	PipelinesDir   string                 `yaml:"pipelines_dir"`
	Components     []ComponentSpec        `yaml:"components" validate:"dive"`
	Configurations map[string]interface{} `yaml:"configurations"`
}

// ComponentSpec describes one component Registry.LoadBootstrap installs
// at load time from the constructor indexed under Name.
type ComponentSpec struct {
	Name      string                 `yaml:"name" validate:"required,component_name"`
	Singleton bool                   `yaml:"singleton"`
	Settings  map[string]interface{} `yaml:"settings"`
}
