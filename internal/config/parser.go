package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	werrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// LoadBootstrapFile reads path, decodes it as a BootstrapConfig, and
// validates it.
func LoadBootstrapFile(path string) (*BootstrapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, werrors.NewConfigError(path, "reading bootstrap file", err)
	}
	return ParseBootstrap(path, data)
}

// ParseBootstrap decodes and validates a bootstrap document already
// read into memory.
func ParseBootstrap(path string, data []byte) (*BootstrapConfig, error) {
	var cfg BootstrapConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, werrors.NewConfigError(path, fmt.Sprintf("yaml decode near line %d", extractLine(err)), err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, werrors.NewConfigError(path, "validation failed", err)
	}

	return &cfg, nil
}

// Validate runs struct-tag validation over cfg using the shared
// validator instance.
func Validate(cfg *BootstrapConfig) error {
	return validatorInstance().Struct(cfg)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}
	return line
}
