package solver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config selects which backends a dispatcher consults and an optional
// timeout hint in milliseconds. The hint is written into the script
// preamble once per session reset; nothing here enforces it.
type Config struct {
	Z3      bool `yaml:"z3"`
	CVC4    bool `yaml:"cvc4"`
	Timeout int  `yaml:"timeout"`
}

// DefaultConfig enables z3 only, with no timeout hint.
func DefaultConfig() Config {
	return Config{Z3: true}
}

// LoadConfig reads a YAML backend configuration:
//
//	z3: true
//	cvc4: true
//	timeout: 10000
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading solver config: %w", err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing solver config '%s': %w", filename, err)
	}
	return config, nil
}
