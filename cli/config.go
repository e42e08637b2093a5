package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFilename is the config file looked up in the working directory and
// the user's home directory when --config is not given.
const ConfigFilename = ".hledger.yaml"

// Config is the optional YAML configuration.
type Config struct {
	// Journal is the default journal path used when a command gets no file
	// argument.
	Journal string `yaml:"journal,omitempty"`

	// NoSymbolCommodity names the commodity assumed for amounts written
	// without a symbol, for display purposes in reports.
	NoSymbolCommodity string `yaml:"no_symbol_commodity,omitempty"`
}

// LoadConfigFile reads a config file from disk.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// ResolveConfig loads the config from an explicit path, or searches the
// working directory then the home directory. No file found means an empty
// config, not an error.
func ResolveConfig(explicit string) (*Config, error) {
	if explicit != "" {
		return LoadConfigFile(explicit)
	}

	if cfg, err := LoadConfigFile(ConfigFilename); err == nil {
		return cfg, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		if cfg, err := LoadConfigFile(filepath.Join(home, ConfigFilename)); err == nil {
			return cfg, nil
		}
	}
	return &Config{}, nil
}
