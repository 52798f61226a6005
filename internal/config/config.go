// Package config loads oradialect.toml, the optional project file holding
// connection and output defaults for the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "oradialect.toml"

// EnvDSN names the environment variable consulted when no DSN is configured.
const EnvDSN = "ORADIALECT_DSN"

// Config holds CLI defaults. Command-line flags take precedence over it.
type Config struct {
	DSN                   string `toml:"dsn"`
	Schema                string `toml:"schema"`
	Format                string `toml:"format"`
	Transaction           bool   `toml:"transaction"`
	AllowNonTransactional bool   `toml:"allow_non_transactional"`
	Unsafe                bool   `toml:"unsafe"`
}

// Load reads the config at path. An empty path reads DefaultFile when it
// exists and otherwise returns an empty Config. Unknown keys are an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if c.DSN == "" {
		c.DSN = os.Getenv(EnvDSN)
	}
}

// Override replaces a config value with a flag value when the flag was set.
func Override[T any](dst *T, changed bool, v T) {
	if changed {
		*dst = v
	}
}
