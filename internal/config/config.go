// Package config loads the FlexFit CLI configuration from the home
// directory, with environment overrides for scripting and CI.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/flexfitapp/flexfit/internal/errors"
)

const (
	configFileName = "config.yaml"

	// DefaultBaseURL points at a local platform instance.
	DefaultBaseURL = "http://127.0.0.1:7000"

	envHome    = "FLEXFIT_HOME"
	envBaseURL = "FLEXFIT_API_URL"
)

// Config holds the CLI configuration.
type Config struct {
	// APIBaseURL is the root of the remote platform API.
	APIBaseURL string `yaml:"api_base_url"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`

	// LogFormat selects text or json log output.
	LogFormat string `yaml:"log_format,omitempty"`

	// Home is the directory the config was loaded from. Not serialized.
	Home string `yaml:"-"`
}

// DefaultHome resolves the FlexFit home directory: $FLEXFIT_HOME when set,
// otherwise ~/.flexfit.
func DefaultHome() (string, error) {
	if home := os.Getenv(envHome); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigRead, "cannot resolve home directory", err)
	}
	return filepath.Join(userHome, ".flexfit"), nil
}

// Load reads the config file under home, applying defaults for anything
// unset. A missing file is not an error; defaults are returned.
// $FLEXFIT_API_URL overrides the configured base URL.
func Load(home string) (*Config, error) {
	cfg := &Config{
		APIBaseURL: DefaultBaseURL,
		Home:       home,
	}

	data, err := os.ReadFile(filepath.Join(home, configFileName))
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeConfigRead, "failed to read config file", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "config file is not valid YAML", err).
				WithSuggestion("Fix or remove " + filepath.Join(home, configFileName))
		}
		cfg.Home = home
		if cfg.APIBaseURL == "" {
			cfg.APIBaseURL = DefaultBaseURL
		}
	}

	if url := os.Getenv(envBaseURL); url != "" {
		cfg.APIBaseURL = url
	}

	return cfg, nil
}

// Save writes the config file under cfg.Home, creating the directory as needed.
func (c *Config) Save() error {
	if c.Home == "" {
		return errors.New(errors.ErrCodeConfigInvalid, "config has no home directory")
	}
	if err := os.MkdirAll(c.Home, 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeConfigRead, "failed to create config directory", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to encode config", err)
	}
	if err := os.WriteFile(filepath.Join(c.Home, configFileName), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigRead, "failed to write config file", err)
	}
	return nil
}
