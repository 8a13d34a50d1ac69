package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = "config.json"

var (
	ErrConfigMissingOrInvalid = errors.New("config missing or invalid")
	ErrConfigExists           = errors.New("config file already exists")
)

// APIKeyEnv names the environment variable consulted when a provider has no
// api_key in the config file.
var APIKeyEnv = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"deepseek":  "DEEPSEEK_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

// ProviderConfig holds the settings of one LLM provider.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Config is loaded once at startup and never modified afterwards.
type Config struct {
	ActiveProvider string                    `mapstructure:"active_provider"`
	Providers      map[string]ProviderConfig `mapstructure:"providers"`

	// TellmURL enables completion logging to a tellm server when set.
	TellmURL   string `mapstructure:"tellm_url"`
	// TellmBatch groups the completions of several runs under one tellm
	// batch. Invalid or empty values get a fresh id per run.
	TellmBatch string `mapstructure:"tellm_batch"`
	Accessible bool   `mapstructure:"accessible"`
	LogLevel   string `mapstructure:"log_level"`
}

// Provider returns the settings of the named provider, or the zero value.
func (c *Config) Provider(name string) ProviderConfig {
	return c.Providers[strings.ToLower(name)]
}

// LoadConfigFs reads the config file at path on afs. The format follows the
// file extension (json, yaml, toml...). A missing file, a parse error or a
// document without a providers mapping all wrap ErrConfigMissingOrInvalid.
func LoadConfigFs(afs afero.Fs, path string) (*Config, error) {
	v := viper.New()
	v.SetFs(afs)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: error reading config file %s: %v", ErrConfigMissingOrInvalid, path, err)
	}

	if _, ok := v.Get("providers").(map[string]interface{}); !ok {
		return nil, fmt.Errorf("%w: %s has no providers mapping", ErrConfigMissingOrInvalid, path)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("%w: unable to decode config into struct: %v", ErrConfigMissingOrInvalid, err)
	}

	config.ActiveProvider = strings.ToLower(strings.TrimSpace(config.ActiveProvider))
	for name, p := range config.Providers {
		p.APIKey = strings.TrimSpace(os.ExpandEnv(p.APIKey))
		if p.APIKey == "" {
			if env, ok := APIKeyEnv[name]; ok {
				p.APIKey = os.Getenv(env)
			}
		}
		p.BaseURL = strings.TrimRight(os.ExpandEnv(p.BaseURL), "/")
		config.Providers[name] = p
	}

	return config, nil
}

// LoadDotEnv loads environment variables from path. Missing files are ignored.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

const defaultConfig = `{
  "active_provider": "ollama",
  "providers": {
    "ollama": {
      "base_url": "http://localhost:11434",
      "model": "llama3"
    },
    "gemini": {
      "api_key": "${GEMINI_API_KEY}",
      "model": "gemini-1.5-pro-latest"
    },
    "openai": {
      "api_key": "${OPENAI_API_KEY}",
      "model": "gpt-4o-mini"
    },
    "deepseek": {
      "api_key": "${DEEPSEEK_API_KEY}",
      "base_url": "https://api.deepseek.com",
      "model": "deepseek-chat"
    },
    "anthropic": {
      "api_key": "${ANTHROPIC_API_KEY}",
      "model": "claude-3-5-sonnet-latest"
    }
  }
}
`

// CreateDefaultConfig writes a starter config file at path. It refuses to
// overwrite an existing file.
func CreateDefaultConfig(afs afero.Fs, path string) error {
	exists, err := afero.Exists(afs, path)
	if err != nil {
		return fmt.Errorf("unable to check %s: %w", path, err)
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := afero.WriteFile(afs, path, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("unable to write default config file: %w", err)
	}
	return nil
}
