// Package config resolves provider credentials and model overrides for
// agentkit. Values come from the process environment, optionally seeded from
// a .env file and/or a YAML config file. Absent credentials are a valid,
// non-fatal configuration: agents then run in offline mode.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tutorwise/agentkit/provider"
)

// Environment variable names probed by FromEnv.
const (
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvAnthropicModel  = "ANTHROPIC_MODEL"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvOpenAIModel     = "OPENAI_MODEL"
)

// ProviderConfig holds one backend's credential and optional model override.
type ProviderConfig struct {
	APIKey string `yaml:"api_key,omitempty"`
	Model  string `yaml:"model,omitempty"`
}

// Config is the top-level agentkit configuration.
type Config struct {
	Anthropic ProviderConfig `yaml:"anthropic,omitempty"`
	OpenAI    ProviderConfig `yaml:"openai,omitempty"`
}

// Credentials projects the config into the provider package's probe input.
func (c Config) Credentials() provider.Credentials {
	return provider.Credentials{
		AnthropicAPIKey: c.Anthropic.APIKey,
		AnthropicModel:  c.Anthropic.Model,
		OpenAIAPIKey:    c.OpenAI.APIKey,
		OpenAIModel:     c.OpenAI.Model,
	}
}

// FromEnv builds a Config from the process environment. Missing variables
// leave the corresponding fields empty.
func FromEnv() Config {
	return Config{
		Anthropic: ProviderConfig{
			APIKey: os.Getenv(EnvAnthropicAPIKey),
			Model:  os.Getenv(EnvAnthropicModel),
		},
		OpenAI: ProviderConfig{
			APIKey: os.Getenv(EnvOpenAIAPIKey),
			Model:  os.Getenv(EnvOpenAIModel),
		},
	}
}

// LoadDotEnv seeds the process environment from .env files before FromEnv
// runs. A missing file is tolerated; malformed files surface as errors.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// FileReader reads configuration files. Extracted as an interface so loading
// is testable without touching the filesystem.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// OSFileReader implements FileReader using os.ReadFile.
type OSFileReader struct{}

// ReadFile reads the named file from disk.
func (OSFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader loads configuration from a YAML file, layering environment
// variables over file values (environment wins).
type Loader struct {
	fileReader FileReader
}

// NewLoader creates a config loader; a nil reader defaults to the OS one.
func NewLoader(fr FileReader) *Loader {
	if fr == nil {
		fr = OSFileReader{}
	}
	return &Loader{fileReader: fr}
}

// Load reads and parses a YAML config file, then applies environment
// overrides for any variable that is set.
func (l *Loader) Load(path string) (Config, error) {
	data, err := l.fileReader.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvAnthropicAPIKey); v != "" {
		cfg.Anthropic.APIKey = v
	}
	if v := os.Getenv(EnvAnthropicModel); v != "" {
		cfg.Anthropic.Model = v
	}
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv(EnvOpenAIModel); v != "" {
		cfg.OpenAI.Model = v
	}
}
