// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. STATEMENTER_LOG_LEVEL.
const EnvPrefix = "STATEMENTER"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Address             string   `mapstructure:"address" yaml:"address"`
		AllowedOrigins      []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
		MaxUploadMB         int      `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
		MaxConnections      int      `mapstructure:"max_connections" yaml:"max_connections"`
		ReadTimeoutSeconds  int      `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int      `mapstructure:"write_timeout_seconds" yaml:"write_timeout_seconds"`
	} `mapstructure:"server" yaml:"server"`

	Store struct {
		Driver string `mapstructure:"driver" yaml:"driver"`
		Path   string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"store" yaml:"store"`

	// Provider "hashing" is an offline lexical stand-in that only matches
	// descriptions sharing words or spellings. Use "gemini" or "openai" for
	// semantic matching.
	Embedding struct {
		Provider          string `mapstructure:"provider" yaml:"provider"`
		Model             string `mapstructure:"model" yaml:"model"`
		Dimensions        int    `mapstructure:"dimensions" yaml:"dimensions"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		GeminiAPIKey      string `mapstructure:"gemini_api_key" yaml:"-"` // never serialized
		OpenAIAPIKey      string `mapstructure:"openai_api_key" yaml:"-"` // never serialized
		OpenAIBaseURL     string `mapstructure:"openai_base_url" yaml:"openai_base_url"`
	} `mapstructure:"embedding" yaml:"embedding"`

	Categorization struct {
		Threshold      float64  `mapstructure:"threshold" yaml:"threshold"`
		PreserveOnMiss bool     `mapstructure:"preserve_on_miss" yaml:"preserve_on_miss"`
		ExtraStopwords []string `mapstructure:"extra_stopwords" yaml:"extra_stopwords"`
	} `mapstructure:"categorization" yaml:"categorization"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`
}

// InitializeConfig loads configuration from the default locations.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load reads configuration with hierarchical precedence: defaults, then
// the config file (configFile if set, otherwise config.yaml searched in
// $HOME/.statementer, ./.statementer and the working directory), then
// environment variables.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.statementer")
		v.AddConfigPath(".statementer")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file. Only an explicitly requested file must exist.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 5. Provider API keys also come from their conventional variables
	if err := v.BindEnv("embedding.gemini_api_key", EnvPrefix+"_EMBEDDING_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}
	if err := v.BindEnv("embedding.openai_api_key", EnvPrefix+"_EMBEDDING_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Server defaults
	v.SetDefault("server.address", ":5000")
	v.SetDefault("server.allowed_origins", []string{"https://bank-statementer-fe.vercel.app"})
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.max_connections", 0)
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 120)

	// Store defaults
	v.SetDefault("store.driver", "json")
	v.SetDefault("store.path", "")

	// Embedding defaults
	v.SetDefault("embedding.provider", "hashing")
	v.SetDefault("embedding.model", "")
	v.SetDefault("embedding.dimensions", 384)
	v.SetDefault("embedding.requests_per_minute", 60)
	v.SetDefault("embedding.timeout_seconds", 30)
	v.SetDefault("embedding.openai_base_url", "")

	// Categorization defaults
	v.SetDefault("categorization.threshold", 0.7)
	v.SetDefault("categorization.preserve_on_miss", true)
	v.SetDefault("categorization.extra_stopwords", []string{})

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	if config.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be positive, got: %d", config.Server.MaxUploadMB)
	}
	if config.Server.MaxConnections < 0 {
		return fmt.Errorf("server.max_connections must not be negative, got: %d", config.Server.MaxConnections)
	}

	switch config.Store.Driver {
	case "json", "sqlite":
	default:
		return fmt.Errorf("invalid store driver: %s (must be 'json' or 'sqlite')", config.Store.Driver)
	}

	switch config.Embedding.Provider {
	case "hashing":
		if config.Embedding.Dimensions < 16 {
			return fmt.Errorf("embedding.dimensions must be at least 16, got: %d", config.Embedding.Dimensions)
		}
	case "gemini":
		if config.Embedding.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when embedding.provider is gemini")
		}
	case "openai":
		if config.Embedding.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY required when embedding.provider is openai")
		}
	default:
		return fmt.Errorf("invalid embedding provider: %s (must be 'hashing', 'gemini' or 'openai')", config.Embedding.Provider)
	}

	if config.Embedding.RequestsPerMinute < 0 || config.Embedding.RequestsPerMinute > 10000 {
		return fmt.Errorf("embedding.requests_per_minute must be between 0 and 10000, got: %d", config.Embedding.RequestsPerMinute)
	}
	if config.Embedding.TimeoutSeconds < 1 || config.Embedding.TimeoutSeconds > 300 {
		return fmt.Errorf("embedding.timeout_seconds must be between 1 and 300, got: %d", config.Embedding.TimeoutSeconds)
	}

	// Validate similarity threshold
	if config.Categorization.Threshold < 0.0 || config.Categorization.Threshold > 1.0 {
		return fmt.Errorf("categorization.threshold must be between 0.0 and 1.0, got: %f", config.Categorization.Threshold)
	}

	// Validate CSV delimiter
	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	return nil
}

// ReadTimeout is server.read_timeout_seconds as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout is server.write_timeout_seconds as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}

// EmbeddingTimeout is embedding.timeout_seconds as a duration.
func (c *Config) EmbeddingTimeout() time.Duration {
	return time.Duration(c.Embedding.TimeoutSeconds) * time.Second
}

// MaxUploadBytes is server.max_upload_mb in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// DelimiterRune is the configured CSV delimiter.
func (c *Config) DelimiterRune() rune {
	return []rune(c.CSV.Delimiter)[0]
}
