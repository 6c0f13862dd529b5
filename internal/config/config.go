package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Dataset  DatasetConfig  `yaml:"dataset" envconfig:"DATASET"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	OpenBrowser     bool          `yaml:"open_browser" envconfig:"OPEN_BROWSER" default:"false"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"*"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/retailpulse.log"`
}

// DatasetConfig contains dataset source configuration
type DatasetConfig struct {
	// Path is the primary sales table backing the query engine
	Path string `yaml:"path" envconfig:"PATH" default:"datasets/amazon_sales_dataset.csv"`
	// Dir is scanned by the dataset listing endpoints
	Dir string `yaml:"dir" envconfig:"DIR" default:"datasets"`
	// WebDir holds the static dashboard files
	WebDir string `yaml:"web_dir" envconfig:"WEB_DIR" default:"web"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("RETAILPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func getConfigFilePath() string {
	if path := os.Getenv("RETAILPULSE_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(".", "config.yaml")
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	return &cfg, nil
}

// mergeConfigs overlays environment values on top of the file config.
// Environment wins wherever it differs from the zero value.
func mergeConfigs(file, env Config) Config {
	merged := file

	if env.Server.Port != 0 {
		merged.Server.Port = env.Server.Port
	}
	if env.Server.ReadTimeout != 0 {
		merged.Server.ReadTimeout = env.Server.ReadTimeout
	}
	if env.Server.WriteTimeout != 0 {
		merged.Server.WriteTimeout = env.Server.WriteTimeout
	}
	if env.Server.IdleTimeout != 0 {
		merged.Server.IdleTimeout = env.Server.IdleTimeout
	}
	if env.Server.RequestTimeout != 0 {
		merged.Server.RequestTimeout = env.Server.RequestTimeout
	}
	if env.Server.ShutdownTimeout != 0 {
		merged.Server.ShutdownTimeout = env.Server.ShutdownTimeout
	}
	if len(env.Security.AllowedOrigins) > 0 {
		merged.Security.AllowedOrigins = env.Security.AllowedOrigins
	}
	if env.Security.RateLimit.RPS != 0 {
		merged.Security.RateLimit = env.Security.RateLimit
	}
	if env.Logging.Level != "" {
		merged.Logging.Level = env.Logging.Level
	}
	if env.Logging.Output != "" {
		merged.Logging.Output = env.Logging.Output
	}
	if env.Logging.FilePath != "" {
		merged.Logging.FilePath = env.Logging.FilePath
	}
	if env.Dataset.Path != "" {
		merged.Dataset.Path = env.Dataset.Path
	}
	if env.Dataset.Dir != "" {
		merged.Dataset.Dir = env.Dataset.Dir
	}
	if env.Dataset.WebDir != "" {
		merged.Dataset.WebDir = env.Dataset.WebDir
	}

	return merged
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive, got %f", c.Security.RateLimit.RPS)
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path must not be empty")
	}
	return nil
}

// Address returns the server listen address
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
