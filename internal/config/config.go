// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultFile    = "config.yaml"
	DefaultEnvFile = ".env"
)

// Environment variables that override values from the YAML file.
const (
	EnvBaseURL        = "AGGREGATOR_BASE_URL"
	EnvSubmitterName  = "AGGREGATOR_SUBMITTER_NAME"
	EnvSubmitterEmail = "AGGREGATOR_SUBMITTER_EMAIL"
)

type Config struct {
	RateLimit struct {
		RequestsPerSecond int `yaml:"requestsPerSecond"`
		Burst             int `yaml:"burst"`
	} `yaml:"rateLimit"`

	API struct {
		BaseURL      string `yaml:"baseURL"`
		StudentsPath string `yaml:"studentsPath"`
		SubmitPath   string `yaml:"submitPath"`
	} `yaml:"api"`

	HTTPClient struct {
		Timeout    int    `yaml:"timeout"`
		MaxRetries int    `yaml:"maxRetries"`
		RetryDelay int    `yaml:"retryDelay"`
		UserAgent  string `yaml:"userAgent"`
	} `yaml:"httpClient"`

	Submitter struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"submitter"`

	Output struct {
		TopStudentsCount int    `yaml:"topStudentsCount"`
		Format           string `yaml:"format"`
		PrettyPrint      bool   `yaml:"prettyPrint"`
		DryRun           bool   `yaml:"dryRun"`
	} `yaml:"output"`

	Logging struct {
		Mode string `yaml:"mode"`
	} `yaml:"logging"`
}

// Load reads config.yaml from the working directory
func Load() (*Config, error) {
	return LoadFile(DefaultFile)
}

// LoadFile reads and parses the configuration at path, applies .env
// overrides, defaults and validation
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	// A missing .env file is fine, a broken one is not
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", DefaultEnvFile, err)
	}
	applyEnv(&cfg)

	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(EnvSubmitterName); v != "" {
		cfg.Submitter.Name = v
	}
	if v := os.Getenv(EnvSubmitterEmail); v != "" {
		cfg.Submitter.Email = v
	}
}

// setDefaults sets default values for configuration
func setDefaults(cfg *Config) {
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 5
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 1
	}
	if cfg.API.StudentsPath == "" {
		cfg.API.StudentsPath = "/Students"
	}
	if cfg.API.SubmitPath == "" {
		cfg.API.SubmitPath = "/StudentAggregate"
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.HTTPClient.Timeout == 0 {
		cfg.HTTPClient.Timeout = 30
	}
	if cfg.HTTPClient.RetryDelay == 0 {
		cfg.HTTPClient.RetryDelay = 1
	}
	if cfg.HTTPClient.UserAgent == "" {
		cfg.HTTPClient.UserAgent = "Student-Aggregator/1.0"
	}
	if cfg.Output.TopStudentsCount == 0 {
		cfg.Output.TopStudentsCount = 10
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "json"
	}
	if cfg.Logging.Mode == "" {
		cfg.Logging.Mode = "development"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api baseURL is required")
	}
	if c.Submitter.Name == "" || c.Submitter.Email == "" {
		return fmt.Errorf("submitter name and email are required")
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("requestsPerSecond must be positive")
	}
	if c.HTTPClient.MaxRetries < 0 {
		return fmt.Errorf("maxRetries cannot be negative")
	}
	if c.Output.TopStudentsCount <= 0 {
		return fmt.Errorf("topStudentsCount must be positive")
	}
	switch c.Output.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	return nil
}
