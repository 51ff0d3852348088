package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// FileName is the name of the configuration file
const FileName = "abiparse.json"

// ErrNotFound is returned when no configuration file exists in the directory or its parents
var ErrNotFound = errors.New("config not found")

// Config represents the abiparse.json configuration file
type Config struct {
	Schema string      `json:"schema"`
	Output string      `json:"output"`
	Format string      `json:"format"`
	Fetch  FetchConfig `json:"fetch"`
	Watch  WatchConfig `json:"watch"`
}

// FetchConfig controls how imported schemas are loaded
type FetchConfig struct {
	Root      string    `json:"root"`
	CacheSize int       `json:"cacheSize"`
	Timeout   string    `json:"timeout"`
	S3        *S3Config `json:"s3,omitempty"`
}

// S3Config contains object storage credentials for s3:// imports
type S3Config struct {
	Endpoint  string `json:"endpoint"`
	Region    string `json:"region"`
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
	UseSSL    bool   `json:"useSSL"`
}

// WatchConfig contains file watching configuration
type WatchConfig struct {
	Patterns []string `json:"patterns"`
	Exclude  []string `json:"exclude"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	config := &Config{}
	config.setDefaults()
	return config
}

// LoadConfig loads abiparse.json from the current directory or a parent directory
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the abiparse.json configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.setDefaults()

	if _, err := config.FetchTimeout(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) setDefaults() {
	if c.Schema == "" {
		c.Schema = "./schema.graphql"
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Fetch.Root == "" {
		c.Fetch.Root = "./"
	}
	if c.Fetch.CacheSize <= 0 {
		c.Fetch.CacheSize = 1024
	}
	if c.Fetch.Timeout == "" {
		c.Fetch.Timeout = "30s"
	}
	if len(c.Watch.Patterns) == 0 {
		c.Watch.Patterns = []string{"*.graphql", "**/*.graphql"}
	}
	if len(c.Watch.Exclude) == 0 {
		c.Watch.Exclude = []string{"build/", "node_modules/", ".git/"}
	}
}

// FetchTimeout parses Fetch.Timeout
func (c *Config) FetchTimeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid fetch timeout %q: %w", c.Fetch.Timeout, err)
	}
	return timeout, nil
}

// ApplyEnv loads a .env file if present and lets ABIPARSE_* variables override the file.
// Setting ABIPARSE_S3_ENDPOINT enables s3 imports even without an s3 section.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	c.Schema = firstNonEmpty(strings.TrimSpace(os.Getenv("ABIPARSE_SCHEMA")), c.Schema)
	c.Fetch.Root = firstNonEmpty(strings.TrimSpace(os.Getenv("ABIPARSE_FETCH_ROOT")), c.Fetch.Root)
	c.Fetch.Timeout = firstNonEmpty(strings.TrimSpace(os.Getenv("ABIPARSE_FETCH_TIMEOUT")), c.Fetch.Timeout)

	endpoint := strings.TrimSpace(os.Getenv("ABIPARSE_S3_ENDPOINT"))
	if endpoint == "" && c.Fetch.S3 == nil {
		return
	}
	if c.Fetch.S3 == nil {
		c.Fetch.S3 = &S3Config{}
	}

	s3 := c.Fetch.S3
	s3.Endpoint = firstNonEmpty(endpoint, s3.Endpoint)
	s3.Region = firstNonEmpty(strings.TrimSpace(os.Getenv("ABIPARSE_S3_REGION")), s3.Region, "us-east-1")
	s3.AccessKey = firstNonEmpty(strings.TrimSpace(os.Getenv("ABIPARSE_S3_ACCESS_KEY")), s3.AccessKey)
	s3.SecretKey = firstNonEmpty(strings.TrimSpace(os.Getenv("ABIPARSE_S3_SECRET_KEY")), s3.SecretKey)
	if raw := strings.TrimSpace(os.Getenv("ABIPARSE_S3_USE_SSL")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			s3.UseSSL = v
		}
	}
}

// loadConfigFromDir searches for abiparse.json in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w: no %s found in %s or any parent directory", ErrNotFound, FileName, startDir)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
