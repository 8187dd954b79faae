package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/feedlens/internal/domain"
	"github.com/kailas-cloud/feedlens/internal/domain/search/mode"
	"github.com/kailas-cloud/feedlens/internal/domain/search/request"
)

// Config holds the feedlens API configuration.
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Storage       StorageConfig       `yaml:"storage"`
	Search        SearchConfig        `yaml:"search"`
	Similarity    SimilarityConfig    `yaml:"similarity"`
	Dataset       DatasetConfig       `yaml:"dataset"`
	SavedSearches SavedSearchesConfig `yaml:"saved_searches"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverValkey = "valkey"
)

// StorageConfig holds saved-search and embedding-cache storage settings.
type StorageConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis, valkey (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds pagination and mode defaults.
type SearchConfig struct {
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
	DefaultMode     string `yaml:"default_mode"` // hybrid, semantic, keyword
}

// Similarity providers.
const (
	ProviderRandom = "random"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// SimilarityConfig selects and tunes the approximate-match signal.
type SimilarityConfig struct {
	Provider          string `yaml:"provider"` // random, openai, none (default: random)
	APIKey            string `yaml:"api_key"`
	BaseURL           string `yaml:"base_url"`
	Model             string `yaml:"model"`
	Dimensions        int    `yaml:"dimensions"`
	QueryInstruction  string `yaml:"query_instruction"`
	RecordInstruction string `yaml:"record_instruction"`
	RecordCacheSize   int    `yaml:"record_cache_size"`
	QueryCacheTTLSec  int    `yaml:"query_cache_ttl_sec"` // 0 = no expiry
	TimeoutSec        int    `yaml:"timeout_sec"`
	Seed              uint64 `yaml:"seed"`                // random provider only; 0 = time-based
}

// DatasetConfig locates the feedback dataset.
type DatasetConfig struct {
	Path string `yaml:"path"` // empty = bundled sample dataset
}

// SavedSearchesConfig holds saved-search registry settings.
type SavedSearchesConfig struct {
	SeedDefaults bool `yaml:"seed_defaults"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
	if c.Storage.ReadinessTimeout <= 0 {
		c.Storage.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = domain.KeyPrefix
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = request.DefaultPageSize
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = request.MaxPageSize
	}
	if c.Search.DefaultMode == "" {
		c.Search.DefaultMode = string(mode.Hybrid)
	}
	if c.Similarity.Provider == "" {
		c.Similarity.Provider = ProviderRandom
	}
	if c.Similarity.Model == "" {
		c.Similarity.Model = domain.DefaultEmbeddingModel
	}
	if c.Similarity.Dimensions <= 0 {
		c.Similarity.Dimensions = domain.DefaultEmbeddingDimensions
	}
	if c.Similarity.RecordCacheSize <= 0 {
		c.Similarity.RecordCacheSize = 4096
	}
	if c.Similarity.TimeoutSec <= 0 {
		c.Similarity.TimeoutSec = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverRedis, DriverValkey:
		if len(c.Storage.Addrs) == 0 {
			return fmt.Errorf("storage.addrs is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("storage.driver must be one of memory, redis, valkey, got %q", c.Storage.Driver)
	}
	if c.Search.MaxPageSize > request.MaxPageSize {
		return fmt.Errorf("search.max_page_size must be <= %d, got %d", request.MaxPageSize, c.Search.MaxPageSize)
	}
	if c.Search.DefaultPageSize > c.Search.MaxPageSize {
		return fmt.Errorf("search.default_page_size %d exceeds search.max_page_size %d",
			c.Search.DefaultPageSize, c.Search.MaxPageSize)
	}
	if !mode.Mode(c.Search.DefaultMode).IsValid() {
		return fmt.Errorf("search.default_mode must be hybrid, semantic or keyword, got %q", c.Search.DefaultMode)
	}
	switch c.Similarity.Provider {
	case ProviderRandom, ProviderNone:
	case ProviderOpenAI:
		if c.Similarity.APIKey == "" {
			return fmt.Errorf("similarity.api_key is required for provider %q", ProviderOpenAI)
		}
	default:
		return fmt.Errorf("similarity.provider must be random, openai or none, got %q", c.Similarity.Provider)
	}
	if c.Similarity.QueryCacheTTLSec < 0 {
		return fmt.Errorf("similarity.query_cache_ttl_sec must be >= 0, got %d", c.Similarity.QueryCacheTTLSec)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
