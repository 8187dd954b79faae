package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_RedisRequiresAddrs(t *testing.T) {
	for _, driver := range []string{DriverRedis, DriverValkey} {
		t.Run(driver, func(t *testing.T) {
			cfg := validConfig()
			cfg.Storage.Driver = driver

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error for missing addrs")
			}
			if !strings.Contains(err.Error(), "storage.addrs") {
				t.Errorf("unexpected error: %v", err)
			}

			cfg.Storage.Addrs = []string{"localhost:6379"}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "sqlite"

	expected := `storage.driver must be one of memory, redis, valkey, got "sqlite"`
	err := cfg.Validate()
	if err == nil || err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %v\nwant: %q", err, expected)
	}
}

func TestValidate_Search(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"max page size above limit", func(c *Config) { c.Search.MaxPageSize = 500 }},
		{"default above max", func(c *Config) { c.Search.DefaultPageSize = 60; c.Search.MaxPageSize = 50 }},
		{"unknown mode", func(c *Config) { c.Search.DefaultMode = "fuzzy" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate_Similarity(t *testing.T) {
	cfg := validConfig()
	cfg.Similarity.Provider = ProviderOpenAI
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing api key")
	}

	cfg.Similarity.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Similarity.Provider = "cohere"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}

	cfg.Similarity.Provider = ProviderNone
	cfg.Similarity.QueryCacheTTLSec = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative ttl")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Errorf("expected Driver=memory, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Storage.ReadinessTimeout)
	}
	if cfg.Storage.KeyPrefix != "feedlens:" {
		t.Errorf("expected KeyPrefix='feedlens:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Search.DefaultPageSize != 10 {
		t.Errorf("expected DefaultPageSize=10, got %d", cfg.Search.DefaultPageSize)
	}
	if cfg.Search.MaxPageSize != 100 {
		t.Errorf("expected MaxPageSize=100, got %d", cfg.Search.MaxPageSize)
	}
	if cfg.Search.DefaultMode != "hybrid" {
		t.Errorf("expected DefaultMode=hybrid, got %q", cfg.Search.DefaultMode)
	}
	if cfg.Similarity.Provider != ProviderRandom {
		t.Errorf("expected Provider=random, got %q", cfg.Similarity.Provider)
	}
	if cfg.Similarity.RecordCacheSize != 4096 {
		t.Errorf("expected RecordCacheSize=4096, got %d", cfg.Similarity.RecordCacheSize)
	}
	if cfg.Similarity.TimeoutSec != 5 {
		t.Errorf("expected TimeoutSec=5, got %d", cfg.Similarity.TimeoutSec)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Storage:    StorageConfig{Driver: DriverRedis, KeyPrefix: "custom:", ReadinessTimeout: 15},
		Search:     SearchConfig{DefaultPageSize: 25, MaxPageSize: 50, DefaultMode: "keyword"},
		Similarity: SimilarityConfig{Provider: ProviderNone, Model: "m", Dimensions: 64},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Storage.KeyPrefix != "custom:" || cfg.Storage.Driver != DriverRedis {
		t.Errorf("storage overridden: %+v", cfg.Storage)
	}
	if cfg.Search.DefaultPageSize != 25 || cfg.Search.DefaultMode != "keyword" {
		t.Errorf("search overridden: %+v", cfg.Search)
	}
	if cfg.Similarity.Dimensions != 64 || cfg.Similarity.Model != "m" {
		t.Errorf("similarity overridden: %+v", cfg.Similarity)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FEEDLENS_TEST_KEY", "secret")

	in := "a: ${FEEDLENS_TEST_KEY}\nb: ${FEEDLENS_TEST_MISSING:-fallback}\nc: ${FEEDLENS_TEST_MISSING}\n"
	got := string(expandEnvVars([]byte(in)))
	want := "a: secret\nb: fallback\nc: \n"
	if got != want {
		t.Errorf("expandEnvVars =\n%q\nwant\n%q", got, want)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o750); err != nil {
		t.Fatal(err)
	}
	content := `http:
  port: ${FEEDLENS_TEST_PORT:-9090}
storage:
  driver: valkey
  addrs: ["localhost:6379"]
similarity:
  query_instruction: "query: "
  record_instruction: "passage: "
saved_searches:
  seed_defaults: true
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Storage.Driver != DriverValkey || !cfg.SavedSearches.SeedDefaults {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Search.DefaultPageSize != 10 {
		t.Errorf("defaults not applied: %+v", cfg.Search)
	}
	if cfg.Similarity.QueryInstruction != "query: " || cfg.Similarity.RecordInstruction != "passage: " {
		t.Errorf("instructions = %q / %q", cfg.Similarity.QueryInstruction, cfg.Similarity.RecordInstruction)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}
