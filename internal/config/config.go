package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the cardex API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Search   SearchConfig   `yaml:"search"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis (default)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds index layout and ranking settings.
type SearchConfig struct {
	Index           string           `yaml:"index"`
	KeyPrefix       string           `yaml:"key_prefix"`
	MaxCandidates   int              `yaml:"max_candidates"`
	ScanBatch       int              `yaml:"scan_batch"`
	MaxScan         int              `yaml:"max_scan"`
	TimeoutMs       int              `yaml:"timeout_ms"`
	BasicTimeoutMs  int              `yaml:"basic_timeout_ms"`
	HybridDepth     int              `yaml:"hybrid_depth"`
	Strategies      []StrategyConfig `yaml:"strategies"` // hybrid members, in merge order
	K1              float64          `yaml:"k1"`
	AvgFieldLen     float64          `yaml:"avg_field_len"`
	SuggestionLimit int              `yaml:"suggestion_limit"`
}

// StrategyConfig is one hybrid member.
type StrategyConfig struct {
	Name  string  `yaml:"name"`
	Share float64 `yaml:"share"`
}

// CacheConfig holds query cache settings.
type CacheConfig struct {
	Driver string `yaml:"driver"` // none (default), memory, store
	TTLSec int    `yaml:"ttl_sec"`
	Size   int    `yaml:"size"` // memory driver only
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

// GetEnv returns the current environment from CARDEX_ENV, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("CARDEX_ENV"); env != "" {
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
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	c.Search.applyDefaults()
	if c.Cache.Driver == "" {
		c.Cache.Driver = "none"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 30
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = 1024
	}
}

func (s *SearchConfig) applyDefaults() {
	if s.Index == "" {
		s.Index = "cardex:cards:idx"
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "cardex:card:"
	}
	if s.MaxCandidates <= 0 {
		s.MaxCandidates = 1000
	}
	if s.ScanBatch <= 0 {
		s.ScanBatch = 500
	}
	if s.MaxScan <= 0 {
		s.MaxScan = 10000
	}
	if s.TimeoutMs <= 0 {
		s.TimeoutMs = 2000
	}
	if s.BasicTimeoutMs <= 0 {
		s.BasicTimeoutMs = 1000
	}
	if s.HybridDepth <= 0 {
		s.HybridDepth = 50
	}
	if len(s.Strategies) == 0 {
		s.Strategies = []StrategyConfig{
			{Name: "frequency", Share: 0.6},
			{Name: "probabilistic", Share: 0.4},
		}
	}
	if s.K1 <= 0 {
		s.K1 = 1.2
	}
	if s.AvgFieldLen <= 0 {
		s.AvgFieldLen = 50
	}
	if s.SuggestionLimit <= 0 {
		s.SuggestionLimit = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.Driver != "redis" {
		return fmt.Errorf("database.driver must be \"redis\", got %q", c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Search.ScanBatch > c.Search.MaxScan {
		return fmt.Errorf("search.scan_batch (%d) exceeds search.max_scan (%d)", c.Search.ScanBatch, c.Search.MaxScan)
	}
	for i, st := range c.Search.Strategies {
		switch st.Name {
		case "frequency", "probabilistic", "fuzzy":
		default:
			return fmt.Errorf("search.strategies[%d].name must be frequency, probabilistic or fuzzy, got %q", i, st.Name)
		}
		if st.Share <= 0 || st.Share > 1 {
			return fmt.Errorf("search.strategies[%d].share must be in (0, 1], got %g", i, st.Share)
		}
	}
	switch c.Cache.Driver {
	case "none", "memory", "store":
		// ok
	default:
		return fmt.Errorf("cache.driver must be \"none\", \"memory\" or \"store\", got %q", c.Cache.Driver)
	}
	return nil
}

// SearchTimeout returns the fan-out deadline.
func (s SearchConfig) SearchTimeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

// BasicTimeout returns the degraded search deadline.
func (s SearchConfig) BasicTimeout() time.Duration {
	return time.Duration(s.BasicTimeoutMs) * time.Millisecond
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
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
