package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	envConfigPath  = "MUSEUMHUB_CONFIG"
	envDBPath      = "MUSEUMHUB_DB_PATH"
	envHTTPAddr    = "MUSEUMHUB_HTTP_ADDR"
	envGRPCAddr    = "MUSEUMHUB_GRPC_ADDR"
	envEventsAddr  = "MUSEUMHUB_EVENTS_ADDR"
	envLogLevel    = "MUSEUMHUB_LOG_LEVEL"
	envAICBaseURL  = "MUSEUMHUB_AIC_BASE_URL"
	envMetBaseURL  = "MUSEUMHUB_MET_BASE_URL"
	envCacheTTL    = "MUSEUMHUB_CACHE_TTL"
	envCORSOrigins = "MUSEUMHUB_CORS_ORIGINS"
	envRetries     = "MUSEUMHUB_RETRIES"
)

var (
	ErrInvalidRetries     = errors.New("museum.retries must be non-negative")
	ErrInvalidConcurrency = errors.New("museum.concurrency must be at least 1")
	ErrInvalidBatchSize   = errors.New("museum.batch_size must be at least 1")
	ErrInvalidTimeout     = errors.New("museum.request_timeout must be positive")
	ErrInvalidLogLevel    = errors.New("log_level must be one of: debug, info, warn, error")
)

// Config is shared by every binary under cmd/.
type Config struct {
	HTTPAddr    string       `yaml:"http_addr"`
	GRPCAddr    string       `yaml:"grpc_addr"`
	EventsAddr  string       `yaml:"events_addr"` // line-delimited JSON event stream over TCP
	DBPath      string       `yaml:"db_path"`
	LogLevel    string       `yaml:"log_level"`
	CORSOrigins []string     `yaml:"cors_origins"`
	Museum      MuseumConfig `yaml:"museum"`
	Cache       CacheConfig  `yaml:"cache"`
}

// MuseumConfig tunes the source fetchers.
type MuseumConfig struct {
	AICBaseURL     string        `yaml:"aic_base_url"`
	MetBaseURL     string        `yaml:"met_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Retries        int           `yaml:"retries"`
	Concurrency    int           `yaml:"concurrency"`
	BatchSize      int           `yaml:"batch_size"`
	ListLimit      int           `yaml:"list_limit"`
	SearchLimit    int           `yaml:"search_limit"`
	MaxPageSize    int           `yaml:"max_page_size"`
	ProbeInterval  time.Duration `yaml:"probe_interval"`
}

type CacheConfig struct {
	TTL      time.Duration `yaml:"ttl"`
	ImageTTL time.Duration `yaml:"image_ttl"`
}

func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return Config{
		HTTPAddr:    ":8080",
		GRPCAddr:    ":9090",
		EventsAddr:  ":7070",
		DBPath:      filepath.Join(home, ".museumhub", "data.db"),
		LogLevel:    "info",
		CORSOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		Museum: MuseumConfig{
			AICBaseURL:     "https://api.artic.edu/api/v1/artworks",
			MetBaseURL:     "https://collectionapi.metmuseum.org/public/collection/v1",
			RequestTimeout: 8 * time.Second,
			Retries:        3,
			Concurrency:    5,
			BatchSize:      48,
			ListLimit:      32,
			SearchLimit:    20,
			MaxPageSize:    100,
			ProbeInterval:  time.Minute,
		},
		Cache: CacheConfig{
			TTL:      5 * time.Minute,
			ImageTTL: 30 * time.Minute,
		},
	}
}

// LoadConfig starts from DefaultConfig, merges the YAML file named by
// MUSEUMHUB_CONFIG (if set), loads .env and applies environment overrides.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv(envConfigPath); path != "" {
		fileCfg, err := readConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	// .env is optional; a missing file is the normal case outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readConfigFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fileCfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(envDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(envHTTPAddr); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv(envGRPCAddr); v != "" {
		c.GRPCAddr = v
	}
	if v := os.Getenv(envEventsAddr); v != "" {
		c.EventsAddr = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(envAICBaseURL); v != "" {
		c.Museum.AICBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv(envMetBaseURL); v != "" {
		c.Museum.MetBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv(envCORSOrigins); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}
	if v := os.Getenv(envCacheTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envCacheTTL, err)
		}
		c.Cache.TTL = d
	}
	if v := os.Getenv(envRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envRetries, err)
		}
		c.Museum.Retries = n
	}
	return nil
}

func (c Config) Validate() error {
	if c.Museum.Retries < 0 {
		return ErrInvalidRetries
	}
	if c.Museum.Concurrency < 1 {
		return ErrInvalidConcurrency
	}
	if c.Museum.BatchSize < 1 {
		return ErrInvalidBatchSize
	}
	if c.Museum.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

func mergeConfig(base, override Config) Config {
	if override.HTTPAddr != "" {
		base.HTTPAddr = override.HTTPAddr
	}
	if override.GRPCAddr != "" {
		base.GRPCAddr = override.GRPCAddr
	}
	if override.EventsAddr != "" {
		base.EventsAddr = override.EventsAddr
	}
	if override.DBPath != "" {
		base.DBPath = override.DBPath
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if len(override.CORSOrigins) > 0 {
		base.CORSOrigins = override.CORSOrigins
	}

	m, o := &base.Museum, override.Museum
	if o.AICBaseURL != "" {
		m.AICBaseURL = strings.TrimRight(o.AICBaseURL, "/")
	}
	if o.MetBaseURL != "" {
		m.MetBaseURL = strings.TrimRight(o.MetBaseURL, "/")
	}
	if o.RequestTimeout != 0 {
		m.RequestTimeout = o.RequestTimeout
	}
	if o.Retries != 0 {
		m.Retries = o.Retries
	}
	if o.Concurrency != 0 {
		m.Concurrency = o.Concurrency
	}
	if o.BatchSize != 0 {
		m.BatchSize = o.BatchSize
	}
	if o.ListLimit != 0 {
		m.ListLimit = o.ListLimit
	}
	if o.SearchLimit != 0 {
		m.SearchLimit = o.SearchLimit
	}
	if o.MaxPageSize != 0 {
		m.MaxPageSize = o.MaxPageSize
	}
	if o.ProbeInterval != 0 {
		m.ProbeInterval = o.ProbeInterval
	}

	if override.Cache.TTL != 0 {
		base.Cache.TTL = override.Cache.TTL
	}
	if override.Cache.ImageTTL != 0 {
		base.Cache.ImageTTL = override.Cache.ImageTTL
	}
	return base
}
