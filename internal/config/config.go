package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Planner   PlannerConfig   `yaml:"planner"`
	Notify    NotifyConfig    `yaml:"notify"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	// Allow override via environment
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DatabaseConfig holds Postgres connection settings
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// RedisConfig holds the Redis connection for the leaderboard cache
type RedisConfig struct {
	Enabled           bool   `yaml:"enabled"`
	Addr              string `yaml:"addr"`
	Password          string `yaml:"password"`
	DB                int    `yaml:"db"`
	LeaderboardTTLSec int    `yaml:"leaderboard_ttl_seconds"`
}

// LeaderboardTTL returns the cache TTL as a duration
func (c RedisConfig) LeaderboardTTL() time.Duration {
	return time.Duration(c.LeaderboardTTLSec) * time.Second
}

// PlannerConfig holds the planner's documented fallback constants. These
// are the knobs ops can tune per deployment; the planner package applies
// its own defaults for anything left zero.
type PlannerConfig struct {
	DefaultCVR         float64 `yaml:"default_cvr"`
	MinTier1Clicks     int64   `yaml:"min_tier1_clicks"`
	Tier3Baseline      float64 `yaml:"tier3_baseline"`
	Tier4Damping       float64 `yaml:"tier4_damping"`
	DemographicFloor   float64 `yaml:"demographic_floor"`
	DefaultHorizonDays int     `yaml:"default_horizon_days"`
}

// NotifyConfig holds AWS SES settings for plan confirmation email
type NotifyConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Sender    string `yaml:"sender"`
}

// AnalyticsConfig holds reporting settings
type AnalyticsConfig struct {
	LookbackDays int `yaml:"lookback_days"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.LeaderboardTTLSec == 0 {
		cfg.Redis.LeaderboardTTLSec = 300
	}
	if cfg.Planner.DefaultCVR == 0 {
		cfg.Planner.DefaultCVR = 0.01
	}
	if cfg.Planner.MinTier1Clicks == 0 {
		cfg.Planner.MinTier1Clicks = 100
	}
	if cfg.Planner.Tier3Baseline == 0 {
		cfg.Planner.Tier3Baseline = 0.005
	}
	if cfg.Planner.Tier4Damping == 0 {
		cfg.Planner.Tier4Damping = 0.5
	}
	if cfg.Planner.DemographicFloor == 0 {
		cfg.Planner.DemographicFloor = 0.3
	}
	if cfg.Planner.DefaultHorizonDays == 0 {
		cfg.Planner.DefaultHorizonDays = 30
	}
	if cfg.Notify.Region == "" {
		cfg.Notify.Region = "us-west-2"
	}
	if cfg.Analytics.LookbackDays == 0 {
		cfg.Analytics.LookbackDays = 90
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
		cfg.Redis.Enabled = true
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.Redis.DB = n
		}
	}
	if accessKey := os.Getenv("AWS_SES_ACCESS_KEY"); accessKey != "" {
		cfg.Notify.AccessKey = accessKey
	}
	if secretKey := os.Getenv("AWS_SES_SECRET_KEY"); secretKey != "" {
		cfg.Notify.SecretKey = secretKey
	}
	if region := os.Getenv("AWS_SES_REGION"); region != "" {
		cfg.Notify.Region = region
	}
	if sender := os.Getenv("NOTIFY_SENDER"); sender != "" {
		cfg.Notify.Sender = sender
	}

	return cfg, nil
}
