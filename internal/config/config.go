package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the reference API server.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	S3           S3Config           `mapstructure:"s3"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Google       GoogleConfig       `mapstructure:"google"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Housekeeping HousekeepingConfig `mapstructure:"housekeeping"`
	Log          LogConfig          `mapstructure:"log"`
}

type ServerConfig struct {
	Address     string   `mapstructure:"address"`
	Mode        string   `mapstructure:"mode"`         // gin mode: debug, release, test
	CORSOrigins []string `mapstructure:"cors_origins"` // empty disables CORS
}

// DatabaseConfig selects the store. Driver "memory" keeps everything in process.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

// RedisConfig enables the availability read cache when Address is set.
type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// S3Config enables profile picture uploads when BucketName is set.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// GoogleConfig holds the OAuth client id that Google ID tokens must be issued for.
type GoogleConfig struct {
	ClientID string `mapstructure:"client_id"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// HousekeepingConfig drives the cron job purging stale open bookings.
type HousekeepingConfig struct {
	Schedule      string `mapstructure:"schedule"`
	RetentionDays int    `mapstructure:"retention_days"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// LoadConfig reads configuration from path/config.yaml and environment
// variables (server.address -> SERVER_ADDRESS). A .env file in the working
// directory is loaded first when present.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if err := loadDotEnv(); err != nil {
		return cfg, err
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("database.driver", "mongo")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "wellvantage")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "5m")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "24h")
	v.SetDefault("google.client_id", "")
	v.SetDefault("rate_limit.rps", 5)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("housekeeping.schedule", "@daily")
	v.SetDefault("housekeeping.retention_days", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := readConfigFile(v); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if cfg.JWT.Secret == "" {
		return cfg, errors.New("jwt.secret is required")
	}
	return cfg, nil
}

// ClientConfig configures the gymctl client.
type ClientConfig struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Notice  NoticeConfig  `mapstructure:"notice"`
	Log     LogConfig     `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	Path string `mapstructure:"path"`
}

type NoticeConfig struct {
	Duration time.Duration `mapstructure:"duration"`
}

// LoadClientConfig reads path/gymctl.yaml and GYMCTL_ prefixed environment
// variables (api.base_url -> GYMCTL_API_BASE_URL).
func LoadClientConfig(path string) (ClientConfig, error) {
	var cfg ClientConfig

	if err := loadDotEnv(); err != nil {
		return cfg, err
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("gymctl")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("gymctl")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("api.base_url", "http://localhost:3000")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("session.path", ".wellvantage-session.yaml")
	v.SetDefault("notice.duration", "3s")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	if err := readConfigFile(v); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	return cfg, nil
}

func readConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// Defaults and env vars are enough.
		return nil
	}
	return err
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
