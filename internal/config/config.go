package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/nikolayk812/cartsync-demo/internal/logger"

	"github.com/spf13/viper"
)

const envPrefix = "CARTSYNC"

// Config is the application configuration shared by cartctl and the server.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Cart     CartConfig     `mapstructure:"cart"`
	Session  SessionConfig  `mapstructure:"session"`
}

// APIConfig points the client at the remote store.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // 0 disables the client timeout
	Currency       string `mapstructure:"currency"`
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StorageConfig selects the local cart store.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // sqlite / postgres / redis
	DSN    string `mapstructure:"dsn"`
	Key    string `mapstructure:"key"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig is the remote store server's database.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite / postgres
	DSN    string `mapstructure:"dsn"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type LogConfig struct {
	Mode       string `mapstructure:"mode"`
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// CartConfig tunes the cart manager's fallbacks and notifications.
type CartConfig struct {
	PlaceholderImageURL string `mapstructure:"placeholder_image_url"`
	PlaceholderPrice    string `mapstructure:"placeholder_price"`
	NoticeTTLMillis     int    `mapstructure:"notice_ttl_ms"`
	BadgeHideDelayMS    int    `mapstructure:"badge_hide_delay_ms"`
	LoadConcurrency     int    `mapstructure:"load_concurrency"`
}

func (c CartConfig) NoticeTTL() time.Duration {
	return time.Duration(c.NoticeTTLMillis) * time.Millisecond
}

func (c CartConfig) BadgeHideDelay() time.Duration {
	return time.Duration(c.BadgeHideDelayMS) * time.Millisecond
}

type SessionConfig struct {
	UserID int64 `mapstructure:"user_id"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8081")
	v.SetDefault("api.timeout_seconds", 15)
	v.SetDefault("api.currency", "INR")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.dsn", "./cartsync.db")
	v.SetDefault("storage.key", "cart")
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "cartsync")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./echocart.db")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8081")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.mode", "release")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "cartsync.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("cart.placeholder_image_url", "https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?q=80&w=400&auto=format&fit=crop")
	v.SetDefault("cart.placeholder_price", "100")
	v.SetDefault("cart.notice_ttl_ms", 3000)
	v.SetDefault("cart.badge_hide_delay_ms", 300)
	v.SetDefault("cart.load_concurrency", 4)
	v.SetDefault("session.user_id", 0)
}

// Load reads config.yml from the given file, or from the usual search
// paths when file is empty. Environment variables prefixed with CARTSYNC_
// override file values (api.base_url -> CARTSYNC_API_BASE_URL).
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./etc")
		v.AddConfigPath("$HOME/.cartsync")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if file != "" {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
		logger.Debugw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Debugw("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return &cfg, nil
}
