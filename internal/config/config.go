package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Name                string `mapstructure:"name"`
	Env                 string `mapstructure:"env"`
	Port                int    `mapstructure:"port"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `mapstructure:"idle_timeout_seconds"`
	ShutdownSeconds     int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type StoreConf struct {
	// AllowMemoryFallback lets the server boot without MongoDB using
	// in-process tables. Development only: data is lost on restart and
	// tokens are not signed. Refused outright in production.
	AllowMemoryFallback bool `mapstructure:"allow_memory_fallback"`
}

type JWTConf struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type RedisConf struct {
	Addr              string `mapstructure:"addr"`
	Password          string `mapstructure:"password"`
	DB                int    `mapstructure:"db"`
	AuthRateLimit     int    `mapstructure:"auth_rate_limit"`
	AuthRateWindowSec int    `mapstructure:"auth_rate_window_seconds"`
}

type Config struct {
	App   AppConf   `mapstructure:"app"`
	Mongo MongoConf `mapstructure:"mongo"`
	Store StoreConf `mapstructure:"store"`
	JWT   JWTConf   `mapstructure:"jwt"`
	Redis RedisConf `mapstructure:"redis"`

	// derived
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	TokenTTL        time.Duration
	AuthRateWindow  time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.App.Port == 0 {
		cfg.App.Port = 5000
	}
	if cfg.App.ReadTimeoutSeconds == 0 {
		cfg.App.ReadTimeoutSeconds = 15
	}
	if cfg.App.WriteTimeoutSeconds == 0 {
		cfg.App.WriteTimeoutSeconds = 15
	}
	if cfg.App.IdleTimeoutSeconds == 0 {
		cfg.App.IdleTimeoutSeconds = 60
	}
	if cfg.App.ShutdownSeconds == 0 {
		cfg.App.ShutdownSeconds = 10
	}
	if cfg.JWT.ExpireHours == 0 {
		cfg.JWT.ExpireHours = 24 * 30
	}
	if cfg.Redis.AuthRateLimit == 0 {
		cfg.Redis.AuthRateLimit = 30
	}
	if cfg.Redis.AuthRateWindowSec == 0 {
		cfg.Redis.AuthRateWindowSec = 60
	}

	cfg.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSeconds) * time.Second
	cfg.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSeconds) * time.Second
	cfg.IdleTimeout = time.Duration(cfg.App.IdleTimeoutSeconds) * time.Second
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSeconds) * time.Second
	cfg.TokenTTL = time.Duration(cfg.JWT.ExpireHours) * time.Hour
	cfg.AuthRateWindow = time.Duration(cfg.Redis.AuthRateWindowSec) * time.Second

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Env == "production" {
		if cfg.JWT.Secret == "" {
			return errors.New("jwt.secret is required in production (set JWT_SECRET)")
		}
		if cfg.Store.AllowMemoryFallback {
			return errors.New("store.allow_memory_fallback must not be set in production")
		}
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = "mongodb://localhost:27017"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "bementor"
	}
	return nil
}
