package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "DASHBOARD"

const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"

	AssetsLocal = "local"
	AssetsS3    = "s3"
)

// Config holds all configuration for the dashboard server.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

type StorageConfig struct {
	// Driver is one of file, sqlite or memory.
	Driver     string `mapstructure:"driver"`
	DataDir    string `mapstructure:"data_dir"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type AssetsConfig struct {
	// Driver is local or s3.
	Driver string   `mapstructure:"driver"`
	Dir    string   `mapstructure:"dir"`
	S3     S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`
}

type AuthConfig struct {
	UsersFile string        `mapstructure:"users_file"`
	Secret    string        `mapstructure:"secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":5005",
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  2 << 20,
		},
		Storage: StorageConfig{
			Driver:     StorageFile,
			DataDir:    "data",
			SQLitePath: "data/dashboard.db",
		},
		Assets: AssetsConfig{
			Driver: AssetsLocal,
			Dir:    "data/uploads",
		},
		Auth: AuthConfig{
			UsersFile: "data/users.ini",
			TokenTTL:  24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration with the following precedence (lowest to highest):
// defaults, config file (./dashboard.yaml or the explicit path), DASHBOARD_*
// environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	v.SetDefault("server.max_upload_bytes", defaults.Server.MaxUploadBytes)
	v.SetDefault("storage.driver", defaults.Storage.Driver)
	v.SetDefault("storage.data_dir", defaults.Storage.DataDir)
	v.SetDefault("storage.sqlite_path", defaults.Storage.SQLitePath)
	v.SetDefault("assets.driver", defaults.Assets.Driver)
	v.SetDefault("assets.dir", defaults.Assets.Dir)
	v.SetDefault("assets.s3.bucket", "")
	v.SetDefault("assets.s3.prefix", "")
	v.SetDefault("assets.s3.region", "")
	v.SetDefault("auth.users_file", defaults.Auth.UsersFile)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", defaults.Auth.TokenTTL)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	v.SetConfigName("dashboard")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(configPath == "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}

	switch c.Storage.Driver {
	case StorageFile:
		if c.Storage.DataDir == "" {
			return fmt.Errorf("storage.data_dir cannot be empty")
		}
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path cannot be empty")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("invalid storage.driver: %s (must be file, sqlite or memory)", c.Storage.Driver)
	}

	switch c.Assets.Driver {
	case AssetsLocal:
		if c.Assets.Dir == "" {
			return fmt.Errorf("assets.dir cannot be empty")
		}
	case AssetsS3:
		if c.Assets.S3.Bucket == "" {
			return fmt.Errorf("assets.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("invalid assets.driver: %s (must be local or s3)", c.Assets.Driver)
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log.format: %s (must be json or console)", c.Log.Format)
	}

	return nil
}
