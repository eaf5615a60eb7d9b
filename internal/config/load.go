package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the service reads,
// e.g. GREENRISE_AUTH_JWT_SECRET.
const EnvPrefix = "GREENRISE"

// Default values applied before any file or environment source is read.
const (
	DefaultPort                   = 4000
	DefaultLogLevel               = "info"
	DefaultMaxOpenConns           = 10
	DefaultMaxIdleConns           = 5
	DefaultConnMaxLifetimeMinutes = 5
	DefaultBcryptCost             = 12
	DefaultUploadsDir             = "uploads"
	DefaultUploadMaxBytes         = 5 * 1024 * 1024
	DefaultUploadsBackend         = "disk"
	DefaultProfileImage           = "uploads/profile/arquivo.png"
)

// Load configuration from a .env file, environment variables and optionally
// a config.yaml in the working directory. Environment variables take
// precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithEnvFiles(".env")
}

// LoadWithEnvFiles behaves like Load but reads the given dotenv files instead
// of ./.env. Missing files are ignored; variables already present in the
// environment are never overwritten.
func LoadWithEnvFiles(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", file, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags and the cross-field rules that tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Uploads.Backend == "s3" && cfg.Uploads.S3.Bucket == "" {
		return fmt.Errorf("config validation failed: uploads.s3.bucket is required for the s3 backend")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("database.max_open_conns", DefaultMaxOpenConns)
	v.SetDefault("database.max_idle_conns", DefaultMaxIdleConns)
	v.SetDefault("database.conn_max_lifetime_minutes", DefaultConnMaxLifetimeMinutes)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("auth.bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("uploads.dir", DefaultUploadsDir)
	v.SetDefault("uploads.max_bytes", DefaultUploadMaxBytes)
	v.SetDefault("uploads.backend", DefaultUploadsBackend)
	v.SetDefault("uploads.default_image", DefaultProfileImage)
}

// bindEnvs registers keys that have no default so AutomaticEnv picks them up
// during Unmarshal.
func bindEnvs(v *viper.Viper) {
	keys := []string{
		"database.url",
		"auth.jwt_secret",
		"uploads.s3.bucket",
		"uploads.s3.region",
		"uploads.s3.endpoint",
		"uploads.s3.access_key_id",
		"uploads.s3.secret_access_key",
		"uploads.s3.public_base_url",
	}
	for _, key := range keys {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key)
	}
}
