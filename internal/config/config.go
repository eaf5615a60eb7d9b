package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Uploads  UploadsConfig  `mapstructure:"uploads"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                        validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"             validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"             validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"  validate:"gte=1"`
	// AutoMigrate applies pending migrations when the server starts.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
// The JWT secret is the only process-wide secret; it is read once here and
// handed to the token service constructor.
type AuthConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret"  validate:"required,min=32"`
	BcryptCost int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// UploadsConfig controls where profile images are written and how large they may be.
type UploadsConfig struct {
	Dir          string   `mapstructure:"dir"           validate:"required"`
	MaxBytes     int64    `mapstructure:"max_bytes"     validate:"gt=0"`
	Backend      string   `mapstructure:"backend"       validate:"required,oneof=disk s3"`
	DefaultImage string   `mapstructure:"default_image" validate:"required"`
	S3           S3Config `mapstructure:"s3"`
}

// S3Config is only consulted when UploadsConfig.Backend is "s3".
type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}
