package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Geocode  GeocodeConfig  `mapstructure:"geocode"  validate:"required"`
	Upload   UploadConfig   `mapstructure:"upload"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all MongoDB-related configuration settings.
type DatabaseConfig struct {
	URI            string `mapstructure:"uri"             validate:"required"`
	Name           string `mapstructure:"name"            validate:"required"`
	ConnectTimeout int    `mapstructure:"connect_timeout" validate:"required,gt=0"` // seconds
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// GeocodeConfig contains settings for the geocoding service client.
type GeocodeConfig struct {
	BaseURL        string `mapstructure:"base_url"        validate:"required,url"`
	APIKey         string `mapstructure:"api_key"         validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
}

// UploadConfig contains settings for stored image artifacts.
type UploadConfig struct {
	Dir          string `mapstructure:"dir"            validate:"required"`
	MaxSizeBytes int64  `mapstructure:"max_size_bytes" validate:"required,gt=0"`
}
