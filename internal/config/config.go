package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// Supported values for DatabaseConfig.Driver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig selects and configures the backing store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=mongo postgres memory"`

	// URL is a mongodb:// or postgres:// connection string. Not used by the memory driver.
	URL string `mapstructure:"url" validate:"required_unless=Driver memory"`

	// Name is the MongoDB database name.
	Name string `mapstructure:"name" validate:"required"`

	// TimeoutSeconds bounds connection setup and each store call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name" validate:"required"`

	// OTLPEndpoint is a host:port for the OTLP gRPC trace exporter. Empty disables export.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}
