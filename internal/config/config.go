package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Quota    QuotaConfig    `mapstructure:"quota" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`

	MaxOpenConns           int `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns           int `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44641"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0,gtfield=TokenLifetimeMinutes"`

	// AdminEmail identifies the account allowed on the admin endpoints.
	AdminEmail string `mapstructure:"admin_email" validate:"required,email"`
	// AdminPassword, when set, seeds the admin account at startup.
	AdminPassword string `mapstructure:"admin_password" validate:"omitempty,min=8,max=72"`
}

// QuotaConfig controls how weekly draw quotas are counted.
type QuotaConfig struct {
	// Timezone is an IANA zone name; "Local" uses the server zone.
	Timezone string `mapstructure:"timezone" validate:"required"`
	// WeekStart is the first day of the quota week.
	WeekStart string `mapstructure:"week_start" validate:"required,oneof=sunday monday"`
	// Strict runs the quota check and the insert in one locked transaction.
	Strict bool `mapstructure:"strict"`
}
