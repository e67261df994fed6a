package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. ZEN_DATABASE_URL for database.url.
const EnvPrefix = "ZEN"

// envBindings lists every key explicitly so AutomaticEnv also sees keys
// that have no default and no config file entry.
var envBindings = []string{
	"server.port",
	"server.log_level",
	"database.url",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime_minutes",
	"auth.jwt_secret",
	"auth.bcrypt_cost",
	"auth.token_lifetime_minutes",
	"auth.refresh_token_lifetime_minutes",
	"auth.admin_email",
	"auth.admin_password",
	"quota.timezone",
	"quota.week_start",
	"quota.strict",
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches the
// working directory for config.yaml; a missing file there is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envBindings {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080)
	v.SetDefault("auth.admin_email", "admin@estacaozen.com.br")
	v.SetDefault("quota.timezone", "Local")
	v.SetDefault("quota.week_start", "sunday")
	v.SetDefault("quota.strict", true)
}

// Validate checks struct tags on cfg and returns a single error naming
// every failing field.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
