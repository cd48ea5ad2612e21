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

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. SERVICEHUB_SERVER_PORT.
const EnvPrefix = "SERVICEHUB"

// legacyEnv maps config keys to the bare variable names older deployments
// export. Prefixed variables take precedence over these.
var legacyEnv = map[string]string{
	"server.port":       "PORT",
	"database.user":     "DB_USER",
	"database.password": "DB_PASS",
	"auth.jwt_secret":   "ACCESS_TOKEN_SECRET",
}

// Load configuration from environment variables and optionally config files.
// A .env file in the working directory is loaded first if present; it never
// overrides variables already set in the process environment.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
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
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct constraints plus the cross-field rules the
// validator tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !cfg.Auth.CookieSecure && cfg.Auth.CookieSameSite == "none" {
		return fmt.Errorf("invalid configuration: cookie_same_site=none requires cookie_secure")
	}

	db := cfg.Database
	if db.Driver == DriverMongo && db.URI == "" {
		if db.User == "" || db.Password == "" || db.Host == "" {
			return fmt.Errorf(
				"invalid configuration: database user, password and host are required when no uri is set",
			)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.host", "")
	v.SetDefault("database.uri", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "serviceHub")
	v.SetDefault("database.connect_timeout_seconds", 10)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.cookie_name", "token")
	v.SetDefault("auth.cookie_secure", true)
	v.SetDefault("auth.cookie_same_site", "none")
}

// bindEnv registers every key explicitly so that Unmarshal sees values that
// exist only in the environment, and adds the legacy aliases.
func bindEnv(v *viper.Viper) error {
	for _, key := range v.AllKeys() {
		envs := []string{EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
		if legacy, ok := legacyEnv[key]; ok {
			envs = append(envs, legacy)
		}
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}
	return nil
}
