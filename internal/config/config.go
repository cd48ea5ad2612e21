package config

import (
	"fmt"
	"net/url"
	"time"
)

// Supported document store drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
	// AllowedOrigins lists the origins permitted to make credentialed
	// cross-origin requests.
	AllowedOrigins         []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout returns the graceful shutdown window as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all document store settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=mongo memory"`
	// URI, when set, is used verbatim and takes precedence over the
	// user/password/host triple.
	URI      string `mapstructure:"uri"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Name     string `mapstructure:"name" validate:"required"`

	ConnectTimeoutSeconds int `mapstructure:"connect_timeout_seconds" validate:"gt=0"`
}

// ConnectTimeout returns the store connect timeout as a duration.
func (c DatabaseConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// ConnectionURI returns the MongoDB connection string. An explicit URI wins;
// otherwise the SRV form is assembled from the credential pair and host.
func (c DatabaseConfig) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	CookieName           string `mapstructure:"cookie_name" validate:"required"`
	CookieSecure         bool   `mapstructure:"cookie_secure"`
	CookieSameSite       string `mapstructure:"cookie_same_site" validate:"required,oneof=none lax strict"`
}

// TokenLifetime returns the credential lifetime as a duration.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// String hides the secret so the struct is safe to log.
func (c AuthConfig) String() string {
	return fmt.Sprintf(
		"AuthConfig{TokenLifetimeMinutes:%d CookieName:%s CookieSecure:%t CookieSameSite:%s}",
		c.TokenLifetimeMinutes, c.CookieName, c.CookieSecure, c.CookieSameSite,
	)
}
