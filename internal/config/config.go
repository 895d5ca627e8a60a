// Package config loads the backend configuration from a file and the
// environment.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full backend configuration.
type Config struct {
	Server   Server
	Database Database
	JWT      JWT
	Email    Email
}

// Server configures the HTTP listener.
type Server struct {
	Host string
	Port string
}

// Database configures the SQLite database.
type Database struct {
	Path string
}

// JWT configures token signing.
type JWT struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

// Email configures the SMTP connection for alert notifications. Sending is
// disabled when Host is empty.
type Email struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Load reads the configuration file and applies environment overrides.
//
// Every key can be overridden with an environment variable, e.g.
// BUDGET_SERVER_PORT for server.port. A missing configuration file is not
// an error, the defaults and environment are used instead.
func Load(path string) (Config, error) {
	v := viper.New()

	// Every key needs a default so that environment-only configuration
	// is picked up by Unmarshal.
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("database.path", "data/budget.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "budget-control")
	v.SetDefault("jwt.expiry", 24*time.Hour)
	v.SetDefault("email.host", "")
	v.SetDefault("email.port", 587)
	v.SetDefault("email.user", "")
	v.SetDefault("email.password", "")
	v.SetDefault("email.from", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("budget")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Address returns the host:port pair the server listens on.
func (s Server) Address() string {
	return s.Host + ":" + s.Port
}

// Enabled reports whether email sending is configured.
func (e Email) Enabled() bool {
	return e.Host != ""
}
