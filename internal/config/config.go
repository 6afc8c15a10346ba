// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when present), loads them into structured Go types, and
// validates that required values are present so they can be
// reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (observability, access).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every ticketdesk variable carries.
//
// Keys are lowercased with the prefix removed and "." marks nesting:
//
//	TICKETDESK_SERVER.PORT -> server.port -> Config.Server.Port
const EnvPrefix = "TICKETDESK_"

// ServiceName is the name reported to logs, traces and APM dashboards.
const ServiceName = "ticketdesk"

// Config is the root configuration object for the application.
//
// Observability and Access are pointers because they are optional.
// When omitted, defaults are injected by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Captcha       CaptchaConfig        `koanf:"captcha"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Access        *AccessConfig        `koanf:"access"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
	// TrustedProxies lists the CIDRs of reverse proxies whose X-Forwarded-For
	// is believed. Empty means the client IP is the TCP peer address.
	TrustedProxies []string `koanf:"trusted_proxies" validate:"omitempty,dive,cidr"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN builds the postgres URL for the configured database.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		urlEscape(d.Password),
		joinHostPort(d.Host, d.Port),
		d.Name,
		d.SSLMode,
	)
}

// joinHostPort handles IPv6 hosts (adds brackets when needed).
func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// urlEscape keeps passwords like "pa:ss@word" from breaking the DSN.
func urlEscape(s string) string {
	return url.QueryEscape(s)
}

// RedisConfig contains Redis connection details.
// Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the Clerk secret used to authenticate staff.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
}

// CaptchaConfig configures reCAPTCHA verification.
//
// An empty SecretKey disables verification entirely: every captcha value
// is accepted. That is how deployments without reCAPTCHA keys behave.
type CaptchaConfig struct {
	SecretKey string        `koanf:"secret_key"`
	VerifyURL string        `koanf:"verify_url" validate:"omitempty,url"`
	Timeout   time.Duration `koanf:"timeout"`
}

// Enabled reports whether captcha values must be verified remotely.
func (c CaptchaConfig) Enabled() bool {
	return c.SecretKey != ""
}

// IntegrationConfig holds third-party API credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config, validates it, applies defaults and returns the result.
//
// Behavior summary:
//   - Loads env vars with prefix TICKETDESK_
//   - Unmarshals into Config and validates `validate` tags
//   - Injects default access/observability blocks when missing
//   - Forces observability service name and environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Access == nil {
		mainConfig.Access = DefaultAccessConfig()
	}
	mainConfig.Access.applyDefaults()

	if mainConfig.Captcha.VerifyURL == "" {
		mainConfig.Captcha.VerifyURL = DefaultCaptchaVerifyURL
	}
	if mainConfig.Captcha.Timeout <= 0 {
		mainConfig.Captcha.Timeout = DefaultCaptchaTimeout
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment are never taken from the observability
	// block itself so telemetry stays consistently labelled.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
