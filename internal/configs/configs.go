/*
Package configs loads the application's configuration settings.

Server settings come from environment variables. Front-end settings
(VUE_APP_* keys) may additionally be read from an env-frontend file, the same
file the front-end build consumes.
*/
package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// EnvDevelopment is the default environment name.
	EnvDevelopment = "development"

	// EnvProduction enables production checks.
	EnvProduction = "production"

	// frontendKeyPrefix selects the keys read from the env-frontend file.
	frontendKeyPrefix = "VUE_APP_"

	devJWTSecret = "your_default_insecure_secret_key_change_me"

	minPort = 1024
	maxPort = 65535
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"8080"`

	// Security Settings
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	JWTSecret      string   `env:"JWT_SECRET"`

	// Back ends reached through the dev proxy.
	AdminAPIURL   string `env:"ADMIN_API_URL" envDefault:"http://127.0.0.1:8000"`
	GatewayAPIURL string `env:"GATEWAY_API_URL" envDefault:"http://127.0.0.1:8088"`

	// ProxyEnabled defaults to true in development and false elsewhere.
	ProxyEnabled *bool `env:"PROXY_ENABLED"`

	// Front-end Settings
	StaticDir       string `env:"STATIC_DIR"`
	EnvFrontendFile string `env:"ENV_FRONTEND_FILE" envDefault:"env-frontend"`

	// Rate Limits (events per second, burst)
	LoginRate  float64 `env:"LOGIN_RATE" envDefault:"0.2"`
	LoginBurst int     `env:"LOGIN_BURST" envDefault:"5"`
	WSRate     float64 `env:"WS_RATE" envDefault:"1"`
	WSBurst    int     `env:"WS_BURST" envDefault:"10"`

	// Frontend holds the VUE_APP_* values read from EnvFrontendFile.
	Frontend map[string]string `env:"-"`
}

// IsDevelopment reports whether the development defaults apply.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// UseProxy reports whether the dev proxy should be mounted.
func (c *AppConfig) UseProxy() bool {
	if c.ProxyEnabled != nil {
		return *c.ProxyEnabled
	}
	return c.IsDevelopment()
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (*AppConfig, error) {
	return LoadConfigFrom(env.ToMap(os.Environ()))
}

// LoadConfigFrom reads the configuration from the given variables, applies
// defaults and validates the result.
func LoadConfigFrom(environ map[string]string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// --- General Server Settings ---
	if cfg.Environment == "" {
		cfg.Environment = EnvDevelopment
	}

	if err := ValidatePort(cfg.Port); err != nil {
		return nil, err
	}

	// --- Security Settings ---
	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.AllowedOrigins = origins

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s environment for security", cfg.Environment)
		}
		cfg.JWTSecret = devJWTSecret
	}

	// --- Back ends ---
	for name, raw := range map[string]string{"ADMIN_API_URL": cfg.AdminAPIURL, "GATEWAY_API_URL": cfg.GatewayAPIURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid %s %q: must be an absolute URL", name, raw)
		}
	}

	// --- Rate Limits ---
	if cfg.LoginRate <= 0 || cfg.LoginBurst <= 0 || cfg.WSRate <= 0 || cfg.WSBurst <= 0 {
		return nil, errors.New("rate limits must be positive")
	}

	// --- Front-end Settings ---
	frontend, err := LoadFrontendEnv(cfg.EnvFrontendFile)
	if err != nil {
		return nil, err
	}
	cfg.Frontend = frontend

	return cfg, nil
}

// ValidatePort rejects privileged and out-of-range ports.
func ValidatePort(port int) error {
	if port < minPort || port > maxPort {
		return fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", port, minPort, maxPort)
	}
	return nil
}

// LoadFrontendEnv reads VUE_APP_* assignments from the dotenv file at path.
// A missing file yields an empty map and other keys are dropped.
func LoadFrontendEnv(path string) (map[string]string, error) {
	values := map[string]string{}
	if path == "" {
		return values, nil
	}

	all, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range all {
		if strings.HasPrefix(key, frontendKeyPrefix) {
			values[key] = value
		}
	}

	return values, nil
}
