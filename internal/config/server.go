package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap/zapcore"
)

// ServerConfig holds the settings of the serve command.
// Precedence: CLI flags > Environment variables > Defaults
type ServerConfig struct {
	Port                 string        `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	ReadHeaderTimeout    time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout          time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	EnableRequestLogging bool          `env:"ENABLE_REQUEST_LOGGING" envDefault:"true"`
	RateLimitRPS         float64       `env:"RATE_LIMIT_RPS" envDefault:"25"`
	RateLimitBurst       int           `env:"RATE_LIMIT_BURST" envDefault:"50"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
}

// ServerOverrides holds command-line flag overrides for ServerConfig.
type ServerOverrides struct {
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
	LogLevel       *string
}

// LoadServer resolves ServerConfig from BUILDCONF_* variables and flags.
func LoadServer(overrides *ServerOverrides) (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return ServerConfig{}, parseError(SourceEnv, "", err)
	}

	if overrides != nil {
		if overrides.Port != nil && *overrides.Port != "" {
			cfg.Port = *overrides.Port
		}
		if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
			cfg.RateLimitRPS = *overrides.RateLimitRPS
		}
		if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
			cfg.RateLimitBurst = *overrides.RateLimitBurst
		}
		if overrides.LogLevel != nil && *overrides.LogLevel != "" {
			cfg.LogLevel = *overrides.LogLevel
		}
	}

	if err := validateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// Addr returns the listen address derived from Port.
func (c ServerConfig) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func validateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return parseError(SourceResolved, "PORT", fmt.Errorf("port cannot be empty"))
	}
	if cfg.RateLimitRPS < 0 {
		return parseError(SourceResolved, "RATE_LIMIT_RPS", fmt.Errorf("must be >= 0"))
	}
	if cfg.RateLimitBurst < 0 {
		return parseError(SourceResolved, "RATE_LIMIT_BURST", fmt.Errorf("must be >= 0"))
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return parseError(SourceResolved, "LOG_LEVEL", err)
	}
	return nil
}
