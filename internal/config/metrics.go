package config

import (
	"fmt"
	"net"
	"strconv"
)

// MetricsConfig controls the prometheus endpoint, served apart from the API.
type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// Disabled keeps the collectors but serves no /metrics endpoint.
	Disabled bool `mapstructure:"disabled"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Disabled {
		return nil
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return fmt.Errorf("metrics server port must be between 1024 and 65535 (inclusive)")
	}

	ip := net.ParseIP(cfg.Host)
	if ip == nil {
		return fmt.Errorf("invalid metrics server host: %v", cfg.Host)
	}

	return nil
}

// Addr is the listen address of the metrics server.
func (cfg *MetricsConfig) Addr() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}
