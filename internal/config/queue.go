package config

import (
	"fmt"
	"time"
)

type QueueConfig struct {
	QueueUser     string `mapstructure:"queue-user"`
	QueuePassword string `mapstructure:"queue-password"`
	Url           string `mapstructure:"url"`
	// ProcessingTimeout bounds the handling of a single message.
	ProcessingTimeout time.Duration `mapstructure:"processing-timeout"`
	// Disabled turns off command intake and event publishing.
	Disabled bool `mapstructure:"disabled"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Disabled {
		return nil
	}

	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}

	if cfg.QueueUser == "" {
		return fmt.Errorf("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return fmt.Errorf("missing queue password")
	}

	if cfg.ProcessingTimeout <= 0 {
		return fmt.Errorf("queue processing timeout must be positive")
	}

	return nil
}
