package config

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	DbTypeMongo  = "mongodb"
	DbTypeMemory = "memory"
)

type DbConfig struct {
	// Type selects the ledger store. "memory" keeps everything in process
	// and ignores the connection settings.
	Type               string `mapstructure:"type"`
	DbName             string `mapstructure:"db-name"`
	Address            string `mapstructure:"address"`
	MaxPaginationLimit int64  `mapstructure:"max-pagination-limit"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.MaxPaginationLimit < 2 {
		return fmt.Errorf("max pagination limit must be greater than 1")
	}

	switch cfg.Type {
	case DbTypeMemory:
		return nil
	case "", DbTypeMongo:
		cfg.Type = DbTypeMongo
	default:
		return fmt.Errorf("unsupported db type: %s", cfg.Type)
	}

	if cfg.Address == "" {
		return fmt.Errorf("missing db address")
	}

	if cfg.DbName == "" {
		return fmt.Errorf("missing db name")
	}

	u, err := url.Parse(cfg.Address)
	if err != nil {
		return fmt.Errorf("invalid db address: %w", err)
	}

	if u.Scheme != "mongodb" {
		return fmt.Errorf("unsupported db scheme: %s", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("missing host in db address")
	}

	port := u.Port()
	if port == "" {
		return fmt.Errorf("missing port in db address")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port in db address: %w", err)
	}

	if portNum < 1024 || portNum > 65535 {
		return fmt.Errorf("port number must be between 1024 and 65535 (inclusive)")
	}

	return nil
}
