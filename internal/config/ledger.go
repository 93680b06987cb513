package config

import (
	"fmt"

	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

// LedgerConfig seeds a fresh ledger. It is only read when no ledger
// configuration has been stored yet; afterwards the stored configuration
// is authoritative and changes go through the config update operation.
type LedgerConfig struct {
	Owner           string `mapstructure:"owner"`
	ContractAddress string `mapstructure:"contract-address"`
	Denom           string `mapstructure:"denom"`
	RewardRate      string `mapstructure:"reward-rate"`
	Paused          bool   `mapstructure:"paused"`
	UnbondingPeriod uint64 `mapstructure:"unbonding-period"`
	// RewardPool is credited to the contract account when the ledger is
	// instantiated.
	RewardPool string `mapstructure:"reward-pool"`
	// GenesisBalances credits user accounts at instantiation, keyed by address.
	GenesisBalances map[string]string `mapstructure:"genesis-balances"`
}

func (cfg *LedgerConfig) Validate() error {
	if cfg.Owner == "" {
		return fmt.Errorf("missing ledger owner")
	}

	if cfg.ContractAddress == "" {
		return fmt.Errorf("missing ledger contract address")
	}

	if cfg.Owner == cfg.ContractAddress {
		return fmt.Errorf("ledger owner and contract address must differ")
	}

	if cfg.Denom == "" {
		return fmt.Errorf("missing ledger denom")
	}

	if _, err := cfg.ParsedRewardRate(); err != nil {
		return fmt.Errorf("invalid ledger reward rate: %w", err)
	}

	if _, err := cfg.ParsedRewardPool(); err != nil {
		return fmt.Errorf("invalid ledger reward pool: %w", err)
	}

	for addr, amount := range cfg.GenesisBalances {
		if _, err := arith.ParseUint128(amount); err != nil {
			return fmt.Errorf("invalid genesis balance for %s: %w", addr, err)
		}
	}

	return nil
}

func (cfg *LedgerConfig) ParsedRewardRate() (arith.Uint128, error) {
	return parseOptionalAmount(cfg.RewardRate)
}

func (cfg *LedgerConfig) ParsedRewardPool() (arith.Uint128, error) {
	return parseOptionalAmount(cfg.RewardPool)
}

func parseOptionalAmount(s string) (arith.Uint128, error) {
	if s == "" {
		return arith.Zero(), nil
	}
	return arith.ParseUint128(s)
}
