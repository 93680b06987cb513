package model

import (
	"fmt"
	"strconv"

	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

// Singleton ids inside LedgerCollection.
const (
	ConfigDocumentId = "config"
	StateDocumentId  = "state"
)

// Amounts and timestamps are stored as decimal strings: BSON has no unsigned
// 128-bit type and uint64 nanoseconds do not fit every int64.

type ConfigDocument struct {
	Id                  string `bson:"_id"`
	Owner               string `bson:"owner"`
	ChiefPausingOfficer string `bson:"chief_pausing_officer"`
	Denom               string `bson:"denom"`
	RewardRate          string `bson:"reward_rate"`
	Paused              bool   `bson:"paused"`
	UnbondingPeriod     string `bson:"unbonding_period"`
}

func NewConfigDocument(cfg ledger.Config) *ConfigDocument {
	return &ConfigDocument{
		Id:                  ConfigDocumentId,
		Owner:               cfg.Owner.String(),
		ChiefPausingOfficer: cfg.ChiefPausingOfficer.String(),
		Denom:               cfg.Denom,
		RewardRate:          cfg.RewardRate.String(),
		Paused:              cfg.Paused,
		UnbondingPeriod:     strconv.FormatUint(cfg.UnbondingPeriod, 10),
	}
}

func (d *ConfigDocument) ToConfig() (*ledger.Config, error) {
	rate, err := arith.ParseUint128(d.RewardRate)
	if err != nil {
		return nil, fmt.Errorf("config reward_rate: %w", err)
	}
	period, err := strconv.ParseUint(d.UnbondingPeriod, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("config unbonding_period: %w", err)
	}
	return &ledger.Config{
		Owner:               ledger.Addr(d.Owner),
		ChiefPausingOfficer: ledger.Addr(d.ChiefPausingOfficer),
		Denom:               d.Denom,
		RewardRate:          rate,
		Paused:              d.Paused,
		UnbondingPeriod:     period,
	}, nil
}

type StateDocument struct {
	Id                   string `bson:"_id"`
	RewardPerTokenStored string `bson:"reward_per_token_stored"`
	LastUpdateTime       string `bson:"last_update_time"`
	StakedBalance        string `bson:"staked_balance"`
	UnbondingBalance     string `bson:"unbonding_balance,omitempty"`
}

func NewStateDocument(state ledger.GlobalState) *StateDocument {
	return &StateDocument{
		Id:                   StateDocumentId,
		RewardPerTokenStored: state.RewardPerTokenStored.String(),
		LastUpdateTime:       strconv.FormatUint(state.LastUpdateTime.Nanos(), 10),
		StakedBalance:        state.StakedBalance.String(),
		UnbondingBalance:     state.UnbondingBalance.String(),
	}
}

func (d *StateDocument) ToState() (*ledger.GlobalState, error) {
	rpt, err := arith.ParseUint128(d.RewardPerTokenStored)
	if err != nil {
		return nil, fmt.Errorf("state reward_per_token_stored: %w", err)
	}
	last, err := strconv.ParseUint(d.LastUpdateTime, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("state last_update_time: %w", err)
	}
	staked, err := arith.ParseUint128(d.StakedBalance)
	if err != nil {
		return nil, fmt.Errorf("state staked_balance: %w", err)
	}
	// Documents written before unbonding_balance existed carry no value.
	unbonding := arith.Zero()
	if d.UnbondingBalance != "" {
		unbonding, err = arith.ParseUint128(d.UnbondingBalance)
		if err != nil {
			return nil, fmt.Errorf("state unbonding_balance: %w", err)
		}
	}
	return &ledger.GlobalState{
		RewardPerTokenStored: rpt,
		LastUpdateTime:       ledger.FromNanos(last),
		StakedBalance:        staked,
		UnbondingBalance:     unbonding,
	}, nil
}

type StakerDocument struct {
	Address                string `bson:"_id"`
	Amount                 string `bson:"amount"`
	Rewards                string `bson:"rewards"`
	UserRewardPerTokenPaid string `bson:"user_reward_per_token_paid"`
}

func NewStakerDocument(addr ledger.Addr, entry ledger.UserEntry) *StakerDocument {
	return &StakerDocument{
		Address:                addr.String(),
		Amount:                 entry.Amount.String(),
		Rewards:                entry.Rewards.String(),
		UserRewardPerTokenPaid: entry.UserRewardPerTokenPaid.String(),
	}
}

func (d *StakerDocument) ToUserEntry() (*ledger.UserEntry, error) {
	amount, err := arith.ParseUint128(d.Amount)
	if err != nil {
		return nil, fmt.Errorf("staker %s amount: %w", d.Address, err)
	}
	rewards, err := arith.ParseUint128(d.Rewards)
	if err != nil {
		return nil, fmt.Errorf("staker %s rewards: %w", d.Address, err)
	}
	paid, err := arith.ParseUint128(d.UserRewardPerTokenPaid)
	if err != nil {
		return nil, fmt.Errorf("staker %s user_reward_per_token_paid: %w", d.Address, err)
	}
	return &ledger.UserEntry{
		Amount:                 amount,
		Rewards:                rewards,
		UserRewardPerTokenPaid: paid,
	}, nil
}

type UnbondDocument struct {
	Address             string `bson:"_id"`
	UnboundAmount       string `bson:"unbound_amount"`
	ExpirationTimestamp string `bson:"expiration_timestamp"`
	IsValid             bool   `bson:"is_valid"`
}

func NewUnbondDocument(addr ledger.Addr, entry ledger.UnbondEntry) *UnbondDocument {
	return &UnbondDocument{
		Address:             addr.String(),
		UnboundAmount:       entry.UnboundAmount.String(),
		ExpirationTimestamp: strconv.FormatUint(entry.ExpirationTimestamp.Nanos(), 10),
		IsValid:             entry.IsValid,
	}
}

func (d *UnbondDocument) ToUnbondEntry() (*ledger.UnbondEntry, error) {
	amount, err := arith.ParseUint128(d.UnboundAmount)
	if err != nil {
		return nil, fmt.Errorf("unbond %s unbound_amount: %w", d.Address, err)
	}
	expiration, err := strconv.ParseUint(d.ExpirationTimestamp, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("unbond %s expiration_timestamp: %w", d.Address, err)
	}
	return &ledger.UnbondEntry{
		UnboundAmount:       amount,
		ExpirationTimestamp: ledger.FromNanos(expiration),
		IsValid:             d.IsValid,
	}, nil
}
