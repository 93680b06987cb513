package ledger

import (
	"math"
	"time"

	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

// Addr is an opaque caller identity. The ledger only compares it for equality.
type Addr string

func (a Addr) String() string {
	return string(a)
}

// Timestamp is block time in nanoseconds since the unix epoch.
type Timestamp uint64

func FromNanos(ns uint64) Timestamp {
	return Timestamp(ns)
}

// FromSeconds saturates at the largest Timestamp instead of wrapping.
func FromSeconds(s uint64) Timestamp {
	ns, err := arith.CheckedMulUint64(s, arith.NanosPerSecond)
	if err != nil {
		return Timestamp(math.MaxUint64)
	}
	return Timestamp(ns)
}

func FromTime(t time.Time) Timestamp {
	ns := t.UnixNano()
	if ns < 0 {
		return 0
	}
	return Timestamp(ns)
}

func (t Timestamp) Nanos() uint64 {
	return uint64(t)
}

// Seconds truncates to whole seconds.
func (t Timestamp) Seconds() uint64 {
	return uint64(t) / arith.NanosPerSecond
}

func (t Timestamp) Time() time.Time {
	return time.Unix(0, int64(t)).UTC()
}

// PlusSeconds returns t + s seconds, failing instead of wrapping.
func (t Timestamp) PlusSeconds(s uint64) (Timestamp, error) {
	ns, err := arith.CheckedMulUint64(s, arith.NanosPerSecond)
	if err != nil {
		return 0, err
	}
	sum, err := arith.CheckedAddUint64(uint64(t), ns)
	if err != nil {
		return 0, err
	}
	return Timestamp(sum), nil
}

type Config struct {
	Owner               Addr          `json:"owner"`
	ChiefPausingOfficer Addr          `json:"chief_pausing_officer"`
	Denom               string        `json:"denom"`
	RewardRate          arith.Uint128 `json:"reward_rate"` // reward units per second
	Paused              bool          `json:"paused"`
	UnbondingPeriod     uint64        `json:"unbonding_period,string"` // seconds
}

type GlobalState struct {
	RewardPerTokenStored arith.Uint128 `json:"reward_per_token_stored"`
	LastUpdateTime       Timestamp     `json:"last_update_time,string"`
	StakedBalance        arith.Uint128 `json:"staked_balance"`
	// UnbondingBalance is principal that has left StakedBalance but is still
	// held by the contract until its slot is withdrawn.
	UnbondingBalance arith.Uint128 `json:"unbonding_balance"`
}

type UserEntry struct {
	Amount                 arith.Uint128 `json:"amount"`
	Rewards                arith.Uint128 `json:"rewards"`
	UserRewardPerTokenPaid arith.Uint128 `json:"user_reward_per_token_paid"`
}

type UnbondEntry struct {
	UnboundAmount       arith.Uint128 `json:"unbound_amount"`
	ExpirationTimestamp Timestamp     `json:"expiration_timestamp,string"`
	// IsValid distinguishes a pending withdrawal from a slot that was never
	// used or has already been withdrawn.
	IsValid bool `json:"is_valid"`
}

type Coin struct {
	Denom  string        `json:"denom"`
	Amount arith.Uint128 `json:"amount"`
}

// BankSend instructs the transfer collaborator to pay Amount to ToAddress
// from the ledger's own account. It is executed only after the operation
// that produced it has committed.
type BankSend struct {
	ToAddress Addr   `json:"to_address"`
	Amount    []Coin `json:"amount"`
}

type Response struct {
	Action   string     `json:"action"`
	Messages []BankSend `json:"messages,omitempty"`
}

type InstantiateMsg struct {
	Denom           string        `json:"denom"`
	RewardRate      arith.Uint128 `json:"reward_rate"`
	Paused          bool          `json:"paused"`
	UnbondingPeriod uint64        `json:"unbonding_period,string"`
}

type UnbondResponse struct {
	UnboundAmount       arith.Uint128 `json:"unbound_amount"`
	ExpirationTimestamp Timestamp     `json:"expiration_timestamp,string"`
	IsValid             bool          `json:"is_valid"`
	Expired             bool          `json:"expired"`
}

type Staker struct {
	Address Addr          `json:"address"`
	Amount  arith.Uint128 `json:"amount"`
	Rewards arith.Uint128 `json:"rewards"`
}

const (
	ActionInstantiate  = "instantiate"
	ActionStake        = "stake"
	ActionUnbond       = "unbond"
	ActionWithdraw     = "withdraw"
	ActionClaim        = "claim"
	ActionUpdateConfig = "update_config"
)
