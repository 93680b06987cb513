package ledger

import (
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

// StakeDelta is the change to the staked balance applied together with an
// accumulator refresh.
type StakeDelta struct {
	Amount arith.Uint128
	Remove bool
}

func AddStake(amount arith.Uint128) StakeDelta {
	return StakeDelta{Amount: amount}
}

func RemoveStake(amount arith.Uint128) StakeDelta {
	return StakeDelta{Amount: amount, Remove: true}
}

// NoStakeChange refreshes the accumulator without touching the staked balance.
var NoStakeChange = StakeDelta{}

// RewardPerToken derives the accumulator value at now without persisting it.
// An empty pool accrues nothing. Elapsed time is truncated to whole seconds
// before it is multiplied by the rate.
func RewardPerToken(state GlobalState, cfg Config, now Timestamp) (arith.Uint128, error) {
	elapsedNanos, err := arith.CheckedSubUint64(now.Nanos(), state.LastUpdateTime.Nanos())
	if err != nil {
		return arith.Uint128{}, arithmeticError(err)
	}
	if state.StakedBalance.IsZero() {
		return state.RewardPerTokenStored, nil
	}

	elapsedSeconds := arith.NewUint128(elapsedNanos / arith.NanosPerSecond)
	rewards, err := elapsedSeconds.CheckedMul(cfg.RewardRate)
	if err != nil {
		return arith.Uint128{}, arithmeticError(err)
	}
	inflated, err := rewards.CheckedMul(arith.Scale())
	if err != nil {
		return arith.Uint128{}, arithmeticError(err)
	}
	perToken, err := inflated.CheckedDiv(state.StakedBalance)
	if err != nil {
		return arith.Uint128{}, arithmeticError(err)
	}
	stored, err := state.RewardPerTokenStored.CheckedAdd(perToken)
	if err != nil {
		return arith.Uint128{}, arithmeticError(err)
	}
	return stored, nil
}

// Refresh brings the accumulator up to now and then applies delta. Accrual
// for the elapsed interval always uses the balance from before the delta.
func Refresh(state GlobalState, cfg Config, now Timestamp, delta StakeDelta) (GlobalState, error) {
	rpt, err := RewardPerToken(state, cfg, now)
	if err != nil {
		return GlobalState{}, err
	}

	balance := state.StakedBalance
	if delta.Remove {
		balance, err = balance.CheckedSub(delta.Amount)
	} else {
		balance, err = balance.CheckedAdd(delta.Amount)
	}
	if err != nil {
		return GlobalState{}, arithmeticError(err)
	}

	return GlobalState{
		RewardPerTokenStored: rpt,
		LastUpdateTime:       now,
		StakedBalance:        balance,
		UnbondingBalance:     state.UnbondingBalance,
	}, nil
}
