package ledger_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

func TestRewardPerTokenEmptyPool(t *testing.T) {
	state := ledger.GlobalState{
		RewardPerTokenStored: arith.NewUint128(5),
		LastUpdateTime:       t0,
	}
	cfg := ledger.Config{RewardRate: arith.NewUint128(100)}

	rpt, err := ledger.RewardPerToken(state, cfg, at(1_000))
	require.NoError(t, err)
	assert.Equal(t, "5", rpt.String())

	_, err = ledger.RewardPerToken(state, cfg, ledger.FromSeconds(1))
	assert.ErrorIs(t, err, ledger.ErrArithmetic)
}

func TestRefreshUsesPreDeltaBalance(t *testing.T) {
	state := ledger.GlobalState{
		RewardPerTokenStored: arith.Zero(),
		LastUpdateTime:       t0,
		StakedBalance:        arith.NewUint128(10),
	}
	cfg := ledger.Config{RewardRate: arith.NewUint128(1)}

	added, err := ledger.Refresh(state, cfg, at(4), ledger.AddStake(arith.NewUint128(30)))
	require.NoError(t, err)
	assert.Equal(t, "400000000", added.RewardPerTokenStored.String())
	assert.Equal(t, "40", added.StakedBalance.String())
	assert.Equal(t, at(4), added.LastUpdateTime)

	removed, err := ledger.Refresh(state, cfg, at(4), ledger.RemoveStake(arith.NewUint128(10)))
	require.NoError(t, err)
	assert.Equal(t, "400000000", removed.RewardPerTokenStored.String())
	assert.True(t, removed.StakedBalance.IsZero())

	_, err = ledger.Refresh(state, cfg, at(4), ledger.RemoveStake(arith.NewUint128(11)))
	assert.ErrorIs(t, err, arith.ErrUnderflow)
}

func TestRefreshKeepsUnbondingBalance(t *testing.T) {
	state := ledger.GlobalState{
		LastUpdateTime:   t0,
		StakedBalance:    arith.NewUint128(10),
		UnbondingBalance: arith.NewUint128(5),
	}
	cfg := ledger.Config{RewardRate: arith.NewUint128(1)}

	refreshed, err := ledger.Refresh(state, cfg, at(1), ledger.RemoveStake(arith.NewUint128(10)))
	require.NoError(t, err)
	assert.Equal(t, "5", refreshed.UnbondingBalance.String())
}

func TestFromSecondsSaturates(t *testing.T) {
	assert.Equal(t, ledger.FromNanos(3_000_000_000), ledger.FromSeconds(3))
	assert.Equal(t, ledger.FromNanos(math.MaxUint64), ledger.FromSeconds(math.MaxUint64/2))
}

func TestRefreshOverflow(t *testing.T) {
	state := ledger.GlobalState{
		LastUpdateTime: t0,
		StakedBalance:  arith.NewUint128(1),
	}
	cfg := ledger.Config{RewardRate: arith.MustParseUint128("340282366920938463463374607431768211455")}

	_, err := ledger.Refresh(state, cfg, at(2), ledger.NoStakeChange)
	assert.ErrorIs(t, err, ledger.ErrArithmetic)
	assert.ErrorIs(t, err, arith.ErrOverflow)
}

func TestEarnedRejectsCheckpointAhead(t *testing.T) {
	state := ledger.GlobalState{
		RewardPerTokenStored: arith.NewUint128(1),
		LastUpdateTime:       t0,
	}
	user := ledger.UserEntry{
		Amount:                 arith.NewUint128(10),
		UserRewardPerTokenPaid: arith.NewUint128(2),
	}

	_, err := ledger.Earned(user, state, ledger.Config{}, t0)
	assert.ErrorIs(t, err, ledger.ErrArithmetic)
}

func TestUnbondSlot(t *testing.T) {
	slot := ledger.UnbondEntry{}
	assert.False(t, slot.Withdrawable(t0))

	slot, err := slot.Accumulate(arith.NewUint128(3), t0, 10)
	require.NoError(t, err)
	assert.True(t, slot.IsValid)
	assert.Equal(t, at(10), slot.ExpirationTimestamp)
	assert.False(t, slot.Withdrawable(at(9)))
	assert.True(t, slot.Withdrawable(at(10)))

	cleared := slot.Cleared()
	assert.False(t, cleared.IsValid)
	assert.True(t, cleared.UnboundAmount.IsZero())
	assert.Equal(t, slot.ExpirationTimestamp, cleared.ExpirationTimestamp)
	assert.True(t, cleared.Matured(at(10)))
}

func TestMergeConfigOwnerReplaces(t *testing.T) {
	current := ledger.Config{Owner: owner, ChiefPausingOfficer: "officer", Denom: denom}
	candidate := ledger.Config{Owner: "next", ChiefPausingOfficer: "officer", Denom: "uother", UnbondingPeriod: 9}

	merged, err := ledger.MergeConfig(current, owner, candidate)
	require.NoError(t, err)
	assert.Equal(t, candidate, merged)
}
