package ledger

import (
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

// Earned is the user's full unclaimed reward at now: the settled balance plus
// whatever the principal accrued since the checkpoint. It has no side effects
// and is shared by the mutating operations and the reward query.
func Earned(user UserEntry, state GlobalState, cfg Config, now Timestamp) (arith.Uint128, error) {
	rpt, err := RewardPerToken(state, cfg, now)
	if err != nil {
		return arith.Uint128{}, err
	}
	delta, err := rpt.CheckedSub(user.UserRewardPerTokenPaid)
	if err != nil {
		return arith.Uint128{}, arithmeticError(err)
	}
	inflated, err := user.Amount.CheckedMul(delta)
	if err != nil {
		return arith.Uint128{}, arithmeticError(err)
	}
	increment, err := inflated.CheckedDiv(arith.Scale())
	if err != nil {
		return arith.Uint128{}, arithmeticError(err)
	}
	total, err := user.Rewards.CheckedAdd(increment)
	if err != nil {
		return arith.Uint128{}, arithmeticError(err)
	}
	return total, nil
}

// settle folds accrued rewards into the entry and moves its checkpoint to the
// refreshed accumulator. refreshed must already be at now.
func settle(user UserEntry, refreshed GlobalState, cfg Config, now Timestamp) (UserEntry, error) {
	rewards, err := Earned(user, refreshed, cfg, now)
	if err != nil {
		return UserEntry{}, err
	}
	return UserEntry{
		Amount:                 user.Amount,
		Rewards:                rewards,
		UserRewardPerTokenPaid: refreshed.RewardPerTokenStored,
	}, nil
}
