package ledger

import (
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

// Accumulate folds amount into the slot. All pending amounts mature together
// at now + period, so a new request also restarts the timer for anything
// requested earlier and not yet withdrawn.
func (e UnbondEntry) Accumulate(amount arith.Uint128, now Timestamp, period uint64) (UnbondEntry, error) {
	total, err := e.UnboundAmount.CheckedAdd(amount)
	if err != nil {
		return UnbondEntry{}, arithmeticError(err)
	}
	expiration, err := now.PlusSeconds(period)
	if err != nil {
		return UnbondEntry{}, arithmeticError(err)
	}
	return UnbondEntry{
		UnboundAmount:       total,
		ExpirationTimestamp: expiration,
		IsValid:             true,
	}, nil
}

func (e UnbondEntry) Matured(now Timestamp) bool {
	return e.ExpirationTimestamp <= now
}

func (e UnbondEntry) Withdrawable(now Timestamp) bool {
	return e.IsValid && e.Matured(now)
}

// Cleared empties the slot but keeps the stale expiration until the next
// request overwrites it.
func (e UnbondEntry) Cleared() UnbondEntry {
	return UnbondEntry{
		UnboundAmount:       arith.Zero(),
		ExpirationTimestamp: e.ExpirationTimestamp,
		IsValid:             false,
	}
}
