package ledger

import (
	"context"

	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

// QueryStake returns the user's principal plus whatever is still waiting in
// the unbond slot. Unknown users have a zero stake.
func (l *Ledger) QueryStake(ctx context.Context, addr Addr) (arith.Uint128, error) {
	total := arith.Zero()
	user, err := l.store.LoadUser(ctx, addr)
	if err != nil {
		return arith.Uint128{}, err
	}
	if user != nil {
		total = user.Amount
	}
	slot, err := l.store.LoadUnbond(ctx, addr)
	if err != nil {
		return arith.Uint128{}, err
	}
	if slot != nil {
		total, err = total.CheckedAdd(slot.UnboundAmount)
		if err != nil {
			return arith.Uint128{}, arithmeticError(err)
		}
	}
	return total, nil
}

// QueryRewards derives the user's unclaimed reward at now without persisting.
func (l *Ledger) QueryRewards(ctx context.Context, addr Addr, now Timestamp) (arith.Uint128, error) {
	cfg, state, err := l.loadSingletons(ctx)
	if err != nil {
		return arith.Uint128{}, err
	}
	user, err := l.store.LoadUser(ctx, addr)
	if err != nil {
		return arith.Uint128{}, err
	}
	if user == nil {
		return arith.Zero(), nil
	}
	return Earned(*user, *state, *cfg, now)
}

func (l *Ledger) QueryUnbond(ctx context.Context, addr Addr, now Timestamp) (*UnbondResponse, error) {
	slot, err := l.store.LoadUnbond(ctx, addr)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrNoRecord
	}
	return &UnbondResponse{
		UnboundAmount:       slot.UnboundAmount,
		ExpirationTimestamp: slot.ExpirationTimestamp,
		IsValid:             slot.IsValid,
		Expired:             slot.Matured(now),
	}, nil
}

func (l *Ledger) QueryConfig(ctx context.Context) (*Config, error) {
	cfg, err := l.store.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, invalidStateError("config not found")
	}
	return cfg, nil
}

func (l *Ledger) QueryState(ctx context.Context) (*GlobalState, error) {
	state, err := l.store.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, invalidStateError("global state not found")
	}
	return state, nil
}

// QueryStakers lists stakers after the given address with their rewards
// derived at now.
func (l *Ledger) QueryStakers(ctx context.Context, after Addr, limit int64, now Timestamp) ([]Staker, error) {
	cfg, state, err := l.loadSingletons(ctx)
	if err != nil {
		return nil, err
	}
	records, err := l.store.ListUsers(ctx, after, limit)
	if err != nil {
		return nil, err
	}
	stakers := make([]Staker, 0, len(records))
	for _, r := range records {
		earned, err := Earned(r.Entry, *state, *cfg, now)
		if err != nil {
			return nil, err
		}
		stakers = append(stakers, Staker{
			Address: r.Address,
			Amount:  r.Entry.Amount,
			Rewards: earned,
		})
	}
	return stakers, nil
}
