package ledger

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

// BalanceQuerier reports how much of denom an account holds.
type BalanceQuerier interface {
	Balance(ctx context.Context, addr Addr, denom string) (arith.Uint128, error)
}

// Ledger sequences the accumulator, settlement, unbond slot and governance
// rules over a Store. Callers must serialize calls and supply a non-decreasing
// now; a Ledger does no locking of its own.
type Ledger struct {
	store    Store
	bank     BalanceQuerier
	contract Addr
}

func New(store Store, bank BalanceQuerier, contract Addr) *Ledger {
	return &Ledger{
		store:    store,
		bank:     bank,
		contract: contract,
	}
}

// Contract is the account holding staked principal and the reward pool.
func (l *Ledger) Contract() Addr {
	return l.contract
}

func (l *Ledger) Initialized(ctx context.Context) (bool, error) {
	cfg, err := l.store.LoadConfig(ctx)
	if err != nil {
		return false, err
	}
	return cfg != nil, nil
}

// Instantiate writes the initial configuration, with sender as both owner
// and chief pausing officer, and an empty pool anchored at now.
func (l *Ledger) Instantiate(ctx context.Context, sender Addr, msg InstantiateMsg, now Timestamp) (*Response, error) {
	batch := NewBatch()
	batch.SaveConfig(Config{
		Owner:               sender,
		ChiefPausingOfficer: sender,
		Denom:               msg.Denom,
		RewardRate:          msg.RewardRate,
		Paused:              msg.Paused,
		UnbondingPeriod:     msg.UnbondingPeriod,
	})
	batch.SaveState(GlobalState{
		RewardPerTokenStored: arith.Zero(),
		LastUpdateTime:       now,
		StakedBalance:        arith.Zero(),
		UnbondingBalance:     arith.Zero(),
	})
	if err := l.store.Commit(ctx, batch); err != nil {
		return nil, err
	}
	return &Response{Action: ActionInstantiate}, nil
}

func (l *Ledger) Deposit(ctx context.Context, sender Addr, funds []Coin, now Timestamp) (*Response, error) {
	cfg, state, err := l.loadSingletons(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Paused {
		return nil, ErrPaused
	}
	amount, ok := amountOf(funds, cfg.Denom)
	if !ok || amount.IsZero() {
		return nil, ErrNoFunds
	}

	user, err := l.loadUserOrDefault(ctx, sender)
	if err != nil {
		return nil, err
	}

	refreshed, err := Refresh(*state, *cfg, now, AddStake(amount))
	if err != nil {
		return nil, err
	}
	settled, err := settle(user, refreshed, *cfg, now)
	if err != nil {
		return nil, err
	}
	settled.Amount, err = settled.Amount.CheckedAdd(amount)
	if err != nil {
		return nil, arithmeticError(err)
	}

	batch := NewBatch()
	batch.SaveState(refreshed)
	batch.SaveUser(sender, settled)
	if err := l.store.Commit(ctx, batch); err != nil {
		return nil, err
	}
	return &Response{Action: ActionStake}, nil
}

func (l *Ledger) RequestUnbond(ctx context.Context, sender Addr, amount arith.Uint128, now Timestamp) (*Response, error) {
	cfg, state, err := l.loadSingletons(ctx)
	if err != nil {
		return nil, err
	}
	user, err := l.store.LoadUser(ctx, sender)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Amount.IsZero() {
		return nil, ErrNoRecord
	}
	if amount.IsZero() {
		return nil, ErrZeroAmount
	}
	if amount.Gt(user.Amount) {
		return nil, ErrInsufficientFunds
	}

	refreshed, err := Refresh(*state, *cfg, now, RemoveStake(amount))
	if err != nil {
		return nil, err
	}
	settled, err := settle(*user, refreshed, *cfg, now)
	if err != nil {
		return nil, err
	}
	settled.Amount, err = settled.Amount.CheckedSub(amount)
	if err != nil {
		return nil, arithmeticError(err)
	}

	slot, err := l.store.LoadUnbond(ctx, sender)
	if err != nil {
		return nil, err
	}
	current := UnbondEntry{UnboundAmount: arith.Zero()}
	if slot != nil {
		current = *slot
	}
	next, err := current.Accumulate(amount, now, cfg.UnbondingPeriod)
	if err != nil {
		return nil, err
	}
	refreshed.UnbondingBalance, err = refreshed.UnbondingBalance.CheckedAdd(amount)
	if err != nil {
		return nil, arithmeticError(err)
	}

	batch := NewBatch()
	batch.SaveState(refreshed)
	batch.SaveUser(sender, settled)
	batch.SaveUnbond(sender, next)
	if err := l.store.Commit(ctx, batch); err != nil {
		return nil, err
	}
	return &Response{Action: ActionUnbond}, nil
}

// Withdraw pays out a matured unbond slot. The amount already left the
// staked balance when it was requested, so the refresh here is stake-neutral
// and only the unbonding balance shrinks.
func (l *Ledger) Withdraw(ctx context.Context, sender Addr, now Timestamp) (*Response, error) {
	cfg, state, err := l.loadSingletons(ctx)
	if err != nil {
		return nil, err
	}
	slot, err := l.store.LoadUnbond(ctx, sender)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrNoRecord
	}
	if !slot.Withdrawable(now) {
		return nil, ErrBondedStake
	}

	refreshed, err := Refresh(*state, *cfg, now, NoStakeChange)
	if err != nil {
		return nil, err
	}
	refreshed.UnbondingBalance, err = refreshed.UnbondingBalance.CheckedSub(slot.UnboundAmount)
	if err != nil {
		return nil, arithmeticError(err)
	}

	batch := NewBatch()
	batch.SaveState(refreshed)
	batch.SaveUnbond(sender, slot.Cleared())
	if err := l.store.Commit(ctx, batch); err != nil {
		return nil, err
	}

	return &Response{
		Action:   ActionWithdraw,
		Messages: []BankSend{transfer(sender, cfg.Denom, slot.UnboundAmount)},
	}, nil
}

func (l *Ledger) Claim(ctx context.Context, sender Addr, now Timestamp) (*Response, error) {
	cfg, state, err := l.loadSingletons(ctx)
	if err != nil {
		return nil, err
	}
	user, err := l.store.LoadUser(ctx, sender)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNoRecord
	}

	refreshed, err := Refresh(*state, *cfg, now, NoStakeChange)
	if err != nil {
		return nil, err
	}
	payout, err := Earned(*user, refreshed, *cfg, now)
	if err != nil {
		return nil, err
	}
	if user.Rewards.IsZero() && payout.IsZero() {
		return nil, ErrNoRewards
	}

	surplus, err := l.solventSurplus(ctx, cfg.Denom, refreshed)
	if err != nil {
		return nil, err
	}
	if user.Rewards.Gt(surplus) || payout.Gt(surplus) {
		return nil, ErrNoFunds
	}

	batch := NewBatch()
	batch.SaveState(refreshed)
	batch.SaveUser(sender, UserEntry{
		Amount:                 user.Amount,
		Rewards:                arith.Zero(),
		UserRewardPerTokenPaid: refreshed.RewardPerTokenStored,
	})
	if err := l.store.Commit(ctx, batch); err != nil {
		return nil, err
	}

	return &Response{
		Action:   ActionClaim,
		Messages: []BankSend{transfer(sender, cfg.Denom, payout)},
	}, nil
}

func (l *Ledger) UpdateConfig(ctx context.Context, sender Addr, candidate Config) (*Response, error) {
	cfg, err := l.store.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, invalidStateError("config not found")
	}
	merged, err := MergeConfig(*cfg, sender, candidate)
	if err != nil {
		return nil, err
	}

	batch := NewBatch()
	batch.SaveConfig(merged)
	if err := l.store.Commit(ctx, batch); err != nil {
		return nil, err
	}
	return &Response{Action: ActionUpdateConfig}, nil
}

// solventSurplus is the part of the contract balance that is not principal,
// whether still staked or waiting in an unbond slot.
func (l *Ledger) solventSurplus(ctx context.Context, denom string, state GlobalState) (arith.Uint128, error) {
	balance, err := l.bank.Balance(ctx, l.contract, denom)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str("contract", l.contract.String()).
			Msg("balance query failed, treating contract balance as zero")
		balance = arith.Zero()
	}
	principal, err := state.StakedBalance.CheckedAdd(state.UnbondingBalance)
	if err != nil {
		return arith.Uint128{}, arithmeticError(err)
	}
	surplus, err := balance.CheckedSub(principal)
	if err != nil {
		return arith.Uint128{}, ErrNoFunds
	}
	return surplus, nil
}

func (l *Ledger) loadSingletons(ctx context.Context) (*Config, *GlobalState, error) {
	cfg, err := l.store.LoadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	if cfg == nil {
		return nil, nil, invalidStateError("config not found")
	}
	state, err := l.store.LoadState(ctx)
	if err != nil {
		return nil, nil, err
	}
	if state == nil {
		return nil, nil, invalidStateError("global state not found")
	}
	return cfg, state, nil
}

func (l *Ledger) loadUserOrDefault(ctx context.Context, addr Addr) (UserEntry, error) {
	user, err := l.store.LoadUser(ctx, addr)
	if err != nil {
		return UserEntry{}, err
	}
	if user == nil {
		return UserEntry{
			Amount:                 arith.Zero(),
			Rewards:                arith.Zero(),
			UserRewardPerTokenPaid: arith.Zero(),
		}, nil
	}
	return *user, nil
}

func amountOf(funds []Coin, denom string) (arith.Uint128, bool) {
	for _, coin := range funds {
		if coin.Denom == denom {
			return coin.Amount, true
		}
	}
	return arith.Uint128{}, false
}

func transfer(to Addr, denom string, amount arith.Uint128) BankSend {
	return BankSend{
		ToAddress: to,
		Amount:    []Coin{{Denom: denom, Amount: amount}},
	}
}
