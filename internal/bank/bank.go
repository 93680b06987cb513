// Package bank moves and reports balances of the staked asset. It stands in
// for the chain's bank module: transfers requested by the ledger are executed
// here after the ledger operation has committed.
package bank

import (
	"context"
	"errors"
	"fmt"

	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

type Keeper interface {
	Balance(ctx context.Context, addr ledger.Addr, denom string) (ledger.Coin, error)
	Send(ctx context.Context, from, to ledger.Addr, amount []ledger.Coin) error
	// Mint credits new funds to an account. Used to seed genesis balances
	// and the reward pool.
	Mint(ctx context.Context, to ledger.Addr, amount []ledger.Coin) error
}

// Querier adapts a Keeper to the balance lookup the ledger needs.
type Querier struct {
	Keeper Keeper
}

func (q Querier) Balance(ctx context.Context, addr ledger.Addr, denom string) (arith.Uint128, error) {
	coin, err := q.Keeper.Balance(ctx, addr, denom)
	if err != nil {
		return arith.Uint128{}, err
	}
	return coin.Amount, nil
}

// Execute performs the transfers returned by a ledger operation, paying out
// of the contract account. It stops at the first failed send and reports it
// as a *PayoutError.
func Execute(ctx context.Context, keeper Keeper, contract ledger.Addr, msgs []ledger.BankSend) error {
	for i, msg := range msgs {
		if err := keeper.Send(ctx, contract, msg.ToAddress, msg.Amount); err != nil {
			return &PayoutError{Unsent: msgs[i:], Err: err}
		}
	}
	return nil
}

// PayoutError carries the transfers that were not made, starting with the
// one that failed.
type PayoutError struct {
	Unsent []ledger.BankSend
	Err    error
}

func (e *PayoutError) Error() string {
	failed := e.Unsent[0]
	return fmt.Sprintf("failed to send %v to %s: %v", failed.Amount, failed.ToAddress, e.Err)
}

func (e *PayoutError) Unwrap() error {
	return e.Err
}

// InsufficientBalanceError reports a send the source account cannot cover.
type InsufficientBalanceError struct {
	Address ledger.Addr
	Need    ledger.Coin
	Have    arith.Uint128
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s has %s%s, needs %s%s",
		e.Address, e.Have, e.Need.Denom, e.Need.Amount, e.Need.Denom)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
