package bank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

func coin(amount uint64) []ledger.Coin {
	return []ledger.Coin{{Denom: "ustake", Amount: arith.NewUint128(amount)}}
}

func TestMemoryKeeperSend(t *testing.T) {
	ctx := context.Background()
	k := NewMemoryKeeper()
	require.NoError(t, k.Mint(ctx, "alice", coin(10)))

	require.NoError(t, k.Send(ctx, "alice", "bob", coin(4)))

	alice, err := k.Balance(ctx, "alice", "ustake")
	require.NoError(t, err)
	assert.Equal(t, "6", alice.Amount.String())
	bob, err := k.Balance(ctx, "bob", "ustake")
	require.NoError(t, err)
	assert.Equal(t, "4", bob.Amount.String())

	err = k.Send(ctx, "alice", "bob", coin(7))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	alice, err = k.Balance(ctx, "alice", "ustake")
	require.NoError(t, err)
	assert.Equal(t, "6", alice.Amount.String(), "failed send must not move funds")
}

func TestMemoryKeeperSendIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	k := NewMemoryKeeper()
	require.NoError(t, k.Mint(ctx, "alice", coin(10)))

	err := k.Send(ctx, "alice", "bob", []ledger.Coin{
		{Denom: "ustake", Amount: arith.NewUint128(5)},
		{Denom: "uother", Amount: arith.NewUint128(1)},
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	alice, err := k.Balance(ctx, "alice", "ustake")
	require.NoError(t, err)
	assert.Equal(t, "10", alice.Amount.String())
}

func TestExecuteAndQuerier(t *testing.T) {
	ctx := context.Background()
	k := NewMemoryKeeper()
	require.NoError(t, k.Mint(ctx, "ledger", coin(100)))

	err := Execute(ctx, k, "ledger", []ledger.BankSend{
		{ToAddress: "alice", Amount: coin(30)},
		{ToAddress: "bob", Amount: coin(20)},
	})
	require.NoError(t, err)

	remaining, err := Querier{Keeper: k}.Balance(ctx, "ledger", "ustake")
	require.NoError(t, err)
	assert.Equal(t, "50", remaining.String())

	err = Execute(ctx, k, "ledger", []ledger.BankSend{{ToAddress: "alice", Amount: coin(51)}})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestExecuteReportsUnsentTransfers(t *testing.T) {
	ctx := context.Background()
	k := NewMemoryKeeper()
	require.NoError(t, k.Mint(ctx, "ledger", coin(40)))

	msgs := []ledger.BankSend{
		{ToAddress: "alice", Amount: coin(30)},
		{ToAddress: "bob", Amount: coin(20)},
		{ToAddress: "carol", Amount: coin(5)},
	}
	err := Execute(ctx, k, "ledger", msgs)

	var payoutErr *PayoutError
	require.ErrorAs(t, err, &payoutErr)
	assert.Equal(t, msgs[1:], payoutErr.Unsent)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	paid, err := k.Balance(ctx, "alice", "ustake")
	require.NoError(t, err)
	assert.Equal(t, "30", paid.Amount.String())
}
