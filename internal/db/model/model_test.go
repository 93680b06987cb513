package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

func TestStateDocumentKeepsFullPrecision(t *testing.T) {
	state := ledger.GlobalState{
		RewardPerTokenStored: arith.MustParseUint128("340282366920938463463374607431768211455"),
		LastUpdateTime:       ledger.FromNanos(18_000_000_000_000_000_000),
		StakedBalance:        arith.NewUint128(42),
		UnbondingBalance:     arith.NewUint128(7),
	}

	doc := NewStateDocument(state)
	assert.Equal(t, StateDocumentId, doc.Id)
	assert.Equal(t, "18000000000000000000", doc.LastUpdateTime)

	decoded, err := doc.ToState()
	require.NoError(t, err)
	assert.Equal(t, state, *decoded)
}

func TestStateDocumentWithoutUnbondingBalance(t *testing.T) {
	doc := NewStateDocument(ledger.GlobalState{StakedBalance: arith.NewUint128(3)})
	doc.UnbondingBalance = ""

	decoded, err := doc.ToState()
	require.NoError(t, err)
	assert.True(t, decoded.UnbondingBalance.IsZero())

	doc.UnbondingBalance = "x"
	_, err = doc.ToState()
	assert.Error(t, err)
}

func TestStakerDocumentRejectsCorruptAmounts(t *testing.T) {
	doc := NewStakerDocument("alice", ledger.UserEntry{Amount: arith.NewUint128(1)})
	doc.Rewards = "-5"

	_, err := doc.ToUserEntry()
	assert.Error(t, err)
}

func TestPaginationTokenRoundTrip(t *testing.T) {
	token, err := BuildStakerPaginationToken("bob")
	require.NoError(t, err)

	decoded, err := DecodeStakerPaginationToken(token)
	require.NoError(t, err)
	assert.Equal(t, ledger.Addr("bob"), decoded)

	_, err = DecodeStakerPaginationToken("%%%")
	assert.Error(t, err)

	empty, err := EncodePaginationToken(StakerPagination{})
	require.NoError(t, err)
	_, err = DecodeStakerPaginationToken(empty)
	assert.Error(t, err)
}

func TestBalanceId(t *testing.T) {
	assert.Equal(t, "alice/ustake", BalanceId("alice", "ustake"))
}
