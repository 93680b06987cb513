package arith_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger-service/internal/ledger/arith"
)

const maxUint128 = "340282366920938463463374607431768211455"

func TestParseUint128Bounds(t *testing.T) {
	u, err := arith.ParseUint128(maxUint128)
	require.NoError(t, err)
	assert.Equal(t, maxUint128, u.String())

	_, err = arith.ParseUint128("340282366920938463463374607431768211456")
	assert.ErrorIs(t, err, arith.ErrOverflow)

	_, err = arith.ParseUint128("-1")
	assert.Error(t, err)

	_, err = arith.ParseUint128("ten")
	assert.Error(t, err)
}

func TestCheckedArithmetic(t *testing.T) {
	max := arith.MustParseUint128(maxUint128)
	one := arith.NewUint128(1)

	_, err := max.CheckedAdd(one)
	assert.ErrorIs(t, err, arith.ErrOverflow)

	_, err = arith.Zero().CheckedSub(one)
	assert.ErrorIs(t, err, arith.ErrUnderflow)

	_, err = max.CheckedMul(arith.NewUint128(2))
	assert.ErrorIs(t, err, arith.ErrOverflow)

	_, err = one.CheckedDiv(arith.Zero())
	assert.ErrorIs(t, err, arith.ErrDivisionByZero)

	q, err := arith.NewUint128(7).CheckedDiv(arith.NewUint128(2))
	require.NoError(t, err)
	assert.Equal(t, "3", q.String())

	p, err := arith.NewUint128(math.MaxUint64).CheckedMul(arith.NewUint128(math.MaxUint64))
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463426481119284349108225", p.String())
}

func TestUint64Helpers(t *testing.T) {
	_, err := arith.CheckedAddUint64(math.MaxUint64, 1)
	assert.ErrorIs(t, err, arith.ErrOverflow)

	_, err = arith.CheckedSubUint64(1, 2)
	assert.ErrorIs(t, err, arith.ErrUnderflow)

	_, err = arith.CheckedMulUint64(math.MaxUint64, 2)
	assert.ErrorIs(t, err, arith.ErrOverflow)

	v, err := arith.CheckedMulUint64(300, arith.NanosPerSecond)
	require.NoError(t, err)
	assert.Equal(t, uint64(300_000_000_000), v)
}

func TestUint128JSON(t *testing.T) {
	type payload struct {
		Amount arith.Uint128 `json:"amount"`
	}

	out, err := json.Marshal(payload{Amount: arith.NewUint128(42)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"42"}`, string(out))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"1000"}`), &p))
	assert.Equal(t, "1000", p.Amount.String())

	require.NoError(t, json.Unmarshal([]byte(`{"amount":7}`), &p))
	assert.Equal(t, "7", p.Amount.String())

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"abc"}`), &p))
}
