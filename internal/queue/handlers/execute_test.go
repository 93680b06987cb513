package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger-service/internal/config"
	"github.com/babylonchain/staking-ledger-service/internal/services"
	"github.com/babylonchain/staking-ledger-service/internal/types"
)

func setupHandler(t *testing.T) *QueueHandler {
	t.Helper()
	cfg := &config.Config{
		Db: config.DbConfig{Type: config.DbTypeMemory, MaxPaginationLimit: 10},
		Ledger: config.LedgerConfig{
			Owner:           "owner",
			ContractAddress: "ledger",
			Denom:           "ustake",
			RewardRate:      "1",
			UnbondingPeriod: 300,
			RewardPool:      "1000",
			GenesisBalances: map[string]string{"alice": "100"},
		},
	}
	ctx := context.Background()
	svc, err := services.New(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, svc.Bootstrap(ctx))
	return NewQueueHandler(svc)
}

func requireServiceError(t *testing.T, err error, status int, code types.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var serviceErr *types.Error
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, status, serviceErr.StatusCode)
	assert.Equal(t, code, serviceErr.ErrorCode)
}

func TestExecuteHandlerRunsOperations(t *testing.T) {
	ctx := context.Background()
	h := setupHandler(t)

	require.NoError(t, h.ExecuteHandler(ctx,
		`{"event_type":1,"sender":"alice","funds":[{"denom":"ustake","amount":"10"}]}`))

	staked, err := h.Services.StakeOf(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, "10", staked.Amount.String())

	require.NoError(t, h.ExecuteHandler(ctx, `{"event_type":2,"sender":"alice","amount":"4"}`))
	unbond, err := h.Services.UnbondOf(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, "4", unbond.UnboundAmount.String())
	assert.True(t, unbond.IsValid)

	requireServiceError(t, h.ExecuteHandler(ctx, `{"event_type":3,"sender":"alice"}`),
		http.StatusBadRequest, types.BondedStake)
}

func TestExecuteHandlerUpdatesConfig(t *testing.T) {
	ctx := context.Background()
	h := setupHandler(t)

	body := `{"event_type":5,"sender":"owner","config":{"owner":"owner","chief_pausing_officer":"cpo",` +
		`"denom":"ustake","reward_rate":"2","paused":true,"unbonding_period":"60"}}`
	require.NoError(t, h.ExecuteHandler(ctx, body))

	cfg, err := h.Services.Config(ctx)
	require.Nil(t, err)
	assert.True(t, cfg.Paused)
	assert.Equal(t, "2", cfg.RewardRate.String())

	requireServiceError(t, h.ExecuteHandler(ctx,
		`{"event_type":1,"sender":"alice","funds":[{"denom":"ustake","amount":"10"}]}`),
		http.StatusForbidden, types.Paused)
}

func TestExecuteHandlerRetriesPayout(t *testing.T) {
	ctx := context.Background()
	h := setupHandler(t)

	body := `{"event_type":6,"sender":"alice","transfers":[{"to_address":"alice","amount":[{"denom":"ustake","amount":"3"}]}]}`
	require.NoError(t, h.ExecuteHandler(ctx, body))

	tooMuch := `{"event_type":6,"sender":"alice","transfers":[{"to_address":"alice","amount":[{"denom":"ustake","amount":"5000"}]}]}`
	requireServiceError(t, h.ExecuteHandler(ctx, tooMuch), http.StatusBadRequest, types.InsufficientBalance)
}

func TestExecuteHandlerRejectsMalformedEvents(t *testing.T) {
	ctx := context.Background()
	h := setupHandler(t)

	cases := []struct {
		body string
		code types.ErrorCode
	}{
		{`not json`, types.BadRequest},
		{`{"event_type":9,"sender":"alice"}`, types.ValidationError},
		{`{"event_type":4}`, types.ValidationError},
		{`{"event_type":2,"sender":"alice"}`, types.ValidationError},
		{`{"event_type":5,"sender":"owner"}`, types.ValidationError},
		{`{"event_type":6,"sender":"alice"}`, types.ValidationError},
		{`{"event_type":2,"sender":"alice","amount":"-1"}`, types.BadRequest},
	}
	for _, tc := range cases {
		requireServiceError(t, h.ExecuteHandler(ctx, tc.body), http.StatusBadRequest, tc.code)
	}
}
