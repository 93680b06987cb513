package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger-service/internal/bank"
	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	"github.com/babylonchain/staking-ledger-service/internal/observability/metrics"
	"github.com/babylonchain/staking-ledger-service/internal/types"
)

var ledgerErrorStatus = map[ledger.ErrorKind]struct {
	status int
	code   types.ErrorCode
}{
	ledger.KindUnauthorized:      {http.StatusForbidden, types.Unauthorized},
	ledger.KindPaused:            {http.StatusForbidden, types.Paused},
	ledger.KindNoRecord:          {http.StatusNotFound, types.NotFound},
	ledger.KindNoFunds:           {http.StatusBadRequest, types.NoFunds},
	ledger.KindZeroAmount:        {http.StatusBadRequest, types.ZeroAmount},
	ledger.KindInsufficientFunds: {http.StatusBadRequest, types.InsufficientFunds},
	ledger.KindBondedStake:       {http.StatusBadRequest, types.BondedStake},
	ledger.KindNoRewards:         {http.StatusBadRequest, types.NoRewards},
}

// toServiceError maps a ledger or bank failure onto the HTTP-facing error.
// Arithmetic and invalid-state failures mean the ledger itself is broken and
// surface as internal errors.
func toServiceError(ctx context.Context, action string, err error) *types.Error {
	if kind, ok := ledger.KindOf(err); ok {
		if mapped, found := ledgerErrorStatus[kind]; found {
			log.Ctx(ctx).Warn().Err(err).Str("action", action).Str("kind", kind.String()).Msg("ledger operation rejected")
			return types.NewError(mapped.status, mapped.code, err)
		}
	}
	if errors.Is(err, bank.ErrInsufficientBalance) {
		log.Ctx(ctx).Warn().Err(err).Str("action", action).Msg("insufficient bank balance")
		return types.NewError(http.StatusBadRequest, types.InsufficientBalance, err)
	}
	log.Ctx(ctx).Error().Err(err).Str("action", action).Msg("ledger operation failed")
	return types.NewInternalServiceError(err)
}

func outcomeOf(err *types.Error) metrics.Outcome {
	if err == nil {
		return metrics.Success
	}
	if err.IsClientError() {
		return metrics.Rejected
	}
	return metrics.Error
}
