package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger-service/internal/ledger"
	queueClient "github.com/babylonchain/staking-ledger-service/internal/queue/client"
	"github.com/babylonchain/staking-ledger-service/internal/types"
)

var executeEventTypes = []queueClient.EventType{
	queueClient.StakeEventType,
	queueClient.UnbondEventType,
	queueClient.WithdrawEventType,
	queueClient.ClaimEventType,
	queueClient.UpdateConfigEventType,
	queueClient.PayoutEventType,
}

// ExecuteHandler runs one ledger operation received on the execute queue.
// Malformed commands and commands the ledger rejects come back as client
// errors so the caller can park them instead of redelivering.
func (h *QueueHandler) ExecuteHandler(ctx context.Context, messageBody string) error {
	var event queueClient.ExecuteEvent
	if err := json.Unmarshal([]byte(messageBody), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal the message body into ExecuteEvent")
		return types.NewError(http.StatusBadRequest, types.BadRequest, err)
	}
	if err := validateExecuteEvent(&event); err != nil {
		log.Ctx(ctx).Warn().Err(err).Int("event_type", int(event.EventType)).Msg("invalid execute event")
		return err
	}

	sender := ledger.Addr(event.Sender)
	var opErr *types.Error
	switch event.EventType {
	case queueClient.StakeEventType:
		_, opErr = h.Services.Stake(ctx, sender, event.Funds)
	case queueClient.UnbondEventType:
		_, opErr = h.Services.Unbond(ctx, sender, *event.Amount)
	case queueClient.WithdrawEventType:
		_, opErr = h.Services.Withdraw(ctx, sender)
	case queueClient.ClaimEventType:
		_, opErr = h.Services.Claim(ctx, sender)
	case queueClient.UpdateConfigEventType:
		_, opErr = h.Services.UpdateConfig(ctx, sender, *event.Config)
	case queueClient.PayoutEventType:
		_, opErr = h.Services.RetryPayout(ctx, sender, event.Transfers)
	}
	if opErr != nil {
		return opErr
	}
	return nil
}

func validateExecuteEvent(event *queueClient.ExecuteEvent) *types.Error {
	if !slices.Contains(executeEventTypes, event.EventType) {
		return types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError,
			fmt.Sprintf("unknown event type %d", event.EventType),
		)
	}
	if event.Sender == "" {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "sender is required")
	}
	switch event.EventType {
	case queueClient.UnbondEventType:
		if event.Amount == nil {
			return types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "amount is required")
		}
	case queueClient.UpdateConfigEventType:
		if event.Config == nil {
			return types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "config is required")
		}
	case queueClient.PayoutEventType:
		if len(event.Transfers) == 0 {
			return types.NewErrorWithMsg(http.StatusBadRequest, types.ValidationError, "transfers are required")
		}
	}
	return nil
}
