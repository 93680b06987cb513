package scripts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger-service/internal/queue"
	queueClient "github.com/babylonchain/staking-ledger-service/internal/queue/client"
	"github.com/babylonchain/staking-ledger-service/internal/services"
)

type GenericEvent struct {
	EventType queueClient.EventType `json:"event_type"`
}

func ReplayUnprocessableMessages(ctx context.Context, queues *queue.Queues, store services.UnprocessableMessageStore) (err error) {
	// Fetch unprocessable messages
	unprocessableMessages, err := store.FindUnprocessableMessages(ctx)
	if err != nil {
		return errors.New("failed to retrieve unprocessable messages")
	}

	// Get the message count
	messageCount := len(unprocessableMessages)

	// Inform the user of the number of unprocessable messages
	fmt.Printf("There are %d unprocessable messages.\n", messageCount)
	if messageCount == 0 {
		return errors.New("no unprocessable messages to replay")
	}

	// Process each unprocessable message
	for _, msg := range unprocessableMessages {
		var genericEvent GenericEvent
		if err := json.Unmarshal([]byte(msg.MessageBody), &genericEvent); err != nil {
			fmt.Printf("Failed to unmarshal event message: %v", err)
			return errors.New("failed to unmarshal event message")
		}

		// Process the event message
		if err := processEventMessage(ctx, queues, genericEvent, msg.MessageBody); err != nil {
			return fmt.Errorf("failed to process message: %w", err)
		}

		// Delete the processed message from the database
		if err := store.DeleteUnprocessableMessage(ctx, msg.Receipt); err != nil {
			return errors.New("failed to delete unprocessable message")
		}
	}

	log.Info().Msg("Reprocessing of unprocessable messages completed.")
	return
}

// processEventMessage sends every ledger command and parked payout back onto
// the execute queue.
func processEventMessage(ctx context.Context, queues *queue.Queues, event GenericEvent, messageBody string) error {
	switch event.EventType {
	case queueClient.StakeEventType,
		queueClient.UnbondEventType,
		queueClient.WithdrawEventType,
		queueClient.ClaimEventType,
		queueClient.UpdateConfigEventType,
		queueClient.PayoutEventType:
		return queues.ExecuteQueueClient.SendMessage(ctx, messageBody)
	default:
		return fmt.Errorf("unknown event type: %v", event.EventType)
	}
}
