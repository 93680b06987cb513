package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-ledger-service/internal/config"
	"github.com/babylonchain/staking-ledger-service/internal/observability/metrics"
	"github.com/babylonchain/staking-ledger-service/internal/observability/tracing"
	"github.com/babylonchain/staking-ledger-service/internal/queue/client"
	"github.com/babylonchain/staking-ledger-service/internal/queue/handlers"
	"github.com/babylonchain/staking-ledger-service/internal/services"
	"github.com/babylonchain/staking-ledger-service/internal/types"
)

type MessageHandler func(ctx context.Context, messageBody string) error

// UnprocessableMessageSaver parks messages that can never succeed.
type UnprocessableMessageSaver interface {
	SaveUnprocessableMessages(ctx context.Context, messageBody, receipt string) *types.Error
}

type Queues struct {
	ExecuteQueueClient client.QueueClient
	EventQueueClient   client.QueueClient
	Handlers           *handlers.QueueHandler
	service            *services.Services
	processingTimeout  time.Duration
}

func New(cfg config.QueueConfig, service *services.Services) *Queues {
	executeQueueClient, err := client.NewQueueClient(cfg, client.ExecuteQueueName)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating ExecuteQueueClient")
	}
	eventQueueClient, err := client.NewQueueClient(cfg, client.EventQueueName)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating EventQueueClient")
	}
	service.SetEventPublisher(eventQueueClient)

	return &Queues{
		ExecuteQueueClient: executeQueueClient,
		EventQueueClient:   eventQueueClient,
		Handlers:           handlers.NewQueueHandler(service),
		service:            service,
		processingTimeout:  cfg.ProcessingTimeout,
	}
}

// Start all message processing
func (q *Queues) StartReceivingMessages() {
	startQueueMessageProcessing(
		q.ExecuteQueueClient, q.Handlers.ExecuteHandler, q.service,
		log.Logger, q.processingTimeout,
	)
}

// Turn off all message processing
func (q *Queues) StopReceivingMessages() {
	if err := q.ExecuteQueueClient.Stop(); err != nil {
		log.Error().Err(err).Str("queueName", q.ExecuteQueueClient.GetQueueName()).Msg("error while stopping queue")
	}
	if err := q.EventQueueClient.Stop(); err != nil {
		log.Error().Err(err).Str("queueName", q.EventQueueClient.GetQueueName()).Msg("error while stopping queue")
	}
}

// IsConnectionHealthy pings both queues. It backs the periodic health check.
func (q *Queues) IsConnectionHealthy() error {
	var errs []error
	for _, c := range []client.QueueClient{q.ExecuteQueueClient, q.EventQueueClient} {
		if err := c.Ping(); err != nil {
			errs = append(errs, fmt.Errorf("queue %s: %w", c.GetQueueName(), err))
		}
	}
	return errors.Join(errs...)
}

func startQueueMessageProcessing(
	queueClient client.QueueClient, handler MessageHandler, saver UnprocessableMessageSaver,
	logger zerolog.Logger, timeout time.Duration,
) {
	messagesChan, err := queueClient.ReceiveMessages()
	if err != nil {
		logger.Fatal().Err(err).Str("queueName", queueClient.GetQueueName()).Msg("error setting up message channel from queue")
	}

	go func() {
		for message := range messagesChan {
			processMessage(queueClient, handler, saver, logger, timeout, message)
		}
	}()
}

// processMessage acknowledges a message once it is handled or parked, and
// hands it back to the broker when the failure may be transient.
func processMessage(
	queueClient client.QueueClient, handler MessageHandler, saver UnprocessableMessageSaver,
	logger zerolog.Logger, timeout time.Duration, message client.QueueMessage,
) metrics.Outcome {
	// For each message, create a new context with a deadline or timeout
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	ctx = tracing.AttachTracingIntoContext(ctx)
	queueName := queueClient.GetQueueName()
	logger = logger.With().Str("queueName", queueName).Str("traceId", tracing.TraceId(ctx)).Logger()
	ctx = logger.WithContext(ctx)

	outcome := metrics.Success
	err := handler(ctx, message.Body)
	if err != nil {
		var serviceErr *types.Error
		if errors.As(err, &serviceErr) && serviceErr.IsClientError() {
			logger.Warn().Err(err).Msg("message rejected, saving as unprocessable")
			if saveErr := saver.SaveUnprocessableMessages(ctx, message.Body, message.Receipt); saveErr != nil {
				requeue(queueClient, logger, message)
				metrics.RecordQueueMessage(queueName, metrics.Error)
				return metrics.Error
			}
			outcome = metrics.Rejected
		} else {
			logger.Error().Err(err).Msg("error while processing message from queue")
			requeue(queueClient, logger, message)
			metrics.RecordQueueMessage(queueName, metrics.Error)
			return metrics.Error
		}
	}

	if delErr := queueClient.DeleteMessage(message.Receipt); delErr != nil {
		logger.Error().Err(delErr).Msg("error while deleting message from queue")
	}
	metrics.RecordQueueMessage(queueName, outcome)
	return outcome
}

func requeue(queueClient client.QueueClient, logger zerolog.Logger, message client.QueueMessage) {
	if err := queueClient.ReQueueMessage(message.Receipt); err != nil {
		logger.Error().Err(err).Msg("error while requeueing message")
	}
}
