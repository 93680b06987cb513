package client

import (
	"context"
)

type QueueMessage struct {
	Body    string
	Receipt string
}

// A common interface for queue clients regardless if it's a SQS, RabbitMQ, etc.
type QueueClient interface {
	SendMessage(ctx context.Context, messageBody string) error
	ReceiveMessages() (<-chan QueueMessage, error)
	// DeleteMessage acknowledges a message so it is not delivered again.
	DeleteMessage(receipt string) error
	// ReQueueMessage hands a message back to the broker for redelivery.
	ReQueueMessage(receipt string) error
	Stop() error
	GetQueueName() string
	Ping() error
}
