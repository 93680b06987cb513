package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rabbitmq/amqp091-go"

	"github.com/babylonchain/staking-ledger-service/internal/config"
)

type RabbitMqClient struct {
	connection *amqp091.Connection
	channel    *amqp091.Channel
	queueName  string
	stopCh     chan struct{}
	stopOnce   sync.Once
}

func NewQueueClient(cfg config.QueueConfig, queueName string) (*RabbitMqClient, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url)

	conn, err := amqp091.Dial(amqpURI)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // nolint:errcheck
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		amqp091.Table{"x-queue-type": "quorum"},
	)
	if err != nil {
		conn.Close() // nolint:errcheck
		return nil, err
	}

	return &RabbitMqClient{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
		stopCh:     make(chan struct{}),
	}, nil
}

func (c *RabbitMqClient) ReceiveMessages() (<-chan QueueMessage, error) {
	msgs, err := c.channel.Consume(
		c.queueName,
		"",    // consumer
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}

	output := make(chan QueueMessage)
	go func() {
		defer close(output)
		for {
			select {
			case d, ok := <-msgs:
				if !ok {
					return
				}
				message := QueueMessage{
					Body:    string(d.Body),
					Receipt: strconv.FormatUint(d.DeliveryTag, 10),
				}
				select {
				case output <- message:
				case <-c.stopCh:
					return
				}
			case <-c.stopCh:
				return
			}
		}
	}()

	return output, nil
}

func (c *RabbitMqClient) DeleteMessage(receipt string) error {
	deliveryTag, err := strconv.ParseUint(receipt, 10, 64)
	if err != nil {
		return err
	}
	return c.channel.Ack(deliveryTag, false)
}

func (c *RabbitMqClient) ReQueueMessage(receipt string) error {
	deliveryTag, err := strconv.ParseUint(receipt, 10, 64)
	if err != nil {
		return err
	}
	return c.channel.Nack(deliveryTag, false, true)
}

func (c *RabbitMqClient) SendMessage(ctx context.Context, messageBody string) error {
	return c.channel.PublishWithContext(
		ctx,
		"",          // default exchange routes by queue name
		c.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp091.Publishing{
			DeliveryMode: amqp091.Persistent,
			ContentType:  "application/json",
			Body:         []byte(messageBody),
		},
	)
}

func (c *RabbitMqClient) Stop() error {
	c.stopOnce.Do(func() { close(c.stopCh) })
	if err := c.channel.Close(); err != nil && !errors.Is(err, amqp091.ErrClosed) {
		return err
	}
	if err := c.connection.Close(); err != nil && !errors.Is(err, amqp091.ErrClosed) {
		return err
	}
	return nil
}

func (c *RabbitMqClient) GetQueueName() string {
	return c.queueName
}

func (c *RabbitMqClient) Ping() error {
	if c.connection.IsClosed() {
		return fmt.Errorf("rabbitmq connection closed for queue %s", c.queueName)
	}
	return nil
}
