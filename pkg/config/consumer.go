package config

import (
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewConsumer(queueName string) (*Consumer, error) {
	ch, err := RabbitMQ.Channel()
	if err != nil {
		return nil, err
	}

	// Snapshot upserts hit the database; one unacked message at a time
	// keeps the worker from hammering it after a backlog.
	if err := ch.Qos(1, 0, false); err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		conn:    RabbitMQ,
		channel: ch,
		queue:   q.Name,
	}, nil
}

// Consume blocks, delivering each message body to handler. A failed
// message is requeued once; if it fails again on redelivery it is
// dropped so a poison snapshot cannot wedge the queue.
func (c *Consumer) Consume(handler func([]byte) error) error {
	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return err
	}

	forever := make(chan bool)

	go func() {
		for msg := range msgs {
			if err := handler(msg.Body); err != nil {
				if msg.Redelivered {
					log.Printf("Dropping snapshot after second failure: %v", err)
					msg.Nack(false, false)
				} else {
					log.Printf("Handle snapshot failed, requeueing: %v", err)
					msg.Nack(false, true)
				}
				continue
			}
			msg.Ack(false)
		}
	}()

	<-forever
	return nil
}

// Close closes the consumer channel
func (c *Consumer) Close() error {
	if c.channel != nil {
		return c.channel.Close()
	}
	return nil
}
