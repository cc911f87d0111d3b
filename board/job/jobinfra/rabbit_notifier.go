package jobinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/boardwalk-hq/boardwalk/board/job"
	"github.com/boardwalk-hq/boardwalk/pkg/kernel"
)

// Routing keys for job lifecycle events.
const (
	eventJobCreated = "job.created"
	eventJobUpdated = "job.updated"
	eventJobDeleted = "job.deleted"
)

// jobEvent is the wire shape of a published lifecycle event.
type jobEvent struct {
	Event    string    `json:"event"`
	JobID    string    `json:"job_id"`
	Title    string    `json:"title,omitempty"`
	Company  string    `json:"company,omitempty"`
	Location string    `json:"location,omitempty"`
	JobType  string    `json:"job_type,omitempty"`
	Actor    string    `json:"actor,omitempty"`
	At       time.Time `json:"at"`
}

// RabbitNotifier implements job.Notifier over a RabbitMQ topic exchange
type RabbitNotifier struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewRabbitNotifier dials the broker and declares the topic exchange
func NewRabbitNotifier(url, exchange string) (*RabbitNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitNotifier{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// JobCreated publishes a job.created event
func (n *RabbitNotifier) JobCreated(ctx context.Context, j *job.Job) error {
	return n.publish(ctx, eventJobCreated, jobEvent{
		Event:    eventJobCreated,
		JobID:    j.ID.String(),
		Title:    j.Title.String(),
		Company:  j.Company.String(),
		Location: j.Location.String(),
		JobType:  j.JobType.String(),
		Actor:    j.PostedBy.String(),
		At:       time.Now(),
	})
}

// JobUpdated publishes a job.updated event
func (n *RabbitNotifier) JobUpdated(ctx context.Context, j *job.Job) error {
	return n.publish(ctx, eventJobUpdated, jobEvent{
		Event:    eventJobUpdated,
		JobID:    j.ID.String(),
		Title:    j.Title.String(),
		Company:  j.Company.String(),
		Location: j.Location.String(),
		JobType:  j.JobType.String(),
		Actor:    j.PostedBy.String(),
		At:       time.Now(),
	})
}

// JobDeleted publishes a job.deleted event
func (n *RabbitNotifier) JobDeleted(ctx context.Context, jobID kernel.JobID, actor kernel.UserID) error {
	return n.publish(ctx, eventJobDeleted, jobEvent{
		Event: eventJobDeleted,
		JobID: jobID.String(),
		Actor: actor.String(),
		At:    time.Now(),
	})
}

func (n *RabbitNotifier) publish(ctx context.Context, routingKey string, event jobEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	err = n.channel.PublishWithContext(
		ctx,
		n.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", routingKey, err)
	}

	return nil
}

// Close closes the channel and the underlying connection
func (n *RabbitNotifier) Close() error {
	if n.channel != nil {
		if err := n.channel.Close(); err != nil {
			return fmt.Errorf("failed to close channel: %w", err)
		}
	}
	if n.conn != nil {
		if err := n.conn.Close(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}
	return nil
}
