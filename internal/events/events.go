// Package events announces completed analyses on a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// RoutingAnalysisCompleted is the routing key for finished analyses.
const RoutingAnalysisCompleted = "analysis.completed"

// DefaultExchange is used when no exchange is configured.
const DefaultExchange = "resume_ats"

// AnalysisCompleted is the payload published after a successful analysis.
type AnalysisCompleted struct {
	AnalysisID      string    `json:"analysisId"`
	RequestID       string    `json:"requestId,omitempty"`
	JobRole         string    `json:"jobRole"`
	Company         string    `json:"company"`
	ATSScore        int       `json:"atsScore"`
	PotentialScore  int       `json:"potentialScore"`
	AdvisorFallback bool      `json:"advisorFallback"`
	Format          string    `json:"format"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// Publisher sends events.
type Publisher interface {
	PublishAnalysis(ctx context.Context, ev AnalysisCompleted) error
	Close() error
}

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes JSON events to a RabbitMQ topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch channel
}

// DialAMQP connects to url and declares the topic exchange.
func DialAMQP(url, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, exchange: exchange, ch: ch}, nil
}

// PublishAnalysis implements Publisher. The channel is not safe for
// concurrent use, so publishes are serialized.
func (p *AMQPPublisher) PublishAnalysis(ctx context.Context, ev AnalysisCompleted) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.Publish(p.exchange, RoutingAnalysisCompleted, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.AnalysisID,
		Timestamp:    ev.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", RoutingAnalysisCompleted, err)
	}
	return nil
}

// Close implements Publisher.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
