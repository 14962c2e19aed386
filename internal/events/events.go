package events

import (
	"context"
	"log/slog"
	"time"
)

const (
	// TopicStatementCreated carries events for every committed statement.
	TopicStatementCreated = "statement_created"
)

// StatementCreated describes a statement that was appended to the ledger.
type StatementCreated struct {
	StatementID string    `json:"statement_id"`
	AccountID   string    `json:"account_id"`
	Kind        string    `json:"kind"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher delivers domain events to downstream systems.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

// LoggerPublisher is a stub implementation that writes events to the logger.
// Used in development and tests when no broker is configured.
type LoggerPublisher struct {
	logger *slog.Logger
}

// NewLoggerPublisher constructs a logging publisher stub.
func NewLoggerPublisher(logger *slog.Logger) *LoggerPublisher {
	return &LoggerPublisher{logger: logger}
}

// Publish writes the event to the structured logger.
func (p *LoggerPublisher) Publish(_ context.Context, topic string, event any) error {
	if p == nil || p.logger == nil {
		return nil
	}
	p.logger.Info("event published", "topic", topic, "event", event)
	return nil
}
