// Package events publishes gateway domain events for downstream consumers
// (reconciliation, notifications). Publishing is best-effort: a failed
// publish is logged by the caller and never fails the originating request.
package events

import (
	"context"
	"time"
)

// Topic names.
const (
	TopicTransactionRecorded = "gateway.transaction.recorded"
)

// TransactionRecorded is emitted after a mirror transaction row is created.
type TransactionRecorded struct {
	TransactionID    int64     `json:"transaction_id"`
	StellarAccountID string    `json:"stellar_account_id"`
	StellarTxHash    string    `json:"stellar_tx_hash"`
	AssetCode        string    `json:"asset_code,omitempty"`
	Type             string    `json:"type"`
	Amount           string    `json:"amount"`
	ProcessedAt      time.Time `json:"processed_at"`
}

// Publisher sends a domain event to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
}

// Noop discards all events. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
