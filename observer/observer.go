// Package observer watches the Stellar ledger for payment activity touching
// custodial accounts. It streams payment operations from Horizon and feeds
// them through typed handlers with filtering, cursor persistence for
// resumability, and reconnection with exponential backoff.
//
// The gateway uses it to reconcile mirror rows: payments received by mirrored
// accounts are recorded in the transactions table and announced on the event
// bus without any caller involvement.
package observer

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentEvent is a payment operation streamed from Horizon, flattened to
// the fields the gateway cares about.
type PaymentEvent struct {
	// ID is the Horizon operation id.
	ID string

	// From and To are the ledger public keys of the two parties.
	From string
	To   string

	// Asset is "native" for lumens or "CODE:ISSUER" for issued assets.
	Asset string

	// Amount is the 7 decimal place amount string Horizon reports.
	Amount string

	// Memo is the transaction memo, empty when absent.
	Memo string

	// Cursor is the paging token of this operation, used to resume streams.
	Cursor string

	// TransactionHash identifies the enclosing transaction.
	TransactionHash string
}

// PaymentHandler processes one PaymentEvent. Handlers run sequentially for
// each payment that passes the registered filters; a handler error is logged
// and streaming continues.
type PaymentHandler func(PaymentEvent) error

// PaymentFilter reports whether a PaymentEvent should reach a handler.
type PaymentFilter func(PaymentEvent) bool

type handlerEntry struct {
	handler PaymentHandler
	filters []PaymentFilter
}

// Observer streams ledger payment activity into registered handlers.
type Observer interface {
	// OnPayment registers a handler with optional filters. Filters are ANDed.
	OnPayment(handler PaymentHandler, filters ...PaymentFilter)

	// Start blocks and streams until the context is cancelled or Stop is
	// called, reconnecting with exponential backoff on stream failures.
	Start(ctx context.Context) error

	// Stop ends streaming. Safe to call more than once.
	Stop() error
}

// WithAsset matches payments of one asset. Use "native" for lumens or
// "CODE:ISSUER" for issued assets.
func WithAsset(asset string) PaymentFilter {
	return func(evt PaymentEvent) bool {
		return evt.Asset == asset
	}
}

// WithMinAmount matches payments of at least min. Amounts are compared as
// exact decimals; unparseable events never match.
func WithMinAmount(min decimal.Decimal) PaymentFilter {
	return func(evt PaymentEvent) bool {
		amount, err := decimal.NewFromString(evt.Amount)
		if err != nil {
			return false
		}
		return !amount.LessThan(min)
	}
}

// WithAccount matches payments sent to or from the account.
func WithAccount(address string) PaymentFilter {
	return func(evt PaymentEvent) bool {
		return evt.From == address || evt.To == address
	}
}

// WithDestination matches payments received by the account.
func WithDestination(address string) PaymentFilter {
	return func(evt PaymentEvent) bool {
		return evt.To == address
	}
}

// WithSource matches payments sent by the account.
func WithSource(address string) PaymentFilter {
	return func(evt PaymentEvent) bool {
		return evt.From == address
	}
}
