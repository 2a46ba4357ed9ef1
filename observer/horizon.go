package observer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/stellar/go-stellar-sdk/clients/horizonclient"
	"github.com/stellar/go-stellar-sdk/protocols/horizon/base"
	"github.com/stellar/go-stellar-sdk/protocols/horizon/operations"

	"github.com/caprim-labs/stellar-gateway/errors"
)

// HorizonObserver implements Observer by streaming payment operations from a
// Horizon server.
type HorizonObserver struct {
	client      *horizonclient.Client
	logger      *slog.Logger
	handlers    []handlerEntry
	cursor      string
	cursorSaver func(string) error

	initialBackoff time.Duration
	maxBackoff     time.Duration

	mu       sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once
	running  bool
}

// Option configures a HorizonObserver.
type Option func(*HorizonObserver)

// WithCursor sets the starting cursor. "now" skips historical payments; a
// stored paging token resumes a previous stream.
func WithCursor(cursor string) Option {
	return func(h *HorizonObserver) {
		h.cursor = cursor
	}
}

// WithCursorSaver sets a callback invoked with the paging token of each
// processed payment so the position can survive restarts.
func WithCursorSaver(saver func(string) error) Option {
	return func(h *HorizonObserver) {
		h.cursorSaver = saver
	}
}

// WithReconnectBackoff overrides the reconnect backoff bounds. Defaults are
// 1s initial, 60s maximum.
func WithReconnectBackoff(initial, max time.Duration) Option {
	return func(h *HorizonObserver) {
		h.initialBackoff = initial
		h.maxBackoff = max
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *HorizonObserver) {
		h.logger = logger
	}
}

// NewHorizonObserver creates an observer streaming from the given Horizon
// URL. The default cursor is "now".
func NewHorizonObserver(horizonURL string, opts ...Option) *HorizonObserver {
	obs := &HorizonObserver{
		client:         &horizonclient.Client{HorizonURL: horizonURL},
		logger:         slog.Default(),
		cursor:         "now",
		initialBackoff: time.Second,
		maxBackoff:     60 * time.Second,
		stopChan:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(obs)
	}
	return obs
}

func (h *HorizonObserver) OnPayment(handler PaymentHandler, filters ...PaymentFilter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = append(h.handlers, handlerEntry{handler: handler, filters: filters})
}

// Start streams payment operations until the context is cancelled or Stop is
// called. Stream failures reconnect with exponential backoff from the last
// processed cursor.
func (h *HorizonObserver) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return errors.NewLedgerError(errors.INTERNAL, "observer already running", nil)
	}
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	backoff := h.initialBackoff
	for {
		select {
		case <-h.stopChan:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		h.mu.RLock()
		cursor := h.cursor
		h.mu.RUnlock()

		request := horizonclient.OperationRequest{
			Cursor: cursor,
			Order:  horizonclient.OrderAsc,
		}
		err := h.client.StreamPayments(ctx, request, func(op operations.Operation) {
			backoff = h.initialBackoff

			evt := paymentEventFrom(op)
			if evt == nil {
				return
			}
			h.processEvent(*evt)

			h.mu.Lock()
			h.cursor = evt.Cursor
			h.mu.Unlock()
			if h.cursorSaver != nil {
				if err := h.cursorSaver(evt.Cursor); err != nil {
					h.logger.Error("cursor save failed", "cursor", evt.Cursor, "error", err.Error())
				}
			}
		})
		if err == nil {
			return nil
		}

		select {
		case <-h.stopChan:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		h.logger.Warn("payment stream interrupted", "error", err.Error(), "retry_in", backoff.String())
		select {
		case <-time.After(backoff):
		case <-h.stopChan:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
		backoff *= 2
		if backoff > h.maxBackoff {
			backoff = h.maxBackoff
		}
	}
}

func (h *HorizonObserver) Stop() error {
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
	return nil
}

// paymentEventFrom flattens a Horizon operation into a PaymentEvent. It
// returns nil for operation types that do not move funds between two
// accounts in a way the gateway tracks.
func paymentEventFrom(op operations.Operation) *PaymentEvent {
	b := op.GetBase()
	evt := &PaymentEvent{
		ID:              b.ID,
		Cursor:          b.PT,
		TransactionHash: b.TransactionHash,
	}

	switch op.GetType() {
	case "payment":
		payment, ok := op.(operations.Payment)
		if !ok {
			return nil
		}
		evt.From = payment.From
		evt.To = payment.To
		evt.Amount = payment.Amount
		evt.Asset = formatAsset(payment.Asset)
	case "create_account":
		// Account creation funds the new account and counts as an inbound
		// native payment.
		create, ok := op.(operations.CreateAccount)
		if !ok {
			return nil
		}
		evt.From = create.Funder
		evt.To = create.Account
		evt.Amount = create.StartingBalance
		evt.Asset = "native"
	default:
		// Path payments and merges need effect lookups for exact amounts;
		// they are out of scope for mirror reconciliation.
		return nil
	}
	return evt
}

func formatAsset(asset base.Asset) string {
	if asset.Type == "native" {
		return "native"
	}
	return fmt.Sprintf("%s:%s", asset.Code, asset.Issuer)
}

func (h *HorizonObserver) processEvent(evt PaymentEvent) {
	h.mu.RLock()
	handlers := h.handlers
	h.mu.RUnlock()

	for _, entry := range handlers {
		matched := true
		for _, filter := range entry.filters {
			if !filter(evt) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if err := entry.handler(evt); err != nil {
			h.logger.Error("payment handler failed", "operation", evt.ID, "error", err.Error())
		}
	}
}

var _ Observer = (*HorizonObserver)(nil)
