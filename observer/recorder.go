package observer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/caprim-labs/stellar-gateway/errors"
	"github.com/caprim-labs/stellar-gateway/events"
	"github.com/caprim-labs/stellar-gateway/store"
)

// Recorder turns payments received by mirrored custodial accounts into
// mirror transaction rows and emits recorded events for them.
//
// Payments to addresses without a mirror row are ignored, as are replays of
// a hash that was already recorded, so the recorder is safe to run against a
// resumed cursor.
type Recorder struct {
	accounts     store.StellarAccounts
	transactions store.Transactions
	assets       store.Assets
	publisher    events.Publisher
	logger       *slog.Logger
}

func NewRecorder(accounts store.StellarAccounts, transactions store.Transactions, assets store.Assets, publisher events.Publisher, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Recorder{
		accounts:     accounts,
		transactions: transactions,
		assets:       assets,
		publisher:    publisher,
		logger:       logger,
	}
}

// RecordMirroredPayments registers the recorder on the observer. Every
// streamed payment is offered; the recorder decides what to keep.
func RecordMirroredPayments(obs Observer, recorder *Recorder) {
	obs.OnPayment(recorder.Handle)
}

// Handle processes one streamed payment. It satisfies PaymentHandler.
func (r *Recorder) Handle(evt PaymentEvent) error {
	ctx := context.Background()

	account, err := r.accounts.GetByPublicKey(ctx, evt.To)
	if err != nil {
		if errors.CodeOf(err) == errors.NOT_FOUND {
			return nil
		}
		return err
	}

	code := assetCode(evt.Asset)
	asset, err := r.assets.GetByCode(ctx, code)
	if err != nil {
		r.logger.Warn("payment to mirrored account uses an unregistered asset",
			"account", evt.To,
			"asset", evt.Asset,
			"hash", evt.TransactionHash)
		return nil
	}

	amount, err := decimal.NewFromString(evt.Amount)
	if err != nil {
		r.logger.Error("unparseable payment amount",
			"operation", evt.ID,
			"amount", evt.Amount)
		return nil
	}

	transaction := store.Transaction{
		StellarAccountID: account.ID,
		StellarTxHash:    evt.TransactionHash,
		AssetID:          asset.ID,
		Type:             "payment_received",
		Amount:           amount,
		ProcessedAt:      time.Now().UTC(),
	}
	if err := r.transactions.Create(ctx, &transaction); err != nil {
		// A replayed cursor delivers payments we already recorded.
		if errors.CodeOf(err) == errors.CONSTRAINT_ERROR {
			return nil
		}
		return err
	}

	r.logger.Info("inbound payment recorded",
		"account", evt.To,
		"asset", code,
		"amount", evt.Amount,
		"hash", evt.TransactionHash)

	event := events.TransactionRecorded{
		TransactionID:    transaction.ID,
		StellarAccountID: account.ID.String(),
		StellarTxHash:    transaction.StellarTxHash,
		AssetCode:        code,
		Type:             transaction.Type,
		Amount:           transaction.Amount.String(),
		ProcessedAt:      transaction.ProcessedAt,
	}
	if err := r.publisher.Publish(ctx, events.TopicTransactionRecorded, event); err != nil {
		r.logger.Error("transaction recorded event dropped",
			"hash", transaction.StellarTxHash,
			"error", err.Error())
	}
	return nil
}

// assetCode maps the stream's asset notation to a stored asset code.
// "native" is stored as XLM; issued assets drop the issuer suffix.
func assetCode(asset string) string {
	if asset == "native" {
		return "XLM"
	}
	if i := strings.IndexByte(asset, ':'); i > 0 {
		return asset[:i]
	}
	return asset
}
