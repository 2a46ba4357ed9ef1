package observer

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caprim-labs/stellar-gateway/events"
	"github.com/caprim-labs/stellar-gateway/store"
	"github.com/caprim-labs/stellar-gateway/store/memory"
)

const (
	mirroredKey = "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"
	paymentHash = "7b33f5fb59c3b4adbd04322d6f793e7b0b7b95224b5d823b0f67e9c975f8c42e"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []events.TransactionRecorded
}

func (p *capturePublisher) Publish(_ context.Context, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event.(events.TransactionRecorded))
	return nil
}

type recorderFixture struct {
	recorder     *Recorder
	accounts     *memory.StellarAccountStore
	transactions *memory.TransactionStore
	publisher    *capturePublisher
	accountID    uuid.UUID
}

func newRecorderFixture(t *testing.T) *recorderFixture {
	t.Helper()
	accounts := memory.NewStellarAccountStore()
	transactions := memory.NewTransactionStore()
	assets := memory.NewAssetStore()
	publisher := &capturePublisher{}

	for _, a := range []store.Asset{
		{Code: "XLM", Type: "native"},
		{Code: "USDC", Type: "credit_alphanum4"},
	} {
		asset := a
		if err := assets.Create(context.Background(), &asset); err != nil {
			t.Fatalf("seed asset: %v", err)
		}
	}

	account := store.StellarAccount{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		PublicKey: mirroredKey,
		KmsKeyArn: "arn:aws:kms:key/1",
		IsActive:  true,
	}
	if err := accounts.Create(context.Background(), &account); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	return &recorderFixture{
		recorder:     NewRecorder(accounts, transactions, assets, publisher, nil),
		accounts:     accounts,
		transactions: transactions,
		publisher:    publisher,
		accountID:    account.ID,
	}
}

func TestRecorderMirrorsInboundPayment(t *testing.T) {
	f := newRecorderFixture(t)

	err := f.recorder.Handle(PaymentEvent{
		ID:              "op-1",
		From:            "GEXTERNAL",
		To:              mirroredKey,
		Asset:           "USDC:GISSUER",
		Amount:          "42.5000000",
		TransactionHash: paymentHash,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	recorded, err := f.transactions.GetByHash(context.Background(), paymentHash)
	if err != nil {
		t.Fatalf("mirror row missing: %v", err)
	}
	if recorded.StellarAccountID != f.accountID {
		t.Fatalf("row belongs to %s, want %s", recorded.StellarAccountID, f.accountID)
	}
	if recorded.Type != "payment_received" {
		t.Fatalf("type = %q", recorded.Type)
	}
	if !recorded.Amount.Equal(decimal.RequireFromString("42.5")) {
		t.Fatalf("amount = %s, want 42.5", recorded.Amount)
	}

	if len(f.publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(f.publisher.events))
	}
	if f.publisher.events[0].AssetCode != "USDC" || f.publisher.events[0].StellarTxHash != paymentHash {
		t.Fatalf("unexpected event %+v", f.publisher.events[0])
	}
}

func TestRecorderIgnoresUnmirroredDestination(t *testing.T) {
	f := newRecorderFixture(t)

	err := f.recorder.Handle(PaymentEvent{
		To:              "GSOMEONEELSE",
		Asset:           "native",
		Amount:          "10.0000000",
		TransactionHash: paymentHash,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if list, _ := f.transactions.List(context.Background()); len(list) != 0 {
		t.Fatalf("recorded %d rows for an unmirrored account", len(list))
	}
	if len(f.publisher.events) != 0 {
		t.Fatalf("published %d events, want 0", len(f.publisher.events))
	}
}

func TestRecorderNativePaymentStoredAsXLM(t *testing.T) {
	f := newRecorderFixture(t)

	err := f.recorder.Handle(PaymentEvent{
		To:              mirroredKey,
		Asset:           "native",
		Amount:          "3.0000000",
		TransactionHash: paymentHash,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if f.publisher.events[0].AssetCode != "XLM" {
		t.Fatalf("asset code = %q, want XLM", f.publisher.events[0].AssetCode)
	}
}

func TestRecorderSkipsReplayedHash(t *testing.T) {
	f := newRecorderFixture(t)

	evt := PaymentEvent{
		To:              mirroredKey,
		Asset:           "USDC:GISSUER",
		Amount:          "1.0000000",
		TransactionHash: paymentHash,
	}
	if err := f.recorder.Handle(evt); err != nil {
		t.Fatalf("first handle: %v", err)
	}
	if err := f.recorder.Handle(evt); err != nil {
		t.Fatalf("replay should be silent, got %v", err)
	}

	list, _ := f.transactions.List(context.Background())
	if len(list) != 1 {
		t.Fatalf("recorded %d rows, want 1", len(list))
	}
	if len(f.publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(f.publisher.events))
	}
}

func TestPaymentFilters(t *testing.T) {
	evt := PaymentEvent{
		From:   "GALICE",
		To:     "GBOB",
		Asset:  "USDC:GISSUER",
		Amount: "25.0000000",
	}

	if !WithAsset("USDC:GISSUER")(evt) || WithAsset("native")(evt) {
		t.Fatal("asset filter mismatch")
	}
	if !WithDestination("GBOB")(evt) || WithDestination("GALICE")(evt) {
		t.Fatal("destination filter mismatch")
	}
	if !WithSource("GALICE")(evt) || WithSource("GBOB")(evt) {
		t.Fatal("source filter mismatch")
	}
	if !WithAccount("GALICE")(evt) || !WithAccount("GBOB")(evt) || WithAccount("GEVE")(evt) {
		t.Fatal("account filter mismatch")
	}
	if !WithMinAmount(decimal.RequireFromString("25"))(evt) {
		t.Fatal("exact minimum should match")
	}
	if WithMinAmount(decimal.RequireFromString("25.0000001"))(evt) {
		t.Fatal("amount below minimum matched")
	}
}
