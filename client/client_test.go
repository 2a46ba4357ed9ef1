package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	gateway "github.com/caprim-labs/stellar-gateway"
	"github.com/caprim-labs/stellar-gateway/errors"
	"github.com/caprim-labs/stellar-gateway/server"
	"github.com/caprim-labs/stellar-gateway/store"
	"github.com/caprim-labs/stellar-gateway/store/memory"
)

const (
	testAddress = "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"
	testHash    = "9f2bcac40de171e5ebef02e4b08de33c4e80ae3c83acb0e5a42bb2526cbfe68a"
)

type fakePayments struct{}

func (fakePayments) CreateAccount(context.Context) (gateway.KeyPair, error) {
	return gateway.KeyPair{PublicKey: testAddress, SecretSeed: "SBFGFF27Y27EJX2RRNDVZZBIUXGTRSUR5WUJKJKKOEMKCGN2GZB4PBFG"}, nil
}

func (fakePayments) Balances(_ context.Context, address string) ([]gateway.Balance, error) {
	if address != testAddress {
		return nil, errors.NewLedgerError(errors.ACCOUNT_NOT_FOUND, "account not found", nil)
	}
	return []gateway.Balance{{Type: "native", Amount: "100.0000000"}}, nil
}

func (fakePayments) EstablishTrustline(_ context.Context, _, assetCode string) (string, error) {
	if assetCode == "FOO" {
		return "", errors.NewPaymentError(errors.UNKNOWN_ASSET, "asset FOO is not registered", nil)
	}
	return testHash, nil
}

func (fakePayments) SendXLM(context.Context, string, string, string) (string, error) {
	return testHash, nil
}

func (fakePayments) SendAsset(context.Context, string, string, string, string) (string, error) {
	return testHash, nil
}

func newGateway(t *testing.T) (*Client, *memory.StellarAccountStore, *memory.AssetStore) {
	t.Helper()
	accounts := memory.NewStellarAccountStore()
	assets := memory.NewAssetStore()
	srv := server.New(":0", server.Deps{
		Payments:     fakePayments{},
		Users:        memory.NewUserStore(),
		Accounts:     accounts,
		Transactions: memory.NewTransactionStore(),
		Rates:        memory.NewExchangeRateStore(),
		Assets:       assets,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL), accounts, assets
}

func TestClientRoundTrips(t *testing.T) {
	c, _, _ := newGateway(t)
	ctx := context.Background()

	pair, err := c.CreateAccount(ctx)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if pair.PublicKey != testAddress || pair.SecretSeed == "" {
		t.Fatalf("unexpected keypair %+v", pair)
	}

	balances, err := c.Balances(ctx, testAddress)
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if len(balances) != 1 || balances[0].AssetType != "native" {
		t.Fatalf("unexpected balances %+v", balances)
	}

	hash, err := c.EstablishTrustline(ctx, "S...", "USDC")
	if err != nil {
		t.Fatalf("trustline: %v", err)
	}
	if hash != testHash {
		t.Fatalf("hash = %q, want %q", hash, testHash)
	}

	if _, err := c.SendXLM(ctx, "S...", testAddress, "10"); err != nil {
		t.Fatalf("send xlm: %v", err)
	}
	if _, err := c.SendAsset(ctx, "S...", testAddress, "10", "USDC"); err != nil {
		t.Fatalf("send asset: %v", err)
	}
}

func TestClientSurfacesTaxonomyCodes(t *testing.T) {
	c, _, _ := newGateway(t)
	ctx := context.Background()

	_, err := c.Balances(ctx, "GUNKNOWN")
	if errors.CodeOf(err) != errors.ACCOUNT_NOT_FOUND {
		t.Fatalf("code = %s, want ACCOUNT_NOT_FOUND (err %v)", errors.CodeOf(err), err)
	}

	_, err = c.EstablishTrustline(ctx, "S...", "FOO")
	if errors.CodeOf(err) != errors.UNKNOWN_ASSET {
		t.Fatalf("code = %s, want UNKNOWN_ASSET (err %v)", errors.CodeOf(err), err)
	}

	_, err = c.SendXLM(ctx, "", testAddress, "10")
	if errors.CodeOf(err) != errors.VALIDATION_FAILED {
		t.Fatalf("code = %s, want VALIDATION_FAILED (err %v)", errors.CodeOf(err), err)
	}
}

func TestClientRecordTransaction(t *testing.T) {
	c, accounts, assets := newGateway(t)
	ctx := context.Background()

	asset := store.Asset{Code: "USDC", Type: "credit_alphanum4"}
	if err := assets.Create(ctx, &asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	account := store.StellarAccount{
		UserID:    uuid.New(),
		PublicKey: testAddress,
		KmsKeyArn: "arn:aws:kms:key/1",
		IsActive:  true,
	}
	if err := accounts.Create(ctx, &account); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	recorded, err := c.RecordTransaction(ctx, TransactionRecord{
		StellarAccountID: account.ID,
		StellarTxHash:    testHash,
		AssetID:          asset.ID,
		Type:             "payment",
		Amount:           decimal.RequireFromString("12.5"),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if recorded.ID == 0 || recorded.StellarTxHash != testHash {
		t.Fatalf("unexpected record %+v", recorded)
	}

	_, err = c.RecordTransaction(ctx, TransactionRecord{
		StellarAccountID: account.ID,
		StellarTxHash:    testHash,
		AssetID:          asset.ID,
		Type:             "payment",
		Amount:           decimal.RequireFromString("1"),
	})
	if errors.CodeOf(err) != errors.CONSTRAINT_ERROR {
		t.Fatalf("code = %s, want CONSTRAINT_ERROR", errors.CodeOf(err))
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_key":"` + testAddress + `","secret_seed":"S..."}`))
	}))
	t.Cleanup(ts.Close)

	c := New(ts.URL, WithMaxRetries(3), WithRetryBackoff(time.Millisecond))
	pair, err := c.CreateAccount(context.Background())
	if err != nil {
		t.Fatalf("create account after retries: %v", err)
	}
	if pair.PublicKey != testAddress {
		t.Fatalf("unexpected keypair %+v", pair)
	}
	if calls.Load() != 3 {
		t.Fatalf("server saw %d calls, want 3", calls.Load())
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"VALIDATION_FAILED","detail":"amount is required"}`))
	}))
	t.Cleanup(ts.Close)

	c := New(ts.URL, WithMaxRetries(3), WithRetryBackoff(time.Millisecond))
	_, err := c.SendXLM(context.Background(), "S...", testAddress, "")
	if errors.CodeOf(err) != errors.VALIDATION_FAILED {
		t.Fatalf("code = %s, want VALIDATION_FAILED", errors.CodeOf(err))
	}
	if calls.Load() != 1 {
		t.Fatalf("client retried a 400 response: %d calls", calls.Load())
	}
}
