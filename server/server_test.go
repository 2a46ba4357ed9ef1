package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	gateway "github.com/caprim-labs/stellar-gateway"
	"github.com/caprim-labs/stellar-gateway/errors"
	"github.com/caprim-labs/stellar-gateway/events"
	"github.com/caprim-labs/stellar-gateway/store"
	"github.com/caprim-labs/stellar-gateway/store/memory"
)

const (
	testHash    = "2f4068bd2c1f53088a6aa9cd0a21f9829e2a158d48f455b6c1f0146c70c45f0a"
	testAddress = "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"
)

// stubPayments scripts the orchestrator surface so handler tests exercise
// status mapping without a ledger.
type stubPayments struct {
	createErr error
	balances  map[string][]gateway.Balance
	sendErr   error
	lastAsset string
}

func (p *stubPayments) CreateAccount(context.Context) (gateway.KeyPair, error) {
	if p.createErr != nil {
		return gateway.KeyPair{}, p.createErr
	}
	return gateway.KeyPair{PublicKey: testAddress, SecretSeed: "SCZANGBA5YHTNYVVV4C3U252E2B6P6F5T3U6MM63WBSBZATAQI3EBTQ4"}, nil
}

func (p *stubPayments) Balances(_ context.Context, address string) ([]gateway.Balance, error) {
	balances, ok := p.balances[address]
	if !ok {
		return nil, errors.NewLedgerError(errors.ACCOUNT_NOT_FOUND,
			fmt.Sprintf("account %s not found", address), nil)
	}
	return balances, nil
}

func (p *stubPayments) EstablishTrustline(_ context.Context, _, assetCode string) (string, error) {
	if p.sendErr != nil {
		return "", p.sendErr
	}
	p.lastAsset = assetCode
	return testHash, nil
}

func (p *stubPayments) SendXLM(context.Context, string, string, string) (string, error) {
	if p.sendErr != nil {
		return "", p.sendErr
	}
	return testHash, nil
}

func (p *stubPayments) SendAsset(_ context.Context, _, _, _, assetCode string) (string, error) {
	if p.sendErr != nil {
		return "", p.sendErr
	}
	p.lastAsset = assetCode
	return testHash, nil
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	topics []string
	events []any
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func newTestServer(t *testing.T, payments Payments) (*Server, *capturePublisher) {
	t.Helper()
	publisher := &capturePublisher{}
	srv := New(":0", Deps{
		Payments:     payments,
		Users:        memory.NewUserStore(),
		Accounts:     memory.NewStellarAccountStore(),
		Transactions: memory.NewTransactionStore(),
		Rates:        memory.NewExchangeRateStore(),
		Assets:       memory.NewAssetStore(),
		Publisher:    publisher,
	})
	return srv, publisher
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code errors.Code) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var resp errorResponse
	decodeResponse(t, rec, &resp)
	if resp.Code != string(code) {
		t.Fatalf("error code = %q, want %q", resp.Code, code)
	}
}

func TestCreateAccountEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubPayments{})

	rec := doJSON(t, srv, http.MethodGet, "/api/account", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp keyPairResponse
	decodeResponse(t, rec, &resp)
	if resp.PublicKey == "" || resp.SecretSeed == "" {
		t.Fatalf("keypair fields missing in %+v", resp)
	}
}

func TestBalancesEndpointStatusMapping(t *testing.T) {
	payments := &stubPayments{balances: map[string][]gateway.Balance{
		testAddress: {
			{Type: "native", Amount: "100.0000000"},
			{Type: "credit_alphanum4", Code: "USDC", Issuer: testAddress, Amount: "25.0000000"},
		},
	}}
	srv, _ := newTestServer(t, payments)

	rec := doJSON(t, srv, http.MethodGet, "/api/account/"+testAddress, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var balances []balanceResponse
	decodeResponse(t, rec, &balances)
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	if balances[0].AssetType != "native" || balances[1].AssetCode != "USDC" {
		t.Fatalf("unexpected balances %+v", balances)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/account/GUNKNOWN", nil)
	assertErrorCode(t, rec, http.StatusNotFound, errors.ACCOUNT_NOT_FOUND)
}

func TestBalancesLegacyQueryParameter(t *testing.T) {
	payments := &stubPayments{balances: map[string][]gateway.Balance{
		testAddress: {{Type: "native", Amount: "5.0000000"}},
	}}
	srv, _ := newTestServer(t, payments)

	rec := doJSON(t, srv, http.MethodGet, "/api/account/AccountId?accountId="+testAddress, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestTrustlineEndpoint(t *testing.T) {
	payments := &stubPayments{}
	srv, _ := newTestServer(t, payments)

	rec := doJSON(t, srv, http.MethodPost, "/api/trustline", establishTrustlineRequest{
		SecretSeed: "SCZANGBA5YHTNYVVV4C3U252E2B6P6F5T3U6MM63WBSBZATAQI3EBTQ4",
		AssetCode:  "USDC",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var resp transactionHashResponse
	decodeResponse(t, rec, &resp)
	if resp.Hash != testHash {
		t.Fatalf("hash = %q, want %q", resp.Hash, testHash)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/trustline", establishTrustlineRequest{SecretSeed: "S..."})
	assertErrorCode(t, rec, http.StatusBadRequest, errors.VALIDATION_FAILED)

	payments.sendErr = errors.NewPaymentError(errors.UNKNOWN_ASSET, "asset FOO is not registered", nil)
	rec = doJSON(t, srv, http.MethodPost, "/api/trustline", establishTrustlineRequest{
		SecretSeed: "S...",
		AssetCode:  "FOO",
	})
	assertErrorCode(t, rec, http.StatusBadRequest, errors.UNKNOWN_ASSET)
}

func TestSendEndpointsMapDomainFailures(t *testing.T) {
	cases := []struct {
		name string
		err  *errors.GatewayError
		code errors.Code
	}{
		{"missing trustline", errors.NewPaymentError(errors.TRUSTLINE_MISSING, "establish the trustline first", nil), errors.TRUSTLINE_MISSING},
		{"insufficient funds", errors.NewPaymentError(errors.INSUFFICIENT_FUNDS, "balance too low", nil), errors.INSUFFICIENT_FUNDS},
		{"rejected by ledger", errors.NewLedgerError(errors.SUBMISSION_REJECTED, "tx_bad_seq", nil), errors.SUBMISSION_REJECTED},
		{"bad destination", errors.NewPaymentError(errors.VALIDATION_FAILED, "destination account does not exist", nil), errors.VALIDATION_FAILED},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t, &stubPayments{sendErr: tc.err})
			rec := doJSON(t, srv, http.MethodPost, "/api/transaction/send-asset", sendAssetRequest{
				SourceSecretSeed:     "S...",
				DestinationAccountID: testAddress,
				Amount:               "10",
				AssetCode:            "USDC",
			})
			assertErrorCode(t, rec, http.StatusBadRequest, tc.code)
		})
	}
}

func TestSendUSDCForcesAssetCode(t *testing.T) {
	payments := &stubPayments{}
	srv, _ := newTestServer(t, payments)

	rec := doJSON(t, srv, http.MethodPost, "/api/transaction/send-usdc", sendXLMRequest{
		SourceSecretSeed:     "S...",
		DestinationAccountID: testAddress,
		Amount:               "10",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if payments.lastAsset != "USDC" {
		t.Fatalf("asset = %q, want USDC", payments.lastAsset)
	}
}

func TestSendXLMRejectsMissingFields(t *testing.T) {
	srv, _ := newTestServer(t, &stubPayments{})

	rec := doJSON(t, srv, http.MethodPost, "/api/transaction/send-xlm", sendXLMRequest{
		DestinationAccountID: testAddress,
		Amount:               "10",
	})
	assertErrorCode(t, rec, http.StatusBadRequest, errors.VALIDATION_FAILED)
	if !strings.Contains(rec.Body.String(), "source_secret_seed") {
		t.Fatalf("detail should name the missing field, got %s", rec.Body.String())
	}
}

func TestUserLifecycleOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, &stubPayments{})

	rec := doJSON(t, srv, http.MethodPost, "/api/users", createUserRequest{
		CognitoSub:   "sub-1",
		Email:        "ada@example.com",
		UserStatusID: 1,
		KycLevelID:   1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var created userResponse
	decodeResponse(t, rec, &created)

	rec = doJSON(t, srv, http.MethodPost, "/api/users", createUserRequest{
		CognitoSub:   "sub-1",
		Email:        "other@example.com",
		UserStatusID: 1,
		KycLevelID:   1,
	})
	assertErrorCode(t, rec, http.StatusBadRequest, errors.CONSTRAINT_ERROR)

	rec = doJSON(t, srv, http.MethodGet, "/api/users/by-cognito-sub/sub-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("lookup status = %d, want 200", rec.Code)
	}

	newEmail := "ada@caprim.io"
	rec = doJSON(t, srv, http.MethodPut, "/api/users/"+created.ID.String(), updateUserRequest{Email: &newEmail})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var updated userResponse
	decodeResponse(t, rec, &updated)
	if updated.Email != newEmail {
		t.Fatalf("email = %q, want %q", updated.Email, newEmail)
	}
	if updated.CognitoSub != "sub-1" {
		t.Fatalf("partial update touched cognito_sub: %q", updated.CognitoSub)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/users/"+created.ID.String(), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/users/"+created.ID.String(), nil)
	assertErrorCode(t, rec, http.StatusNotFound, errors.NOT_FOUND)

	rec = doJSON(t, srv, http.MethodGet, "/api/users/not-a-uuid", nil)
	assertErrorCode(t, rec, http.StatusBadRequest, errors.VALIDATION_FAILED)
}

func TestTransactionCreatePublishesRecordedEvent(t *testing.T) {
	srv, publisher := newTestServer(t, &stubPayments{})

	asset := store.Asset{Code: "USDC", Type: "credit_alphanum4"}
	if err := srv.assets.Create(context.Background(), &asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	account := store.StellarAccount{PublicKey: testAddress, KmsKeyArn: "arn:aws:kms:key/1"}
	rec := doJSON(t, srv, http.MethodPost, "/api/stellar-accounts", createStellarAccountRequest{
		UserID:    mustNewUserID(t, srv),
		PublicKey: account.PublicKey,
		KmsKeyArn: account.KmsKeyArn,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("account status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var mirrored stellarAccountResponse
	decodeResponse(t, rec, &mirrored)

	rec = doJSON(t, srv, http.MethodPost, "/api/transactions", createTransactionRequest{
		StellarAccountID: mirrored.ID,
		StellarTxHash:    testHash,
		AssetID:          asset.ID,
		Type:             "payment",
		Amount:           decimal.RequireFromString("42.5"),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("transaction status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	if len(publisher.topics) != 1 || publisher.topics[0] != events.TopicTransactionRecorded {
		t.Fatalf("published topics = %v, want [%s]", publisher.topics, events.TopicTransactionRecorded)
	}
	event, ok := publisher.events[0].(events.TransactionRecorded)
	if !ok {
		t.Fatalf("event type = %T", publisher.events[0])
	}
	if event.StellarTxHash != testHash || event.AssetCode != "USDC" || event.Amount != "42.5" {
		t.Fatalf("unexpected event %+v", event)
	}

	// Same hash again violates uniqueness and publishes nothing further.
	rec = doJSON(t, srv, http.MethodPost, "/api/transactions", createTransactionRequest{
		StellarAccountID: mirrored.ID,
		StellarTxHash:    testHash,
		AssetID:          asset.ID,
		Type:             "payment",
		Amount:           decimal.RequireFromString("1"),
	})
	assertErrorCode(t, rec, http.StatusBadRequest, errors.CONSTRAINT_ERROR)
	if len(publisher.topics) != 1 {
		t.Fatalf("duplicate create published an event")
	}
}

func TestTransactionHashValidation(t *testing.T) {
	srv, _ := newTestServer(t, &stubPayments{})

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions", createTransactionRequest{
		StellarAccountID: mustNewUserID(t, srv),
		StellarTxHash:    "short",
		Type:             "payment",
		Amount:           decimal.RequireFromString("1"),
	})
	assertErrorCode(t, rec, http.StatusBadRequest, errors.VALIDATION_FAILED)
}

func TestExchangeRateCurrentEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubPayments{})

	rec := doJSON(t, srv, http.MethodPost, "/api/exchange-rates", createExchangeRateRequest{
		BaseAssetID:  1,
		QuoteAssetID: 2,
		Rate:         decimal.RequireFromString("0.98"),
		Provider:     "coingecko",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, srv, http.MethodPost, "/api/exchange-rates", createExchangeRateRequest{
		BaseAssetID:  1,
		QuoteAssetID: 2,
		Rate:         decimal.RequireFromString("0.99"),
		Provider:     "coingecko",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/exchange-rates/current?base=1&quote=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("current status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var current exchangeRateResponse
	decodeResponse(t, rec, &current)
	if !current.Rate.Equal(decimal.RequireFromString("0.99")) {
		t.Fatalf("current rate = %s, want 0.99", current.Rate)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/exchange-rates/current?base=9&quote=9", nil)
	assertErrorCode(t, rec, http.StatusNotFound, errors.NOT_FOUND)

	rec = doJSON(t, srv, http.MethodPost, "/api/exchange-rates", createExchangeRateRequest{
		BaseAssetID:  1,
		QuoteAssetID: 2,
		Rate:         decimal.RequireFromString("-1"),
	})
	assertErrorCode(t, rec, http.StatusBadRequest, errors.VALIDATION_FAILED)
}

// mustNewUserID creates a user over the API and returns its id.
func mustNewUserID(t *testing.T, srv *Server) uuid.UUID {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/users", createUserRequest{
		CognitoSub:   "sub-" + t.Name(),
		Email:        "owner@example.com",
		UserStatusID: 1,
		KycLevelID:   1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed user status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var created userResponse
	decodeResponse(t, rec, &created)
	return created.ID
}
