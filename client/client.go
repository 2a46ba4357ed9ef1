// Package client is the Go client for the gateway HTTP API. It wraps the
// ledger endpoints and the mirror transaction endpoint, converts error
// responses back into the gateway error taxonomy, and retries transient
// failures.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caprim-labs/stellar-gateway/errors"
)

// Client talks to a running gateway.
type Client struct {
	baseURL string
	core    *httpCore
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.core.client.Timeout = d
	}
}

// WithMaxRetries sets the retry budget for transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.core.maxRetries = n
	}
}

// WithRetryBackoff sets the base backoff between retries.
func WithRetryBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.core.retryBackoff = d
	}
}

// New creates a client for the gateway at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		core:    newHTTPCore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// KeyPair is a freshly created ledger keypair.
type KeyPair struct {
	PublicKey  string `json:"public_key"`
	SecretSeed string `json:"secret_seed"`
}

// Balance is one balance line of a ledger account.
type Balance struct {
	AssetType string `json:"asset_type"`
	AssetCode string `json:"asset_code"`
	Issuer    string `json:"issuer"`
	Balance   string `json:"balance"`
}

// TransactionRecord is the payload for recording a mirror row after a
// submission succeeded.
type TransactionRecord struct {
	StellarAccountID uuid.UUID       `json:"stellar_account_id"`
	StellarTxHash    string          `json:"stellar_tx_hash"`
	AssetID          int             `json:"asset_id"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	ProcessedAt      *time.Time      `json:"processed_at,omitempty"`
}

// RecordedTransaction is a mirror row as returned by the gateway.
type RecordedTransaction struct {
	ID               int64           `json:"id"`
	StellarAccountID uuid.UUID       `json:"stellar_account_id"`
	StellarTxHash    string          `json:"stellar_tx_hash"`
	AssetID          int             `json:"asset_id"`
	AssetCode        string          `json:"asset_code"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	ProcessedAt      time.Time       `json:"processed_at"`
}

// CreateAccount asks the gateway for a new keypair. Outside production the
// account is already faucet funded when this returns.
func (c *Client) CreateAccount(ctx context.Context) (KeyPair, error) {
	var pair KeyPair
	err := c.getJSON(ctx, "/api/account", &pair)
	return pair, err
}

// Balances lists all balances of a ledger account.
func (c *Client) Balances(ctx context.Context, accountID string) ([]Balance, error) {
	var balances []Balance
	err := c.getJSON(ctx, "/api/account/"+url.PathEscape(accountID), &balances)
	return balances, err
}

// EstablishTrustline opens a trustline for a registered asset and returns
// the transaction hash.
func (c *Client) EstablishTrustline(ctx context.Context, secretSeed, assetCode string) (string, error) {
	return c.postForHash(ctx, "/api/trustline", map[string]string{
		"secret_seed": secretSeed,
		"asset_code":  assetCode,
	})
}

// SendXLM sends native lumens and returns the transaction hash.
func (c *Client) SendXLM(ctx context.Context, sourceSecretSeed, destination, amount string) (string, error) {
	return c.postForHash(ctx, "/api/transaction/send-xlm", map[string]string{
		"source_secret_seed":     sourceSecretSeed,
		"destination_account_id": destination,
		"amount":                 amount,
	})
}

// SendAsset sends a registered issued asset and returns the transaction hash.
func (c *Client) SendAsset(ctx context.Context, sourceSecretSeed, destination, amount, assetCode string) (string, error) {
	return c.postForHash(ctx, "/api/transaction/send-asset", map[string]string{
		"source_secret_seed":     sourceSecretSeed,
		"destination_account_id": destination,
		"amount":                 amount,
		"asset_code":             assetCode,
	})
}

// RecordTransaction persists a mirror row for an already submitted ledger
// transaction.
func (c *Client) RecordTransaction(ctx context.Context, record TransactionRecord) (RecordedTransaction, error) {
	var recorded RecordedTransaction
	body, err := json.Marshal(record)
	if err != nil {
		return recorded, errors.NewClientError(errors.NETWORK_ERROR, "failed to encode transaction record", err)
	}
	resp, err := c.core.send(ctx, http.MethodPost, c.baseURL+"/api/transactions", bytes.NewReader(body))
	if err != nil {
		return recorded, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return recorded, decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&recorded); err != nil {
		return recorded, errors.NewClientError(errors.NETWORK_ERROR, "failed to decode transaction response", err)
	}
	return recorded, nil
}

func (c *Client) getJSON(ctx context.Context, path string, into any) error {
	resp, err := c.core.get(ctx, c.baseURL+path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return errors.NewClientError(errors.NETWORK_ERROR, "failed to decode response", err)
	}
	return nil
}

func (c *Client) postForHash(ctx context.Context, path string, payload map[string]string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.NewClientError(errors.NETWORK_ERROR, "failed to encode request", err)
	}
	resp, err := c.core.send(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", decodeAPIError(resp)
	}
	var result struct {
		Hash string `json:"hash"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.NewClientError(errors.NETWORK_ERROR, "failed to decode response", err)
	}
	return result.Hash, nil
}

// decodeAPIError rebuilds the gateway's error from an error response so
// callers can branch on the same codes the server uses.
func decodeAPIError(resp *http.Response) error {
	var body struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Code == "" {
		return errors.NewClientError(errors.NETWORK_ERROR,
			fmt.Sprintf("gateway returned status %d", resp.StatusCode), nil)
	}
	return errors.NewClientError(errors.Code(body.Code), body.Detail, nil)
}
