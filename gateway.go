// Package gateway defines the contracts of a custodial Stellar gateway.
// It exposes a ledger capability for querying accounts and submitting
// signed transactions, plus the value types shared between the payment
// orchestrator, the HTTP layer, and the persistence repositories.
// Signing and network protocol are delegated to the Stellar SDK; storage
// is delegated to the repository implementations under store/.
package gateway

import "context"

// Ledger is the minimal contract against the Stellar network.
// Implementations wrap a Horizon server; a scripted implementation is
// used in tests. All methods are single round trips with no retries.
type Ledger interface {
	// Account fetches the current ledger state of an account by address (G...).
	// The returned Account carries the sequence number and balance list as of
	// the read; callers must treat it as a snapshot that can go stale before
	// a subsequent submit.
	Account(ctx context.Context, address string) (Account, error)

	// Submit sends a signed transaction envelope (base64 XDR) to the network
	// and blocks until the ledger accepts or rejects it.
	Submit(ctx context.Context, envelopeXDR string) (SubmitResult, error)

	// FundTestAccount asks the test-network faucet to fund a newly created
	// account. It must only be called in non-production environments.
	FundTestAccount(ctx context.Context, address string) error
}

// Account is a ledger-side account snapshot. It is never persisted; every
// orchestration step re-reads it from the ledger.
type Account struct {
	Address  string
	Sequence int64
	Balances []Balance
}

// Balance is one entry of an account's balance list. Code and Issuer are
// empty for the native asset.
type Balance struct {
	Type   string
	Code   string
	Issuer string
	Amount string // Decimal string as reported by the ledger
}

// Trustline reports whether the account holds a trustline for the given
// asset code and issuer, by scanning the balance list.
func (a Account) Trustline(code, issuer string) (Balance, bool) {
	for _, b := range a.Balances {
		if b.Code == code && b.Issuer == issuer {
			return b, true
		}
	}
	return Balance{}, false
}

// KeyPair is a freshly generated Stellar keypair. The secret seed is
// returned to the caller for custody and never persisted server-side.
type KeyPair struct {
	PublicKey  string
	SecretSeed string
}

// SubmitResult is the ledger's response to a successful submission.
type SubmitResult struct {
	Hash      string
	Ledger    int32
	ResultXDR string
}
