package payments

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/txnbuild"

	gateway "github.com/caprim-labs/stellar-gateway"
	"github.com/caprim-labs/stellar-gateway/errors"
)

// mockLedger is a scripted in-memory ledger. Submitted envelopes are decoded
// with txnbuild and their change-trust and payment operations are applied to
// the held accounts, so trustlines and transfers round-trip through balances
// the way they do against Horizon.
type mockLedger struct {
	mu          sync.Mutex
	passphrase  string
	accounts    map[string]*gateway.Account
	calls       []string
	submissions []string
}

func newMockLedger(passphrase string) *mockLedger {
	return &mockLedger{
		passphrase: passphrase,
		accounts:   make(map[string]*gateway.Account),
	}
}

func (m *mockLedger) Account(_ context.Context, address string) (gateway.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "account:"+address)

	account, ok := m.accounts[address]
	if !ok {
		return gateway.Account{}, errors.NewLedgerError(errors.ACCOUNT_NOT_FOUND,
			fmt.Sprintf("account %s was not found or could not be loaded", address), nil)
	}
	snapshot := *account
	snapshot.Balances = append([]gateway.Balance(nil), account.Balances...)
	return snapshot, nil
}

func (m *mockLedger) Submit(_ context.Context, envelopeXDR string) (gateway.SubmitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "submit")
	m.submissions = append(m.submissions, envelopeXDR)

	generic, err := txnbuild.TransactionFromXDR(envelopeXDR)
	if err != nil {
		return gateway.SubmitResult{}, errors.NewLedgerError(errors.SUBMISSION_REJECTED, "malformed envelope", err)
	}
	tx, ok := generic.Transaction()
	if !ok {
		return gateway.SubmitResult{}, errors.NewLedgerError(errors.SUBMISSION_REJECTED, "unexpected fee bump envelope", nil)
	}

	source := tx.SourceAccount().AccountID
	for _, op := range tx.Operations() {
		switch op := op.(type) {
		case *txnbuild.ChangeTrust:
			m.addTrustline(source, op.Line.GetCode(), op.Line.GetIssuer())
		case *txnbuild.Payment:
			if err := m.applyPayment(source, op); err != nil {
				return gateway.SubmitResult{}, err
			}
		}
	}
	if account, ok := m.accounts[source]; ok {
		account.Sequence++
	}

	hash, err := tx.HashHex(m.passphrase)
	if err != nil {
		return gateway.SubmitResult{}, err
	}
	return gateway.SubmitResult{Hash: hash, Ledger: int32(len(m.submissions))}, nil
}

func (m *mockLedger) FundTestAccount(_ context.Context, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "fund:"+address)
	m.ensureAccount(address, "10000.0000000")
	return nil
}

// createAccount seeds an account with a native balance outside the faucet path.
func (m *mockLedger) createAccount(address, xlm string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureAccount(address, xlm)
}

// credit tops up an issued-asset balance, simulating an external deposit.
func (m *mockLedger) credit(address, code, issuer, amount string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account := m.accounts[address]
	for i, b := range account.Balances {
		if b.Code == code && b.Issuer == issuer {
			account.Balances[i].Amount = addAmounts(b.Amount, amount)
			return
		}
	}
	account.Balances = append(account.Balances, gateway.Balance{
		Type: "credit_alphanum4", Code: code, Issuer: issuer, Amount: amount,
	})
}

func (m *mockLedger) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockLedger) submissionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.submissions)
}

func (m *mockLedger) ensureAccount(address, xlm string) {
	if _, ok := m.accounts[address]; ok {
		return
	}
	m.accounts[address] = &gateway.Account{
		Address:  address,
		Sequence: 1,
		Balances: []gateway.Balance{{Type: "native", Amount: xlm}},
	}
}

func (m *mockLedger) addTrustline(address, code, issuer string) {
	account := m.accounts[address]
	if account == nil {
		return
	}
	for _, b := range account.Balances {
		if b.Code == code && b.Issuer == issuer {
			return
		}
	}
	account.Balances = append(account.Balances, gateway.Balance{
		Type: "credit_alphanum4", Code: code, Issuer: issuer, Amount: "0.0000000",
	})
}

func (m *mockLedger) applyPayment(source string, op *txnbuild.Payment) error {
	if op.Asset.IsNative() {
		m.adjustNative(source, op.Amount, true)
		m.ensureAccount(op.Destination, "0.0000000")
		m.adjustNative(op.Destination, op.Amount, false)
		return nil
	}

	code, issuer := op.Asset.GetCode(), op.Asset.GetIssuer()
	if !m.adjustIssued(source, code, issuer, op.Amount, true) {
		return errors.NewLedgerError(errors.SUBMISSION_REJECTED, "op_underfunded", nil)
	}
	m.addTrustline(op.Destination, code, issuer)
	m.adjustIssued(op.Destination, code, issuer, op.Amount, false)
	return nil
}

func (m *mockLedger) adjustNative(address, amount string, debit bool) {
	account := m.accounts[address]
	for i, b := range account.Balances {
		if b.Type == "native" {
			if debit {
				account.Balances[i].Amount = subAmounts(b.Amount, amount)
			} else {
				account.Balances[i].Amount = addAmounts(b.Amount, amount)
			}
			return
		}
	}
}

func (m *mockLedger) adjustIssued(address, code, issuer, amount string, debit bool) bool {
	account := m.accounts[address]
	if account == nil {
		return false
	}
	for i, b := range account.Balances {
		if b.Code == code && b.Issuer == issuer {
			if debit {
				held, _ := decimal.NewFromString(b.Amount)
				requested, _ := decimal.NewFromString(amount)
				if held.LessThan(requested) {
					return false
				}
				account.Balances[i].Amount = subAmounts(b.Amount, amount)
			} else {
				account.Balances[i].Amount = addAmounts(b.Amount, amount)
			}
			return true
		}
	}
	return false
}

func addAmounts(a, b string) string {
	x, _ := decimal.NewFromString(a)
	y, _ := decimal.NewFromString(b)
	return x.Add(y).String()
}

func subAmounts(a, b string) string {
	x, _ := decimal.NewFromString(a)
	y, _ := decimal.NewFromString(b)
	return x.Sub(y).String()
}
