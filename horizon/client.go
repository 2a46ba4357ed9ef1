// Package horizon implements gateway.Ledger against a Horizon server.
package horizon

import (
	"context"
	"fmt"

	"github.com/stellar/go-stellar-sdk/clients/horizonclient"
	hProtocol "github.com/stellar/go-stellar-sdk/protocols/horizon"

	gateway "github.com/caprim-labs/stellar-gateway"
	"github.com/caprim-labs/stellar-gateway/errors"
)

// Ledger implements gateway.Ledger using a Horizon server. It holds a single
// pooled client handle; requests are independent round trips with the
// client's default timeouts.
type Ledger struct {
	client *horizonclient.Client
}

// New creates a Ledger backed by the given Horizon URL.
func New(horizonURL string) *Ledger {
	return &Ledger{
		client: &horizonclient.Client{HorizonURL: horizonURL},
	}
}

// Account fetches the current state of a Stellar account.
func (l *Ledger) Account(_ context.Context, address string) (gateway.Account, error) {
	detail, err := l.client.AccountDetail(horizonclient.AccountRequest{
		AccountID: address,
	})
	if err != nil {
		e := errors.NewLedgerError(errors.ACCOUNT_NOT_FOUND,
			fmt.Sprintf("account %s was not found or could not be loaded", address), err)
		e.Context["address"] = address
		return gateway.Account{}, e
	}
	return mapAccount(detail), nil
}

// Submit sends a signed envelope to the network and returns the ledger's
// acceptance. Rejections carry the raw result codes and result XDR so
// callers can surface them without re-querying Horizon.
func (l *Ledger) Submit(_ context.Context, envelopeXDR string) (gateway.SubmitResult, error) {
	resp, err := l.client.SubmitTransactionXDR(envelopeXDR)
	if err != nil {
		return gateway.SubmitResult{}, submissionError(err)
	}
	return gateway.SubmitResult{
		Hash:      resp.Hash,
		Ledger:    resp.Ledger,
		ResultXDR: resp.ResultXdr,
	}, nil
}

// FundTestAccount funds a freshly generated account through friendbot.
// Only meaningful against a testnet Horizon.
func (l *Ledger) FundTestAccount(_ context.Context, address string) error {
	if _, err := l.client.Fund(address); err != nil {
		e := errors.NewLedgerError(errors.FAUCET_FUNDING_ERROR,
			fmt.Sprintf("friendbot funding for %s failed", address), err)
		e.Context["address"] = address
		return e
	}
	return nil
}

func mapAccount(detail hProtocol.Account) gateway.Account {
	balances := make([]gateway.Balance, len(detail.Balances))
	for i, b := range detail.Balances {
		balances[i] = gateway.Balance{
			Type:   b.Type,
			Code:   b.Code,
			Issuer: b.Issuer,
			Amount: b.Balance,
		}
	}
	return gateway.Account{
		Address:  detail.AccountID,
		Sequence: detail.Sequence,
		Balances: balances,
	}
}

func submissionError(err error) *errors.GatewayError {
	e := errors.NewLedgerError(errors.SUBMISSION_REJECTED, "the ledger rejected the transaction", err)
	if herr := horizonclient.GetError(err); herr != nil {
		if resultXDR, xdrErr := herr.ResultString(); xdrErr == nil {
			e.Message = fmt.Sprintf("the ledger rejected the transaction: %s", resultXDR)
			e.Context["result_xdr"] = resultXDR
		}
		if codes, codesErr := herr.ResultCodes(); codesErr == nil {
			e.Context["transaction_code"] = codes.TransactionCode
			e.Context["operation_codes"] = codes.OperationCodes
		}
	}
	return e
}
