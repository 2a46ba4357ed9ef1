// Package payments sequences the validation, build, sign, and submit steps
// for Stellar account creation, trustlines, and payments.
//
// Validation is front-loaded: account existence, trustline presence, and
// balance sufficiency are checked before a transaction is submitted, so
// callers get precise, actionable errors instead of opaque ledger result
// codes. The ledger remains the final authority; every check here is a
// best-effort pre-flight, and a concurrent writer can still invalidate the
// snapshot between the account fetch and the submit. Stale-sequence
// rejections are surfaced to the caller, never retried.
package payments

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"

	gateway "github.com/caprim-labs/stellar-gateway"
	"github.com/caprim-labs/stellar-gateway/assets"
	"github.com/caprim-labs/stellar-gateway/errors"
)

// Config selects the target network and environment behavior.
type Config struct {
	// NetworkPassphrase is used for signing; it must match the network the
	// ledger client talks to.
	NetworkPassphrase string

	// Production enables the destination-existence check on native payments
	// and disables faucet funding of new accounts.
	Production bool
}

// Orchestrator builds, signs, and submits Stellar transactions through a
// gateway.Ledger. It holds no mutable state; one instance serves all
// requests concurrently.
type Orchestrator struct {
	ledger   gateway.Ledger
	registry *assets.Registry
	config   Config
	logger   *slog.Logger
}

// New creates an Orchestrator. The registry is injected rather than read
// from a global so tests can substitute their own asset sets.
func New(ledger gateway.Ledger, registry *assets.Registry, config Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		ledger:   ledger,
		registry: registry,
		config:   config,
		logger:   logger,
	}
}

// CreateAccount generates a fresh keypair and, outside production, funds it
// through the test-network faucet. Nothing is persisted; the caller owns
// custody of the returned secret seed.
func (o *Orchestrator) CreateAccount(ctx context.Context) (gateway.KeyPair, error) {
	kp, err := keypair.Random()
	if err != nil {
		return gateway.KeyPair{}, errors.NewPaymentError(errors.INTERNAL, "failed to generate keypair", err)
	}
	o.logger.Info("stellar keypair generated", "address", kp.Address())

	if !o.config.Production {
		if err := o.ledger.FundTestAccount(ctx, kp.Address()); err != nil {
			return gateway.KeyPair{}, err
		}
		o.logger.Info("test account funded", "address", kp.Address())
	}

	return gateway.KeyPair{PublicKey: kp.Address(), SecretSeed: kp.Seed()}, nil
}

// Balances fetches the live balance list of an account. The address is part
// of the error message when the account is unknown or the ledger errors.
func (o *Orchestrator) Balances(ctx context.Context, address string) ([]gateway.Balance, error) {
	account, err := o.ledger.Account(ctx, address)
	if err != nil {
		return nil, err
	}
	return account.Balances, nil
}

// EstablishTrustline submits a change-trust operation for a registered asset
// using the registry's default limit, signed by the keypair derived from
// secretSeed. Returns the transaction hash.
func (o *Orchestrator) EstablishTrustline(ctx context.Context, secretSeed, assetCode string) (string, error) {
	info, ok := o.registry.Lookup(assetCode)
	if !ok {
		return "", o.unknownAsset(assetCode)
	}

	kp, err := keypair.ParseFull(secretSeed)
	if err != nil {
		return "", errors.NewPaymentError(errors.VALIDATION_FAILED, "invalid secret seed", err)
	}

	account, err := o.ledger.Account(ctx, kp.Address())
	if err != nil {
		return "", err
	}

	op := &txnbuild.ChangeTrust{
		Line:  txnbuild.ChangeTrustAssetWrapper{Asset: txnbuild.CreditAsset{Code: info.Code, Issuer: info.Issuer}},
		Limit: info.Limit,
	}

	hash, err := o.submit(ctx, account, kp, op)
	if err != nil {
		return "", err
	}
	o.logger.Info("trustline established",
		"asset", info.Code, "issuer", info.Issuer, "account", kp.Address(), "hash", hash)
	return hash, nil
}

// SendXLM submits a native-asset payment. In production the destination must
// already exist on-ledger; on test networks the check is skipped so payments
// to just-created accounts go straight to submission.
func (o *Orchestrator) SendXLM(ctx context.Context, sourceSecretSeed, destination, amount string) (string, error) {
	kp, err := keypair.ParseFull(sourceSecretSeed)
	if err != nil {
		return "", errors.NewPaymentError(errors.VALIDATION_FAILED, "invalid source secret seed", err)
	}
	dest, err := keypair.ParseAddress(destination)
	if err != nil {
		return "", errors.NewPaymentError(errors.VALIDATION_FAILED,
			fmt.Sprintf("invalid destination address %s", destination), err)
	}
	if err := validAmount(amount); err != nil {
		return "", err
	}

	if o.config.Production {
		if _, err := o.ledger.Account(ctx, dest.Address()); err != nil {
			return "", errors.NewPaymentError(errors.VALIDATION_FAILED,
				fmt.Sprintf("destination account %s does not exist on the public network", dest.Address()), err)
		}
	}

	account, err := o.ledger.Account(ctx, kp.Address())
	if err != nil {
		return "", err
	}

	op := &txnbuild.Payment{
		Destination: dest.Address(),
		Amount:      amount,
		Asset:       txnbuild.NativeAsset{},
	}

	hash, err := o.submit(ctx, account, kp, op)
	if err != nil {
		return "", err
	}
	o.logger.Info("native payment submitted",
		"source", kp.Address(), "destination", dest.Address(), "amount", amount, "hash", hash)
	return hash, nil
}

// SendAsset submits an issued-asset payment for any registered asset code.
// Both parties must hold a trustline for the asset and the source balance
// must cover the amount; the comparison is exact decimal, not floating
// point. Returns the transaction hash.
func (o *Orchestrator) SendAsset(ctx context.Context, sourceSecretSeed, destination, amount, assetCode string) (string, error) {
	info, ok := o.registry.Lookup(assetCode)
	if !ok {
		return "", o.unknownAsset(assetCode)
	}

	kp, err := keypair.ParseFull(sourceSecretSeed)
	if err != nil {
		return "", errors.NewPaymentError(errors.VALIDATION_FAILED, "invalid source secret seed", err)
	}
	dest, err := keypair.ParseAddress(destination)
	if err != nil {
		return "", errors.NewPaymentError(errors.VALIDATION_FAILED,
			fmt.Sprintf("invalid destination address %s", destination), err)
	}
	requested, err := decimal.NewFromString(amount)
	if err != nil || !requested.IsPositive() {
		return "", errors.NewPaymentError(errors.VALIDATION_FAILED,
			fmt.Sprintf("amount %q must be a positive decimal", amount), err)
	}

	source, err := o.ledger.Account(ctx, kp.Address())
	if err != nil {
		return "", errors.NewPaymentError(errors.VALIDATION_FAILED,
			fmt.Sprintf("source account %s does not exist or is not accessible", kp.Address()), err)
	}
	destAccount, err := o.ledger.Account(ctx, dest.Address())
	if err != nil {
		return "", errors.NewPaymentError(errors.VALIDATION_FAILED,
			fmt.Sprintf("destination account %s does not exist or is not accessible", dest.Address()), err)
	}

	balance, ok := source.Trustline(info.Code, info.Issuer)
	if !ok {
		e := errors.NewPaymentError(errors.TRUSTLINE_MISSING,
			fmt.Sprintf("the source account has no %s trustline; establish the trustline first", info.Code), nil)
		e.Context["asset"] = info.Code
		return "", e
	}
	if _, ok := destAccount.Trustline(info.Code, info.Issuer); !ok {
		e := errors.NewPaymentError(errors.TRUSTLINE_MISSING,
			fmt.Sprintf("the destination account has no %s trustline", info.Code), nil)
		e.Context["asset"] = info.Code
		return "", e
	}

	held, err := decimal.NewFromString(balance.Amount)
	if err != nil {
		return "", errors.NewPaymentError(errors.INTERNAL,
			fmt.Sprintf("unparseable %s balance %q reported by the ledger", info.Code, balance.Amount), err)
	}
	if held.LessThan(requested) {
		e := errors.NewPaymentError(errors.INSUFFICIENT_FUNDS,
			fmt.Sprintf("insufficient %s balance: current balance is %s", info.Code, balance.Amount), nil)
		e.Context["asset"] = info.Code
		e.Context["balance"] = balance.Amount
		return "", e
	}

	op := &txnbuild.Payment{
		Destination: dest.Address(),
		Amount:      amount,
		Asset:       txnbuild.CreditAsset{Code: info.Code, Issuer: info.Issuer},
	}

	hash, err := o.submit(ctx, source, kp, op)
	if err != nil {
		return "", err
	}
	o.logger.Info("asset payment submitted",
		"asset", info.Code, "source", kp.Address(), "destination", dest.Address(),
		"amount", amount, "hash", hash)
	return hash, nil
}

// submit builds a single-operation transaction on the fetched sequence
// number, signs it, and sends the base64 envelope through the ledger.
func (o *Orchestrator) submit(ctx context.Context, account gateway.Account, kp *keypair.Full, op txnbuild.Operation) (string, error) {
	source := txnbuild.NewSimpleAccount(account.Address, account.Sequence)
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &source,
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{op},
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewInfiniteTimeout()},
	})
	if err != nil {
		return "", errors.NewPaymentError(errors.INTERNAL, "failed to build transaction", err)
	}

	tx, err = tx.Sign(o.config.NetworkPassphrase, kp)
	if err != nil {
		return "", errors.NewPaymentError(errors.INTERNAL, "failed to sign transaction", err)
	}
	envelope, err := tx.Base64()
	if err != nil {
		return "", errors.NewPaymentError(errors.INTERNAL, "failed to encode transaction envelope", err)
	}

	result, err := o.ledger.Submit(ctx, envelope)
	if err != nil {
		return "", err
	}
	return result.Hash, nil
}

func (o *Orchestrator) unknownAsset(code string) *errors.GatewayError {
	e := errors.NewPaymentError(errors.UNKNOWN_ASSET,
		fmt.Sprintf("asset %q not found; available assets: %s", code, strings.Join(o.registry.Available(), ", ")), nil)
	e.Context["asset"] = code
	return e
}

func validAmount(amount string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil || !value.IsPositive() {
		return errors.NewPaymentError(errors.VALIDATION_FAILED,
			fmt.Sprintf("amount %q must be a positive decimal", amount), err)
	}
	return nil
}
