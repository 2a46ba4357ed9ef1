package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Users is the repository contract for platform users.
type Users interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id uuid.UUID) (User, error)
	GetByCognitoSub(ctx context.Context, cognitoSub string) (User, error)
	Create(ctx context.Context, user *User) error
	// Update applies partial updates; only non-nil fields mutate.
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserUpdate contains the mutable fields of a user. Only non-nil fields
// are applied.
type UserUpdate struct {
	Email        *string
	UserStatusID *int
	KycLevelID   *int
	KycDate      *time.Time
}

// StellarAccounts is the repository contract for mirrored custodial accounts.
type StellarAccounts interface {
	List(ctx context.Context) ([]StellarAccount, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]StellarAccount, error)
	Get(ctx context.Context, id uuid.UUID) (StellarAccount, error)
	GetByPublicKey(ctx context.Context, publicKey string) (StellarAccount, error)
	Create(ctx context.Context, account *StellarAccount) error
	Update(ctx context.Context, id uuid.UUID, update StellarAccountUpdate) (StellarAccount, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StellarAccountUpdate contains the mutable fields of a stellar account.
type StellarAccountUpdate struct {
	AccountName *string
	IsActive    *bool
}

// Transactions is the repository contract for mirrored ledger submissions.
// Mirror rows are immutable once written; there is no update operation.
type Transactions interface {
	List(ctx context.Context) ([]Transaction, error)
	ListByStellarAccount(ctx context.Context, stellarAccountID uuid.UUID) ([]Transaction, error)
	Get(ctx context.Context, id int64) (Transaction, error)
	GetByHash(ctx context.Context, stellarTxHash string) (Transaction, error)
	Create(ctx context.Context, transaction *Transaction) error
	Delete(ctx context.Context, id int64) error
}

// ExchangeRates is the repository contract for provider quotes.
type ExchangeRates interface {
	List(ctx context.Context) ([]ExchangeRate, error)
	Get(ctx context.Context, id int) (ExchangeRate, error)
	// Current returns the most recent quote for the (base, quote) pair.
	Current(ctx context.Context, baseAssetID, quoteAssetID int) (ExchangeRate, error)
	Create(ctx context.Context, rate *ExchangeRate) error
	Update(ctx context.Context, id int, update ExchangeRateUpdate) (ExchangeRate, error)
	Delete(ctx context.Context, id int) error
}

// ExchangeRateUpdate contains the mutable fields of an exchange rate.
type ExchangeRateUpdate struct {
	Rate      *decimal.Decimal
	Provider  *string
	Timestamp *time.Time
}

// Assets is the repository contract for persisted asset rows.
type Assets interface {
	List(ctx context.Context) ([]Asset, error)
	Get(ctx context.Context, id int) (Asset, error)
	GetByCode(ctx context.Context, code string) (Asset, error)
	Create(ctx context.Context, asset *Asset) error
}
