// Package store defines the persisted entities of the gateway and the
// repository contracts over them. Implementations live in store/postgres
// (gorm) and store/memory (tests, examples).
//
// Related rows are loaded through explicit eager joins requested per query;
// there is no implicit lazy fetch.
package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is a platform user with KYC state. The secondary lookup key is the
// identity provider subject.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CognitoSub   string     `gorm:"size:255;not null;uniqueIndex"`
	Email        string     `gorm:"size:255;not null"`
	UserStatusID int        `gorm:"not null"`
	KycLevelID   int        `gorm:"not null"`
	KycDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	UserStatus *UserStatus `gorm:"foreignKey:UserStatusID"`
	KycLevel   *KycLevel   `gorm:"foreignKey:KycLevelID"`
}

func (User) TableName() string { return "users" }

// UserStatus is a lookup row (active, blocked, ...).
type UserStatus struct {
	ID          int    `gorm:"primaryKey"`
	Name        string `gorm:"size:50;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (UserStatus) TableName() string { return "user_statuses" }

// KycLevel is a lookup row for the KYC tier a user has cleared.
type KycLevel struct {
	ID          int    `gorm:"primaryKey"`
	LevelName   string `gorm:"size:50;not null"`
	CountryCode string `gorm:"size:2;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (KycLevel) TableName() string { return "kyc_levels" }

// UserProfile holds the encrypted personal data attached to a user.
// Field-level encryption happens upstream; this table only stores
// ciphertext.
type UserProfile struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID                  uuid.UUID `gorm:"type:uuid;not null;index"`
	EncryptedFirstName      string    `gorm:"size:500"`
	EncryptedLastName       string    `gorm:"size:500"`
	EncryptedAddress        string    `gorm:"size:1000"`
	EncryptedPhone          string    `gorm:"size:500"`
	EncryptedDocumentNumber string    `gorm:"size:500"`
	DocumentTypeID          *int
	Nationality             string `gorm:"size:100"`
	City                    string `gorm:"size:100"`
	Gender                  string `gorm:"size:10"`
	BirthDate               *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (UserProfile) TableName() string { return "user_profiles" }

// Bank is a supported bank for fiat on/off ramps.
type Bank struct {
	ID          int    `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	CountryCode string `gorm:"size:2;not null"`
	Code        string `gorm:"size:10"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Bank) TableName() string { return "banks" }

// BankAccountType is a lookup row (checking, savings, ...).
type BankAccountType struct {
	ID          int    `gorm:"primaryKey"`
	Name        string `gorm:"size:50;not null"`
	CountryCode string `gorm:"size:2;not null"`
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (BankAccountType) TableName() string { return "bank_account_types" }

// BankAccount links a user to an external bank account.
type BankAccount struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID                 uuid.UUID `gorm:"type:uuid;not null;index"`
	BankID                 int       `gorm:"not null"`
	AccountTypeID          int       `gorm:"not null"`
	EncryptedAccountNumber string    `gorm:"size:500"`
	HolderName             string    `gorm:"size:255"`
	HolderDocumentID       string    `gorm:"size:255"`
	HolderDocumentTypeID   *int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (BankAccount) TableName() string { return "bank_accounts" }

// StellarAccount mirrors a custodial ledger account. The secret key lives
// in KMS; only the key ARN is stored here.
type StellarAccount struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	PublicKey   string    `gorm:"size:56;not null;uniqueIndex"`
	KmsKeyArn   string    `gorm:"size:255;not null"`
	AccountName string    `gorm:"size:100"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (StellarAccount) TableName() string { return "stellar_accounts" }

// Asset is a persisted asset row referenced by transactions and rates.
// Distinct from the compiled-in trustline registry: this table exists so
// mirrored rows can join on an asset id.
type Asset struct {
	ID        int    `gorm:"primaryKey"`
	Code      string `gorm:"size:12;not null"`
	Issuer    string `gorm:"size:56"`
	Name      string `gorm:"size:100"`
	Type      string `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Asset) TableName() string { return "assets" }

// Transaction is a mirrored ledger submission. Rows are created by callers
// after a successful submission; the orchestrator itself never writes here.
type Transaction struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	StellarAccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	StellarTxHash    string          `gorm:"size:64;not null;uniqueIndex"`
	AssetID          int             `gorm:"not null"`
	Type             string          `gorm:"size:50;not null"`
	Amount           decimal.Decimal `gorm:"type:numeric(18,8);not null"`
	ProcessedAt      time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	StellarAccount *StellarAccount `gorm:"foreignKey:StellarAccountID"`
	Asset          *Asset          `gorm:"foreignKey:AssetID"`
}

func (Transaction) TableName() string { return "transactions" }

// ExchangeRate is a provider quote for a (base, quote) asset pair. The
// current rate for a pair is the row with the latest Timestamp.
type ExchangeRate struct {
	ID           int             `gorm:"primaryKey"`
	BaseAssetID  int             `gorm:"not null;index:idx_rate_pair"`
	QuoteAssetID int             `gorm:"not null;index:idx_rate_pair"`
	Rate         decimal.Decimal `gorm:"type:numeric(18,8);not null"`
	Provider     string          `gorm:"size:100"`
	Timestamp    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	BaseAsset  *Asset `gorm:"foreignKey:BaseAssetID"`
	QuoteAsset *Asset `gorm:"foreignKey:QuoteAssetID"`
}

func (ExchangeRate) TableName() string { return "exchange_rates" }

// ExchangeRateHistory records rate changes over time.
type ExchangeRateHistory struct {
	ID             int64 `gorm:"primaryKey;autoIncrement"`
	ExchangeRateID int   `gorm:"not null;index"`
	OldRate        *decimal.Decimal `gorm:"type:numeric(18,8)"`
	NewRate        decimal.Decimal  `gorm:"type:numeric(18,8);not null"`
	ChangedAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ExchangeRateHistory) TableName() string { return "exchange_rates_history" }
