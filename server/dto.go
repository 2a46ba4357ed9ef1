package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	gateway "github.com/caprim-labs/stellar-gateway"
	"github.com/caprim-labs/stellar-gateway/store"
)

// Ledger-facing payloads.

type keyPairResponse struct {
	PublicKey  string `json:"public_key"`
	SecretSeed string `json:"secret_seed"`
}

type balanceResponse struct {
	AssetType string `json:"asset_type"`
	AssetCode string `json:"asset_code,omitempty"`
	Issuer    string `json:"issuer,omitempty"`
	Balance   string `json:"balance"`
}

type establishTrustlineRequest struct {
	SecretSeed string `json:"secret_seed"`
	AssetCode  string `json:"asset_code"`
}

type sendXLMRequest struct {
	SourceSecretSeed     string `json:"source_secret_seed"`
	DestinationAccountID string `json:"destination_account_id"`
	Amount               string `json:"amount"`
}

type sendAssetRequest struct {
	SourceSecretSeed     string `json:"source_secret_seed"`
	DestinationAccountID string `json:"destination_account_id"`
	Amount               string `json:"amount"`
	AssetCode            string `json:"asset_code"`
}

type transactionHashResponse struct {
	Hash string `json:"hash"`
}

func toBalanceResponses(balances []gateway.Balance) []balanceResponse {
	out := make([]balanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, balanceResponse{
			AssetType: b.Type,
			AssetCode: b.Code,
			Issuer:    b.Issuer,
			Balance:   b.Amount,
		})
	}
	return out
}

// User payloads.

type createUserRequest struct {
	CognitoSub   string     `json:"cognito_sub"`
	Email        string     `json:"email"`
	UserStatusID int        `json:"user_status_id"`
	KycLevelID   int        `json:"kyc_level_id"`
	KycDate      *time.Time `json:"kyc_date,omitempty"`
}

type updateUserRequest struct {
	Email        *string    `json:"email,omitempty"`
	UserStatusID *int       `json:"user_status_id,omitempty"`
	KycLevelID   *int       `json:"kyc_level_id,omitempty"`
	KycDate      *time.Time `json:"kyc_date,omitempty"`
}

type userResponse struct {
	ID         uuid.UUID  `json:"id"`
	CognitoSub string     `json:"cognito_sub"`
	Email      string     `json:"email"`
	UserStatus string     `json:"user_status,omitempty"`
	KycLevel   string     `json:"kyc_level,omitempty"`
	KycDate    *time.Time `json:"kyc_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func toUserResponse(u store.User) userResponse {
	resp := userResponse{
		ID:         u.ID,
		CognitoSub: u.CognitoSub,
		Email:      u.Email,
		KycDate:    u.KycDate,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.UserStatus != nil {
		resp.UserStatus = u.UserStatus.Name
	}
	if u.KycLevel != nil {
		resp.KycLevel = u.KycLevel.LevelName
	}
	return resp
}

func toUserResponses(users []store.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

// Stellar account payloads.

type createStellarAccountRequest struct {
	UserID      uuid.UUID `json:"user_id"`
	PublicKey   string    `json:"public_key"`
	KmsKeyArn   string    `json:"kms_key_arn"`
	AccountName string    `json:"account_name,omitempty"`
}

type updateStellarAccountRequest struct {
	AccountName *string `json:"account_name,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type stellarAccountResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	PublicKey   string    `json:"public_key"`
	KmsKeyArn   string    `json:"kms_key_arn"`
	AccountName string    `json:"account_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toStellarAccountResponse(a store.StellarAccount) stellarAccountResponse {
	return stellarAccountResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		PublicKey:   a.PublicKey,
		KmsKeyArn:   a.KmsKeyArn,
		AccountName: a.AccountName,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toStellarAccountResponses(accounts []store.StellarAccount) []stellarAccountResponse {
	out := make([]stellarAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toStellarAccountResponse(a))
	}
	return out
}

// Transaction payloads.

type createTransactionRequest struct {
	StellarAccountID uuid.UUID       `json:"stellar_account_id"`
	StellarTxHash    string          `json:"stellar_tx_hash"`
	AssetID          int             `json:"asset_id"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	ProcessedAt      *time.Time      `json:"processed_at,omitempty"`
}

type transactionResponse struct {
	ID               int64           `json:"id"`
	StellarAccountID uuid.UUID       `json:"stellar_account_id"`
	StellarTxHash    string          `json:"stellar_tx_hash"`
	AssetID          int             `json:"asset_id"`
	AssetCode        string          `json:"asset_code,omitempty"`
	Type             string          `json:"type"`
	Amount           decimal.Decimal `json:"amount"`
	ProcessedAt      time.Time       `json:"processed_at"`
	CreatedAt        time.Time       `json:"created_at"`
}

func toTransactionResponse(t store.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:               t.ID,
		StellarAccountID: t.StellarAccountID,
		StellarTxHash:    t.StellarTxHash,
		AssetID:          t.AssetID,
		Type:             t.Type,
		Amount:           t.Amount,
		ProcessedAt:      t.ProcessedAt,
		CreatedAt:        t.CreatedAt,
	}
	if t.Asset != nil {
		resp.AssetCode = t.Asset.Code
	}
	return resp
}

func toTransactionResponses(transactions []store.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

// Exchange rate payloads.

type createExchangeRateRequest struct {
	BaseAssetID  int             `json:"base_asset_id"`
	QuoteAssetID int             `json:"quote_asset_id"`
	Rate         decimal.Decimal `json:"rate"`
	Provider     string          `json:"provider,omitempty"`
	Timestamp    *time.Time      `json:"timestamp,omitempty"`
}

type updateExchangeRateRequest struct {
	Rate      *decimal.Decimal `json:"rate,omitempty"`
	Provider  *string          `json:"provider,omitempty"`
	Timestamp *time.Time       `json:"timestamp,omitempty"`
}

type exchangeRateResponse struct {
	ID             int             `json:"id"`
	BaseAssetID    int             `json:"base_asset_id"`
	BaseAssetCode  string          `json:"base_asset_code,omitempty"`
	QuoteAssetID   int             `json:"quote_asset_id"`
	QuoteAssetCode string          `json:"quote_asset_code,omitempty"`
	Rate           decimal.Decimal `json:"rate"`
	Provider       string          `json:"provider,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

func toExchangeRateResponse(r store.ExchangeRate) exchangeRateResponse {
	resp := exchangeRateResponse{
		ID:           r.ID,
		BaseAssetID:  r.BaseAssetID,
		QuoteAssetID: r.QuoteAssetID,
		Rate:         r.Rate,
		Provider:     r.Provider,
		Timestamp:    r.Timestamp,
	}
	if r.BaseAsset != nil {
		resp.BaseAssetCode = r.BaseAsset.Code
	}
	if r.QuoteAsset != nil {
		resp.QuoteAssetCode = r.QuoteAsset.Code
	}
	return resp
}

func toExchangeRateResponses(rates []store.ExchangeRate) []exchangeRateResponse {
	out := make([]exchangeRateResponse, 0, len(rates))
	for _, r := range rates {
		out = append(out, toExchangeRateResponse(r))
	}
	return out
}
