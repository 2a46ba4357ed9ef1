package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caprim-labs/stellar-gateway/errors"
	"github.com/caprim-labs/stellar-gateway/store"
)

func assertNotFound(t *testing.T, err error) {
	t.Helper()
	if errors.CodeOf(err) != errors.NOT_FOUND {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUserStoreCRUD(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore()

	user := &store.User{CognitoSub: "sub-1", Email: "one@example.com", UserStatusID: 1, KycLevelID: 1}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}

	if err := users.Create(ctx, &store.User{CognitoSub: "sub-1", Email: "dup@example.com"}); errors.CodeOf(err) != errors.CONSTRAINT_ERROR {
		t.Fatalf("expected CONSTRAINT_ERROR on duplicate cognito sub, got %v", err)
	}

	bySub, err := users.GetByCognitoSub(ctx, "sub-1")
	if err != nil || bySub.ID != user.ID {
		t.Fatalf("secondary lookup failed: %v", err)
	}

	email := "changed@example.com"
	updated, err := users.Update(ctx, user.ID, store.UserUpdate{Email: &email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != email || updated.CognitoSub != "sub-1" {
		t.Fatalf("partial update touched the wrong fields: %+v", updated)
	}

	_, err = users.Update(ctx, uuid.New(), store.UserUpdate{Email: &email})
	assertNotFound(t, err)

	if err := users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertNotFound(t, users.Delete(ctx, user.ID))
}

func TestStellarAccountStoreSecondaryLookup(t *testing.T) {
	ctx := context.Background()
	accounts := NewStellarAccountStore()
	userID := uuid.New()

	account := &store.StellarAccount{
		UserID:    userID,
		PublicKey: "GABCDEF1234567890ABCDEF1234567890ABCDEF1234567890ABCDEF1",
		KmsKeyArn: "arn:aws:kms:us-east-1:000000000000:key/test",
		IsActive:  true,
	}
	if err := accounts.Create(ctx, account); err != nil {
		t.Fatalf("create: %v", err)
	}

	byKey, err := accounts.GetByPublicKey(ctx, account.PublicKey)
	if err != nil || byKey.ID != account.ID {
		t.Fatalf("lookup by public key failed: %v", err)
	}

	byUser, err := accounts.ListByUser(ctx, userID)
	if err != nil || len(byUser) != 1 {
		t.Fatalf("list by user failed: %v (%d rows)", err, len(byUser))
	}

	inactive := false
	updated, err := accounts.Update(ctx, account.ID, store.StellarAccountUpdate{IsActive: &inactive})
	if err != nil || updated.IsActive {
		t.Fatalf("expected account to be deactivated: %v %+v", err, updated)
	}
}

func TestTransactionStoreHashUniqueness(t *testing.T) {
	ctx := context.Background()
	transactions := NewTransactionStore()
	accountID := uuid.New()
	hash := "a0b1c2d3e4f5a0b1c2d3e4f5a0b1c2d3e4f5a0b1c2d3e4f5a0b1c2d3e4f5a0b1"

	tx := &store.Transaction{
		StellarAccountID: accountID,
		StellarTxHash:    hash,
		AssetID:          1,
		Type:             "payment",
		Amount:           decimal.RequireFromString("100.00000000"),
	}
	if err := transactions.Create(ctx, tx); err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	dup := &store.Transaction{StellarAccountID: accountID, StellarTxHash: hash, AssetID: 1, Type: "payment"}
	if err := transactions.Create(ctx, dup); errors.CodeOf(err) != errors.CONSTRAINT_ERROR {
		t.Fatalf("expected CONSTRAINT_ERROR on duplicate hash, got %v", err)
	}

	byHash, err := transactions.GetByHash(ctx, hash)
	if err != nil || byHash.ID != tx.ID {
		t.Fatalf("lookup by hash failed: %v", err)
	}

	_, err = transactions.Get(ctx, 999)
	assertNotFound(t, err)
}

func TestExchangeRateStoreCurrentPicksLatestTimestamp(t *testing.T) {
	ctx := context.Background()
	rates := NewExchangeRateStore()
	older := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)

	stale := &store.ExchangeRate{BaseAssetID: 1, QuoteAssetID: 2, Rate: decimal.RequireFromString("0.95"), Timestamp: older}
	fresh := &store.ExchangeRate{BaseAssetID: 1, QuoteAssetID: 2, Rate: decimal.RequireFromString("0.97"), Timestamp: newer}
	other := &store.ExchangeRate{BaseAssetID: 2, QuoteAssetID: 3, Rate: decimal.RequireFromString("1.10"), Timestamp: newer}
	for _, rate := range []*store.ExchangeRate{stale, fresh, other} {
		if err := rates.Create(ctx, rate); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	current, err := rates.Current(ctx, 1, 2)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !current.Rate.Equal(fresh.Rate) {
		t.Fatalf("expected latest rate 0.97, got %s", current.Rate)
	}

	_, err = rates.Current(ctx, 9, 9)
	assertNotFound(t, err)
}
