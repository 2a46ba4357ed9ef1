package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caprim-labs/stellar-gateway/store"
)

// StellarAccountRepository implements store.StellarAccounts.
type StellarAccountRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewStellarAccountRepository(db *DB, logger *slog.Logger) *StellarAccountRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &StellarAccountRepository{db: db, logger: logger}
}

func (r *StellarAccountRepository) List(ctx context.Context) ([]store.StellarAccount, error) {
	var accounts []store.StellarAccount
	if err := r.db.Gorm.WithContext(ctx).Find(&accounts).Error; err != nil {
		return nil, wrap(err, "stellar accounts")
	}
	return accounts, nil
}

func (r *StellarAccountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]store.StellarAccount, error) {
	var accounts []store.StellarAccount
	err := r.db.Gorm.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&accounts).Error
	if err != nil {
		return nil, wrap(err, "stellar accounts")
	}
	return accounts, nil
}

func (r *StellarAccountRepository) Get(ctx context.Context, id uuid.UUID) (store.StellarAccount, error) {
	var account store.StellarAccount
	if err := r.db.Gorm.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return store.StellarAccount{}, wrap(err, "stellar account")
	}
	return account, nil
}

func (r *StellarAccountRepository) GetByPublicKey(ctx context.Context, publicKey string) (store.StellarAccount, error) {
	var account store.StellarAccount
	if err := r.db.Gorm.WithContext(ctx).First(&account, "public_key = ?", publicKey).Error; err != nil {
		return store.StellarAccount{}, wrap(err, "stellar account")
	}
	return account, nil
}

func (r *StellarAccountRepository) Create(ctx context.Context, account *store.StellarAccount) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if err := r.db.Gorm.WithContext(ctx).Create(account).Error; err != nil {
		return wrap(err, "stellar account")
	}
	r.logger.Info("stellar account recorded",
		"account_id", account.ID, "public_key", account.PublicKey, "user_id", account.UserID)
	return nil
}

func (r *StellarAccountRepository) Update(ctx context.Context, id uuid.UUID, update store.StellarAccountUpdate) (store.StellarAccount, error) {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if update.AccountName != nil {
		fields["account_name"] = *update.AccountName
	}
	if update.IsActive != nil {
		fields["is_active"] = *update.IsActive
	}

	result := r.db.Gorm.WithContext(ctx).
		Model(&store.StellarAccount{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return store.StellarAccount{}, wrap(result.Error, "stellar account")
	}
	if result.RowsAffected == 0 {
		return store.StellarAccount{}, notFound("stellar account")
	}
	return r.Get(ctx, id)
}

func (r *StellarAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.Gorm.WithContext(ctx).Delete(&store.StellarAccount{}, "id = ?", id)
	if result.Error != nil {
		return wrap(result.Error, "stellar account")
	}
	if result.RowsAffected == 0 {
		return notFound("stellar account")
	}
	return nil
}
