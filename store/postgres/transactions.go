package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/caprim-labs/stellar-gateway/store"
)

// TransactionRepository implements store.Transactions. The owning account
// and asset rows are eagerly preloaded on every read.
type TransactionRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewTransactionRepository(db *DB, logger *slog.Logger) *TransactionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &TransactionRepository{db: db, logger: logger}
}

func (r *TransactionRepository) List(ctx context.Context) ([]store.Transaction, error) {
	var transactions []store.Transaction
	err := r.db.Gorm.WithContext(ctx).
		Preload("StellarAccount").
		Preload("Asset").
		Find(&transactions).Error
	if err != nil {
		return nil, wrap(err, "transactions")
	}
	return transactions, nil
}

func (r *TransactionRepository) ListByStellarAccount(ctx context.Context, stellarAccountID uuid.UUID) ([]store.Transaction, error) {
	var transactions []store.Transaction
	err := r.db.Gorm.WithContext(ctx).
		Preload("StellarAccount").
		Preload("Asset").
		Where("stellar_account_id = ?", stellarAccountID).
		Find(&transactions).Error
	if err != nil {
		return nil, wrap(err, "transactions")
	}
	return transactions, nil
}

func (r *TransactionRepository) Get(ctx context.Context, id int64) (store.Transaction, error) {
	var transaction store.Transaction
	err := r.db.Gorm.WithContext(ctx).
		Preload("StellarAccount").
		Preload("Asset").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return store.Transaction{}, wrap(err, "transaction")
	}
	return transaction, nil
}

func (r *TransactionRepository) GetByHash(ctx context.Context, stellarTxHash string) (store.Transaction, error) {
	var transaction store.Transaction
	err := r.db.Gorm.WithContext(ctx).
		Preload("StellarAccount").
		Preload("Asset").
		First(&transaction, "stellar_tx_hash = ?", stellarTxHash).Error
	if err != nil {
		return store.Transaction{}, wrap(err, "transaction")
	}
	return transaction, nil
}

func (r *TransactionRepository) Create(ctx context.Context, transaction *store.Transaction) error {
	if err := r.db.Gorm.WithContext(ctx).Create(transaction).Error; err != nil {
		return wrap(err, "transaction")
	}
	reloaded, err := r.Get(ctx, transaction.ID)
	if err != nil {
		return err
	}
	*transaction = reloaded
	r.logger.Info("transaction mirrored",
		"transaction_id", transaction.ID, "hash", transaction.StellarTxHash, "type", transaction.Type)
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.Gorm.WithContext(ctx).Delete(&store.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return wrap(result.Error, "transaction")
	}
	if result.RowsAffected == 0 {
		return notFound("transaction")
	}
	return nil
}
