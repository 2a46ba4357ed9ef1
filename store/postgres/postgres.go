// Package postgres implements the store repositories on gorm + Postgres.
package postgres

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/caprim-labs/stellar-gateway/errors"
	"github.com/caprim-labs/stellar-gateway/store"
)

// DB wraps the gorm handle. The underlying sql.DB pool is shared by all
// repositories.
type DB struct {
	Gorm *gorm.DB
}

// Connect opens and pings a Postgres connection.
func Connect(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, stderrors.New("postgres dsn is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve postgres sql db handle: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &DB{Gorm: db}, nil
}

// Migrate creates or updates the gateway tables.
func (d *DB) Migrate() error {
	return d.Gorm.AutoMigrate(
		&store.UserStatus{},
		&store.KycLevel{},
		&store.User{},
		&store.UserProfile{},
		&store.Bank{},
		&store.BankAccountType{},
		&store.BankAccount{},
		&store.StellarAccount{},
		&store.Asset{},
		&store.Transaction{},
		&store.ExchangeRate{},
		&store.ExchangeRateHistory{},
	)
}

// Close releases the connection pool.
func (d *DB) Close() error {
	if d == nil || d.Gorm == nil {
		return nil
	}
	sqlDB, err := d.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func notFound(entity string) error {
	return errors.NewStoreError(errors.NOT_FOUND, fmt.Sprintf("%s not found", entity), nil)
}

// wrap maps gorm errors to the gateway taxonomy. entity names the missing
// record in NOT_FOUND messages.
func wrap(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return errors.NewStoreError(errors.NOT_FOUND, fmt.Sprintf("%s not found", entity), err)
	case isUniqueViolation(err):
		return errors.NewStoreError(errors.CONSTRAINT_ERROR, fmt.Sprintf("%s violates a unique constraint", entity), err)
	default:
		return errors.NewStoreError(errors.INTERNAL, fmt.Sprintf("%s query failed", entity), err)
	}
}
