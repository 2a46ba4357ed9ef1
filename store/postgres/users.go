package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caprim-labs/stellar-gateway/store"
)

// UserRepository implements store.Users. Status and KYC level rows are
// eagerly preloaded on every read.
type UserRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewUserRepository(db *DB, logger *slog.Logger) *UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserRepository{db: db, logger: logger}
}

func (r *UserRepository) List(ctx context.Context) ([]store.User, error) {
	var users []store.User
	err := r.db.Gorm.WithContext(ctx).
		Preload("UserStatus").
		Preload("KycLevel").
		Find(&users).Error
	if err != nil {
		return nil, wrap(err, "users")
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (store.User, error) {
	var user store.User
	err := r.db.Gorm.WithContext(ctx).
		Preload("UserStatus").
		Preload("KycLevel").
		First(&user, "id = ?", id).Error
	if err != nil {
		return store.User{}, wrap(err, "user")
	}
	return user, nil
}

func (r *UserRepository) GetByCognitoSub(ctx context.Context, cognitoSub string) (store.User, error) {
	var user store.User
	err := r.db.Gorm.WithContext(ctx).
		Preload("UserStatus").
		Preload("KycLevel").
		First(&user, "cognito_sub = ?", cognitoSub).Error
	if err != nil {
		return store.User{}, wrap(err, "user")
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *store.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := r.db.Gorm.WithContext(ctx).Create(user).Error; err != nil {
		return wrap(err, "user")
	}
	// Reload to carry the status and level names back to the caller.
	reloaded, err := r.Get(ctx, user.ID)
	if err != nil {
		return err
	}
	*user = reloaded
	r.logger.Info("user created", "user_id", user.ID, "email", user.Email)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update store.UserUpdate) (store.User, error) {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.UserStatusID != nil {
		fields["user_status_id"] = *update.UserStatusID
	}
	if update.KycLevelID != nil {
		fields["kyc_level_id"] = *update.KycLevelID
	}
	if update.KycDate != nil {
		fields["kyc_date"] = *update.KycDate
	}

	result := r.db.Gorm.WithContext(ctx).
		Model(&store.User{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return store.User{}, wrap(result.Error, "user")
	}
	if result.RowsAffected == 0 {
		return store.User{}, notFound("user")
	}
	return r.Get(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.Gorm.WithContext(ctx).Delete(&store.User{}, "id = ?", id)
	if result.Error != nil {
		return wrap(result.Error, "user")
	}
	if result.RowsAffected == 0 {
		return notFound("user")
	}
	return nil
}
