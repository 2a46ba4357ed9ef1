package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/caprim-labs/stellar-gateway/store"
)

// ExchangeRateRepository implements store.ExchangeRates.
type ExchangeRateRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewExchangeRateRepository(db *DB, logger *slog.Logger) *ExchangeRateRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExchangeRateRepository{db: db, logger: logger}
}

func (r *ExchangeRateRepository) List(ctx context.Context) ([]store.ExchangeRate, error) {
	var rates []store.ExchangeRate
	err := r.db.Gorm.WithContext(ctx).
		Preload("BaseAsset").
		Preload("QuoteAsset").
		Find(&rates).Error
	if err != nil {
		return nil, wrap(err, "exchange rates")
	}
	return rates, nil
}

func (r *ExchangeRateRepository) Get(ctx context.Context, id int) (store.ExchangeRate, error) {
	var rate store.ExchangeRate
	err := r.db.Gorm.WithContext(ctx).
		Preload("BaseAsset").
		Preload("QuoteAsset").
		First(&rate, "id = ?", id).Error
	if err != nil {
		return store.ExchangeRate{}, wrap(err, "exchange rate")
	}
	return rate, nil
}

func (r *ExchangeRateRepository) Current(ctx context.Context, baseAssetID, quoteAssetID int) (store.ExchangeRate, error) {
	var rate store.ExchangeRate
	err := r.db.Gorm.WithContext(ctx).
		Preload("BaseAsset").
		Preload("QuoteAsset").
		Where("base_asset_id = ? AND quote_asset_id = ?", baseAssetID, quoteAssetID).
		Order("timestamp DESC").
		First(&rate).Error
	if err != nil {
		return store.ExchangeRate{}, wrap(err, "exchange rate")
	}
	return rate, nil
}

func (r *ExchangeRateRepository) Create(ctx context.Context, rate *store.ExchangeRate) error {
	if rate.Timestamp.IsZero() {
		rate.Timestamp = time.Now().UTC()
	}
	if err := r.db.Gorm.WithContext(ctx).Create(rate).Error; err != nil {
		return wrap(err, "exchange rate")
	}
	reloaded, err := r.Get(ctx, rate.ID)
	if err != nil {
		return err
	}
	*rate = reloaded
	return nil
}

func (r *ExchangeRateRepository) Update(ctx context.Context, id int, update store.ExchangeRateUpdate) (store.ExchangeRate, error) {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if update.Rate != nil {
		fields["rate"] = *update.Rate
	}
	if update.Provider != nil {
		fields["provider"] = *update.Provider
	}
	if update.Timestamp != nil {
		fields["timestamp"] = *update.Timestamp
	}

	result := r.db.Gorm.WithContext(ctx).
		Model(&store.ExchangeRate{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return store.ExchangeRate{}, wrap(result.Error, "exchange rate")
	}
	if result.RowsAffected == 0 {
		return store.ExchangeRate{}, notFound("exchange rate")
	}
	return r.Get(ctx, id)
}

func (r *ExchangeRateRepository) Delete(ctx context.Context, id int) error {
	result := r.db.Gorm.WithContext(ctx).Delete(&store.ExchangeRate{}, "id = ?", id)
	if result.Error != nil {
		return wrap(result.Error, "exchange rate")
	}
	if result.RowsAffected == 0 {
		return notFound("exchange rate")
	}
	return nil
}

// AssetRepository implements store.Assets.
type AssetRepository struct {
	db *DB
}

func NewAssetRepository(db *DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) List(ctx context.Context) ([]store.Asset, error) {
	var assets []store.Asset
	if err := r.db.Gorm.WithContext(ctx).Find(&assets).Error; err != nil {
		return nil, wrap(err, "assets")
	}
	return assets, nil
}

func (r *AssetRepository) Get(ctx context.Context, id int) (store.Asset, error) {
	var asset store.Asset
	if err := r.db.Gorm.WithContext(ctx).First(&asset, "id = ?", id).Error; err != nil {
		return store.Asset{}, wrap(err, "asset")
	}
	return asset, nil
}

func (r *AssetRepository) GetByCode(ctx context.Context, code string) (store.Asset, error) {
	var asset store.Asset
	if err := r.db.Gorm.WithContext(ctx).First(&asset, "code = ?", code).Error; err != nil {
		return store.Asset{}, wrap(err, "asset")
	}
	return asset, nil
}

func (r *AssetRepository) Create(ctx context.Context, asset *store.Asset) error {
	if err := r.db.Gorm.WithContext(ctx).Create(asset).Error; err != nil {
		return wrap(err, "asset")
	}
	return nil
}
