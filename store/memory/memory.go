// Package memory provides in-memory implementations of the store
// repositories. Each repository keeps its rows in a map guarded by a
// sync.RWMutex. Suitable for tests and examples without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/caprim-labs/stellar-gateway/errors"
	"github.com/caprim-labs/stellar-gateway/store"
)

func notFound(entity string) error {
	return errors.NewStoreError(errors.NOT_FOUND, entity+" not found", nil)
}

func constraint(entity string) error {
	return errors.NewStoreError(errors.CONSTRAINT_ERROR, entity+" violates a unique constraint", nil)
}

// UserStore is an in-memory implementation of store.Users.
type UserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]store.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]store.User)}
}

func (s *UserStore) List(_ context.Context) ([]store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]store.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *UserStore) Get(_ context.Context, id uuid.UUID) (store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return store.User{}, notFound("user")
	}
	return user, nil
}

func (s *UserStore) GetByCognitoSub(_ context.Context, cognitoSub string) (store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.CognitoSub == cognitoSub {
			return u, nil
		}
	}
	return store.User{}, notFound("user")
}

func (s *UserStore) Create(_ context.Context, user *store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	for _, u := range s.users {
		if u.CognitoSub == user.CognitoSub {
			return constraint("user")
		}
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) Update(_ context.Context, id uuid.UUID, update store.UserUpdate) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return store.User{}, notFound("user")
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.UserStatusID != nil {
		user.UserStatusID = *update.UserStatusID
	}
	if update.KycLevelID != nil {
		user.KycLevelID = *update.KycLevelID
	}
	if update.KycDate != nil {
		user.KycDate = update.KycDate
	}
	user.UpdatedAt = time.Now().UTC()
	s.users[id] = user
	return user, nil
}

func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return notFound("user")
	}
	delete(s.users, id)
	return nil
}

// StellarAccountStore is an in-memory implementation of store.StellarAccounts.
type StellarAccountStore struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]store.StellarAccount
}

func NewStellarAccountStore() *StellarAccountStore {
	return &StellarAccountStore{accounts: make(map[uuid.UUID]store.StellarAccount)}
}

func (s *StellarAccountStore) List(_ context.Context) ([]store.StellarAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]store.StellarAccount, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].CreatedAt.Before(accounts[j].CreatedAt) })
	return accounts, nil
}

func (s *StellarAccountStore) ListByUser(_ context.Context, userID uuid.UUID) ([]store.StellarAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var accounts []store.StellarAccount
	for _, a := range s.accounts {
		if a.UserID == userID {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

func (s *StellarAccountStore) Get(_ context.Context, id uuid.UUID) (store.StellarAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return store.StellarAccount{}, notFound("stellar account")
	}
	return account, nil
}

func (s *StellarAccountStore) GetByPublicKey(_ context.Context, publicKey string) (store.StellarAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.PublicKey == publicKey {
			return a, nil
		}
	}
	return store.StellarAccount{}, notFound("stellar account")
}

func (s *StellarAccountStore) Create(_ context.Context, account *store.StellarAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	for _, a := range s.accounts {
		if a.PublicKey == account.PublicKey {
			return constraint("stellar account")
		}
	}
	now := time.Now().UTC()
	account.CreatedAt, account.UpdatedAt = now, now
	s.accounts[account.ID] = *account
	return nil
}

func (s *StellarAccountStore) Update(_ context.Context, id uuid.UUID, update store.StellarAccountUpdate) (store.StellarAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return store.StellarAccount{}, notFound("stellar account")
	}
	if update.AccountName != nil {
		account.AccountName = *update.AccountName
	}
	if update.IsActive != nil {
		account.IsActive = *update.IsActive
	}
	account.UpdatedAt = time.Now().UTC()
	s.accounts[id] = account
	return account, nil
}

func (s *StellarAccountStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[id]; !ok {
		return notFound("stellar account")
	}
	delete(s.accounts, id)
	return nil
}

// TransactionStore is an in-memory implementation of store.Transactions.
type TransactionStore struct {
	mu           sync.RWMutex
	transactions map[int64]store.Transaction
	nextID       int64
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{transactions: make(map[int64]store.Transaction), nextID: 1}
}

func (s *TransactionStore) List(_ context.Context) ([]store.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	transactions := make([]store.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		transactions = append(transactions, t)
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	return transactions, nil
}

func (s *TransactionStore) ListByStellarAccount(_ context.Context, stellarAccountID uuid.UUID) ([]store.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var transactions []store.Transaction
	for _, t := range s.transactions {
		if t.StellarAccountID == stellarAccountID {
			transactions = append(transactions, t)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	return transactions, nil
}

func (s *TransactionStore) Get(_ context.Context, id int64) (store.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	transaction, ok := s.transactions[id]
	if !ok {
		return store.Transaction{}, notFound("transaction")
	}
	return transaction, nil
}

func (s *TransactionStore) GetByHash(_ context.Context, stellarTxHash string) (store.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.StellarTxHash == stellarTxHash {
			return t, nil
		}
	}
	return store.Transaction{}, notFound("transaction")
}

func (s *TransactionStore) Create(_ context.Context, transaction *store.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if t.StellarTxHash == transaction.StellarTxHash {
			return constraint("transaction")
		}
	}
	transaction.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	if transaction.ProcessedAt.IsZero() {
		transaction.ProcessedAt = now
	}
	transaction.CreatedAt, transaction.UpdatedAt = now, now
	s.transactions[transaction.ID] = *transaction
	return nil
}

func (s *TransactionStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[id]; !ok {
		return notFound("transaction")
	}
	delete(s.transactions, id)
	return nil
}

// ExchangeRateStore is an in-memory implementation of store.ExchangeRates.
type ExchangeRateStore struct {
	mu     sync.RWMutex
	rates  map[int]store.ExchangeRate
	nextID int
}

func NewExchangeRateStore() *ExchangeRateStore {
	return &ExchangeRateStore{rates: make(map[int]store.ExchangeRate), nextID: 1}
}

func (s *ExchangeRateStore) List(_ context.Context) ([]store.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rates := make([]store.ExchangeRate, 0, len(s.rates))
	for _, r := range s.rates {
		rates = append(rates, r)
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].ID < rates[j].ID })
	return rates, nil
}

func (s *ExchangeRateStore) Get(_ context.Context, id int) (store.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rate, ok := s.rates[id]
	if !ok {
		return store.ExchangeRate{}, notFound("exchange rate")
	}
	return rate, nil
}

func (s *ExchangeRateStore) Current(_ context.Context, baseAssetID, quoteAssetID int) (store.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var current *store.ExchangeRate
	for id := range s.rates {
		rate := s.rates[id]
		if rate.BaseAssetID != baseAssetID || rate.QuoteAssetID != quoteAssetID {
			continue
		}
		if current == nil || rate.Timestamp.After(current.Timestamp) {
			current = &rate
		}
	}
	if current == nil {
		return store.ExchangeRate{}, notFound("exchange rate")
	}
	return *current, nil
}

func (s *ExchangeRateStore) Create(_ context.Context, rate *store.ExchangeRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rate.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	if rate.Timestamp.IsZero() {
		rate.Timestamp = now
	}
	rate.CreatedAt, rate.UpdatedAt = now, now
	s.rates[rate.ID] = *rate
	return nil
}

func (s *ExchangeRateStore) Update(_ context.Context, id int, update store.ExchangeRateUpdate) (store.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rate, ok := s.rates[id]
	if !ok {
		return store.ExchangeRate{}, notFound("exchange rate")
	}
	if update.Rate != nil {
		rate.Rate = *update.Rate
	}
	if update.Provider != nil {
		rate.Provider = *update.Provider
	}
	if update.Timestamp != nil {
		rate.Timestamp = *update.Timestamp
	}
	rate.UpdatedAt = time.Now().UTC()
	s.rates[id] = rate
	return rate, nil
}

func (s *ExchangeRateStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rates[id]; !ok {
		return notFound("exchange rate")
	}
	delete(s.rates, id)
	return nil
}

// AssetStore is an in-memory implementation of store.Assets.
type AssetStore struct {
	mu     sync.RWMutex
	assets map[int]store.Asset
	nextID int
}

func NewAssetStore() *AssetStore {
	return &AssetStore{assets: make(map[int]store.Asset), nextID: 1}
}

func (s *AssetStore) List(_ context.Context) ([]store.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assets := make([]store.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}

func (s *AssetStore) Get(_ context.Context, id int) (store.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.assets[id]
	if !ok {
		return store.Asset{}, notFound("asset")
	}
	return asset, nil
}

func (s *AssetStore) GetByCode(_ context.Context, code string) (store.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.assets {
		if a.Code == code {
			return a, nil
		}
	}
	return store.Asset{}, notFound("asset")
}

func (s *AssetStore) Create(_ context.Context, asset *store.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	asset.CreatedAt, asset.UpdatedAt = now, now
	s.assets[asset.ID] = *asset
	return nil
}
