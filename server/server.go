// Package server exposes the gateway over HTTP. Handlers translate JSON
// requests into orchestrator and repository calls; every failure is mapped
// to a status code in exactly one place (writeDomainError), per the error
// taxonomy in the errors package.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	gateway "github.com/caprim-labs/stellar-gateway"
	"github.com/caprim-labs/stellar-gateway/errors"
	"github.com/caprim-labs/stellar-gateway/events"
	_ "github.com/caprim-labs/stellar-gateway/server/docs"
	"github.com/caprim-labs/stellar-gateway/store"
)

// Payments is the orchestrator surface the server consumes.
type Payments interface {
	CreateAccount(ctx context.Context) (gateway.KeyPair, error)
	Balances(ctx context.Context, address string) ([]gateway.Balance, error)
	EstablishTrustline(ctx context.Context, secretSeed, assetCode string) (string, error)
	SendXLM(ctx context.Context, sourceSecretSeed, destination, amount string) (string, error)
	SendAsset(ctx context.Context, sourceSecretSeed, destination, amount, assetCode string) (string, error)
}

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	addr         string
	payments     Payments
	users        store.Users
	accounts     store.StellarAccounts
	transactions store.Transactions
	rates        store.ExchangeRates
	assets       store.Assets
	publisher    events.Publisher
}

type Deps struct {
	Payments     Payments
	Users        store.Users
	Accounts     store.StellarAccounts
	Transactions store.Transactions
	Rates        store.ExchangeRates
	Assets       store.Assets
	Publisher    events.Publisher
	Logger       *slog.Logger
}

func New(addr string, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Publisher == nil {
		deps.Publisher = events.Noop{}
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       deps.Logger,
		addr:         addr,
		payments:     deps.Payments,
		users:        deps.Users,
		accounts:     deps.Accounts,
		transactions: deps.Transactions,
		rates:        deps.Rates,
		assets:       deps.Assets,
		publisher:    deps.Publisher,
	}
	s.registerRoutes()
	return s
}

// Handler returns the route tree, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Ledger-facing endpoints.
	s.mux.HandleFunc("GET /api/account", s.handleCreateAccount)
	s.mux.HandleFunc("GET /api/account/{accountId}", s.handleAccountBalances)
	s.mux.HandleFunc("POST /api/trustline", s.handleEstablishTrustline)
	s.mux.HandleFunc("POST /api/transaction/send-xlm", s.handleSendXLM)
	s.mux.HandleFunc("POST /api/transaction/send-asset", s.handleSendAsset)
	s.mux.HandleFunc("POST /api/transaction/send-usdc", s.handleSendUSDC)

	// Users.
	s.mux.HandleFunc("GET /api/users", s.handleListUsers)
	s.mux.HandleFunc("GET /api/users/{id}", s.handleGetUser)
	s.mux.HandleFunc("GET /api/users/by-cognito-sub/{sub}", s.handleGetUserByCognitoSub)
	s.mux.HandleFunc("POST /api/users", s.handleCreateUser)
	s.mux.HandleFunc("PUT /api/users/{id}", s.handleUpdateUser)
	s.mux.HandleFunc("DELETE /api/users/{id}", s.handleDeleteUser)

	// Stellar accounts (mirrored custody rows).
	s.mux.HandleFunc("GET /api/stellar-accounts", s.handleListStellarAccounts)
	s.mux.HandleFunc("GET /api/stellar-accounts/{id}", s.handleGetStellarAccount)
	s.mux.HandleFunc("GET /api/stellar-accounts/by-public-key/{publicKey}", s.handleGetStellarAccountByPublicKey)
	s.mux.HandleFunc("GET /api/stellar-accounts/by-user/{userId}", s.handleListStellarAccountsByUser)
	s.mux.HandleFunc("POST /api/stellar-accounts", s.handleCreateStellarAccount)
	s.mux.HandleFunc("PUT /api/stellar-accounts/{id}", s.handleUpdateStellarAccount)
	s.mux.HandleFunc("DELETE /api/stellar-accounts/{id}", s.handleDeleteStellarAccount)

	// Mirrored transactions.
	s.mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	s.mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	s.mux.HandleFunc("GET /api/transactions/by-hash/{hash}", s.handleGetTransactionByHash)
	s.mux.HandleFunc("GET /api/transactions/by-account/{stellarAccountId}", s.handleListTransactionsByAccount)
	s.mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	s.mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	// Exchange rates.
	s.mux.HandleFunc("GET /api/exchange-rates", s.handleListExchangeRates)
	s.mux.HandleFunc("GET /api/exchange-rates/current", s.handleCurrentExchangeRate)
	s.mux.HandleFunc("GET /api/exchange-rates/{id}", s.handleGetExchangeRate)
	s.mux.HandleFunc("POST /api/exchange-rates", s.handleCreateExchangeRate)
	s.mux.HandleFunc("PUT /api/exchange-rates/{id}", s.handleUpdateExchangeRate)
	s.mux.HandleFunc("DELETE /api/exchange-rates/{id}", s.handleDeleteExchangeRate)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, code errors.Code, detail string) {
	writeJSON(w, status, errorResponse{Code: string(code), Detail: detail})
}

// writeDomainError is the single mapping point from the error taxonomy to
// HTTP status codes.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var ge *errors.GatewayError
	if !errors.As(err, &ge) {
		s.logger.Error("unclassified error", "error", err.Error())
		writeError(w, http.StatusInternalServerError, errors.INTERNAL, "internal error")
		return
	}

	switch ge.Code {
	case errors.VALIDATION_FAILED, errors.UNKNOWN_ASSET, errors.TRUSTLINE_MISSING,
		errors.INSUFFICIENT_FUNDS, errors.SUBMISSION_REJECTED, errors.CONSTRAINT_ERROR:
		writeError(w, http.StatusBadRequest, ge.Code, ge.Message)
	case errors.ACCOUNT_NOT_FOUND, errors.NOT_FOUND:
		writeError(w, http.StatusNotFound, ge.Code, ge.Message)
	default:
		s.logger.Error("internal error", "code", string(ge.Code), "error", ge.Error())
		writeError(w, http.StatusInternalServerError, errors.INTERNAL, "internal error")
	}
}

func badRequest(w http.ResponseWriter, detail string) {
	writeError(w, http.StatusBadRequest, errors.VALIDATION_FAILED, detail)
}

func decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		badRequest(w, "request body must be valid JSON")
		return false
	}
	return true
}
