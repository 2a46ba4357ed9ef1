package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caprim-labs/stellar-gateway/events"
	"github.com/caprim-labs/stellar-gateway/store"
)

// handleListTransactions godoc
// @Summary  List mirrored transactions
// @Tags     transactions
// @Produce  json
// @Success  200  {array}  transactionResponse
// @Router   /api/transactions [get]
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.transactions.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(transactions))
}

// handleGetTransaction godoc
// @Summary  Get a transaction by id
// @Tags     transactions
// @Produce  json
// @Param    id   path      int  true  "transaction id"
// @Success  200  {object}  transactionResponse
// @Failure  404  {object}  errorResponse
// @Router   /api/transactions/{id} [get]
func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		badRequest(w, "id must be an integer")
		return
	}
	transaction, err := s.transactions.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(transaction))
}

// handleGetTransactionByHash godoc
// @Summary  Get a transaction by ledger hash
// @Tags     transactions
// @Produce  json
// @Param    hash  path      string  true  "ledger transaction hash"
// @Success  200   {object}  transactionResponse
// @Failure  404   {object}  errorResponse
// @Router   /api/transactions/by-hash/{hash} [get]
func (s *Server) handleGetTransactionByHash(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")
	if strings.TrimSpace(hash) == "" {
		badRequest(w, "hash is required")
		return
	}
	transaction, err := s.transactions.GetByHash(r.Context(), hash)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(transaction))
}

// handleListTransactionsByAccount godoc
// @Summary  List transactions of a stellar account
// @Tags     transactions
// @Produce  json
// @Param    stellarAccountId  path     string  true  "stellar account id"
// @Success  200               {array}  transactionResponse
// @Router   /api/transactions/by-account/{stellarAccountId} [get]
func (s *Server) handleListTransactionsByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := parseUUID(w, r.PathValue("stellarAccountId"))
	if !ok {
		return
	}
	transactions, err := s.transactions.ListByStellarAccount(r.Context(), accountID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(transactions))
}

// handleCreateTransaction godoc
// @Summary      Record a mirrored transaction
// @Description  Persists a mirror row for an already submitted ledger transaction and emits a recorded event.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request  body      createTransactionRequest  true  "transaction"
// @Success      201      {object}  transactionResponse
// @Failure      400      {object}  errorResponse
// @Router       /api/transactions [post]
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.StellarAccountID == uuid.Nil {
		badRequest(w, "stellar_account_id is required")
		return
	}
	if len(req.StellarTxHash) != 64 {
		badRequest(w, "stellar_tx_hash must be a 64 character hex hash")
		return
	}
	if strings.TrimSpace(req.Type) == "" {
		badRequest(w, "type is required")
		return
	}

	processedAt := time.Now().UTC()
	if req.ProcessedAt != nil {
		processedAt = *req.ProcessedAt
	}
	transaction := store.Transaction{
		StellarAccountID: req.StellarAccountID,
		StellarTxHash:    req.StellarTxHash,
		AssetID:          req.AssetID,
		Type:             req.Type,
		Amount:           req.Amount,
		ProcessedAt:      processedAt,
	}
	if err := s.transactions.Create(r.Context(), &transaction); err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.publishTransactionRecorded(r, transaction)
	writeJSON(w, http.StatusCreated, toTransactionResponse(transaction))
}

// publishTransactionRecorded emits the recorded event. Publishing is
// best-effort and never fails the request.
func (s *Server) publishTransactionRecorded(r *http.Request, t store.Transaction) {
	event := events.TransactionRecorded{
		TransactionID:    t.ID,
		StellarAccountID: t.StellarAccountID.String(),
		StellarTxHash:    t.StellarTxHash,
		Type:             t.Type,
		Amount:           t.Amount.String(),
		ProcessedAt:      t.ProcessedAt,
	}
	if t.Asset != nil {
		event.AssetCode = t.Asset.Code
	} else if asset, err := s.assets.Get(r.Context(), t.AssetID); err == nil {
		event.AssetCode = asset.Code
	}

	if err := s.publisher.Publish(r.Context(), events.TopicTransactionRecorded, event); err != nil {
		s.logger.Error("transaction recorded event dropped",
			"transaction_id", t.ID,
			"hash", t.StellarTxHash,
			"error", err.Error())
	}
}

// handleDeleteTransaction godoc
// @Summary  Delete a mirrored transaction
// @Tags     transactions
// @Param    id  path  int  true  "transaction id"
// @Success  204
// @Failure  404  {object}  errorResponse
// @Router   /api/transactions/{id} [delete]
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		badRequest(w, "id must be an integer")
		return
	}
	if err := s.transactions.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
