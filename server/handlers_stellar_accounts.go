package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/caprim-labs/stellar-gateway/store"
)

// handleListStellarAccounts godoc
// @Summary  List mirrored stellar accounts
// @Tags     stellar-accounts
// @Produce  json
// @Success  200  {array}  stellarAccountResponse
// @Router   /api/stellar-accounts [get]
func (s *Server) handleListStellarAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accounts.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStellarAccountResponses(accounts))
}

// handleGetStellarAccount godoc
// @Summary  Get a stellar account by id
// @Tags     stellar-accounts
// @Produce  json
// @Param    id   path      string  true  "account id"
// @Success  200  {object}  stellarAccountResponse
// @Failure  404  {object}  errorResponse
// @Router   /api/stellar-accounts/{id} [get]
func (s *Server) handleGetStellarAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(w, r.PathValue("id"))
	if !ok {
		return
	}
	account, err := s.accounts.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStellarAccountResponse(account))
}

// handleGetStellarAccountByPublicKey godoc
// @Summary  Get a stellar account by public key
// @Tags     stellar-accounts
// @Produce  json
// @Param    publicKey  path      string  true  "ledger public key"
// @Success  200        {object}  stellarAccountResponse
// @Failure  404        {object}  errorResponse
// @Router   /api/stellar-accounts/by-public-key/{publicKey} [get]
func (s *Server) handleGetStellarAccountByPublicKey(w http.ResponseWriter, r *http.Request) {
	publicKey := r.PathValue("publicKey")
	if strings.TrimSpace(publicKey) == "" {
		badRequest(w, "publicKey is required")
		return
	}
	account, err := s.accounts.GetByPublicKey(r.Context(), publicKey)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStellarAccountResponse(account))
}

// handleListStellarAccountsByUser godoc
// @Summary  List stellar accounts owned by a user
// @Tags     stellar-accounts
// @Produce  json
// @Param    userId  path     string  true  "user id"
// @Success  200     {array}  stellarAccountResponse
// @Router   /api/stellar-accounts/by-user/{userId} [get]
func (s *Server) handleListStellarAccountsByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUID(w, r.PathValue("userId"))
	if !ok {
		return
	}
	accounts, err := s.accounts.ListByUser(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStellarAccountResponses(accounts))
}

// handleCreateStellarAccount godoc
// @Summary  Mirror a custodial stellar account
// @Tags     stellar-accounts
// @Accept   json
// @Produce  json
// @Param    request  body      createStellarAccountRequest  true  "account"
// @Success  201      {object}  stellarAccountResponse
// @Failure  400      {object}  errorResponse
// @Router   /api/stellar-accounts [post]
func (s *Server) handleCreateStellarAccount(w http.ResponseWriter, r *http.Request) {
	var req createStellarAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == uuid.Nil {
		badRequest(w, "user_id is required")
		return
	}
	if strings.TrimSpace(req.PublicKey) == "" {
		badRequest(w, "public_key is required")
		return
	}
	if strings.TrimSpace(req.KmsKeyArn) == "" {
		badRequest(w, "kms_key_arn is required")
		return
	}

	account := store.StellarAccount{
		ID:          uuid.New(),
		UserID:      req.UserID,
		PublicKey:   req.PublicKey,
		KmsKeyArn:   req.KmsKeyArn,
		AccountName: req.AccountName,
		IsActive:    true,
	}
	if err := s.accounts.Create(r.Context(), &account); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStellarAccountResponse(account))
}

// handleUpdateStellarAccount godoc
// @Summary  Update a stellar account
// @Tags     stellar-accounts
// @Accept   json
// @Produce  json
// @Param    id       path      string                       true  "account id"
// @Param    request  body      updateStellarAccountRequest  true  "fields to change"
// @Success  200      {object}  stellarAccountResponse
// @Failure  404      {object}  errorResponse
// @Router   /api/stellar-accounts/{id} [put]
func (s *Server) handleUpdateStellarAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(w, r.PathValue("id"))
	if !ok {
		return
	}
	var req updateStellarAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := s.accounts.Update(r.Context(), id, store.StellarAccountUpdate{
		AccountName: req.AccountName,
		IsActive:    req.IsActive,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStellarAccountResponse(account))
}

// handleDeleteStellarAccount godoc
// @Summary  Delete a stellar account
// @Tags     stellar-accounts
// @Param    id  path  string  true  "account id"
// @Success  204
// @Failure  404  {object}  errorResponse
// @Router   /api/stellar-accounts/{id} [delete]
func (s *Server) handleDeleteStellarAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(w, r.PathValue("id"))
	if !ok {
		return
	}
	if err := s.accounts.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
