package server

import (
	"net/http"
	"strings"
)

// handleCreateAccount godoc
// @Summary      Create a Stellar keypair
// @Description  Generates a new keypair and, outside production, funds it through friendbot.
// @Tags         account
// @Produce      json
// @Success      200  {object}  keyPairResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/account [get]
func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	pair, err := s.payments.CreateAccount(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, keyPairResponse{
		PublicKey:  pair.PublicKey,
		SecretSeed: pair.SecretSeed,
	})
}

// handleAccountBalances godoc
// @Summary      List account balances
// @Description  Returns all balances of a ledger account, native and issued.
// @Tags         account
// @Produce      json
// @Param        accountId  path      string  true  "account public key"
// @Success      200        {array}   balanceResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/account/{accountId} [get]
func (s *Server) handleAccountBalances(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("accountId")
	// The legacy route shape passed the key as a query parameter.
	if q := r.URL.Query().Get("accountId"); q != "" {
		address = q
	}
	if strings.TrimSpace(address) == "" {
		badRequest(w, "accountId is required")
		return
	}

	balances, err := s.payments.Balances(r.Context(), address)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceResponses(balances))
}

// handleEstablishTrustline godoc
// @Summary      Establish a trustline
// @Description  Submits a change-trust operation for a registered asset and returns the transaction hash.
// @Tags         trustline
// @Accept       json
// @Produce      json
// @Param        request  body      establishTrustlineRequest  true  "trustline request"
// @Success      200      {object}  transactionHashResponse
// @Failure      400      {object}  errorResponse
// @Router       /api/trustline [post]
func (s *Server) handleEstablishTrustline(w http.ResponseWriter, r *http.Request) {
	var req establishTrustlineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.SecretSeed) == "" {
		badRequest(w, "secret_seed is required")
		return
	}
	if strings.TrimSpace(req.AssetCode) == "" {
		badRequest(w, "asset_code is required")
		return
	}

	hash, err := s.payments.EstablishTrustline(r.Context(), req.SecretSeed, req.AssetCode)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionHashResponse{Hash: hash})
}

// handleSendXLM godoc
// @Summary      Send native lumens
// @Tags         transaction
// @Accept       json
// @Produce      json
// @Param        request  body      sendXLMRequest  true  "payment request"
// @Success      200      {object}  transactionHashResponse
// @Failure      400      {object}  errorResponse
// @Router       /api/transaction/send-xlm [post]
func (s *Server) handleSendXLM(w http.ResponseWriter, r *http.Request) {
	var req sendXLMRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if detail, ok := validateSendFields(req.SourceSecretSeed, req.DestinationAccountID, req.Amount); !ok {
		badRequest(w, detail)
		return
	}

	hash, err := s.payments.SendXLM(r.Context(), req.SourceSecretSeed, req.DestinationAccountID, req.Amount)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionHashResponse{Hash: hash})
}

// handleSendAsset godoc
// @Summary      Send an issued asset
// @Description  Sends any registered asset. Both parties must hold a trustline for the asset.
// @Tags         transaction
// @Accept       json
// @Produce      json
// @Param        request  body      sendAssetRequest  true  "payment request"
// @Success      200      {object}  transactionHashResponse
// @Failure      400      {object}  errorResponse
// @Router       /api/transaction/send-asset [post]
func (s *Server) handleSendAsset(w http.ResponseWriter, r *http.Request) {
	var req sendAssetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.AssetCode) == "" {
		badRequest(w, "asset_code is required")
		return
	}
	if detail, ok := validateSendFields(req.SourceSecretSeed, req.DestinationAccountID, req.Amount); !ok {
		badRequest(w, detail)
		return
	}

	hash, err := s.payments.SendAsset(r.Context(), req.SourceSecretSeed, req.DestinationAccountID, req.Amount, req.AssetCode)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionHashResponse{Hash: hash})
}

// handleSendUSDC godoc
// @Summary      Send USDC
// @Description  Legacy alias for send-asset with the asset fixed to USDC.
// @Tags         transaction
// @Accept       json
// @Produce      json
// @Param        request  body      sendXLMRequest  true  "payment request"
// @Success      200      {object}  transactionHashResponse
// @Failure      400      {object}  errorResponse
// @Router       /api/transaction/send-usdc [post]
func (s *Server) handleSendUSDC(w http.ResponseWriter, r *http.Request) {
	var req sendXLMRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if detail, ok := validateSendFields(req.SourceSecretSeed, req.DestinationAccountID, req.Amount); !ok {
		badRequest(w, detail)
		return
	}

	hash, err := s.payments.SendAsset(r.Context(), req.SourceSecretSeed, req.DestinationAccountID, req.Amount, "USDC")
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionHashResponse{Hash: hash})
}

func validateSendFields(secretSeed, destination, amount string) (string, bool) {
	if strings.TrimSpace(secretSeed) == "" {
		return "source_secret_seed is required", false
	}
	if strings.TrimSpace(destination) == "" {
		return "destination_account_id is required", false
	}
	if strings.TrimSpace(amount) == "" {
		return "amount is required", false
	}
	return "", true
}
