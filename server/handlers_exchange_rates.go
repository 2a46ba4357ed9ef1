package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/caprim-labs/stellar-gateway/store"
)

// handleListExchangeRates godoc
// @Summary  List exchange rates
// @Tags     exchange-rates
// @Produce  json
// @Success  200  {array}  exchangeRateResponse
// @Router   /api/exchange-rates [get]
func (s *Server) handleListExchangeRates(w http.ResponseWriter, r *http.Request) {
	rates, err := s.rates.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeRateResponses(rates))
}

// handleCurrentExchangeRate godoc
// @Summary      Get the current rate for a pair
// @Description  Returns the quote with the latest timestamp for (base, quote).
// @Tags         exchange-rates
// @Produce      json
// @Param        base   query     int  true  "base asset id"
// @Param        quote  query     int  true  "quote asset id"
// @Success      200    {object}  exchangeRateResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/exchange-rates/current [get]
func (s *Server) handleCurrentExchangeRate(w http.ResponseWriter, r *http.Request) {
	base, err := strconv.Atoi(r.URL.Query().Get("base"))
	if err != nil {
		badRequest(w, "base must be an asset id")
		return
	}
	quote, err := strconv.Atoi(r.URL.Query().Get("quote"))
	if err != nil {
		badRequest(w, "quote must be an asset id")
		return
	}

	rate, err := s.rates.Current(r.Context(), base, quote)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeRateResponse(rate))
}

// handleGetExchangeRate godoc
// @Summary  Get an exchange rate by id
// @Tags     exchange-rates
// @Produce  json
// @Param    id   path      int  true  "rate id"
// @Success  200  {object}  exchangeRateResponse
// @Failure  404  {object}  errorResponse
// @Router   /api/exchange-rates/{id} [get]
func (s *Server) handleGetExchangeRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		badRequest(w, "id must be an integer")
		return
	}
	rate, err := s.rates.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeRateResponse(rate))
}

// handleCreateExchangeRate godoc
// @Summary  Record an exchange rate quote
// @Tags     exchange-rates
// @Accept   json
// @Produce  json
// @Param    request  body      createExchangeRateRequest  true  "rate"
// @Success  201      {object}  exchangeRateResponse
// @Failure  400      {object}  errorResponse
// @Router   /api/exchange-rates [post]
func (s *Server) handleCreateExchangeRate(w http.ResponseWriter, r *http.Request) {
	var req createExchangeRateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.BaseAssetID == 0 || req.QuoteAssetID == 0 {
		badRequest(w, "base_asset_id and quote_asset_id are required")
		return
	}
	if !req.Rate.IsPositive() {
		badRequest(w, "rate must be positive")
		return
	}

	timestamp := time.Now().UTC()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}
	rate := store.ExchangeRate{
		BaseAssetID:  req.BaseAssetID,
		QuoteAssetID: req.QuoteAssetID,
		Rate:         req.Rate,
		Provider:     req.Provider,
		Timestamp:    timestamp,
	}
	if err := s.rates.Create(r.Context(), &rate); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExchangeRateResponse(rate))
}

// handleUpdateExchangeRate godoc
// @Summary  Update an exchange rate
// @Tags     exchange-rates
// @Accept   json
// @Produce  json
// @Param    id       path      int                        true  "rate id"
// @Param    request  body      updateExchangeRateRequest  true  "fields to change"
// @Success  200      {object}  exchangeRateResponse
// @Failure  404      {object}  errorResponse
// @Router   /api/exchange-rates/{id} [put]
func (s *Server) handleUpdateExchangeRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		badRequest(w, "id must be an integer")
		return
	}
	var req updateExchangeRateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Rate != nil && !req.Rate.IsPositive() {
		badRequest(w, "rate must be positive")
		return
	}

	rate, err := s.rates.Update(r.Context(), id, store.ExchangeRateUpdate{
		Rate:      req.Rate,
		Provider:  req.Provider,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExchangeRateResponse(rate))
}

// handleDeleteExchangeRate godoc
// @Summary  Delete an exchange rate
// @Tags     exchange-rates
// @Param    id  path  int  true  "rate id"
// @Success  204
// @Failure  404  {object}  errorResponse
// @Router   /api/exchange-rates/{id} [delete]
func (s *Server) handleDeleteExchangeRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		badRequest(w, "id must be an integer")
		return
	}
	if err := s.rates.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
