package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/caprim-labs/stellar-gateway/store"
)

// handleListUsers godoc
// @Summary  List users
// @Tags     users
// @Produce  json
// @Success  200  {array}  userResponse
// @Router   /api/users [get]
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// handleGetUser godoc
// @Summary  Get a user by id
// @Tags     users
// @Produce  json
// @Param    id   path      string  true  "user id"
// @Success  200  {object}  userResponse
// @Failure  404  {object}  errorResponse
// @Router   /api/users/{id} [get]
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(w, r.PathValue("id"))
	if !ok {
		return
	}
	user, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// handleGetUserByCognitoSub godoc
// @Summary  Get a user by identity provider subject
// @Tags     users
// @Produce  json
// @Param    sub  path      string  true  "cognito subject"
// @Success  200  {object}  userResponse
// @Failure  404  {object}  errorResponse
// @Router   /api/users/by-cognito-sub/{sub} [get]
func (s *Server) handleGetUserByCognitoSub(w http.ResponseWriter, r *http.Request) {
	sub := r.PathValue("sub")
	if strings.TrimSpace(sub) == "" {
		badRequest(w, "sub is required")
		return
	}
	user, err := s.users.GetByCognitoSub(r.Context(), sub)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// handleCreateUser godoc
// @Summary  Create a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    request  body      createUserRequest  true  "user"
// @Success  201      {object}  userResponse
// @Failure  400      {object}  errorResponse
// @Router   /api/users [post]
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.CognitoSub) == "" {
		badRequest(w, "cognito_sub is required")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		badRequest(w, "email is required")
		return
	}

	user := store.User{
		ID:           uuid.New(),
		CognitoSub:   req.CognitoSub,
		Email:        req.Email,
		UserStatusID: req.UserStatusID,
		KycLevelID:   req.KycLevelID,
		KycDate:      req.KycDate,
	}
	if err := s.users.Create(r.Context(), &user); err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// handleUpdateUser godoc
// @Summary      Update a user
// @Description  Partial update; absent fields are left untouched.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id       path      string             true  "user id"
// @Param        request  body      updateUserRequest  true  "fields to change"
// @Success      200      {object}  userResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/users/{id} [put]
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(w, r.PathValue("id"))
	if !ok {
		return
	}
	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.users.Update(r.Context(), id, store.UserUpdate{
		Email:        req.Email,
		UserStatusID: req.UserStatusID,
		KycLevelID:   req.KycLevelID,
		KycDate:      req.KycDate,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// handleDeleteUser godoc
// @Summary  Delete a user
// @Tags     users
// @Param    id  path  string  true  "user id"
// @Success  204
// @Failure  404  {object}  errorResponse
// @Router   /api/users/{id} [delete]
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUID(w, r.PathValue("id"))
	if !ok {
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseUUID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		badRequest(w, "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
