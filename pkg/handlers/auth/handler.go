package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/de-tools/dashboard/pkg/handlers/respond"
	"github.com/de-tools/dashboard/pkg/models/api"
	"github.com/de-tools/dashboard/pkg/models/domain"
	"github.com/de-tools/dashboard/pkg/services/auth"
)

const MessageInvalidCredentials = "Invalid credentials"

type Handler struct {
	auth auth.Service
}

func NewHandler(auth auth.Service) *Handler {
	return &Handler{auth: auth}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("failed to decode login")
		respond.Fail(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, domain.ErrUnauthorized) {
		respond.Fail(w, r, http.StatusUnauthorized, MessageInvalidCredentials)
		return
	}
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Success(w, r, http.StatusOK, api.Token{Token: token.Value, ExpiresAt: token.ExpiresAt})
}

// Validate reports the principal of an already authenticated request.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		respond.Fail(w, r, http.StatusUnauthorized, respond.MessageUnauthorized)
		return
	}
	respond.Success(w, r, http.StatusOK, map[string]string{"username": username})
}
