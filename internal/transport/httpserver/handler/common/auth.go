package common

import (
	"errors"
	"net/http"
	"strings"
	"time"

	authdomain "dealer-app-go/internal/domain/auth"
	"dealer-app-go/internal/transport/httpserver/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
}

type authMeResponse struct {
	Username string `json:"username"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	token, expiresAt, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			h.log.BusinessError("auth.login: invalid credentials", err, "username", req.Username)
			WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
			return
		}
		h.log.InternalError("auth.login: issue token failed", err, "username", req.Username)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt.UTC(), Username: strings.TrimSpace(req.Username)})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	WriteJSON(w, http.StatusOK, authMeResponse{Username: user.Username})
}
