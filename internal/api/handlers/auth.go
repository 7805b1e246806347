package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vkazakov/adboard-backend/internal/api/httpx"
	"github.com/vkazakov/adboard-backend/internal/auth"
	"github.com/vkazakov/adboard-backend/internal/services"
)

type AuthHandler struct {
	Users  *services.UserService
	Tokens *auth.TokenManager
}

func NewAuthHandler(us *services.UserService, tm *auth.TokenManager) *AuthHandler {
	return &AuthHandler{Users: us, Tokens: tm}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
		return
	}
	u, err := h.Users.Register(r.Context(), in)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login verifies the submitted credentials and hands back a bearer token.
// Clients that prefer plain Basic auth can ignore the token entirely.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
		return
	}
	u, err := h.Users.VerifyCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	token, exp, err := h.Tokens.Generate(u.ID, u.Username, string(u.Role))
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "token generation failed", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{
		AccessToken: token,
		ExpiresIn:   int64(time.Until(exp).Seconds()),
	})
}
