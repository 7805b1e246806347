package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vkazakov/adboard-backend/internal/api/httpx"
	"github.com/vkazakov/adboard-backend/internal/services"
)

type UsersHandler struct {
	Users *services.UserService
}

func NewUsersHandler(us *services.UserService) *UsersHandler {
	return &UsersHandler{Users: us}
}

func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	u, err := h.Users.GetByID(r.Context(), p.UserID)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	var in services.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
		return
	}
	u, err := h.Users.UpdateProfile(r.Context(), p, in)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

type setPasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *UsersHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	var req setPasswordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
		return
	}
	if err := h.Users.SetPassword(r.Context(), p, req.CurrentPassword, req.NewPassword); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "expected multipart form", nil)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "image part required", nil)
		return
	}
	defer file.Close()

	path, err := h.Users.UpdateAvatar(r.Context(), p, header.Filename, file)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"avatar_path": path})
}
