package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vkazakov/adboard-backend/internal/api/httpx"
	"github.com/vkazakov/adboard-backend/internal/apperr"
	"github.com/vkazakov/adboard-backend/internal/authz"
	"github.com/vkazakov/adboard-backend/internal/middleware"
	"github.com/vkazakov/adboard-backend/internal/models"
	"github.com/vkazakov/adboard-backend/internal/services"
)

// 10 MiB cap on multipart uploads.
const maxUploadSize = 10 << 20

type AdsHandler struct {
	Ads *services.AdService
}

func NewAdsHandler(as *services.AdService) *AdsHandler {
	return &AdsHandler{Ads: as}
}

type adsListResp struct {
	Count   int         `json:"count"`
	Results []models.Ad `json:"results"`
}

func (h *AdsHandler) List(w http.ResponseWriter, r *http.Request) {
	ads, err := h.Ads.List(r.Context())
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adsListResp{Count: len(ads), Results: ads})
}

func (h *AdsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	ads, err := h.Ads.ListMine(r.Context(), p)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adsListResp{Count: len(ads), Results: ads})
}

func (h *AdsHandler) GetFull(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	full, err := h.Ads.GetFull(r.Context(), id)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, full)
}

// Create consumes multipart form data: a "properties" part holding the JSON
// fields and an "image" part holding the upload.
func (h *AdsHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "expected multipart form", nil)
		return
	}
	var in services.AdInput
	if err := json.Unmarshal([]byte(r.FormValue("properties")), &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid properties part", nil)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "image part required", nil)
		return
	}
	defer file.Close()

	ad, err := h.Ads.Create(r.Context(), p, in, header.Filename, file)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, ad)
}

func (h *AdsHandler) Update(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in services.AdInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
		return
	}
	ad, err := h.Ads.Update(r.Context(), p, id, in)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, ad)
}

func (h *AdsHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
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

	path, err := h.Ads.UpdateImage(r.Context(), p, id, header.Filename, file)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"image_path": path})
}

func (h *AdsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Ads.Delete(r.Context(), p, id); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// principal is only called behind the auth middleware; a missing principal
// there is a wiring bug, not a client error.
func principal(r *http.Request) authz.Principal {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		panic("handler reached without principal")
	}
	return p
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteAppError(w, apperr.ErrNotFound)
		return 0, false
	}
	return id, true
}
