package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vkazakov/adboard-backend/internal/api/httpx"
	"github.com/vkazakov/adboard-backend/internal/storage"
)

type ImagesHandler struct {
	Store *storage.ImageStore
}

func NewImagesHandler(s *storage.ImageStore) *ImagesHandler {
	return &ImagesHandler{Store: s}
}

// Download streams a stored file with its length and an attachment
// disposition carrying the stored base name.
func (h *ImagesHandler) Download(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	rc, size, err := h.Store.Load(rel)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", path.Base(rel)))
	_, _ = io.Copy(w, rc)
}
