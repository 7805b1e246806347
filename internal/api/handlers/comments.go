package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vkazakov/adboard-backend/internal/api/httpx"
	"github.com/vkazakov/adboard-backend/internal/models"
	"github.com/vkazakov/adboard-backend/internal/services"
)

type CommentsHandler struct {
	Comments *services.CommentService
}

func NewCommentsHandler(cs *services.CommentService) *CommentsHandler {
	return &CommentsHandler{Comments: cs}
}

type commentsListResp struct {
	Count   int              `json:"count"`
	Results []models.Comment `json:"results"`
}

type commentReq struct {
	Text string `json:"text"`
}

func (h *CommentsHandler) ListForAd(w http.ResponseWriter, r *http.Request) {
	adID, ok := pathID(w, r, "adID")
	if !ok {
		return
	}
	comments, err := h.Comments.ListForAd(r.Context(), adID)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, commentsListResp{Count: len(comments), Results: comments})
}

func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	adID, ok := pathID(w, r, "adID")
	if !ok {
		return
	}
	var req commentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
		return
	}
	c, err := h.Comments.Create(r.Context(), p, adID, req.Text)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	adID, ok := pathID(w, r, "adID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req commentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid json", nil)
		return
	}
	c, err := h.Comments.Update(r.Context(), p, adID, id, req.Text)
	if err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	adID, ok := pathID(w, r, "adID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Comments.Delete(r.Context(), p, adID, id); err != nil {
		httpx.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
