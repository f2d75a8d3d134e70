package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smart_edu_quiz/internal/api/middleware"
	"smart_edu_quiz/internal/api/view"
	"smart_edu_quiz/internal/app/service"
	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/platform/logger"
	"smart_edu_quiz/internal/platform/session"
)

type BookmarkHandler struct {
	Base
	bookmarkService *service.BookmarkService
}

func NewBookmarkHandler(base Base, bookmarkService *service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{Base: base, bookmarkService: bookmarkService}
}

type bookmarkRequest struct {
	QuestionID int64 `json:"question_id"`
}

func (h *BookmarkHandler) RegisterRoutes(r chi.Router) {
	r.HandleFunc("/bookmark", h.toggle)
	r.With(middleware.RequireRole(h.store, model.RoleStudent, "Only students can view bookmarked questions.")).
		Get("/bookmarks", h.list)
}

// toggle answers every method; only a POST with a question id succeeds.
func (h *BookmarkHandler) toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		common.RespondWithStatus(w, http.StatusBadRequest, common.StatusError)
		return
	}
	var req bookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestionID <= 0 {
		common.RespondWithStatus(w, http.StatusBadRequest, common.StatusError)
		return
	}
	if _, err := h.bookmarkService.Toggle(r.Context(), session.IDFromContext(r.Context()), req.QuestionID); err != nil {
		logger.Default.Error("bookmark toggle failed", err)
		common.RespondWithStatus(w, http.StatusInternalServerError, common.StatusError)
		return
	}
	common.RespondWithStatus(w, http.StatusOK, common.StatusSuccess)
}

func (h *BookmarkHandler) list(w http.ResponseWriter, r *http.Request) {
	questions, err := h.bookmarkService.List(r.Context(), session.IDFromContext(r.Context()))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageBookmarks, view.PageData{Title: "Bookmarks", Data: questions})
}
