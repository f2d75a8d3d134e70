package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"smart_edu_quiz/internal/api/middleware"
	"smart_edu_quiz/internal/api/view"
	"smart_edu_quiz/internal/app/form"
	"smart_edu_quiz/internal/app/service"
	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/platform/session"
)

type CategoryHandler struct {
	Base
	categoryService *service.CategoryService
}

func NewCategoryHandler(base Base, categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Base: base, categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/category/create", func(r chi.Router) {
		r.Use(middleware.RequireRole(h.store, model.RoleTeacher, "Only teachers can create categories."))
		r.Get("/", h.createPage)
		r.Post("/", h.create)
	})
}

func (h *CategoryHandler) createPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageCreateCategory, view.PageData{Title: "Create category"})
}

func (h *CategoryHandler) create(w http.ResponseWriter, r *http.Request) {
	f := form.CategoryForm{
		Name:        r.PostFormValue("name"),
		Icon:        r.PostFormValue("icon"),
		Description: r.PostFormValue("description"),
	}
	_, err := h.categoryService.Create(r.Context(), middleware.ViewerFromContext(r.Context()), f)
	if err != nil {
		if !errors.Is(err, common.ErrValidation) {
			h.renderError(w, r, err)
			return
		}
		h.render(w, r, http.StatusBadRequest, view.PageCreateCategory, view.PageData{
			Title:  "Create category",
			Errors: errorMessages(err),
			Form:   f,
		})
		return
	}
	h.flash(r, session.LevelSuccess, "Category created successfully!")
	h.redirect(w, r, "/dashboard")
}
