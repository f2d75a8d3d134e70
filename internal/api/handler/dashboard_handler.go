package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"smart_edu_quiz/internal/api/middleware"
	"smart_edu_quiz/internal/api/view"
	"smart_edu_quiz/internal/app/service"
)

type DashboardHandler struct {
	Base
	dashboardService *service.DashboardService
}

func NewDashboardHandler(base Base, dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{Base: base, dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
}

func (h *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboardService.ForViewer(r.Context(), middleware.ViewerFromContext(r.Context()))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if d.Student != nil {
		h.render(w, r, http.StatusOK, view.PageStudentDashboard, view.PageData{Title: "Dashboard", Data: d.Student})
		return
	}
	h.render(w, r, http.StatusOK, view.PageTeacherDashboard, view.PageData{Title: "Dashboard", Data: d.Teacher})
}
