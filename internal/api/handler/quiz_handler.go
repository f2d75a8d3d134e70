package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"smart_edu_quiz/internal/api/middleware"
	"smart_edu_quiz/internal/api/view"
	"smart_edu_quiz/internal/app/form"
	"smart_edu_quiz/internal/app/service"
	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/platform/session"
)

type QuizHandler struct {
	Base
	quizService        *service.QuizService
	quizSessionService *service.QuizSessionService
	categoryService    *service.CategoryService
}

func NewQuizHandler(
	base Base,
	quizService *service.QuizService,
	quizSessionService *service.QuizSessionService,
	categoryService *service.CategoryService,
) *QuizHandler {
	return &QuizHandler{
		Base:               base,
		quizService:        quizService,
		quizSessionService: quizSessionService,
		categoryService:    categoryService,
	}
}

type categoryQuizzes struct {
	Category model.Category
	Quizzes  []model.Quiz
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Route("/quiz", func(r chi.Router) {
		r.Group(func(teacher chi.Router) {
			teacher.Use(middleware.RequireRole(h.store, model.RoleTeacher, "Only teachers can create quizzes."))
			teacher.Get("/create", h.createPage)
			teacher.Post("/create", h.create)
		})

		r.Group(func(student chi.Router) {
			student.Use(middleware.RequireRole(h.store, model.RoleStudent, ""))
			student.Get("/list", h.list)
			student.Get("/list/{category_id}", h.listCategory)
			student.Get("/{quiz_id}", h.take)
			student.Post("/{quiz_id}", h.answer)
		})

		r.Get("/results/{attempt_id}", h.results)
	})
}

func (h *QuizHandler) createPage(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if len(categories) == 0 {
		h.flash(r, session.LevelError, "No categories available. Please create a category first.")
		h.redirect(w, r, "/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, view.PageCreateQuiz, view.PageData{Title: "Create quiz", Data: categories})
}

func (h *QuizHandler) create(w http.ResponseWriter, r *http.Request) {
	categoryID, _ := strconv.ParseInt(r.PostFormValue("category"), 10, 64)
	f := form.QuizForm{
		Title:      r.PostFormValue("title"),
		CategoryID: categoryID,
		Questions:  r.PostFormValue("questions"),
	}
	res, err := h.quizService.CreateQuiz(r.Context(), middleware.ViewerFromContext(r.Context()), f)
	if err != nil {
		if !errors.Is(err, common.ErrValidation) && !errors.Is(err, common.ErrEmptyQuiz) {
			h.renderError(w, r, err)
			return
		}
		categories, lerr := h.categoryService.List(r.Context())
		if lerr != nil {
			h.renderError(w, r, lerr)
			return
		}
		msgs := errorMessages(err)
		if res != nil {
			msgs = append(res.Warnings, "No valid questions found. The quiz was not created.")
		}
		h.render(w, r, http.StatusBadRequest, view.PageCreateQuiz, view.PageData{
			Title:  "Create quiz",
			Errors: msgs,
			Form:   f,
			Data:   categories,
		})
		return
	}
	for _, warning := range res.Warnings {
		h.flash(r, session.LevelWarning, warning)
	}
	h.flash(r, session.LevelSuccess, "Quiz created successfully!")
	h.redirect(w, r, "/dashboard")
}

func (h *QuizHandler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageQuizList, view.PageData{Title: "Quizzes", Data: categories})
}

func (h *QuizHandler) listCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := idParam(r, "category_id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	category, quizzes, err := h.quizService.ListByCategory(r.Context(), categoryID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageQuizListCategory, view.PageData{
		Title: category.Name,
		Data:  categoryQuizzes{Category: *category, Quizzes: quizzes},
	})
}

func (h *QuizHandler) take(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quiz_id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	page, err := h.quizSessionService.Load(r.Context(), session.IDFromContext(r.Context()), viewer.User.ID, quizID)
	if err != nil {
		h.quizError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageQuiz, view.PageData{Title: page.Quiz.Title, Data: page})
}

func (h *QuizHandler) answer(w http.ResponseWriter, r *http.Request) {
	quizID, err := idParam(r, "quiz_id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	action := model.ActionNone
	switch model.QuizAction(r.PostFormValue("action")) {
	case model.ActionPrevious:
		action = model.ActionPrevious
	case model.ActionNext:
		action = model.ActionNext
	}

	viewer := middleware.ViewerFromContext(r.Context())
	res, err := h.quizSessionService.Advance(r.Context(), session.IDFromContext(r.Context()), viewer.User.ID, quizID, action, r.PostFormValue("answer"))
	if err != nil {
		h.quizError(w, r, err)
		return
	}
	if res.Submitted() {
		h.redirect(w, r, fmt.Sprintf("/quiz/results/%d", res.Attempt.ID))
		return
	}
	h.render(w, r, http.StatusOK, view.PageQuiz, view.PageData{Title: res.Page.Quiz.Title, Data: res.Page})
}

func (h *QuizHandler) quizError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrEmptyQuiz):
		h.flash(r, session.LevelError, "This quiz has no questions yet.")
		h.redirect(w, r, "/quiz/list")
	case errors.Is(err, common.ErrSubmitInProgress):
		h.flash(r, session.LevelWarning, "This quiz is already being submitted.")
		h.redirect(w, r, "/dashboard")
	default:
		h.renderError(w, r, err)
	}
}

func (h *QuizHandler) results(w http.ResponseWriter, r *http.Request) {
	attemptID, err := idParam(r, "attempt_id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	viewer := middleware.ViewerFromContext(r.Context())
	res, err := h.quizSessionService.Results(r.Context(), attemptID, viewer.User.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageQuizResults, view.PageData{Title: "Results", Data: res})
}
