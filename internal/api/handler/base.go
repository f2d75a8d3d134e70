package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"smart_edu_quiz/internal/api/middleware"
	"smart_edu_quiz/internal/api/view"
	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/platform/logger"
	"smart_edu_quiz/internal/platform/session"
)

// Base carries what every page handler needs: templates and the session store.
type Base struct {
	views *view.Renderer
	store session.Store
}

func NewBase(views *view.Renderer, store session.Store) Base {
	return Base{views: views, store: store}
}

func (b Base) render(w http.ResponseWriter, r *http.Request, status int, page string, data view.PageData) {
	ctx := r.Context()
	data.Viewer = middleware.ViewerFromContext(ctx)
	msgs, err := session.PopMessages(ctx, b.store, session.IDFromContext(ctx))
	if err != nil {
		logger.Default.Error("failed to read flash messages", err)
	}
	data.Messages = msgs
	if err := b.views.Render(w, status, page, data); err != nil {
		logger.Default.Error("failed to render page", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (b Base) flash(r *http.Request, level session.MessageLevel, text string) {
	ctx := r.Context()
	if err := session.AddMessage(ctx, b.store, session.IDFromContext(ctx), level, text); err != nil {
		logger.Default.Error("failed to add flash message", err)
	}
}

func (b Base) redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusFound)
}

// renderError shows the error page with the status mapped from err.
func (b Base) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := common.HTTPStatusFromError(err)
	msg := http.StatusText(status)
	switch {
	case errors.Is(err, common.ErrNotFound):
		msg = "The page you are looking for does not exist."
	case errors.Is(err, common.ErrForbidden):
		msg = "You do not have access to this page."
	case status >= http.StatusInternalServerError:
		logger.Default.Error("request failed", r.Method, r.URL.Path, err, viewerUser(r))
	}
	b.render(w, r, status, view.PageError, view.PageData{
		Title: http.StatusText(status),
		Data:  view.ErrorData{Status: status, Message: msg},
	})
}

func (b Base) NotFound(w http.ResponseWriter, r *http.Request) {
	b.renderError(w, r, common.ErrNotFound)
}

// idParam parses a positive integer URL parameter. Anything else does not
// match a route and is reported as ErrNotFound.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrNotFound
	}
	return id, nil
}

func viewerUser(r *http.Request) interface{} {
	if v := middleware.ViewerFromContext(r.Context()); v != nil {
		return v.User
	}
	return nil
}

// errorMessages turns a service error into messages for a re-rendered form.
func errorMessages(err error) []string {
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		return verr.Messages()
	}
	return []string{err.Error()}
}
