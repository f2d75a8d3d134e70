package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"

	"smart_edu_quiz/internal/api/handler"
	"smart_edu_quiz/internal/api/middleware"
	"smart_edu_quiz/internal/api/view"
	"smart_edu_quiz/internal/app/service"
	"smart_edu_quiz/internal/common/security"
	"smart_edu_quiz/internal/platform/session"
)

type Services struct {
	Auth        *service.AuthService
	Category    *service.CategoryService
	Quiz        *service.QuizService
	QuizSession *service.QuizSessionService
	Dashboard   *service.DashboardService
	Bookmark    *service.BookmarkService
}

type Options struct {
	CookieSecure bool
	SessionTTL   time.Duration
}

func NewRouter(services Services, store session.Store, views *view.Renderer, opts Options) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Use(middleware.Session(opts.SessionTTL, opts.CookieSecure))
	// Tokens come from the Authorization header or the jwt cookie.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	base := handler.NewBase(views, store)
	r.NotFound(base.NotFound)

	authHandler := handler.NewAuthHandler(base, services.Auth, opts.CookieSecure)
	r.Group(authHandler.RegisterRoutes)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator(services.Auth))

		handler.NewDashboardHandler(base, services.Dashboard).RegisterRoutes(protected)
		handler.NewCategoryHandler(base, services.Category).RegisterRoutes(protected)
		handler.NewQuizHandler(base, services.Quiz, services.QuizSession, services.Category).RegisterRoutes(protected)
		handler.NewBookmarkHandler(base, services.Bookmark).RegisterRoutes(protected)
	})

	return r
}
