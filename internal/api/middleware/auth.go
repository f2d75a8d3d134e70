package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"smart_edu_quiz/internal/app/service"
	"smart_edu_quiz/internal/common/security"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/platform/logger"
	"smart_edu_quiz/internal/platform/session"
)

type contextKey string

const ViewerCtxKey contextKey = "viewer"

const LoginPath = "/login"

// Authenticator resolves the Viewer from the verified JWT. Requests without a
// valid token, or whose user no longer matches it, are sent to the login page.
func Authenticator(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}
			userRole, err := security.GetUserRoleFromClaims(claims)
			if err != nil {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			viewer, err := authService.Viewer(r.Context(), userID, userRole)
			if err != nil {
				logger.Default.Debug("rejecting token", userID, err)
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
		})
	}
}

// RequireRole lets only viewers with role through. Others are redirected to
// the dashboard, with message flashed when it is not empty.
func RequireRole(store session.Store, role model.Role, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := ViewerFromContext(r.Context())
			if viewer == nil || viewer.Profile.Role != role {
				if message != "" {
					if err := session.AddMessage(r.Context(), store, session.IDFromContext(r.Context()), session.LevelError, message); err != nil {
						logger.Default.Error("failed to add flash message", err)
					}
				}
				http.Redirect(w, r, "/dashboard", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithViewer(ctx context.Context, viewer *model.Viewer) context.Context {
	return context.WithValue(ctx, ViewerCtxKey, viewer)
}

// ViewerFromContext returns the authenticated viewer, or nil.
func ViewerFromContext(ctx context.Context) *model.Viewer {
	viewer, _ := ctx.Value(ViewerCtxKey).(*model.Viewer)
	return viewer
}
