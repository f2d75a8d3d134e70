package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"smart_edu_quiz/internal/api/middleware"
	"smart_edu_quiz/internal/api/view"
	"smart_edu_quiz/internal/app/form"
	"smart_edu_quiz/internal/app/service"
	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/common/security"
	"smart_edu_quiz/internal/platform/logger"
	"smart_edu_quiz/internal/platform/session"
)

type AuthHandler struct {
	Base
	authService  *service.AuthService
	cookieSecure bool
}

func NewAuthHandler(base Base, authService *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Base: base, authService: authService, cookieSecure: cookieSecure}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.index)
	r.Get("/login", h.loginPage)
	r.Post("/login", h.login)
	r.Get("/register", h.registerPage)
	r.Post("/register", h.register)
	r.Get("/logout", h.logout)
}

func (h *AuthHandler) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageIndex, view.PageData{})
}

func (h *AuthHandler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageLogin, view.PageData{Title: "Login"})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	f := form.LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}
	resp, err := h.authService.Login(r.Context(), f)
	if err != nil {
		msgs := errorMessages(err)
		if errors.Is(err, common.ErrUnauthorized) {
			msgs = []string{"Invalid credentials"}
		} else if !errors.Is(err, common.ErrValidation) {
			h.renderError(w, r, err)
			return
		}
		f.Password = ""
		h.render(w, r, common.HTTPStatusFromError(err), view.PageLogin, view.PageData{Title: "Login", Errors: msgs, Form: f})
		return
	}
	h.setToken(w, resp.Token)
	h.redirect(w, r, "/dashboard")
}

func (h *AuthHandler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageRegister, view.PageData{Title: "Register"})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	f := form.RegisterForm{
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		FullName:        r.PostFormValue("full_name"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		Role:            r.PostFormValue("role"),
		ClassSection:    r.PostFormValue("class_section"),
		Department:      r.PostFormValue("department"),
	}
	resp, err := h.authService.Register(r.Context(), f)
	if err != nil {
		if !errors.Is(err, common.ErrValidation) {
			h.renderError(w, r, err)
			return
		}
		f.Password, f.ConfirmPassword = "", ""
		h.render(w, r, http.StatusBadRequest, view.PageRegister, view.PageData{Title: "Register", Errors: errorMessages(err), Form: f})
		return
	}
	h.setToken(w, resp.Token)
	h.redirect(w, r, "/dashboard")
}

// logout drops the token and everything kept in the browser session.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if sid := session.IDFromContext(r.Context()); sid != "" {
		if err := h.store.Destroy(r.Context(), sid); err != nil {
			logger.Default.Error("failed to destroy session", err)
		}
	}
	http.SetCookie(w, &http.Cookie{Name: security.CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: middleware.SessionCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	h.redirect(w, r, "/")
}

func (h *AuthHandler) setToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     security.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(security.TokenTTL()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
