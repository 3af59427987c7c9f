package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	domsession "example.com/fieldops/internal/domain/session"
	"example.com/fieldops/internal/infra/backend"
	authuc "example.com/fieldops/internal/usecase/auth"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginBody struct {
	Email string
	Error string
}

func (a *API) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFrom(r.Context()); sess != nil {
		http.Redirect(w, r, sess.Role.LandingPath(), http.StatusSeeOther)
		return
	}
	body := loginBody{}
	if r.URL.Query().Has("expired") {
		body.Error = "Your session has expired. Please sign in again."
	}
	a.render(w, r, http.StatusOK, "login", pageData{Title: "Sign in", Body: body})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderLogin(w, r, http.StatusBadRequest, "", "The form could not be read.")
		return
	}
	req := loginRequest{Email: r.PostForm.Get("email"), Password: r.PostForm.Get("password")}
	if err := a.validator.Struct(req); err != nil {
		a.renderLogin(w, r, http.StatusUnprocessableEntity, req.Email, "Enter a valid email and password.")
		return
	}

	result, err := a.authSvc.Login(r.Context(), authuc.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		status, msg := loginFailure(err)
		if status >= http.StatusInternalServerError {
			a.log.Error("login failed", zap.Error(err))
		}
		a.renderLogin(w, r, status, req.Email, msg)
		return
	}

	a.log.Info("user signed in",
		zap.Int64("user_id", result.Session.UserID),
		zap.String("role", string(result.Session.Role)),
	)
	a.setCookie(w, result.Key, result.Session.ExpiresAt)
	http.Redirect(w, r, result.Session.Role.LandingPath(), http.StatusSeeOther)
}

func loginFailure(err error) (int, string) {
	switch {
	case errors.Is(err, backend.ErrUnauthorized),
		errors.Is(err, backend.ErrValidation),
		errors.Is(err, domsession.ErrInvalidCredential):
		return http.StatusUnauthorized, "Invalid email or password."
	case errors.Is(err, domsession.ErrInvalidRole):
		return http.StatusForbidden, "This account cannot use the dashboard."
	case errors.Is(err, domsession.ErrUnauthenticated),
		errors.Is(err, domsession.ErrSessionExpired):
		return http.StatusUnauthorized, "The sign-in token was rejected. Please try again."
	default:
		return http.StatusBadGateway, "The sign-in service is unavailable. Please try again later."
	}
}

func (a *API) renderLogin(w http.ResponseWriter, r *http.Request, status int, email, msg string) {
	a.render(w, r, status, "login", pageData{
		Title: "Sign in",
		Body:  loginBody{Email: email, Error: msg},
	})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(a.settings.CookieName); err == nil {
		if err := a.authSvc.Logout(r.Context(), cookie.Value); err != nil {
			a.log.Warn("logout", zap.Error(err))
		}
	}
	a.clearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleLanding sends each role to its first page.
func (a *API) handleLanding(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, sess.Role.LandingPath(), http.StatusSeeOther)
}
