package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	domsession "example.com/fieldops/internal/domain/session"
)

type ctxKey int

const ctxSessionKey ctxKey = iota

// sessionMiddleware resolves the session cookie, if any, and stores the
// session in the request context. It never rejects a request; see
// requireSession for that.
func (a *API) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(a.settings.CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := a.authSvc.Load(r.Context(), cookie.Value)
		switch {
		case err == nil:
			r = r.WithContext(context.WithValue(r.Context(), ctxSessionKey, sess))
		case errors.Is(err, domsession.ErrUnauthenticated), errors.Is(err, domsession.ErrSessionExpired):
			a.clearCookie(w)
		default:
			a.log.Error("load session", zap.Error(err))
			a.renderError(w, r, http.StatusInternalServerError, "Your session could not be loaded.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessionFrom(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) requireRoles(roles ...domsession.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFrom(r.Context())
			if sess == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			for _, role := range roles {
				if sess.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			a.handlePageError(w, r, domsession.ErrForbidden)
		})
	}
}

func sessionFrom(ctx context.Context) *domsession.Session {
	if sess, ok := ctx.Value(ctxSessionKey).(*domsession.Session); ok {
		return sess
	}
	return nil
}

// requestLogger logs one line per request with zap.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			defer func() {
				log.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(started)),
					zap.String("request_id", chimw.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

func (a *API) setCookie(w http.ResponseWriter, key string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.settings.CookieName,
		Value:    key,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   a.settings.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *API) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.settings.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.settings.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
