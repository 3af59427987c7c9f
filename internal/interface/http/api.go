package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domsession "example.com/fieldops/internal/domain/session"
	"example.com/fieldops/internal/infra/backend"
	authuc "example.com/fieldops/internal/usecase/auth"
	"example.com/fieldops/internal/usecase/listing"
)

// Settings are the dashboard knobs coming from configuration.
type Settings struct {
	CookieName   string
	SecureCookie bool
	CacheTTL     time.Duration
	WaitTimeout  time.Duration
	PageWindow   int
}

func (s Settings) withDefaults() Settings {
	if s.CookieName == "" {
		s.CookieName = "fieldops_session"
	}
	if s.WaitTimeout <= 0 {
		s.WaitTimeout = 3 * time.Second
	}
	if s.PageWindow <= 0 {
		s.PageWindow = 2
	}
	return s
}

type API struct {
	authSvc   *authuc.Service
	backend   *backend.Client
	views     *listing.Registry
	validator *validator.Validate
	log       *zap.Logger
	pages     *renderer
	settings  Settings
	now       func() time.Time
}

type Dependencies struct {
	AuthService *authuc.Service
	Backend     *backend.Client
	// Views holds the per-session list views. A fresh registry is used
	// when nil.
	Views    *listing.Registry
	Logger   *zap.Logger
	Settings Settings
}

func NewAPI(deps Dependencies) *API {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	views := deps.Views
	if views == nil {
		views = listing.NewRegistry(context.Background())
	}

	a := &API{
		authSvc:   deps.AuthService,
		backend:   deps.Backend,
		views:     views,
		validator: newValidator(),
		log:       log,
		pages:     newRenderer(),
		settings:  deps.Settings.withDefaults(),
		now:       time.Now,
	}
	a.authSvc.OnLogout(a.views.Drop)
	return a
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(a.log))
	r.Use(chimw.Recoverer)
	r.Use(a.sessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/login", a.handleLoginForm)
	r.Post("/login", a.handleLogin)
	r.Post("/logout", a.handleLogout)
	r.Get("/", a.handleLanding)

	r.Group(func(pr chi.Router) {
		pr.Use(a.requireSession)
		pr.Get("/notifications", serveList(a, notificationsPage))

		pr.With(a.requireRoles(domsession.RoleTechnician, domsession.RoleAdmin)).
			Get("/technician/jobs", serveList(a, assignedJobsPage))
	})

	r.Group(func(ar chi.Router) {
		ar.Use(a.requireSession)
		ar.Use(a.requireRoles(domsession.RoleAdmin))

		ar.Get("/overview", a.handleOverview)
		ar.Get("/reports/{entity}.pdf", a.handleReport)

		mountForm(ar, a, clientsPage, clientsForm)
		mountForm(ar, a, techniciansPage, techniciansForm)
		mountForm(ar, a, productsPage, productsForm)
		mountForm(ar, a, partsPage, partsForm)

		mountList(ar, a, clientsPage)
		mountList(ar, a, techniciansPage)
		mountList(ar, a, productsPage)
		mountList(ar, a, partsPage)
		mountList(ar, a, installationsPage)
		mountList(ar, a, maintenancePage)
		mountList(ar, a, repairsPage)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
	})

	return r
}

// mountList registers the list page of pg and its detail page when pg
// declares detail fields.
func mountList[T any](r chi.Router, a *API, pg listPage[T]) {
	r.Get(pg.path, serveList(a, pg))
	if pg.details != nil {
		r.Get(pg.path+"/{id}", serveDetail(a, pg))
	}
}

func mountForm[T, In any](r chi.Router, a *API, pg listPage[T], form createForm[T, In]) {
	r.Get(pg.path+"/new", serveNew(a, pg, form))
	r.Post(pg.path, serveCreate(a, pg, form))
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

// handlePageError turns a failed page load into the matching response.
func (a *API) handlePageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, backend.ErrUnauthorized),
		errors.Is(err, domsession.ErrUnauthenticated),
		errors.Is(err, domsession.ErrSessionExpired):
		a.expireSession(w, r)
	case errors.Is(err, domsession.ErrForbidden):
		a.renderError(w, r, http.StatusForbidden, "You do not have access to this page.")
	case errors.Is(err, backend.ErrNotFound):
		a.renderError(w, r, http.StatusNotFound, "The record you are looking for does not exist.")
	case errors.Is(err, context.DeadlineExceeded):
		a.renderError(w, r, http.StatusGatewayTimeout, "The field-service API took too long to answer.")
	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			a.log.Warn("backend error", zap.Int("status", apiErr.Status), zap.String("path", r.URL.Path), zap.Error(err))
			a.renderError(w, r, http.StatusBadGateway, "The field-service API returned an error.")
			return
		}
		a.log.Error("page failed", zap.String("path", r.URL.Path), zap.Error(err))
		a.renderError(w, r, http.StatusInternalServerError, "Something went wrong.")
	}
}

// expireSession ends the current session after the backend rejected its
// token and sends the user back to the login form.
func (a *API) expireSession(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFrom(r.Context()); sess != nil {
		if err := a.authSvc.End(r.Context(), sess.ID); err != nil {
			a.log.Warn("end session", zap.Error(err))
		}
	}
	a.clearCookie(w)
	http.Redirect(w, r, "/login?expired=1", http.StatusSeeOther)
}
