package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	domsession "example.com/fieldops/internal/domain/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "list", "detail", "form", "overview", "error"}

// renderer holds one template set per page, each sharing the layout and
// the table partial.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() *renderer {
	funcs := template.FuncMap{
		"money": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
		"pct": func(n, top int) int {
			if top <= 0 || n <= 0 {
				return 0
			}
			return n * 100 / top
		},
	}
	base := template.Must(template.New("base").Funcs(funcs).
		ParseFS(templateFS, "templates/layout.html", "templates/table.html"))

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t := template.Must(base.Clone())
		pages[name] = template.Must(t.ParseFS(templateFS, "templates/"+name+".html"))
	}
	return &renderer{pages: pages}
}

type navItem struct {
	Label  string
	Href   string
	Active bool
}

type pageData struct {
	Title string
	User  *domsession.Session
	Nav   []navItem
	// Refresh, when set, reloads the page at that URL after a second.
	Refresh string
	Body    any
}

var (
	adminNav = []navItem{
		{Label: "Overview", Href: "/overview"},
		{Label: "Clients", Href: "/clients"},
		{Label: "Technicians", Href: "/technicians"},
		{Label: "Products", Href: "/products"},
		{Label: "Parts", Href: "/parts"},
		{Label: "Installations", Href: "/installations"},
		{Label: "Maintenance", Href: "/maintenance"},
		{Label: "Repairs", Href: "/repairs"},
		{Label: "Notifications", Href: "/notifications"},
	}
	technicianNav = []navItem{
		{Label: "My jobs", Href: "/technician/jobs"},
		{Label: "Notifications", Href: "/notifications"},
	}
)

func navFor(sess *domsession.Session, path string) []navItem {
	if sess == nil {
		return nil
	}
	src := technicianNav
	if sess.Role.IsAdmin() {
		src = adminNav
	}
	out := make([]navItem, len(src))
	for i, item := range src {
		item.Active = path == item.Href || strings.HasPrefix(path, item.Href+"/")
		out[i] = item
	}
	return out
}

func (a *API) render(w http.ResponseWriter, r *http.Request, status int, page string, pd pageData) {
	t, ok := a.pages.pages[page]
	if !ok {
		a.log.Error("unknown page template", zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if pd.User == nil {
		pd.User = sessionFrom(r.Context())
	}
	pd.Nav = navFor(pd.User, r.URL.Path)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pd); err != nil {
		a.log.Error("render page", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorBody struct {
	Status     int
	StatusText string
	Message    string
}

func (a *API) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	a.render(w, r, status, "error", pageData{
		Title: http.StatusText(status),
		Body:  errorBody{Status: status, StatusText: http.StatusText(status), Message: msg},
	})
}
