package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"example.com/fieldops/internal/domain/listquery"
	"example.com/fieldops/internal/domain/paging"
	domsession "example.com/fieldops/internal/domain/session"
	"example.com/fieldops/internal/infra/backend"
	"example.com/fieldops/internal/interface/http/table"
	"example.com/fieldops/internal/usecase/listing"
)

// listPage declares one paginated list of the dashboard.
type listPage[T any] struct {
	// key names the page's view and report.
	key   string
	title string
	// noun is the singular record name used on detail pages.
	noun     string
	path     string
	endpoint string
	mapping  listquery.Mapping
	limit    int
	columns  []table.Column[T]
	// details are the fields of the detail page; nil disables it.
	details []table.Column[T]
	id      func(T) int64
	// creatable pages link to their create form.
	creatable bool
}

type columnInput struct {
	Name  string
	Label string
	Value string
}

type filterPanel struct {
	Sort          string
	StatusLabels  []string
	Status        string
	HasJobType    bool
	JobTypeLabels []string
	JobType       string
	Columns       []columnInput
}

type listBody struct {
	Title      string
	Path       string
	Notice     string
	Filters    filterPanel
	Table      table.Model
	CreateHref string
	ExportHref string
}

func newFilterPanel(m listquery.Mapping, fs listquery.FilterState) filterPanel {
	p := filterPanel{
		Sort:         string(fs.IDSort),
		StatusLabels: m.Status.Labels(),
		Status:       fs.StatusFilter,
		HasJobType:   m.JobType != nil,
		JobType:      fs.JobTypeFilter,
	}
	if m.JobType != nil {
		p.JobTypeLabels = m.JobType.Labels()
	}
	for _, c := range m.ColumnNames() {
		v, _ := fs.Column(c)
		p.Columns = append(p.Columns, columnInput{Name: c, Label: humanize(c), Value: v})
	}
	return p
}

// humanize turns a snake_case column name into a label.
func humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	s = strings.Replace(s, " id", " ID", 1)
	return strings.ToUpper(s[:1]) + s[1:]
}

// viewFor returns the session's view of pg, creating it on first use.
func viewFor[T any](a *API, sess *domsession.Session, pg listPage[T]) *listing.View[T] {
	ws := a.views.Workspace(sess.ID)
	return listing.ViewOf(ws, pg.key, func(ctx context.Context) *listing.View[T] {
		caller := a.backend.As(sess.Token)
		fetcher := listing.NewFetcher(func(ctx context.Context, p listquery.Params) (*paging.Page[T], error) {
			return backend.List[T](ctx, caller, pg.endpoint, p)
		}, a.settings.CacheTTL)
		return listing.NewView(ctx, pg.mapping, pg.limit, fetcher, a.log.With(zap.String("view", pg.key)))
	})
}

// applyQuery moves v to what the request asks for and returns the filters
// and page it targets. A changed filter panel resets to page 1 unless the
// link carries its own page.
func applyQuery[T any](v *listing.View[T], fs listquery.FilterState, page int, hasPage, retry bool) (listquery.FilterState, int) {
	current := v.State()
	switch {
	case !fs.Equal(current.Filters) && hasPage:
		v.Navigate(fs, page)
	case !fs.Equal(current.Filters):
		v.SetFilters(fs)
		page = 1
	case retry && (!hasPage || page == current.Page):
		v.Refetch()
		page = current.Page
	default:
		v.SetPage(page)
	}
	return fs, page
}

func serveList[T any](a *API, pg listPage[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r.Context())
		v := viewFor(a, sess, pg)

		q := r.URL.Query()
		page, hasPage := parsePage(q)
		fs, page := applyQuery(v, parseFilters(q, pg.mapping), page, hasPage, q.Has(qRetry))

		ctx, cancel := context.WithTimeout(r.Context(), a.settings.WaitTimeout)
		st, _ := v.Wait(ctx)
		cancel()

		// Another request on the same view moved it on; show this request's
		// query as loading and let the refresh pick it up.
		if !st.Params.Equal(pg.mapping.Build(fs, page, pg.limit)) {
			st = listing.State[T]{Status: listing.StatusLoading, Page: page, Filters: fs}
		}

		if st.Status == listing.StatusErrored && errors.Is(st.Err, backend.ErrUnauthorized) {
			a.expireSession(w, r)
			return
		}

		opts := table.Options{
			Limit: pg.limit,
			Span:  a.settings.PageWindow,
			PageHref: func(n int) string {
				return pageHref(pg.path, st.Filters, n)
			},
		}
		pd := pageData{Title: pg.title, User: sess}
		switch st.Status {
		case listing.StatusLoaded:
		case listing.StatusErrored:
			opts.Error = fmt.Sprintf("Failed to load %s. Please try again.", strings.ToLower(pg.title))
			opts.RetryHref = retryHref(pg.path, st.Filters, st.Page)
		default:
			opts.Loading = true
			pd.Refresh = pageHref(pg.path, st.Filters, st.Page)
		}

		body := listBody{
			Title:   pg.title,
			Path:    pg.path,
			Filters: newFilterPanel(pg.mapping, st.Filters),
			Table:   table.Build(pg.columns, st.Data, opts),
		}
		if sess.Role.IsAdmin() {
			if _, ok := reports[pg.key]; ok {
				body.ExportHref = reportHref(pg.key, st.Filters, st.Page)
			}
			if pg.creatable {
				body.CreateHref = pg.path + "/new"
			}
		}
		if q.Has("created") {
			body.Notice = pg.noun + " created."
		}
		pd.Body = body
		a.render(w, r, http.StatusOK, "list", pd)
	}
}

func retryHref(path string, fs listquery.FilterState, page int) string {
	q := filterValues(fs)
	q.Set(qPage, strconv.Itoa(page))
	q.Set(qRetry, "1")
	return path + "?" + q.Encode()
}

func reportHref(key string, fs listquery.FilterState, page int) string {
	q := filterValues(fs)
	q.Set(qPage, strconv.Itoa(page))
	return "/reports/" + key + ".pdf?" + q.Encode()
}

type detailField struct {
	Label string
	Cell  table.Cell
}

type detailBody struct {
	Title    string
	Fields   []detailField
	BackHref string
}

func serveDetail[T any](a *API, pg listPage[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil || id <= 0 {
			a.renderError(w, r, http.StatusNotFound, "The record you are looking for does not exist.")
			return
		}

		sess := sessionFrom(r.Context())
		rec, err := backend.Get[T](r.Context(), a.backend.As(sess.Token), pg.endpoint, id)
		if err != nil {
			a.handlePageError(w, r, err)
			return
		}

		fields := make([]detailField, 0, len(pg.details))
		for _, c := range pg.details {
			fields = append(fields, detailField{Label: c.Header, Cell: c.Accessor(*rec)})
		}
		title := fmt.Sprintf("%s #%d", pg.noun, id)
		a.render(w, r, http.StatusOK, "detail", pageData{
			Title: title,
			User:  sess,
			Body:  detailBody{Title: title, Fields: fields, BackHref: pg.path},
		})
	}
}
