package http

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"example.com/fieldops/internal/domain/listquery"
	"example.com/fieldops/internal/infra/backend"
	"example.com/fieldops/internal/infra/report"
	"example.com/fieldops/internal/interface/http/table"
)

type reportDef struct {
	mapping listquery.Mapping
	build   func(ctx context.Context, caller *backend.Caller, fs listquery.FilterState, page int) (report.Table, error)
}

// reportFor exports one page of pg with its list columns.
func reportFor[T any](pg listPage[T]) reportDef {
	return reportDef{
		mapping: pg.mapping,
		build: func(ctx context.Context, caller *backend.Caller, fs listquery.FilterState, page int) (report.Table, error) {
			if page < 1 {
				page = 1
			}
			data, err := backend.List[T](ctx, caller, pg.endpoint, pg.mapping.Build(fs, page, pg.limit))
			if err != nil {
				return report.Table{}, err
			}
			headers, rows := table.Texts(pg.columns, data.Rows())
			t := report.Table{
				Title:     pg.title,
				Filters:   describeFilters(fs, pg.mapping),
				Headers:   headers,
				Rows:      rows,
				Page:      data.Meta.Page,
				TotalPage: data.Meta.TotalPage,
				Total:     data.Meta.Total,
			}
			if t.Page < 1 {
				t.Page = page
			}
			return t, nil
		},
	}
}

var reports = map[string]reportDef{
	clientsPage.key:       reportFor(clientsPage),
	techniciansPage.key:   reportFor(techniciansPage),
	productsPage.key:      reportFor(productsPage),
	partsPage.key:         reportFor(partsPage),
	installationsPage.key: reportFor(installationsPage),
	maintenancePage.key:   reportFor(maintenancePage),
	repairsPage.key:       reportFor(repairsPage),
	assignedJobsPage.key:  reportFor(assignedJobsPage),
	notificationsPage.key: reportFor(notificationsPage),
}

// ReportEntities lists the entities BuildReport accepts.
func ReportEntities() []string {
	out := make([]string, 0, len(reports))
	for k := range reports {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// BuildReport fetches one filtered page of entity and lays it out for
// export.
func BuildReport(ctx context.Context, caller *backend.Caller, entity string, fs listquery.FilterState, page int, at time.Time) (report.Table, error) {
	def, ok := reports[entity]
	if !ok {
		return report.Table{}, fmt.Errorf("unknown report %q", entity)
	}
	t, err := def.build(ctx, caller, fs, page)
	if err != nil {
		return report.Table{}, err
	}
	t.GeneratedAt = at
	return t, nil
}

func (a *API) handleReport(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	def, ok := reports[entity]
	if !ok {
		a.renderError(w, r, http.StatusNotFound, "There is no report for this page.")
		return
	}

	q := r.URL.Query()
	page, _ := parsePage(q)
	sess := sessionFrom(r.Context())
	at := a.now()

	t, err := BuildReport(r.Context(), a.backend.As(sess.Token), entity, parseFilters(q, def.mapping), page, at)
	if err != nil {
		a.handlePageError(w, r, err)
		return
	}
	doc, err := report.PDF(t)
	if err != nil {
		a.log.Error("render report", zap.String("entity", entity), zap.Error(err))
		a.renderError(w, r, http.StatusInternalServerError, "The report could not be generated.")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(entity, at)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
