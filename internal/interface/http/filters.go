package http

import (
	"net/url"
	"strconv"
	"strings"

	"example.com/fieldops/internal/domain/listquery"
)

// Query keys of the filter panel. Column filters travel as filter[<column>].
const (
	qSort    = "sort"
	qStatus  = "status"
	qJobType = "job_type"
	qPage    = "page"
	qRetry   = "retry"
)

func columnKey(column string) string { return "filter[" + column + "]" }

// parseFilters reads the filter panel of m from a query string. Columns m
// does not declare are ignored.
func parseFilters(q url.Values, m listquery.Mapping) listquery.FilterState {
	fs := listquery.FilterState{
		IDSort:        listquery.ParseSortOrder(q.Get(qSort)),
		StatusFilter:  strings.TrimSpace(q.Get(qStatus)),
		JobTypeFilter: strings.TrimSpace(q.Get(qJobType)),
	}
	if m.Status == nil {
		fs.StatusFilter = ""
	}
	if m.JobType == nil {
		fs.JobTypeFilter = ""
	}
	for _, c := range m.ColumnNames() {
		if v := strings.TrimSpace(q.Get(columnKey(c))); v != "" {
			fs = fs.WithColumn(c, v)
		}
	}
	return fs
}

// filterValues is the inverse of parseFilters.
func filterValues(fs listquery.FilterState) url.Values {
	q := url.Values{}
	if fs.IDSort != listquery.SortNone {
		q.Set(qSort, string(fs.IDSort))
	}
	if fs.StatusFilter != "" {
		q.Set(qStatus, fs.StatusFilter)
	}
	if fs.JobTypeFilter != "" {
		q.Set(qJobType, fs.JobTypeFilter)
	}
	for _, cf := range fs.ColumnFilters {
		if v, _ := fs.Column(cf.Column); v != "" {
			q.Set(columnKey(cf.Column), v)
		}
	}
	return q
}

// pageHref links to page n of path with fs applied.
func pageHref(path string, fs listquery.FilterState, n int) string {
	q := filterValues(fs)
	if n > 1 {
		q.Set(qPage, strconv.Itoa(n))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// parsePage returns the requested page and whether the query carried one.
// Anything that is not a positive number is page 1.
func parsePage(q url.Values) (int, bool) {
	raw := strings.TrimSpace(q.Get(qPage))
	if raw == "" {
		return 1, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1, true
	}
	return n, true
}

// describeFilters lists the active filters for humans, e.g. in a report
// header.
func describeFilters(fs listquery.FilterState, m listquery.Mapping) []string {
	var out []string
	if fs.IDSort != listquery.SortNone {
		out = append(out, "sort: "+string(fs.IDSort))
	}
	if fs.StatusFilter != "" {
		out = append(out, "status: "+fs.StatusFilter)
	}
	if fs.JobTypeFilter != "" {
		out = append(out, "type: "+fs.JobTypeFilter)
	}
	for _, c := range m.ColumnNames() {
		if v, ok := fs.Column(c); ok && v != "" {
			out = append(out, c+": "+v)
		}
	}
	return out
}
