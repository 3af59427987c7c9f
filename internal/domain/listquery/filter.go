package listquery

import "strings"

// SortOrder is the direction requested for the id column. The zero value
// means no sort was requested.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts "asc"/"desc" in any case. Anything else is SortNone.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc
	case SortDesc:
		return SortDesc
	default:
		return SortNone
	}
}

type ColumnFilter struct {
	Column string
	Value  string
}

// FilterState is the filter panel of one list view. It is replaced as a
// whole on every interaction; empty strings mean "no filter".
type FilterState struct {
	IDSort        SortOrder
	StatusFilter  string
	JobTypeFilter string
	ColumnFilters []ColumnFilter
}

// Column returns the value filtered for column. When the same column appears
// more than once the last entry wins.
func (f FilterState) Column(column string) (string, bool) {
	for i := len(f.ColumnFilters) - 1; i >= 0; i-- {
		if f.ColumnFilters[i].Column == column {
			return f.ColumnFilters[i].Value, true
		}
	}
	return "", false
}

// WithColumn returns a copy of f with column set to value, replacing any
// previous entries for the same column.
func (f FilterState) WithColumn(column, value string) FilterState {
	out := f
	out.ColumnFilters = make([]ColumnFilter, 0, len(f.ColumnFilters)+1)
	for _, cf := range f.ColumnFilters {
		if cf.Column != column {
			out.ColumnFilters = append(out.ColumnFilters, cf)
		}
	}
	out.ColumnFilters = append(out.ColumnFilters, ColumnFilter{Column: column, Value: value})
	return out
}

// WithoutColumn returns a copy of f with every entry for column removed.
func (f FilterState) WithoutColumn(column string) FilterState {
	out := f
	out.ColumnFilters = make([]ColumnFilter, 0, len(f.ColumnFilters))
	for _, cf := range f.ColumnFilters {
		if cf.Column != column {
			out.ColumnFilters = append(out.ColumnFilters, cf)
		}
	}
	return out
}

func (f FilterState) IsZero() bool {
	if f.IDSort != SortNone || f.StatusFilter != "" || f.JobTypeFilter != "" {
		return false
	}
	for _, cf := range f.ColumnFilters {
		if cf.Value != "" {
			return false
		}
	}
	return true
}

// Equal compares the effective filters: empty column values and duplicate
// entries shadowed by a later one do not count.
func (f FilterState) Equal(o FilterState) bool {
	if f.IDSort != o.IDSort || f.StatusFilter != o.StatusFilter || f.JobTypeFilter != o.JobTypeFilter {
		return false
	}
	a, b := f.effectiveColumns(), o.effectiveColumns()
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func (f FilterState) effectiveColumns() map[string]string {
	out := make(map[string]string, len(f.ColumnFilters))
	for _, cf := range f.ColumnFilters {
		if cf.Value == "" {
			delete(out, cf.Column)
			continue
		}
		out[cf.Column] = cf.Value
	}
	return out
}
