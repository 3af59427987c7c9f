package table

import "example.com/fieldops/internal/domain/paging"

type Header struct {
	Text      string
	ClassName string
}

type RenderedCell struct {
	Cell
	ClassName string
}

type PageLink struct {
	Number  int
	Href    string
	Current bool
	Gap     bool
}

type Pagination struct {
	Page      int
	TotalPage int
	Total     int
	PrevHref  string
	NextHref  string
	Links     []PageLink
}

// Model is everything the table template needs.
type Model struct {
	Headers    []Header
	Rows       [][]RenderedCell
	Loading    bool
	Skeleton   [][]string
	Empty      bool
	Error      string
	RetryHref  string
	Pagination *Pagination
}

type Options struct {
	Loading bool
	// Limit sizes the loading skeleton.
	Limit int
	// Error replaces the table body with a fixed inline error panel.
	Error     string
	RetryHref string
	// PageHref builds the link for page n.
	PageHref func(n int) string
	// Span is the number of pages shown on each side of the current one.
	Span int
}

// Build renders page with columns. A nil page renders the empty state.
func Build[T any](columns []Column[T], page *paging.Page[T], opts Options) Model {
	m := Model{Headers: make([]Header, 0, len(columns))}
	for _, c := range columns {
		m.Headers = append(m.Headers, Header{Text: c.Header, ClassName: c.ClassName})
	}

	switch {
	case opts.Error != "":
		m.Error = opts.Error
		m.RetryHref = opts.RetryHref
		return m
	case opts.Loading:
		m.Loading = true
		m.Skeleton = skeleton(opts.Limit, len(columns))
		return m
	}

	rows := page.Rows()
	if len(rows) == 0 {
		m.Empty = true
	}
	m.Rows = make([][]RenderedCell, 0, len(rows))
	for _, row := range rows {
		cells := make([]RenderedCell, 0, len(columns))
		for _, c := range columns {
			cells = append(cells, RenderedCell{Cell: c.Accessor(row), ClassName: c.ClassName})
		}
		m.Rows = append(m.Rows, cells)
	}

	if page != nil {
		m.Pagination = paginate(page.Meta, opts)
	}
	return m
}

// Texts returns headers and plain-text rows, for exports.
func Texts[T any](columns []Column[T], rows []T) ([]string, [][]string) {
	headers := make([]string, 0, len(columns))
	for _, c := range columns {
		headers = append(headers, c.Header)
	}
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(columns))
		for _, c := range columns {
			line = append(line, c.Accessor(row).Text)
		}
		body = append(body, line)
	}
	return headers, body
}

func skeleton(rows, cols int) [][]string {
	if rows <= 0 {
		rows = 10
	}
	out := make([][]string, rows)
	for i := range out {
		out[i] = make([]string, cols)
	}
	return out
}

func paginate(meta paging.Meta, opts Options) *Pagination {
	if meta.TotalPage <= 1 {
		return &Pagination{Page: max(meta.Page, 1), TotalPage: max(meta.TotalPage, 1), Total: meta.Total}
	}
	href := opts.PageHref
	if href == nil {
		href = func(int) string { return "" }
	}
	p := &Pagination{Page: meta.Page, TotalPage: meta.TotalPage, Total: meta.Total}
	if meta.HasPrev() {
		p.PrevHref = href(meta.Page - 1)
	}
	if meta.HasNext() {
		p.NextHref = href(meta.Page + 1)
	}
	for _, n := range Window(meta.Page, meta.TotalPage, opts.Span) {
		if n == 0 {
			p.Links = append(p.Links, PageLink{Gap: true})
			continue
		}
		p.Links = append(p.Links, PageLink{Number: n, Href: href(n), Current: n == meta.Page})
	}
	return p
}
