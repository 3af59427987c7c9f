package paging

// Meta is the pagination block returned by every list endpoint.
type Meta struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	TotalPage int `json:"totalPage"`
}

func (m Meta) HasPrev() bool { return m.Page > 1 }

func (m Meta) HasNext() bool { return m.Page < m.TotalPage }

// Page is one page of rows of a collection.
type Page[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

// Rows returns the rows of p. A nil page or missing data is an empty result.
func (p *Page[T]) Rows() []T {
	if p == nil || p.Data == nil {
		return []T{}
	}
	return p.Data
}

func (p *Page[T]) IsEmpty() bool {
	return p == nil || len(p.Data) == 0
}
