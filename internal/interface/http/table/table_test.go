package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/fieldops/internal/domain/paging"
)

type item struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	IsActive bool    `json:"is_active"`
	Note     *string `json:"note"`
}

var itemColumns = []Column[item]{
	{Header: "ID", Accessor: Field[item]("ID"), ClassName: "num"},
	{Header: "Name", Accessor: Func(func(i item) Cell { return Link(i.Name, fmt.Sprintf("/items/%d", i.ID)) })},
	{Header: "Price", Accessor: Field[item]("price")},
	{Header: "Status", Accessor: Func(func(i item) Cell {
		if i.IsActive {
			return StatusBadge("Active", "active", map[string]string{"active": ToneGreen})
		}
		return StatusBadge("Inactive", "inactive", map[string]string{"active": ToneGreen})
	})},
}

func TestField(t *testing.T) {
	note := "fragile"
	row := item{ID: 7, Name: "Pump", Price: 12.5, IsActive: true, Note: &note}

	require.Equal(t, "7", Field[item]("ID")(row).Text)
	require.Equal(t, "12.50", Field[item]("price")(row).Text)
	require.Equal(t, "Yes", Field[item]("is_active")(row).Text)
	require.Equal(t, "fragile", Field[item]("note")(row).Text)
	require.Equal(t, "", Field[item]("Note")(item{}).Text)
	require.Equal(t, "Pump", Field[*item]("Name")(&row).Text)
	require.Equal(t, "", Field[*item]("Name")(nil).Text)
}

func TestField_PanicsOnUnknownField(t *testing.T) {
	require.Panics(t, func() { Field[item]("nope") })
	require.Panics(t, func() { Field[string]("len") })
}

func TestBuild_Rows(t *testing.T) {
	page := &paging.Page[item]{
		Data: []item{{ID: 1, Name: "Pump", IsActive: true}, {ID: 2, Name: "Valve"}},
		Meta: paging.Meta{Page: 1, Limit: 10, Total: 2, TotalPage: 1},
	}

	m := Build(itemColumns, page, Options{})

	require.Len(t, m.Headers, 4)
	require.Equal(t, "num", m.Headers[0].ClassName)
	require.Len(t, m.Rows, 2)
	require.Equal(t, "/items/1", m.Rows[0][1].Href)
	require.Equal(t, ToneGreen, m.Rows[0][3].Badge)
	require.Equal(t, ToneGray, m.Rows[1][3].Badge)
	require.Equal(t, "num", m.Rows[1][0].ClassName)
	require.False(t, m.Empty)
	require.Empty(t, m.Pagination.Links)
}

func TestBuild_AbsentDataIsEmpty(t *testing.T) {
	m := Build[item](itemColumns, nil, Options{})

	require.True(t, m.Empty)
	require.Empty(t, m.Rows)
	require.Nil(t, m.Pagination)
}

func TestBuild_LoadingSkeletonMatchesShape(t *testing.T) {
	m := Build[item](itemColumns, nil, Options{Loading: true, Limit: 5})

	require.True(t, m.Loading)
	require.Len(t, m.Skeleton, 5)
	for _, r := range m.Skeleton {
		require.Len(t, r, len(itemColumns))
	}
	require.False(t, m.Empty)
}

func TestBuild_Error(t *testing.T) {
	m := Build[item](itemColumns, nil, Options{Error: "Could not load items.", RetryHref: "?retry=1"})

	require.Equal(t, "Could not load items.", m.Error)
	require.Equal(t, "?retry=1", m.RetryHref)
	require.Empty(t, m.Rows)
	require.False(t, m.Empty)
}

func TestBuild_Pagination(t *testing.T) {
	page := &paging.Page[item]{Data: []item{{ID: 1}}, Meta: paging.Meta{Page: 5, Limit: 1, Total: 10, TotalPage: 10}}

	m := Build(itemColumns, page, Options{Span: 1, PageHref: func(n int) string { return fmt.Sprintf("?page=%d", n) }})

	p := m.Pagination
	require.Equal(t, "?page=4", p.PrevHref)
	require.Equal(t, "?page=6", p.NextHref)
	var nums []int
	for _, l := range p.Links {
		nums = append(nums, l.Number)
		if l.Current {
			require.Equal(t, 5, l.Number)
		}
	}
	require.Equal(t, []int{1, 0, 4, 5, 6, 0, 10}, nums)
}

func TestWindow(t *testing.T) {
	cases := []struct {
		page, total, span int
		want              []int
	}{
		{page: 1, total: 0, span: 2, want: nil},
		{page: 1, total: 1, span: 2, want: []int{1}},
		{page: 1, total: 3, span: 2, want: []int{1, 2, 3}},
		{page: 5, total: 10, span: 2, want: []int{1, 2, 3, 4, 5, 6, 7, 0, 10}},
		{page: 6, total: 12, span: 2, want: []int{1, 0, 4, 5, 6, 7, 8, 0, 12}},
		{page: 10, total: 10, span: 1, want: []int{1, 0, 9, 10}},
		{page: 99, total: 4, span: 1, want: []int{1, 2, 3, 4}},
		{page: -3, total: 20, span: 1, want: []int{1, 2, 0, 20}},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_of_%d", tc.page, tc.total), func(t *testing.T) {
			require.Equal(t, tc.want, Window(tc.page, tc.total, tc.span))
		})
	}
}

func TestTexts(t *testing.T) {
	headers, rows := Texts(itemColumns, []item{{ID: 3, Name: "Hose", Price: 1}})

	require.Equal(t, []string{"ID", "Name", "Price", "Status"}, headers)
	require.Equal(t, [][]string{{"3", "Hose", "1.00", "Inactive"}}, rows)
}
