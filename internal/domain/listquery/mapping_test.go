package listquery

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testMapping() Mapping {
	return Mapping{
		SortKey: "order_dir",
		Status: &Field{Key: "status", Transform: Lookup(
			Option{Label: "pending", Value: String("assign")},
			Option{Label: "Completed", Value: String("completed")},
		)},
		JobType: &Field{Key: "job_type", Transform: Raw()},
		Columns: []ColumnField{
			{Column: "name", Key: "client_name", Transform: Raw()},
			{Column: "quantity", Key: "qty", Transform: Numeric()},
		},
	}
}

func TestBuild_EmptyFiltersOnlyPageAndLimit(t *testing.T) {
	p := testMapping().Build(FilterState{}, 1, 10)

	require.Equal(t, map[string]any{"page": 1, "limit": 10}, p.Map())
	require.Equal(t, []string{"page", "limit"}, p.Keys())
}

func TestBuild_DefaultsAlwaysPresent(t *testing.T) {
	m := testMapping()
	m.Defaults = []Default{{Key: "sort_by", Value: String("created_at")}}

	p := m.Build(FilterState{}, 3, 20)

	require.Equal(t, map[string]any{"page": 3, "limit": 20, "sort_by": "created_at"}, p.Map())
}

func TestBuild_ColumnFilterCoercion(t *testing.T) {
	fs := FilterState{ColumnFilters: []ColumnFilter{
		{Column: "name", Value: "Jo"},
		{Column: "quantity", Value: " 42 "},
	}}

	p := testMapping().Build(fs, 1, 10)

	v, ok := p.Get("qty")
	require.True(t, ok)
	require.Equal(t, KindInt, v.Kind())
	require.Equal(t, 42, v.Interface())
	require.Equal(t, "Jo", p.Map()["client_name"])
}

func TestBuild_NumericFallbackKeepsRawString(t *testing.T) {
	fs := FilterState{ColumnFilters: []ColumnFilter{{Column: "quantity", Value: "a lot"}}}

	p := testMapping().Build(fs, 1, 10)

	require.Equal(t, "a lot", p.Map()["qty"])
}

func TestBuild_RemovingColumnFilterRemovesKey(t *testing.T) {
	m := testMapping()
	fs := FilterState{}.WithColumn("name", "Jo")

	withFilter := m.Build(fs, 1, 10)
	require.True(t, withFilter.Has("client_name"))

	without := m.Build(fs.WithoutColumn("name"), 1, 10)
	require.False(t, without.Has("client_name"))
	require.True(t, without.Equal(m.Build(FilterState{}, 1, 10)))
}

func TestBuild_UndeclaredColumnIgnored(t *testing.T) {
	fs := FilterState{ColumnFilters: []ColumnFilter{{Column: "nickname", Value: "x"}}}

	p := testMapping().Build(fs, 1, 10)

	require.Equal(t, 2, p.Len())
}

func TestBuild_LastColumnEntryWins(t *testing.T) {
	fs := FilterState{ColumnFilters: []ColumnFilter{
		{Column: "name", Value: "Ann"},
		{Column: "name", Value: "Bob"},
	}}

	p := testMapping().Build(fs, 1, 10)

	require.Equal(t, "Bob", p.Map()["client_name"])
}

func TestBuild_SortRoundTrip(t *testing.T) {
	m := testMapping()
	fs := FilterState{StatusFilter: "pending"}

	first := m.Build(fs, 1, 10)
	fs.IDSort = SortAsc
	second := m.Build(fs, 1, 10)
	fs.IDSort = SortNone
	third := m.Build(fs, 1, 10)

	require.Equal(t, "asc", second.Map()["order_dir"])
	require.True(t, first.Equal(third))
	if diff := cmp.Diff(first.Map(), third.Map()); diff != "" {
		t.Fatalf("round trip mismatch (-first +third):\n%s", diff)
	}
}

func TestBuild_StatusLookup(t *testing.T) {
	cases := []struct {
		label string
		want  any
	}{
		{label: "pending", want: "assign"},
		{label: "Completed", want: "completed"},
		{label: "COMPLETED", want: "completed"},
		{label: "On Hold", want: "on hold"},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			p := testMapping().Build(FilterState{StatusFilter: tc.label}, 1, 10)
			require.Equal(t, tc.want, p.Map()["status"])
		})
	}
}

func TestBuild_FalseStatusIsSent(t *testing.T) {
	m := Mapping{
		SortKey: "order",
		Status:  &Field{Key: "is_active", Transform: BoolLookup("Active", "Inactive")},
	}

	p := m.Build(FilterState{StatusFilter: "Inactive"}, 1, 10)

	v, ok := p.Get("is_active")
	require.True(t, ok)
	require.Equal(t, false, v.Interface())
	require.Equal(t, "false", p.Values().Get("is_active"))
}

func TestBuild_PageChangeKeepsFilters(t *testing.T) {
	m := testMapping()
	fs := FilterState{IDSort: SortDesc, StatusFilter: "pending", JobTypeFilter: "repair"}

	p1 := m.Build(fs, 1, 10).Map()
	p2 := m.Build(fs, 2, 10).Map()

	require.Equal(t, 2, p2["page"])
	p2["page"] = 1
	require.Equal(t, p1, p2)
}

func TestParams_KeyIgnoresInsertionOrder(t *testing.T) {
	var a, b Params
	a.Set("x", Some(Int(1)))
	a.Set("y", Some(String("1")))
	b.Set("y", Some(String("1")))
	b.Set("x", Some(Int(1)))

	require.Equal(t, a.Key(), b.Key())

	var c Params
	c.Set("x", Some(String("1")))
	c.Set("y", Some(String("1")))
	require.NotEqual(t, a.Key(), c.Key())
}

func TestParams_AbsentValueIsNotStored(t *testing.T) {
	var p Params
	p.Set("q", None[Value]())

	require.Zero(t, p.Len())
	require.Empty(t, p.Values())
}

func TestLookup_Labels(t *testing.T) {
	l := BoolLookup("Read", "Unread")

	require.Equal(t, []string{"Read", "Unread"}, l.Labels())
	label, ok := l.Label(Bool(false))
	require.True(t, ok)
	require.Equal(t, "Unread", label)
}

func TestFilterState_Equal(t *testing.T) {
	a := FilterState{ColumnFilters: []ColumnFilter{{Column: "name", Value: "x"}, {Column: "city", Value: ""}}}
	b := FilterState{}.WithColumn("name", "x")

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(FilterState{}))
	require.True(t, FilterState{ColumnFilters: []ColumnFilter{{Column: "name"}}}.IsZero())
}

func TestParseSortOrder(t *testing.T) {
	require.Equal(t, SortAsc, ParseSortOrder(" ASC "))
	require.Equal(t, SortDesc, ParseSortOrder("desc"))
	require.Equal(t, SortNone, ParseSortOrder("sideways"))
}
