package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPDF(t *testing.T) {
	out, err := PDF(Table{
		Title:       "Clients",
		Filters:     []string{"status: Active"},
		Headers:     []string{"ID", "Name", "Email"},
		Rows:        [][]string{{"1", "Jo Bloggs", "jo@example.com"}, {"2", "A very long name that will not fit into the column width at all, not even close", ""}},
		Page:        1,
		TotalPage:   1,
		Total:       2,
		GeneratedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDF_Empty(t *testing.T) {
	out, err := PDF(Table{Title: "Parts", Headers: []string{"Name"}})

	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 2, 3, 4, 5, 0, 0, time.UTC)
	require.Equal(t, "technician_jobs_20260203_0405.pdf", Filename("technician/jobs", at))
}
