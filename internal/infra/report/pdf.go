package report

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
)

// Table is a rendered list page ready for export.
type Table struct {
	Title       string
	Filters     []string
	Headers     []string
	Rows        [][]string
	Page        int
	TotalPage   int
	Total       int
	GeneratedAt time.Time
}

const (
	margin     = 10.0
	rowHeight  = 7.0
	headHeight = 8.0
)

// PDF renders t as a landscape A4 document.
func PDF(t Table) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(t.Title, false)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Cell(0, 10, tr(t.Title))
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "", 9)
		pdf.Cell(0, 5, fmt.Sprintf("Generated %s  |  page %d of %d  |  %d records",
			t.GeneratedAt.Format("2006-01-02 15:04"), t.Page, max(t.TotalPage, 1), t.Total))
		pdf.Ln(5)
		if len(t.Filters) > 0 {
			pdf.Cell(0, 5, tr("Filters: "+strings.Join(t.Filters, ", ")))
			pdf.Ln(5)
		}
		pdf.Ln(2)
		writeHeaderRow(pdf, t.Headers, tr)
	})
	pdf.AddPage()

	widths := columnWidths(pdf, len(t.Headers))
	pdf.SetFont("Helvetica", "", 9)
	if len(t.Rows) == 0 {
		pdf.CellFormat(0, rowHeight, "No records", "1", 1, "C", false, 0, "")
	}
	for i, row := range t.Rows {
		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for c, w := range widths {
			text := ""
			if c < len(row) {
				text = fit(pdf, tr(row[c]), w-2)
			}
			pdf.CellFormat(w, rowHeight, text, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeaderRow(pdf *gofpdf.Fpdf, headers []string, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(33, 82, 148)
	pdf.SetTextColor(255, 255, 255)
	for i, w := range columnWidths(pdf, len(headers)) {
		pdf.CellFormat(w, headHeight, fit(pdf, tr(headers[i]), w-2), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
}

func columnWidths(pdf *gofpdf.Fpdf, n int) []float64 {
	if n == 0 {
		return nil
	}
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	w := (pageW - left - right) / float64(n)
	out := make([]float64, n)
	for i := range out {
		out[i] = w
	}
	return out
}

// fit truncates s with an ellipsis until it fits width.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Filename is the download name for an export of entity.
func Filename(entity string, at time.Time) string {
	name := unsafeName.ReplaceAllString(entity, "_")
	return fmt.Sprintf("%s_%s.pdf", name, at.Format("20060102_1504"))
}
