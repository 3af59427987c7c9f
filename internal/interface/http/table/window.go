package table

// Window lists the page numbers to show for page out of total: the first
// and last page, and span pages around the current one. A 0 marks a gap.
// A gap that would hide a single page shows that page instead.
func Window(page, total, span int) []int {
	if total <= 0 {
		return nil
	}
	if span < 1 {
		span = 1
	}
	page = min(max(page, 1), total)

	lo, hi := max(page-span, 1), min(page+span, total)
	if lo <= 3 {
		lo = 1
	}
	if hi >= total-2 {
		hi = total
	}

	out := make([]int, 0, hi-lo+5)
	if lo > 1 {
		out = append(out, 1, 0)
	}
	for n := lo; n <= hi; n++ {
		out = append(out, n)
	}
	if hi < total {
		out = append(out, 0, total)
	}
	return out
}
