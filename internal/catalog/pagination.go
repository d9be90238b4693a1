package catalog

// Ellipsis is the gap marker in a page strip. Page numbers are always
// positive, so the sentinel cannot collide with a real page.
const Ellipsis = -1

// DefaultDelta is the number of pages shown on each side of the current one.
const DefaultDelta = 2

// PageWindow computes a bounded page strip for display: page 1, up to delta
// pages around the current page, and the last page, with Ellipsis marking
// skipped ranges. The strip width is bounded regardless of totalPages.
//
// A skipped range collapses to the page itself when the window already
// reaches page 2 (or totalPages-1): the boundary page is shown directly
// instead of a marker.
func PageWindow(current, total, delta int) []int {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	pages := []int{1}

	if current-delta > 2 {
		pages = append(pages, Ellipsis)
	}

	lo := max(2, current-delta)
	hi := min(total-1, current+delta)
	for i := lo; i <= hi; i++ {
		pages = append(pages, i)
	}

	if current+delta < total-1 {
		pages = append(pages, Ellipsis)
	}

	if total >= 2 {
		pages = append(pages, total)
	}
	return pages
}
