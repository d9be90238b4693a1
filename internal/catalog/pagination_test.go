package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"single page", 1, 1, []int{1}},
		{"two pages", 1, 2, []int{1, 2}},
		{"middle of long strip", 5, 10, []int{1, Ellipsis, 3, 4, 5, 6, 7, Ellipsis, 10}},
		{"near start collapses left gap", 2, 5, []int{1, 2, 3, 4, 5}},
		{"window touching page two", 4, 10, []int{1, 2, 3, 4, 5, 6, Ellipsis, 10}},
		{"near end", 9, 10, []int{1, Ellipsis, 7, 8, 9, 10}},
		{"last page of huge strip", 100, 100, []int{1, Ellipsis, 98, 99, 100}},
		{"first page of huge strip", 1, 100, []int{1, 2, 3, Ellipsis, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.current, tt.total, DefaultDelta))
		})
	}
}

func TestPageWindow_ClampsInputs(t *testing.T) {
	assert.Equal(t, []int{1}, PageWindow(5, 0, DefaultDelta), "zero total renders as a single page")
	assert.Equal(t, []int{1, 2, 3, Ellipsis, 10}, PageWindow(-3, 10, DefaultDelta))
	assert.Equal(t, []int{1, Ellipsis, 8, 9, 10}, PageWindow(42, 10, DefaultDelta))
}

func TestPageWindow_BoundedWidth(t *testing.T) {
	// However large the catalog, the strip stays bounded.
	for total := 1; total <= 500; total += 7 {
		for current := 1; current <= total; current += 11 {
			got := PageWindow(current, total, DefaultDelta)
			assert.LessOrEqual(t, len(got), 2*DefaultDelta+5, "current=%d total=%d", current, total)
			assert.Equal(t, 1, got[0])
			if total >= 2 {
				assert.Equal(t, total, got[len(got)-1])
			}
		}
	}
}
