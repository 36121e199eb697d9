// Package chunk plans the split of large PDFs into bounded page ranges.
package chunk

import (
	"errors"
	"fmt"
)

const (
	// Threshold is the page count above which a document needs chunking.
	Threshold = 50
	// Size is the number of pages per chunk.
	Size = 30
)

// ErrInvalidRange is returned when a requested page range is empty after
// clamping to the document.
var ErrInvalidRange = errors.New("invalid page range")

// Range is an inclusive, 1-indexed page range.
type Range struct {
	Chunk     int `json:"chunk"`
	StartPage int `json:"start_page"`
	EndPage   int `json:"end_page"`
	PageCount int `json:"page_count"`
}

// Plan is an ordered partition of [1, pageCount] into ranges.
type Plan struct {
	PageCount     int
	NeedsChunking bool
	Ranges        []Range
}

// NewPlan computes the chunk plan for a document of pageCount pages. Small
// documents get the single range [1, pageCount]; an empty document gets none.
func NewPlan(pageCount int) Plan {
	p := Plan{PageCount: pageCount, NeedsChunking: pageCount > Threshold}
	if pageCount <= 0 {
		return p
	}
	if !p.NeedsChunking {
		p.Ranges = []Range{{Chunk: 1, StartPage: 1, EndPage: pageCount, PageCount: pageCount}}
		return p
	}

	n := (pageCount + Size - 1) / Size
	p.Ranges = make([]Range, 0, n)
	for i := 0; i < n; i++ {
		start := i*Size + 1
		end := min((i+1)*Size, pageCount)
		p.Ranges = append(p.Ranges, Range{
			Chunk:     i + 1,
			StartPage: start,
			EndPage:   end,
			PageCount: end - start + 1,
		})
	}
	return p
}

// Chunks returns the number of ranges in the plan.
func (p Plan) Chunks() int {
	return len(p.Ranges)
}

// Clamp bounds start to at least 1 and end to at most pageCount, and fails
// with ErrInvalidRange when the result is empty.
func Clamp(start, end, pageCount int) (int, int, error) {
	if start < 1 {
		start = 1
	}
	if end > pageCount {
		end = pageCount
	}
	if start > end {
		return 0, 0, fmt.Errorf("%w: %d-%d", ErrInvalidRange, start, end)
	}
	return start, end, nil
}
