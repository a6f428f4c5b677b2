// Package masonry places variable-height cards into fixed-width columns.
//
// The packer is pure: it takes cards in visual priority order as (span,
// height) pairs and returns positions. Measuring cards and applying the
// positions is the caller's job.
package masonry

const (
	// ColumnWidth is the width of a one-column card in pixels.
	ColumnWidth = 300
	// Gutter is the gap between columns and between stacked cards.
	Gutter = 16
)

// Item is one card to place.
type Item struct {
	Span   int
	Height int
}

// Placement is where an Item landed.
type Placement struct {
	Column int
	Span   int
	X      int
	Y      int
	Width  int
}

// Result is the outcome of one full pass.
type Result struct {
	Columns    int
	Placements []Placement
	Height     int
}

// Columns returns how many columns fit in width.
func Columns(width int) int {
	if width <= 0 {
		return 0
	}
	return width / (ColumnWidth + Gutter)
}

// ColumnX maps a column index to its left offset in pixels.
func ColumnX(col int) int {
	return col * (ColumnWidth + Gutter)
}

// SpanWidth is the pixel width of a card covering span columns.
func SpanWidth(span int) int {
	if span < 1 {
		span = 1
	}
	return span*ColumnWidth + (span-1)*Gutter
}

// Pack places items in order. It reports false and places nothing when
// fewer than one column is available.
func Pack(items []Item, columns int) (Result, bool) {
	if columns < 1 {
		return Result{}, false
	}

	heights := make([]int, columns)
	placements := make([]Placement, len(items))

	for i, it := range items {
		span := min(max(it.Span, 1), columns)

		bestCol, bestY := 0, -1
		for col := 0; col <= columns-span; col++ {
			y := maxOf(heights[col : col+span])
			if bestY < 0 || y < bestY {
				bestCol, bestY = col, y
			}
		}

		placements[i] = Placement{
			Column: bestCol,
			Span:   span,
			X:      ColumnX(bestCol),
			Y:      bestY,
			Width:  SpanWidth(span),
		}

		bottom := bestY + max(it.Height, 0) + Gutter
		for col := bestCol; col < bestCol+span; col++ {
			heights[col] = bottom
		}
	}

	return Result{
		Columns:    columns,
		Placements: placements,
		Height:     maxOf(heights),
	}, true
}

func maxOf(xs []int) int {
	m := 0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
