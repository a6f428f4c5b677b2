package masonry

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestColumns(t *testing.T) {
	step := ColumnWidth + Gutter
	tests := []struct {
		width int
		want  int
	}{
		{0, 0},
		{-10, 0},
		{ColumnWidth - 1, 0},
		{step - 1, 0},
		{step, 1},
		{3*step + step/2, 3},
		{1280, 1280 / step},
	}
	for _, tt := range tests {
		if got := Columns(tt.width); got != tt.want {
			t.Fatalf("Columns(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestPack_NoColumnsIsNoop(t *testing.T) {
	res, ok := Pack([]Item{{Span: 1, Height: 10}}, 0)
	if ok || len(res.Placements) != 0 || res.Height != 0 {
		t.Fatalf("expected no-op, got %+v ok=%v", res, ok)
	}
}

func TestPack_ShortestColumnLeftmostOnTies(t *testing.T) {
	items := []Item{
		{Span: 1, Height: 100},
		{Span: 1, Height: 50},
		{Span: 1, Height: 50},
		{Span: 1, Height: 10},
	}
	res, ok := Pack(items, 3)
	if !ok {
		t.Fatal("expected placement")
	}

	wantCols := []int{0, 1, 2, 1}
	for i, p := range res.Placements {
		if p.Column != wantCols[i] {
			t.Fatalf("item %d column = %d, want %d", i, p.Column, wantCols[i])
		}
	}
	if got := res.Placements[3].Y; got != 50+Gutter {
		t.Fatalf("item 3 y = %d, want %d", got, 50+Gutter)
	}
	if res.Height != 100+Gutter {
		t.Fatalf("height = %d, want %d", res.Height, 100+Gutter)
	}
}

func TestPack_SpanUsesMaxOfCoveredColumns(t *testing.T) {
	items := []Item{
		{Span: 1, Height: 100},
		{Span: 1, Height: 10},
		{Span: 1, Height: 40},
		{Span: 2, Height: 30},
	}
	res, _ := Pack(items, 3)

	// Columns are at 116, 26, 56; span 2 at col 0 needs 116, at col 1 needs 56.
	got := res.Placements[3]
	if got.Column != 1 || got.Y != 40+Gutter || got.Width != 2*ColumnWidth+Gutter {
		t.Fatalf("span placement = %+v", got)
	}
}

func TestPack_SpanCappedToColumns(t *testing.T) {
	res, _ := Pack([]Item{{Span: 2, Height: 10}}, 1)
	if p := res.Placements[0]; p.Span != 1 || p.Width != ColumnWidth || p.X != 0 {
		t.Fatalf("placement = %+v", p)
	}
}

func randomItems(r *rand.Rand, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Span: 1 + r.Intn(2), Height: 20 + r.Intn(400)}
	}
	return items
}

func TestPack_Deterministic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	items := randomItems(r, 200)

	a, _ := Pack(items, 4)
	b, _ := Pack(items, 4)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("packing is not deterministic")
	}
}

func TestPack_NoOverlap(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, cols := range []int{1, 2, 3, 5} {
		items := randomItems(r, 150)
		res, _ := Pack(items, cols)

		for i := range res.Placements {
			for j := i + 1; j < len(res.Placements); j++ {
				a, b := res.Placements[i], res.Placements[j]
				colsOverlap := a.Column < b.Column+b.Span && b.Column < a.Column+a.Span
				rowsOverlap := a.Y < b.Y+items[j].Height && b.Y < a.Y+items[i].Height
				if colsOverlap && rowsOverlap {
					t.Fatalf("cols=%d: items %d %+v and %d %+v overlap", cols, i, a, j, b)
				}
			}
			if p := res.Placements[i]; p.Column+p.Span > cols {
				t.Fatalf("item %d overflows: %+v", i, p)
			}
		}
	}
}
