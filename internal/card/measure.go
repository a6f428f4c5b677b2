package card

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Measurer returns the rendered height of a card at a given width.
type Measurer interface {
	Measure(c *Card, width int) int
}

// Estimator derives card heights from the card content, following the box
// model of the gallery stylesheet. It is deterministic, so re-running a
// layout with unchanged cards gives identical heights. Cards are drawn at
// exactly this height.
type Estimator struct {
	Padding    int
	HeaderH    int
	TextGap    int
	LineHeight int
	CharWidth  int
	MediaTop   int
	MediaGap   int
}

func NewEstimator() Estimator {
	return Estimator{
		Padding:    12,
		HeaderH:    48,
		TextGap:    12,
		LineHeight: 20,
		CharWidth:  8,
		MediaTop:   12,
		MediaGap:   4,
	}
}

var _ Measurer = Estimator{}

// Measure returns the border-box height of c when its box is width wide.
func (e Estimator) Measure(c *Card, width int) int {
	inner := max(width-2*e.Padding, 1)
	h := 2*e.Padding + e.HeaderH + e.TextGap + e.textLines(c.Info.Text, inner)*e.LineHeight
	if mh := e.mediaHeight(c, inner); mh > 0 {
		h += e.MediaTop + mh
	}
	return h
}

func (e Estimator) textLines(text string, width int) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	perLine := max(width/max(e.CharWidth, 1), 1)
	lines := 0
	for _, para := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(para)
		lines += max((n+perLine-1)/perLine, 1)
	}
	return lines
}

func (e Estimator) mediaHeight(c *Card, width int) int {
	gap := e.MediaGap
	switch c.Layout.Kind {
	case KindSingle:
		return cellHeight(width, slotRatio(c.Media, 0))
	case KindGrid2:
		rows := (len(c.Media) + 1) / 2
		cellW := (width - gap) / 2
		return rows*cellHeight(cellW, gridRatio(c)) + (rows-1)*gap
	case KindGrid3:
		cellW := (width - 2*gap) / 3
		return cellHeight(cellW, gridRatio(c))
	case KindWideTop:
		top := cellHeight(width, slotRatio(c.Media, 0))
		cellW := (width - gap) / 2
		return top + gap + cellHeight(cellW, CropRatio)
	default:
		return 0
	}
}

// gridRatio is the shared cell ratio of a uniform grid.
func gridRatio(c *Card) float64 {
	if c.Layout.ForceCrop {
		return CropRatio
	}
	for _, s := range c.Media {
		if s.Ratio > 0 {
			return s.Ratio
		}
	}
	return CropRatio
}

func slotRatio(slots []Slot, i int) float64 {
	if i < len(slots) && slots[i].Ratio > 0 {
		return slots[i].Ratio
	}
	return CropRatio
}

func cellHeight(width int, ratio float64) int {
	if ratio <= 0 {
		ratio = CropRatio
	}
	return int(math.Round(float64(width) / ratio))
}
