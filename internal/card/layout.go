package card

import "math"

// Kind names the media sub-grid of a card.
type Kind string

const (
	KindNone    Kind = "none"
	KindSingle  Kind = "single"
	KindGrid2   Kind = "grid-2"
	KindGrid3   Kind = "grid-3"
	KindWideTop Kind = "wide-top"
)

const (
	// WideThreshold is the first-image ratio above which three images are
	// laid out as one full-width slot over a two-cell row.
	WideThreshold = 1.2
	// RatioTolerance is how far ratios may differ and still count as equal.
	RatioTolerance = 0.01
	// CropRatio is the aspect ratio forced on cropped cells.
	CropRatio = 1.0
)

// Layout is the chosen media sub-grid.
type Layout struct {
	Kind Kind
	// Columns of the sub-grid; the wide-top bottom row always has two.
	Columns int
	// ForceCrop crops every cell to CropRatio. For KindWideTop it applies to
	// the bottom row only.
	ForceCrop bool
}

// ChooseLayout picks the sub-grid for count media items. ratios holds one
// entry per item; zero means the image failed to load.
func ChooseLayout(count int, ratios []float64) Layout {
	switch count {
	case 1:
		return Layout{Kind: KindSingle, Columns: 1}
	case 2, 4:
		return Layout{Kind: KindGrid2, Columns: 2, ForceCrop: !ratiosEqual(ratios)}
	case 3:
		if ratioAt(ratios, 0) > WideThreshold {
			return Layout{Kind: KindWideTop, Columns: 2, ForceCrop: true}
		}
		return Layout{Kind: KindGrid3, Columns: 3, ForceCrop: !ratiosEqual(ratios)}
	default:
		return Layout{Kind: KindNone}
	}
}

// ratiosEqual reports whether every loaded ratio matches the first loaded
// one within RatioTolerance. Failed images are ignored; with nothing loaded
// there is no natural ratio to keep.
func ratiosEqual(ratios []float64) bool {
	first := 0.0
	for _, r := range ratios {
		if r <= 0 {
			continue
		}
		if first == 0 {
			first = r
			continue
		}
		if math.Abs(r-first) > RatioTolerance {
			return false
		}
	}
	return first > 0
}

func ratioAt(ratios []float64, i int) float64 {
	if i < len(ratios) {
		return ratios[i]
	}
	return 0
}
