// Package grid holds the ordered set of rendered cards.
package grid

import (
	"github.com/orgball2608/tweet-gallery/internal/card"
	"github.com/orgball2608/tweet-gallery/internal/masonry"
)

// Container is the card list in DOM order. Child order is the visual
// priority order used by every layout pass. Not safe for concurrent use.
type Container struct {
	children []*card.Card
	byID     map[string]*card.Card

	Columns int
	Height  int
}

func New() *Container {
	return &Container{byID: make(map[string]*card.Card)}
}

func (c *Container) Len() int {
	return len(c.children)
}

// Children returns a copy of the child list.
func (c *Container) Children() []*card.Card {
	out := make([]*card.Card, len(c.children))
	copy(out, c.children)
	return out
}

func (c *Container) Get(id string) (*card.Card, bool) {
	cd, ok := c.byID[id]
	return cd, ok
}

func (c *Container) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Append adds cards at the end in the given order. Cards whose post is
// already present are skipped; the inserted ones are returned.
func (c *Container) Append(cards ...*card.Card) []*card.Card {
	inserted := make([]*card.Card, 0, len(cards))
	for _, cd := range cards {
		if cd == nil || c.Contains(cd.PostID) {
			continue
		}
		c.children = append(c.children, cd)
		c.byID[cd.PostID] = cd
		inserted = append(inserted, cd)
	}
	return inserted
}

// Prepend inserts cards so that the first given card becomes the first
// child and the relative order among them is kept. Each card is inserted
// before the current first child, walking the input backwards.
func (c *Container) Prepend(cards ...*card.Card) []*card.Card {
	inserted := make([]*card.Card, 0, len(cards))
	for i := len(cards) - 1; i >= 0; i-- {
		cd := cards[i]
		if cd == nil || c.Contains(cd.PostID) {
			continue
		}
		c.children = append([]*card.Card{cd}, c.children...)
		c.byID[cd.PostID] = cd
		inserted = append(inserted, cd)
	}
	// inserted was collected back to front
	for l, r := 0, len(inserted)-1; l < r; l, r = l+1, r-1 {
		inserted[l], inserted[r] = inserted[r], inserted[l]
	}
	return inserted
}

// Remove drops the cards of the given posts and reports how many were found.
// Unknown ids are ignored.
func (c *Container) Remove(ids []string) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := c.byID[id]; ok {
			drop[id] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return 0
	}

	kept := c.children[:0]
	for _, cd := range c.children {
		if _, ok := drop[cd.PostID]; ok {
			delete(c.byID, cd.PostID)
			continue
		}
		kept = append(kept, cd)
	}
	clear(c.children[len(kept):])
	c.children = kept
	return len(drop)
}

// Layout measures every child at its span width and runs one masonry pass
// over the children in order. It is a no-op reporting false when width
// fits less than one column.
func (c *Container) Layout(width int, m card.Measurer) bool {
	columns := masonry.Columns(width)
	if columns < 1 {
		return false
	}

	items := make([]masonry.Item, len(c.children))
	for i, cd := range c.children {
		span := min(max(cd.Span, 1), columns)
		cd.Width = masonry.SpanWidth(span)
		cd.Height = m.Measure(cd, cd.Width)
		items[i] = masonry.Item{Span: span, Height: cd.Height}
	}

	res, ok := masonry.Pack(items, columns)
	if !ok {
		return false
	}
	for i, p := range res.Placements {
		cd := c.children[i]
		cd.X = p.X
		cd.Y = p.Y
		cd.Width = p.Width
	}
	c.Columns = res.Columns
	c.Height = res.Height
	return true
}

// Reveal makes the given cards visible.
func Reveal(cards []*card.Card) {
	for _, cd := range cards {
		cd.Hidden = false
	}
}
