package card

// Info is the text block of a card.
type Info struct {
	Avatar string
	Name   string
	Handle string
	Text   string
	// Link is the outbound target; "#" when the post carries no URL.
	Link string
}

// Slot is one media cell.
type Slot struct {
	Src string
	// Ratio is width over height once the image loaded, zero otherwise.
	Ratio   float64
	Settled bool
}

// Card is the rendered unit for one post. It is not safe for concurrent use;
// the view controller serialises access.
type Card struct {
	PostID    string
	Info      Info
	Media     []Slot
	Layout    Layout
	Sensitive bool
	Video     bool
	Span      int

	Hidden bool
	X      int
	Y      int
	Width  int
	Height int

	revealed    bool
	hideVisible bool
	pressedSlot int
}

func newCard(postID string) *Card {
	return &Card{
		PostID:      postID,
		Span:        1,
		Hidden:      true,
		pressedSlot: -1,
	}
}

// MultiMedia reports whether the card shows a multi-cell media block.
func (c *Card) MultiMedia() bool {
	return c.Layout.Kind != KindNone && len(c.Media) > 1
}

// Sources lists media addresses in slot order.
func (c *Card) Sources() []string {
	out := make([]string, 0, len(c.Media))
	for _, s := range c.Media {
		out = append(out, s.Src)
	}
	return out
}

// Blurred reports whether every media item is currently concealed.
// Concealment is all-or-nothing per card.
func (c *Card) Blurred() bool {
	return c.Sensitive && !c.revealed
}

// HideControlVisible reports whether the "Hide" affordance is shown.
func (c *Card) HideControlVisible() bool {
	return c.Sensitive && c.hideVisible
}

// PointerDown starts a potential click on a media slot.
func (c *Card) PointerDown(slot int) {
	if !c.validSlot(slot) {
		c.pressedSlot = -1
		return
	}
	c.pressedSlot = slot
}

// PointerUp completes a click. A press and release on the same slot while the
// card is blurred reveals every media item and shows the hide control.
func (c *Card) PointerUp(slot int) bool {
	pressed := c.pressedSlot
	c.pressedSlot = -1
	if !c.Blurred() || pressed < 0 || pressed != slot {
		return false
	}
	c.revealed = true
	c.hideVisible = true
	return true
}

// Hide re-blurs every media item and hides the control.
func (c *Card) Hide() {
	if !c.Sensitive {
		return
	}
	c.revealed = false
	c.hideVisible = false
	c.pressedSlot = -1
}

// PointerEnter shows the hide control when the media is revealed.
func (c *Card) PointerEnter() {
	if c.Sensitive && c.revealed {
		c.hideVisible = true
	}
}

// PointerLeave hides the control and abandons any pending press.
func (c *Card) PointerLeave() {
	c.hideVisible = false
	c.pressedSlot = -1
}

func (c *Card) validSlot(slot int) bool {
	return slot >= 0 && slot < len(c.Media)
}
