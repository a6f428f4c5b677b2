package card

import "testing"

func sensitiveCard(n int) *Card {
	c := newCard("p1")
	c.Sensitive = true
	c.Media = make([]Slot, n)
	return c
}

func TestCard_GenuineClickRevealsAll(t *testing.T) {
	c := sensitiveCard(3)
	if !c.Blurred() || c.HideControlVisible() {
		t.Fatalf("sensitive card must start blurred with hide control hidden")
	}

	c.PointerDown(1)
	if !c.PointerUp(1) {
		t.Fatalf("genuine click must reveal")
	}
	if c.Blurred() {
		t.Fatalf("every media item must be revealed")
	}
	if !c.HideControlVisible() {
		t.Fatalf("hide control must be shown after reveal")
	}
}

func TestCard_DragBetweenSlotsDoesNotReveal(t *testing.T) {
	c := sensitiveCard(2)
	c.PointerDown(0)
	if c.PointerUp(1) {
		t.Fatalf("press and release on different slots is not a click")
	}
	if c.PointerUp(1) {
		t.Fatalf("release without press is not a click")
	}
	if !c.Blurred() {
		t.Fatalf("card must stay blurred")
	}
}

func TestCard_LeaveCancelsPress(t *testing.T) {
	c := sensitiveCard(1)
	c.PointerDown(0)
	c.PointerLeave()
	if c.PointerUp(0) {
		t.Fatalf("press abandoned by leaving must not reveal")
	}
}

func TestCard_HideReblursAll(t *testing.T) {
	c := sensitiveCard(4)
	c.PointerDown(2)
	c.PointerUp(2)

	c.Hide()
	if !c.Blurred() || c.HideControlVisible() {
		t.Fatalf("hide must re-blur and hide the control")
	}
}

func TestCard_HoverShowsHideOnlyWhenRevealed(t *testing.T) {
	c := sensitiveCard(1)
	c.PointerEnter()
	if c.HideControlVisible() {
		t.Fatalf("hover over a blurred card must not show hide")
	}

	c.PointerDown(0)
	c.PointerUp(0)
	c.PointerLeave()
	if c.HideControlVisible() {
		t.Fatalf("leave must hide the control")
	}
	if c.Blurred() {
		t.Fatalf("leave must not re-blur")
	}
	c.PointerEnter()
	if !c.HideControlVisible() {
		t.Fatalf("hover over a revealed card must show hide")
	}
}

func TestCard_NonSensitiveIgnoresBlurEvents(t *testing.T) {
	c := newCard("p2")
	c.Media = []Slot{{Src: "a"}}
	c.PointerDown(0)
	if c.PointerUp(0) || c.Blurred() {
		t.Fatalf("non-sensitive card has nothing to reveal")
	}
	c.PointerEnter()
	if c.HideControlVisible() {
		t.Fatalf("non-sensitive card never shows hide")
	}
}

func TestCard_StateIsPerCard(t *testing.T) {
	a, b := sensitiveCard(1), sensitiveCard(1)
	a.PointerDown(0)
	a.PointerUp(0)

	if !b.Blurred() {
		t.Fatalf("revealing one card must not affect another")
	}
}
