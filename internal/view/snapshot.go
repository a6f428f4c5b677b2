package view

import (
	"github.com/orgball2608/tweet-gallery/internal/card"
	"github.com/orgball2608/tweet-gallery/pkg/errors"
)

// Event is a pointer or control event on a card.
type Event string

const (
	EventPointerDown Event = "mousedown"
	EventPointerUp   Event = "mouseup"
	// EventClick is a press and release on one slot, applied together.
	EventClick Event = "click"
	EventHide        Event = "hide"
	EventEnter       Event = "enter"
	EventLeave       Event = "leave"
)

type SlotView struct {
	Src   string  `json:"src"`
	Ratio float64 `json:"ratio,omitempty"`
}

type CardView struct {
	ID     string `json:"id"`
	Avatar string `json:"avatar,omitempty"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Text   string `json:"text"`
	Link   string `json:"link"`

	Media         []SlotView `json:"media,omitempty"`
	Layout        card.Kind  `json:"layout"`
	LayoutColumns int        `json:"layout_columns,omitempty"`
	Crop          bool       `json:"crop,omitempty"`

	Video       bool `json:"video"`
	Sensitive   bool `json:"sensitive"`
	Blurred     bool `json:"blurred"`
	HideVisible bool `json:"hide_visible"`

	Hidden bool `json:"hidden"`
	Span   int  `json:"span"`
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
}

// View is a consistent copy of the grid state.
type View struct {
	Ready     bool   `json:"ready"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`

	Cards      []CardView `json:"cards"`
	Columns    int        `json:"columns"`
	Height     int        `json:"height"`
	Width      int        `json:"width"`
	Rendered   int        `json:"rendered"`
	Total      int        `json:"total"`
	Loading    bool       `json:"loading"`
	Refreshing bool       `json:"refreshing"`
}

// HasMore reports whether posts are left to render.
func (v View) HasMore() bool {
	return v.Ready && v.Rendered < v.Total
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Width:      c.width,
		Loading:    c.inflight,
		Refreshing: c.refreshing,
		Cards:      []CardView{},
	}
	if c.initErr != nil {
		v.Error = errors.GetMessage(c.initErr)
		v.ErrorCode = errors.GetCode(c.initErr)
	}
	if c.container == nil {
		return v
	}

	v.Ready = true
	v.Columns = c.container.Columns
	v.Height = c.container.Height
	v.Rendered = c.rendered
	v.Total = c.source.Len()
	for _, cd := range c.container.Children() {
		v.Cards = append(v.Cards, cardView(cd))
	}
	return v
}

func cardView(cd *card.Card) CardView {
	cv := CardView{
		ID:            cd.PostID,
		Avatar:        cd.Info.Avatar,
		Name:          cd.Info.Name,
		Handle:        cd.Info.Handle,
		Text:          cd.Info.Text,
		Link:          cd.Info.Link,
		Layout:        cd.Layout.Kind,
		LayoutColumns: cd.Layout.Columns,
		Crop:          cd.Layout.ForceCrop,
		Video:         cd.Video,
		Sensitive:     cd.Sensitive,
		Blurred:       cd.Blurred(),
		HideVisible:   cd.HideControlVisible(),
		Hidden:        cd.Hidden,
		Span:          cd.Span,
		X:             cd.X,
		Y:             cd.Y,
		Width:         cd.Width,
		Height:        cd.Height,
	}
	for _, s := range cd.Media {
		cv.Media = append(cv.Media, SlotView{Src: s.Src, Ratio: s.Ratio})
	}
	return cv
}
