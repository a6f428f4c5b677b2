package card

import (
	"context"
	"regexp"
	"strings"

	"github.com/orgball2608/tweet-gallery/internal/domain"
	"github.com/orgball2608/tweet-gallery/internal/media"
)

// PlaceholderLink is the inert link target of posts without a URL.
const PlaceholderLink = "#"

var trailingURLRe = regexp.MustCompile(`\s*(https?://\S+)\s*$`)

// Preloader settles a set of images.
type Preloader interface {
	Preload(ctx context.Context, srcs []string) []media.Settle
}

// Composer builds cards from posts.
type Composer struct {
	resolver  media.Resolver
	preloader Preloader
}

func NewComposer(resolver media.Resolver, preloader Preloader) *Composer {
	return &Composer{
		resolver:  resolver,
		preloader: preloader,
	}
}

// Compose builds a hidden, detached card. Posts with several media items
// have their images preloaded first so the sub-grid can follow their aspect
// ratios; a failed image leaves its ratio unknown and never blocks.
func (c *Composer) Compose(ctx context.Context, post domain.Post) *Card {
	card := newCard(post.ID)
	card.Info = c.info(post)
	card.Sensitive = bool(post.Sensitive)
	card.Video = post.IsVideo

	count := len(post.Media)
	layout := ChooseLayout(count, nil)
	if layout.Kind == KindNone || count > domain.MaxMediaPerPost {
		card.Layout = layout
		return card
	}

	card.Media = make([]Slot, count)
	for i, ref := range post.Media {
		card.Media[i] = Slot{Src: c.resolver.Media(ref)}
	}

	if post.HasMultipleMedia() {
		settles := c.preloader.Preload(ctx, card.Sources())
		ApplySettles(card, settles)
		layout = ChooseLayout(count, slotRatios(card.Media))
	}
	card.Layout = layout

	if card.MultiMedia() {
		card.Span = 2
	}
	return card
}

func (c *Composer) info(post domain.Post) Info {
	text, link := SplitTrailingURL(post.Content)
	info := Info{
		Name:   post.Username,
		Handle: post.Handle,
		Text:   text,
		Link:   link,
	}
	if post.Avatar != "" {
		info.Avatar = c.resolver.Avatar(post.Avatar)
	}
	return info
}

// SplitTrailingURL separates a trailing URL from the text. The URL becomes
// the link target; without one the link is PlaceholderLink.
func SplitTrailingURL(content string) (text, link string) {
	loc := trailingURLRe.FindStringSubmatchIndex(content)
	if loc == nil {
		return strings.TrimSpace(content), PlaceholderLink
	}
	return strings.TrimSpace(content[:loc[0]]), content[loc[2]:loc[3]]
}

// ApplySettles records image outcomes on the card's slots, matched by source.
func ApplySettles(card *Card, settles []media.Settle) {
	bySrc := make(map[string]media.Settle, len(settles))
	for _, s := range settles {
		bySrc[s.Src] = s
	}
	for i := range card.Media {
		s, ok := bySrc[card.Media[i].Src]
		if !ok {
			continue
		}
		card.Media[i].Settled = true
		if r, ok := s.Ratio(); ok {
			card.Media[i].Ratio = r
		} else {
			card.Media[i].Ratio = 0
		}
	}
}

func slotRatios(slots []Slot) []float64 {
	out := make([]float64, len(slots))
	for i, s := range slots {
		out[i] = s.Ratio
	}
	return out
}
