package dataset

import "github.com/orgball2608/tweet-gallery/internal/domain"

// Delta is the identity difference between two dataset snapshots.
type Delta struct {
	// Added holds posts present only in the fresh snapshot, in fresh order.
	Added []domain.Post
	// Removed holds identities present only in the prior snapshot, in prior order.
	Removed []string
}

func (d Delta) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Diff compares snapshots by post identity only; positions are ignored.
func Diff(prior *Source, fresh *Source) Delta {
	var d Delta
	for i := 0; i < fresh.Len(); i++ {
		p := fresh.At(i)
		if !prior.Contains(p.ID) {
			d.Added = append(d.Added, p)
		}
	}
	for i := 0; i < prior.Len(); i++ {
		id := prior.At(i).ID
		if !fresh.Contains(id) {
			d.Removed = append(d.Removed, id)
		}
	}
	return d
}
