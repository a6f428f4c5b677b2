package media

import (
	"path"
	"strings"
)

// Resolver maps media and avatar references from the dataset to addresses
// the page can load. Remote references pass through untouched.
type Resolver struct {
	MediaRoot  string
	AvatarRoot string
}

func NewResolver(mediaRoot, avatarRoot string) Resolver {
	return Resolver{MediaRoot: mediaRoot, AvatarRoot: avatarRoot}
}

func (r Resolver) Media(ref string) string {
	if strings.Contains(ref, "://") {
		return ref
	}
	return path.Join(r.MediaRoot, ref)
}

func (r Resolver) Avatar(ref string) string {
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	return path.Join(r.AvatarRoot, ref)
}

// IsRemote reports whether src is an absolute network address.
func IsRemote(src string) bool {
	return strings.Contains(src, "://")
}
