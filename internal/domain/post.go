package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// MaxMediaPerPost is the largest media count the gallery lays out.
const MaxMediaPerPost = 4

// Post is one liked tweet as stored in the dataset file. Immutable once loaded.
type Post struct {
	ID        string    `json:"id"`
	Avatar    string    `json:"avatar"`
	Username  string    `json:"username"` // display name
	Handle    string    `json:"handle"`
	Content   string    `json:"content"`
	Media     []string  `json:"media"`
	IsVideo   bool      `json:"is_video"`
	Sensitive Sensitive `json:"possibly_sensitive"`
}

// HasMultipleMedia reports whether the post should span two columns.
func (p Post) HasMultipleMedia() bool {
	return len(p.Media) > 1
}

// Sensitive decodes the possibly_sensitive field. Older dataset files store it
// as a string (empty when unknown), newer ones as a bool.
type Sensitive bool

func (s *Sensitive) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = false
		return nil
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		str = strings.ToLower(strings.TrimSpace(str))
		*s = Sensitive(str != "" && str != "false" && str != "0")
		return nil
	default:
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*s = Sensitive(b)
		return nil
	}
}

// IDs returns post identities in dataset order.
func IDs(posts []Post) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}
