package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ScrapeResult is the metadata object returned by the scrape service.
// Every field is optional; a missing key means the field does not apply
// to the platform. Values are kept exactly as decoded.
type ScrapeResult map[string]any

// DisplayField is one labelled, present field of a ScrapeResult.
type DisplayField struct {
	Key   string
	Label string
	Value string
}

var displayFields = []struct {
	key   string
	label string
}{
	{"title", "Title"},
	{"views", "Views"},
	{"likes", "Likes"},
	{"comments", "Comments"},
	{"shares", "Shares"},
	{"bookmark", "Bookmarks"},
	{"date", "Date"},
	{"duration", "Duration"},
	{"channelName", "Channel Name"},
	{"subscribers", "Subscribers"},
	{"follower", "Followers"},
	{"description", "Description"},
}

// Get returns the field formatted as text. Missing, null and empty string
// values report false.
func (r ScrapeResult) Get(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case bool, float64, float32, int, int64:
		s = fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		s = string(b)
	}
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Thumbnail returns the preview image URL. TikTok results use "image".
func (r ScrapeResult) Thumbnail() string {
	if s, ok := r.Get("thumbnail"); ok {
		return s
	}
	s, _ := r.Get("image")
	return s
}

func (r ScrapeResult) VideoURL() string {
	s, _ := r.Get("videoUrl")
	return s
}

// Fields returns the present display fields in a stable order.
func (r ScrapeResult) Fields() []DisplayField {
	out := make([]DisplayField, 0, len(displayFields))
	for _, f := range displayFields {
		if v, ok := r.Get(f.key); ok {
			out = append(out, DisplayField{Key: f.key, Label: f.label, Value: v})
		}
	}
	return out
}

// Clone returns a shallow copy so snapshots do not alias controller state.
func (r ScrapeResult) Clone() ScrapeResult {
	if r == nil {
		return nil
	}
	out := make(ScrapeResult, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
