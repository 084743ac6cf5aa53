// Package record defines the data model shared by the history and pin
// collections. A record is either a text capture or a reference to an
// image blob on disk; the store that created the blob owns its lifecycle.
package record

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the two record variants.
type Kind int

const (
	Text Kind = iota
	Image
)

// String returns the wire name of the kind ("text" or "image").
func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	default:
		return "text"
	}
}

// Record is a single captured clipboard entry.
type Record struct {
	// Kind selects the variant. Path is only meaningful when Kind is Image.
	Kind Kind

	// Content is the textual payload. For Image records it holds a
	// human-readable placeholder; the bytes live in the file at Path.
	Content string

	// CreatedAt is the capture time in seconds since the epoch.
	// Zero means the timestamp is missing (old or hand-edited files);
	// such records are never removed by age-based cleanup.
	CreatedAt int64

	// Label is an optional user annotation, used only on pinned records.
	Label string

	// Path is the image blob location for Image records, empty otherwise.
	Path string
}

// wireRecord is the persisted JSON shape: an object with "type", "text",
// "timestamp" and, when present, "label" and "path". Timestamps are
// accepted as any JSON number since older files carry doubles.
type wireRecord struct {
	Type      string   `json:"type"`
	Text      string   `json:"text"`
	Timestamp *float64 `json:"timestamp,omitempty"`
	Label     string   `json:"label,omitempty"`
	Path      string   `json:"path,omitempty"`
}

// MarshalJSON implements json.Marshaler using the persisted file shape.
func (r Record) MarshalJSON() ([]byte, error) {
	w := wireRecord{
		Type:  r.Kind.String(),
		Text:  r.Content,
		Label: r.Label,
	}
	if r.CreatedAt != 0 {
		ts := float64(r.CreatedAt)
		w.Timestamp = &ts
	}
	if r.Kind == Image {
		w.Path = r.Path
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler for the persisted file shape.
// Unknown type strings are rejected so corrupt entries surface as parse
// errors rather than silently becoming text records.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	switch w.Type {
	case "text":
		r.Kind = Text
	case "image":
		r.Kind = Image
	default:
		return fmt.Errorf("unknown record type %q", w.Type)
	}

	r.Content = w.Text
	r.Label = w.Label
	r.Path = w.Path
	r.CreatedAt = 0
	if w.Timestamp != nil {
		r.CreatedAt = int64(*w.Timestamp)
	}
	return nil
}
