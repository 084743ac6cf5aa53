// Package pins implements the store of user-promoted records. Unlike
// history, the pin collection deduplicates against every existing pin
// and its limit is a hard gate on insertion: pins represent deliberate
// user intent and are never silently evicted to make room.
package pins

import (
	"errors"
	"fmt"
	"time"

	"github.com/clippyd/clippy/internal/config"
	"github.com/clippyd/clippy/internal/record"
	"github.com/clippyd/clippy/internal/recfile"
)

var (
	// ErrLimitReached is returned when the pin collection is full.
	ErrLimitReached = errors.New("pin limit reached")

	// ErrAlreadyPinned is returned when a pin with identical content
	// already exists anywhere in the collection.
	ErrAlreadyPinned = errors.New("already pinned")

	// ErrOutOfRange is returned for a 1-based index outside the collection.
	ErrOutOfRange = errors.New("pin index out of range")
)

// Store is the pin collection backed by a single record file. Records
// are kept in pin order: the oldest pin is first.
type Store struct {
	path   string
	images *recfile.ImageDir
	cfg    config.Config
}

// New creates a pin store over the given file.
func New(path string, images *recfile.ImageDir, cfg config.Config) *Store {
	return &Store{
		path:   path,
		images: images,
		cfg:    cfg,
	}
}

// Promote copies a history record into the pin collection with an
// optional label and returns its 1-based position. It fails with
// ErrLimitReached when the collection is full and with ErrAlreadyPinned
// when any existing pin carries identical content.
func (s *Store) Promote(rec record.Record, label string) (int, error) {
	records := recfile.Load(s.path)

	if len(records) >= s.cfg.MaxPins {
		return 0, fmt.Errorf("%w (%d)", ErrLimitReached, s.cfg.MaxPins)
	}
	for _, existing := range records {
		if existing.Content == rec.Content {
			return 0, ErrAlreadyPinned
		}
	}

	records = append(records, record.Record{
		Kind:      rec.Kind,
		Content:   rec.Content,
		CreatedAt: time.Now().Unix(),
		Label:     label,
		Path:      rec.Path,
	})

	if err := recfile.Save(s.path, records); err != nil {
		return 0, fmt.Errorf("failed to save pins: %w", err)
	}
	return len(records), nil
}

// Unpin removes the pin at the given 1-based position and returns it.
// The blob of an unpinned image record is deleted with it.
func (s *Store) Unpin(index int) (record.Record, error) {
	records := recfile.Load(s.path)
	if index < 1 || index > len(records) {
		return record.Record{}, fmt.Errorf("%w: %d (1-%d)", ErrOutOfRange, index, len(records))
	}

	removed := records[index-1]
	records = append(records[:index-1], records[index:]...)

	if err := recfile.Save(s.path, records); err != nil {
		return record.Record{}, fmt.Errorf("failed to save pins: %w", err)
	}

	if removed.Kind == record.Image {
		s.images.Delete(removed.Path)
	}
	return removed, nil
}

// List returns all pins in pin order.
func (s *Store) List() []record.Record {
	return recfile.Load(s.path)
}

// Sweep removes pins older than max_age_days and returns how many were
// removed. Pinning does not protect a record from age expiry.
func (s *Store) Sweep() (int, error) {
	return recfile.SweepExpired(s.path, s.cfg.MaxAgeDays, s.images, time.Now())
}
