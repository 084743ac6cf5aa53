// Package history implements the bounded clipboard history store:
// capture with head-only dedup, hard truncation of over-long text,
// oldest-first eviction, and total reset.
package history

import (
	"fmt"
	"os"
	"time"

	"github.com/clippyd/clippy/internal/config"
	"github.com/clippyd/clippy/internal/record"
	"github.com/clippyd/clippy/internal/recfile"
)

// TruncationMarker is appended to text captures cut at max_entry_length.
const TruncationMarker = "... [truncated]"

// Store is the history collection backed by a single record file.
// Index 0 is the most recent capture.
type Store struct {
	path   string
	images *recfile.ImageDir
	cfg    config.Config
}

// New creates a history store over the given file, using images for
// blob storage and cfg for its limits.
func New(path string, images *recfile.ImageDir, cfg config.Config) *Store {
	return &Store{
		path:   path,
		images: images,
		cfg:    cfg,
	}
}

// CaptureText records a new text clipboard value. Text longer than
// max_entry_length is hard-truncated with a visible marker. If the most
// recent record is a text record with identical content the call is a
// no-op, so repeated polls of an unchanged clipboard insert nothing.
// Adjacent-only dedup is deliberate: history is append-heavy and the
// common duplicate is the value still sitting on the clipboard.
func (s *Store) CaptureText(text string) error {
	if text == "" {
		return nil
	}
	text = truncate(text, s.cfg.MaxEntryLength)

	records := recfile.Load(s.path)
	if len(records) > 0 && records[0].Kind == record.Text && records[0].Content == text {
		return nil
	}

	records = append([]record.Record{{
		Kind:      record.Text,
		Content:   text,
		CreatedAt: time.Now().Unix(),
	}}, records...)

	records, evicted := s.evict(records)

	if err := recfile.Save(s.path, records); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	s.deleteBlobs(evicted)
	return nil
}

// CaptureImage records new image clipboard bytes. The blob is persisted
// first; if that fails no record is created. Image content is not
// deduplicated; change detection against the live clipboard is the
// caller's job.
func (s *Store) CaptureImage(data []byte) error {
	blobPath, err := s.images.Save(data)
	if err != nil {
		return fmt.Errorf("failed to persist image: %w", err)
	}

	records := recfile.Load(s.path)
	records = append([]record.Record{{
		Kind:      record.Image,
		Content:   fmt.Sprintf("[image: %d bytes]", len(data)),
		CreatedAt: time.Now().Unix(),
		Path:      blobPath,
	}}, records...)

	records, evicted := s.evict(records)

	if err := recfile.Save(s.path, records); err != nil {
		// The record never became visible; drop its blob so the
		// create/delete pairing holds.
		s.images.Delete(blobPath)
		return fmt.Errorf("failed to save history: %w", err)
	}
	s.deleteBlobs(evicted)
	return nil
}

// List returns the n most recent records, newest first. n <= 0 returns
// everything.
func (s *Store) List(n int) []record.Record {
	records := recfile.Load(s.path)
	if n > 0 && len(records) > n {
		return records[:n]
	}
	return records
}

// Get returns the record at the given 1-based position.
func (s *Store) Get(index int) (record.Record, error) {
	records := recfile.Load(s.path)
	if index < 1 || index > len(records) {
		return record.Record{}, fmt.Errorf("index %d out of range (1-%d)", index, len(records))
	}
	return records[index-1], nil
}

// Clear deletes the history file entirely, along with every image blob
// it referenced. This is a total reset, not a sweep; the backup file is
// left alone (an absent primary never triggers backup recovery).
func (s *Store) Clear() error {
	records := recfile.Load(s.path)
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove history file: %w", err)
	}

	// Blob deletion follows record removal, never precedes it.
	for _, r := range records {
		if r.Kind == record.Image {
			s.images.Delete(r.Path)
		}
	}
	return nil
}

// Sweep removes records older than max_age_days and returns how many
// were removed.
func (s *Store) Sweep() (int, error) {
	return recfile.SweepExpired(s.path, s.cfg.MaxAgeDays, s.images, time.Now())
}

// evict trims the collection to max_history_items, removing oldest
// records first. It returns the blob paths of evicted image records;
// callers delete those only after the trimmed collection is saved, so
// a failed save never leaves a persisted record without its blob.
func (s *Store) evict(records []record.Record) ([]record.Record, []string) {
	var evicted []string
	for len(records) > s.cfg.MaxHistoryItems {
		last := records[len(records)-1]
		if last.Kind == record.Image && last.Path != "" {
			evicted = append(evicted, last.Path)
		}
		records = records[:len(records)-1]
	}
	return records, evicted
}

func (s *Store) deleteBlobs(paths []string) {
	for _, p := range paths {
		s.images.Delete(p)
	}
}

// truncate cuts text to max runes, appending the truncation marker.
func truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + TruncationMarker
}
