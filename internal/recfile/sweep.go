package recfile

import (
	"time"

	"github.com/clippyd/clippy/internal/record"
)

// SweepExpired removes every record in the file at path older than
// maxAgeDays, deleting the image blobs of removed records. Records with
// a missing timestamp are conservatively kept. It returns the number of
// records removed; the file is only rewritten when something was removed.
//
// The same sweep applies to the history and pin files alike; pinning
// does not protect a record from age expiry.
func SweepExpired(path string, maxAgeDays int, images *ImageDir, now time.Time) (int, error) {
	records := Load(path)
	if len(records) == 0 {
		return 0, nil
	}

	maxAge := int64(maxAgeDays) * 24 * 60 * 60
	nowSec := now.Unix()

	kept := records[:0]
	removed := 0
	var blobs []string
	for _, r := range records {
		if r.CreatedAt != 0 && nowSec-r.CreatedAt > maxAge {
			if r.Kind == record.Image && r.Path != "" {
				blobs = append(blobs, r.Path)
			}
			removed++
			continue
		}
		kept = append(kept, r)
	}

	if removed == 0 {
		return 0, nil
	}
	if err := Save(path, kept); err != nil {
		// A failed save leaves every record in place, so the blobs
		// they reference must survive too.
		return 0, err
	}
	for _, p := range blobs {
		images.Delete(p)
	}
	return removed, nil
}
