// Package recfile implements the on-disk persistence layer: JSON record
// files with single-generation backup recovery, atomic replacement, and
// an owner-only image blob directory.
//
// Files are shared between the capture daemon and the CLI without any
// locking. Every Save is an atomic whole-file replace, so readers never
// observe a torn write, but two near-simultaneous writers race and the
// last writer wins. That tradeoff is accepted for a local single-user
// tool; callers must not assume a concurrent change survives a Save.
package recfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/clippyd/clippy/internal/record"
)

// BackupSuffix is appended to a record file's path to form its backup
// location. Exactly one prior generation is kept.
const BackupSuffix = ".backup"

const fileMode = 0o600

// Load reads the record array at path. It never fails: an absent file
// yields an empty collection, and a file that cannot be parsed falls back
// to the backup generation, then to empty. Damaged history must degrade
// silently rather than block the caller.
func Load(path string) []record.Record {
	if records, err := readRecords(path); err == nil {
		return records
	} else if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if records, err := readRecords(path + BackupSuffix); err == nil {
		return records
	}
	return nil
}

// Save writes records to path as a pretty-printed JSON array. If a
// primary file already exists it is first copied to the backup location,
// overwriting any prior backup. The write itself is a temp-file-plus-
// rename replace: on failure the previous primary is left untouched.
// The resulting file is owner read/write only.
func Save(path string, records []record.Record) error {
	if records == nil {
		records = []record.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	// Keep one prior generation. A failed backup copy is not fatal;
	// the write proceeds regardless.
	if _, err := os.Stat(path); err == nil {
		_ = copyFile(path, path+BackupSuffix)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func readRecords(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// copyFile copies src to dst, replacing dst. Used for backup generation;
// errors are returned but callers may choose to continue.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, fileMode)
}
