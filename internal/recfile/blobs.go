package recfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ImageDir stores image blobs under a single owner-only directory.
// Blob files are created exactly when an image record is created and
// deleted exactly when that record leaves its collection.
type ImageDir struct {
	root string
}

// NewImageDir returns an ImageDir rooted at root. The directory is
// created lazily on first write.
func NewImageDir(root string) *ImageDir {
	return &ImageDir{root: root}
}

// Root returns the blob directory path.
func (d *ImageDir) Root() string {
	return d.root
}

// Save persists image bytes to a new uniquely-named file and returns its
// full path. Empty input is rejected so no record is created for it.
func (d *ImageDir) Save(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to save empty image")
	}

	if err := os.MkdirAll(d.root, 0o700); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	path := filepath.Join(d.root, uuid.NewString()+".png")
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}

// Delete removes a blob file. A missing file is not an error; the record
// referencing it is already being discarded.
func (d *ImageDir) Delete(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
