package recfile

import (
	"os"
	"path/filepath"
)

// Default file locations, relative to the user's home directory.
const (
	HistoryFile = ".clipboard_history"
	PinsFile    = ".clipboard_pins"
	DataDir     = ".clippy_data"
	ImagesDir   = "images"
)

// Paths bundles the on-disk locations shared by the daemon and the CLI.
type Paths struct {
	History string
	Pins    string
	Images  string
}

// DefaultPaths resolves the standard locations under the user's home
// directory: ~/.clipboard_history, ~/.clipboard_pins, and
// ~/.clippy_data/images for blobs.
func DefaultPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, err
	}
	return Paths{
		History: filepath.Join(home, HistoryFile),
		Pins:    filepath.Join(home, PinsFile),
		Images:  filepath.Join(home, DataDir, ImagesDir),
	}, nil
}

// PathsIn returns Paths rooted at dir, used by tests to keep stores in
// a temporary directory.
func PathsIn(dir string) Paths {
	return Paths{
		History: filepath.Join(dir, HistoryFile),
		Pins:    filepath.Join(dir, PinsFile),
		Images:  filepath.Join(dir, DataDir, ImagesDir),
	}
}
