// Package clipboard defines the interface the CLI and picker use to
// copy record content back out to the system clipboard.
package clipboard

// Clipboard reads and writes the system clipboard's text contents.
type Clipboard interface {
	// Read returns the current clipboard text.
	Read() ([]byte, error)

	// Write replaces the clipboard contents with data.
	Write(data []byte) error
}
