// Package sysboard implements clipboard access using platform commands.
// On macOS it uses pbcopy/pbpaste, on Linux it uses xclip with xsel as
// a fallback.
package sysboard

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
)

// SystemClipboard implements clipboard.Clipboard using system commands.
type SystemClipboard struct{}

// New creates a new SystemClipboard instance.
func New() *SystemClipboard {
	return &SystemClipboard{}
}

// IsSupported returns true if clipboard commands are available.
func (s *SystemClipboard) IsSupported() bool {
	switch runtime.GOOS {
	case "darwin":
		_, copyErr := exec.LookPath("pbcopy")
		_, pasteErr := exec.LookPath("pbpaste")
		return copyErr == nil && pasteErr == nil
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			return true
		}
		_, err := exec.LookPath("xsel")
		return err == nil
	default:
		return false
	}
}

// Read implements clipboard.Clipboard.
func (s *SystemClipboard) Read() ([]byte, error) {
	switch runtime.GOOS {
	case "darwin":
		return readWithCommand("pbpaste")
	case "linux":
		if data, err := readWithCommand("xclip", "-selection", "clipboard", "-o"); err == nil {
			return data, nil
		}
		data, err := readWithCommand("xsel", "--clipboard", "--output")
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard (tried xclip and xsel): %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("clipboard operations not supported on %s", runtime.GOOS)
	}
}

// Write implements clipboard.Clipboard.
func (s *SystemClipboard) Write(data []byte) error {
	switch runtime.GOOS {
	case "darwin":
		return writeWithCommand(data, "pbcopy")
	case "linux":
		if err := writeWithCommand(data, "xclip", "-selection", "clipboard"); err == nil {
			return nil
		}
		if err := writeWithCommand(data, "xsel", "--clipboard", "--input"); err != nil {
			return fmt.Errorf("failed to write clipboard (tried xclip and xsel): %w", err)
		}
		return nil
	default:
		return fmt.Errorf("clipboard operations not supported on %s", runtime.GOOS)
	}
}

func readWithCommand(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeWithCommand(data []byte, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = bytes.NewReader(data)
	return cmd.Run()
}
