// Package mockboard provides an in-memory clipboard for testing.
package mockboard

// MockClipboard implements clipboard.Clipboard in memory.
type MockClipboard struct {
	data []byte
}

// New creates a new MockClipboard instance.
func New() *MockClipboard {
	return &MockClipboard{}
}

// Read implements clipboard.Clipboard.
func (m *MockClipboard) Read() ([]byte, error) {
	return m.data, nil
}

// Write implements clipboard.Clipboard.
func (m *MockClipboard) Write(data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

// SetData sets the clipboard content directly.
func (m *MockClipboard) SetData(data []byte) {
	m.data = data
}

// GetData returns the current clipboard content.
func (m *MockClipboard) GetData() []byte {
	return m.data
}
