package client

import "sync"

// Label is the text shown on the connect button
type Label string

const (
	LabelConnect    Label = "Connect"
	LabelDisconnect Label = "Disconnect"
	LabelConnecting Label = "Connecting..."
)

// String returns the label text
func (l Label) String() string {
	return string(l)
}

// Display is the element the session client renders its label into.
// In the browser this is the button with id "connect".
type Display interface {
	Text() string
	SetText(text string)
}

// MemoryDisplay is a Display that keeps the label in memory
type MemoryDisplay struct {
	mu   sync.RWMutex
	text string
}

// NewMemoryDisplay creates a display showing "Connect"
func NewMemoryDisplay() *MemoryDisplay {
	return &MemoryDisplay{text: LabelConnect.String()}
}

// Text returns the current label
func (d *MemoryDisplay) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// SetText replaces the current label
func (d *MemoryDisplay) SetText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = text
}
