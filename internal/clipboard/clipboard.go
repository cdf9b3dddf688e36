// Package clipboard provides the copy/paste store used by the code view: the
// system clipboard where one is available, an in-process one otherwise.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/codeview/internal/logger"
)

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the operating system clipboard.
type System struct{}

func (System) ReadAll() (string, error) { return clipboard.ReadAll() }

func (System) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Memory is an in-process clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// New returns the system clipboard when asked for and supported, and an
// in-process clipboard otherwise.
func New(system bool) Clipboard {
	if system {
		if !clipboard.Unsupported {
			return System{}
		}
		logger.Warnf("System clipboard unsupported on this platform, using internal clipboard")
	}
	return &Memory{}
}
