// Package report routes non-fatal errors to a user-visible sink.
// The enclosure store surfaces remote-call failures here instead of
// returning them, so a failed refresh never breaks the dashboard loop.
package report

import (
	"sync"

	"github.com/shelfmon/shelfmon/internal/logger"
)

// Reporter receives errors that should be shown to the user.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(err error)

// Report calls f(err).
func (f ReporterFunc) Report(err error) {
	f(err)
}

// logReporter writes reported errors to a Logger.
type logReporter struct {
	log logger.Logger
}

// NewLogReporter returns a Reporter backed by the given logger.
func NewLogReporter(log logger.Logger) Reporter {
	return &logReporter{log: log}
}

func (r *logReporter) Report(err error) {
	if err == nil {
		return
	}
	r.log.Error("%v", err)
}

// Capture records reported errors for test assertions.
type Capture struct {
	mu     sync.Mutex
	errors []error
}

// NewCapture returns an empty capturing reporter.
func NewCapture() *Capture {
	return &Capture{}
}

func (c *Capture) Report(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, err)
}

// Errors returns a copy of everything reported so far.
func (c *Capture) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]error, len(c.errors))
	copy(out, c.errors)
	return out
}

// Len returns the number of reported errors.
func (c *Capture) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors)
}
