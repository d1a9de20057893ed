// Package notify delivers user-facing notifications.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/aryankumar/hvui/internal/output"
)

// DefaultErrorTimeout is how long an error notification stays visible
const DefaultErrorTimeout = 5 * time.Second

// Notification is a time-limited message shown to the user
type Notification struct {
	Title   string        `json:"title"`
	Message string        `json:"message"`
	Timeout time.Duration `json:"timeout"`
}

// Sink receives error notifications
type Sink interface {
	Error(n Notification)
}

// Console writes notifications to a terminal.
// A terminal has no dismissal, so Timeout is not used.
type Console struct {
	w      io.Writer
	mu     sync.Mutex
	colors *output.ColorScheme
}

// NewConsole creates a console sink writing to w (stderr when nil)
func NewConsole(w io.Writer, noColor bool) *Console {
	if w == nil {
		w = os.Stderr
	}

	return &Console{
		w:      w,
		colors: output.NewColorScheme(w, noColor),
	}
}

// Error writes the notification as a single line
func (c *Console) Error(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.w, "%s %s\n", c.colors.Error("%s:", n.Title), n.Message)
}
