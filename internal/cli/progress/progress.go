// Package progress reports the state of concurrently processed items on the
// terminal.
package progress

import (
	"fmt"
	"time"
)

// Status is the state of one tracked item.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusFailed
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// FormatDuration renders d rounded to whole seconds, e.g. "4s" or "1m 05s".
// Anything shorter than a second is "<1s".
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second

	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
