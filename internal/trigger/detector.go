package trigger

import (
	"fmt"
	"time"
)

const (
	DefaultPressCount = 3
	DefaultWindow     = 500 * time.Millisecond
)

// Window configures how many presses fire a pulse and over what span
type Window struct {
	PressCount int
	Span       time.Duration
}

// DefaultTriggerWindow returns three presses within 500ms
func DefaultTriggerWindow() Window {
	return Window{PressCount: DefaultPressCount, Span: DefaultWindow}
}

func (w Window) Validate() error {
	if w.PressCount < 2 {
		return fmt.Errorf("press count must be at least 2, got %d", w.PressCount)
	}
	if w.Span <= 0 {
		return fmt.Errorf("trigger window must be positive, got %s", w.Span)
	}
	return nil
}

// Detector counts qualifying presses in a sliding window and reports when
// enough of them landed close together. Not safe for concurrent use; the key
// listener owns it.
type Detector struct {
	window  Window
	presses []time.Time
}

// New creates a detector; the window must already be valid
func New(w Window) (*Detector, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Detector{
		window:  w,
		presses: make([]time.Time, 0, w.PressCount),
	}, nil
}

// RegisterPress records one press at now and returns true when it completes
// a trigger. Firing clears the history so the next pulse needs a full set of
// fresh presses.
func (d *Detector) RegisterPress(now time.Time) bool {
	d.presses = append(d.presses, now)

	cutoff := now.Add(-d.window.Span)
	keep := 0
	for _, ts := range d.presses {
		if ts.Before(cutoff) {
			continue
		}
		d.presses[keep] = ts
		keep++
	}
	d.presses = d.presses[:keep]

	if len(d.presses) >= d.window.PressCount {
		d.presses = d.presses[:0]
		return true
	}
	return false
}

// Reset drops any partial sequence
func (d *Detector) Reset() {
	d.presses = d.presses[:0]
}

// Pending returns how many presses are currently inside the window
func (d *Detector) Pending() int {
	return len(d.presses)
}

func (d *Detector) Window() Window {
	return d.window
}
