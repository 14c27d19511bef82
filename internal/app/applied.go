package app

import (
	"strings"
	"time"
)

// Pair is the most recent source/translation pair, in either order
type Pair struct {
	Left  string
	Right string
}

// AppliedRecord is the last text this app wrote into a focused field
type AppliedRecord struct {
	Text      string
	At        time.Time
	ContextID string
}

// AppliedTracker remembers the last write so a quick re-trigger can be
// recognised as a toggle. Records are only overwritten, never cleared;
// callers decide staleness with Within and SameContext.
type AppliedTracker struct {
	last  AppliedRecord
	valid bool
}

func (t *AppliedTracker) Record(text string, at time.Time, contextID string) {
	t.last = AppliedRecord{Text: text, At: at, ContextID: contextID}
	t.valid = true
}

func (t *AppliedTracker) Last() (AppliedRecord, bool) {
	return t.last, t.valid
}

// Within reports whether the last write happened no more than window before now
func (t *AppliedTracker) Within(now time.Time, window time.Duration) bool {
	return t.valid && now.Sub(t.last.At) <= window
}

// Elapsed is the time since the last write; zero when nothing was written
func (t *AppliedTracker) Elapsed(now time.Time) time.Duration {
	if !t.valid {
		return 0
	}
	return now.Sub(t.last.At)
}

// SameContext compares application identifiers case-insensitively. An
// unknown identifier on either side does not disqualify.
func (t *AppliedTracker) SameContext(current string) bool {
	if !t.valid || t.last.ContextID == "" || current == "" {
		return true
	}
	return strings.EqualFold(t.last.ContextID, current)
}
