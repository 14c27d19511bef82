package app

import (
	"time"

	"github.com/petems/triplespace/internal/pairs"
)

// toggleWindows bounds how long after a write a trigger may reverse it
type toggleWindows struct {
	// context: pair toggles stay eligible this long after the last write
	context time.Duration
	// retrigger: a forced toggle is considered this long after the last write
	retrigger time.Duration
	// immediate: within this span a forced toggle ignores what was read back
	immediate time.Duration
}

// pairToggleTarget returns the other side of the last pair when the current
// input is one of its sides. The side is chosen relative to what was last
// written, falling back to the input only when the written text matches
// neither side.
func (a *App) pairToggleTarget(input string, now time.Time, contextID string) (string, bool) {
	if a.lastPair == nil {
		return "", false
	}
	applied, ok := a.applied.Last()
	if !ok {
		return "", false
	}
	if !a.applied.Within(now, a.windows.context) || !a.applied.SameContext(contextID) {
		return "", false
	}

	pair := *a.lastPair
	left, right := pairs.Normalize(pair.Left), pairs.Normalize(pair.Right)
	if left == "" || right == "" {
		return "", false
	}
	if !pairs.LooksEquivalent(input, left) && !pairs.LooksEquivalent(input, right) {
		return "", false
	}

	switch {
	case pairs.LooksEquivalent(applied.Text, left):
		return pair.Right, true
	case pairs.LooksEquivalent(applied.Text, right):
		return pair.Left, true
	case pairs.LooksEquivalent(input, left):
		return pair.Right, true
	default:
		return pair.Left, true
	}
}

// forcedToggleTarget reverses the last write on a quick re-trigger even when
// the text read back has drifted from either side of the pair.
func (a *App) forcedToggleTarget(input string, now time.Time, contextID string, allowUnrelated bool) (string, bool) {
	if a.lastPair == nil {
		return "", false
	}
	applied, ok := a.applied.Last()
	if !ok {
		return "", false
	}
	if !a.applied.Within(now, a.windows.retrigger) || !a.applied.SameContext(contextID) {
		return "", false
	}

	pair := *a.lastPair
	left, right := pairs.Normalize(pair.Left), pairs.Normalize(pair.Right)
	if left == "" || right == "" {
		return "", false
	}

	var opposite string
	switch {
	case pairs.LooksEquivalent(applied.Text, left):
		opposite = pair.Right
	case pairs.LooksEquivalent(applied.Text, right):
		opposite = pair.Left
	default:
		return "", false
	}

	if allowUnrelated {
		return opposite, true
	}
	if pairs.LooksEquivalent(input, left) || pairs.LooksEquivalent(input, right) {
		return opposite, true
	}
	if a.applied.Elapsed(now) <= a.windows.immediate {
		return opposite, true
	}
	return "", false
}
