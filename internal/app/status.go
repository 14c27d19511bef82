package app

import (
	"fmt"
	"time"
)

// Outcome is how one trigger ended
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeWorking is pushed while a translation is in flight
	OutcomeWorking
	OutcomeTranslated
	OutcomeToggled
	OutcomeForcedToggle
	OutcomeCacheHit
	OutcomeEmptyInput
	OutcomeNoScript
	OutcomeCaptureFailed
	OutcomeTranslateFailed
	OutcomeWriteBackFailed
	OutcomeDropped
	OutcomePaused
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWorking:
		return "working"
	case OutcomeTranslated:
		return "translated"
	case OutcomeToggled:
		return "toggled"
	case OutcomeForcedToggle:
		return "forced_toggle"
	case OutcomeCacheHit:
		return "cache_hit"
	case OutcomeEmptyInput:
		return "empty_input"
	case OutcomeNoScript:
		return "no_script"
	case OutcomeCaptureFailed:
		return "capture_failed"
	case OutcomeTranslateFailed:
		return "translate_failed"
	case OutcomeWriteBackFailed:
		return "write_back_failed"
	case OutcomeDropped:
		return "dropped"
	case OutcomePaused:
		return "paused"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Applied reports whether the focused text was replaced
func (o Outcome) Applied() bool {
	switch o {
	case OutcomeTranslated, OutcomeToggled, OutcomeForcedToggle, OutcomeCacheHit:
		return true
	}
	return false
}

// Failed reports outcomes the user should notice as errors
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeCaptureFailed, OutcomeTranslateFailed, OutcomeWriteBackFailed:
		return true
	}
	return false
}

// Status is what the tray shows after each step
type Status struct {
	Outcome Outcome
	Message string
	At      time.Time
}

// StatusUpdater is an interface for updating status (e.g., tray icon)
type StatusUpdater interface {
	SetStatus(Status)
}

// Metrics receives per-trigger observations; see internal/metrics
type Metrics interface {
	ObserveOutcome(Outcome)
	ObserveTranslate(time.Duration, error)
	SetCacheEntries(int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveOutcome(Outcome)                {}
func (nopMetrics) ObserveTranslate(time.Duration, error) {}
func (nopMetrics) SetCacheEntries(int)                   {}
