package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newResolver() *App {
	return &App{
		lastPair: &Pair{Left: "你好", Right: "Hello"},
		windows: toggleWindows{
			context:   90 * time.Second,
			retrigger: 12 * time.Second,
			immediate: 2 * time.Second,
		},
	}
}

func TestPairToggleTarget(t *testing.T) {
	tests := []struct {
		name    string
		applied string
		ctxID   string
		input   string
		after   time.Duration
		want    string
		wantOK  bool
	}{
		{name: "back to source", applied: "Hello", ctxID: "app.example", input: "Hello", after: 5 * time.Second, want: "你好", wantOK: true},
		{name: "loose read back", applied: "Hello", ctxID: "app.example", input: "hello!", after: 5 * time.Second, want: "你好", wantOK: true},
		{name: "anchors on applied not input", applied: "Hello", ctxID: "app.example", input: "你好", after: 5 * time.Second, want: "你好", wantOK: true},
		{name: "applied drifted uses input", applied: "something else", ctxID: "app.example", input: "你好", after: 5 * time.Second, want: "Hello", wantOK: true},
		{name: "context compare ignores case", applied: "Hello", ctxID: "APP.EXAMPLE", input: "Hello", after: 5 * time.Second, want: "你好", wantOK: true},
		{name: "at window edge", applied: "Hello", ctxID: "app.example", input: "Hello", after: 90 * time.Second, want: "你好", wantOK: true},
		{name: "window expired", applied: "Hello", ctxID: "app.example", input: "Hello", after: 91 * time.Second},
		{name: "other application", applied: "Hello", ctxID: "other.app", input: "Hello", after: 5 * time.Second},
		{name: "unrelated input", applied: "Hello", ctxID: "app.example", input: "good morning", after: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newResolver()
			a.applied.Record(tt.applied, t0, "app.example")

			got, ok := a.pairToggleTarget(tt.input, t0.Add(tt.after), tt.ctxID)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPairToggleNeedsHistory(t *testing.T) {
	a := newResolver()
	_, ok := a.pairToggleTarget("Hello", t0, "app.example")
	assert.False(t, ok, "no applied record")

	a.lastPair = nil
	a.applied.Record("Hello", t0, "app.example")
	_, ok = a.pairToggleTarget("Hello", t0, "app.example")
	assert.False(t, ok, "no last pair")
}

func TestForcedToggleTarget(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		after          time.Duration
		allowUnrelated bool
		want           string
		wantOK         bool
	}{
		{name: "immediate unrelated", input: "the weather is nice", after: 1500 * time.Millisecond, want: "你好", wantOK: true},
		{name: "late unrelated", input: "the weather is nice", after: 5 * time.Second},
		{name: "late unrelated past window", input: "the weather is nice", after: 20 * time.Second},
		{name: "late matching side", input: "Hello", after: 10 * time.Second, want: "你好", wantOK: true},
		{name: "unrelated allowed", input: "", after: 11 * time.Second, allowUnrelated: true, want: "你好", wantOK: true},
		{name: "unrelated allowed past window", input: "", after: 13 * time.Second, allowUnrelated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newResolver()
			a.applied.Record("Hello", t0, "app.example")

			got, ok := a.forcedToggleTarget(tt.input, t0.Add(tt.after), "app.example", tt.allowUnrelated)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForcedToggleNeedsAppliedSide(t *testing.T) {
	a := newResolver()
	a.applied.Record("something unrelated", t0, "app.example")

	_, ok := a.forcedToggleTarget("", t0.Add(time.Second), "app.example", true)
	assert.False(t, ok)
}

func TestForcedToggleUnknownContext(t *testing.T) {
	a := newResolver()
	a.applied.Record("Hello", t0, "")

	got, ok := a.forcedToggleTarget("x", t0.Add(time.Second), "app.example", false)
	assert.True(t, ok)
	assert.Equal(t, "你好", got)
}
