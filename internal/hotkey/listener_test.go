package hotkey

import (
	"context"
	"testing"
	"time"

	hook "github.com/robotn/gohook"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListener(events chan hook.Event) (*HookListener, *bool) {
	ended := false
	return &HookListener{
		log:     zerolog.Nop(),
		keycode: SpaceKeycode,
		start:   func() chan hook.Event { return events },
		end:     func() { ended = true },
	}, &ended
}

func TestHookListenerForwardsTriggerKey(t *testing.T) {
	events := make(chan hook.Event, 8)
	l, ended := newTestListener(events)
	at := time.Unix(1000, 0)

	events <- hook.Event{Kind: hook.KeyHold, Keycode: SpaceKeycode, When: at}
	events <- hook.Event{Kind: hook.KeyDown, Keycode: SpaceKeycode, When: at, Keychar: ' '}
	events <- hook.Event{Kind: hook.KeyHold, Keycode: 30, When: at}
	events <- hook.Event{Kind: hook.KeyUp, Keycode: SpaceKeycode, When: at.Add(time.Millisecond)}
	close(events)

	var got []KeyEvent
	err := l.Listen(context.Background(), func(ev KeyEvent) { got = append(got, ev) })

	require.ErrorIs(t, err, ErrHookClosed)
	assert.True(t, *ended)
	assert.Equal(t, []KeyEvent{
		{Down: true, At: at},
		{Down: false, At: at.Add(time.Millisecond)},
	}, got)
}

func TestHookListenerStopsOnCancel(t *testing.T) {
	events := make(chan hook.Event)
	l, ended := newTestListener(events)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Listen(ctx, func(KeyEvent) { t.Fatal("unexpected event") })
	assert.NoError(t, err)
	assert.True(t, *ended)
}

func TestHookListenerFillsMissingTimestamp(t *testing.T) {
	events := make(chan hook.Event, 1)
	l, _ := newTestListener(events)
	events <- hook.Event{Kind: hook.KeyHold, Keycode: SpaceKeycode}
	close(events)

	var got KeyEvent
	_ = l.Listen(context.Background(), func(ev KeyEvent) { got = ev })
	assert.False(t, got.At.IsZero())
}
