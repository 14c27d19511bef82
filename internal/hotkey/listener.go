package hotkey

import (
	"context"
	"errors"
	"time"

	hook "github.com/robotn/gohook"
	"github.com/rs/zerolog"
)

// SpaceKeycode is the libuiohook virtual code for the space bar
const SpaceKeycode uint16 = 57

// ErrHookClosed is returned when the global hook stops delivering events
var ErrHookClosed = errors.New("keyboard hook closed")

// HookListener observes the trigger key through a global keyboard hook. It
// never grabs the key, so the presses still reach the focused application.
type HookListener struct {
	log     zerolog.Logger
	keycode uint16
	start   func() chan hook.Event
	end     func()
}

var _ Listener = (*HookListener)(nil)

// NewHookListener creates a listener for the space bar
func NewHookListener(log zerolog.Logger) *HookListener {
	return &HookListener{
		log:     log,
		keycode: SpaceKeycode,
		start:   hook.Start,
		end:     hook.End,
	}
}

func (l *HookListener) Listen(ctx context.Context, onEvent func(KeyEvent)) error {
	events := l.start()
	defer l.end()

	l.log.Info().Uint16("keycode", l.keycode).Msg("Keyboard hook started")

	for {
		select {
		case <-ctx.Done():
			l.log.Info().Msg("Keyboard hook stopped")
			return nil
		case ev, ok := <-events:
			if !ok {
				return ErrHookClosed
			}
			if ev.Keycode != l.keycode {
				continue
			}

			at := ev.When
			if at.IsZero() {
				at = time.Now()
			}
			switch ev.Kind {
			case hook.KeyHold:
				onEvent(KeyEvent{Down: true, At: at})
			case hook.KeyUp:
				onEvent(KeyEvent{Down: false, At: at})
			}
		}
	}
}
