package hotkey

import (
	"context"
	"time"
)

// KeyEvent is one transition of the trigger key
type KeyEvent struct {
	Down bool
	At   time.Time
}

// Listener delivers trigger key transitions from a global input hook until
// ctx is cancelled. Callbacks run on the listener goroutine.
type Listener interface {
	Listen(ctx context.Context, onEvent func(KeyEvent)) error
}
