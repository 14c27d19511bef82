package inject

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/petems/triplespace/internal/config"
	"github.com/rs/zerolog"
)

// pasteRestoreDelay gives slow editors time to consume the clipboard
// before the previous contents are put back.
const pasteRestoreDelay = 250 * time.Millisecond

// ClipboardCapture reads and replaces focused text with select-all and
// clipboard shortcuts. The user's clipboard is restored after every step.
type ClipboardCapture struct {
	clip   Clipboard
	kb     Keyboard
	settle time.Duration
	log    zerolog.Logger
}

var _ TextCapture = (*ClipboardCapture)(nil)

// New creates a capture on the system clipboard and keyboard
func New(cfg config.InjectConfig, log zerolog.Logger) (*ClipboardCapture, error) {
	kb, err := newSystemKeyboard(cfg.KeyDelay())
	if err != nil {
		return nil, fmt.Errorf("keyboard: %w", err)
	}
	return NewWith(systemClipboard{}, kb, cfg.ClipboardSettle(), log), nil
}

// NewWith creates a capture on the given clipboard and keyboard
func NewWith(clip Clipboard, kb Keyboard, settle time.Duration, log zerolog.Logger) *ClipboardCapture {
	return &ClipboardCapture{clip: clip, kb: kb, settle: settle, log: log}
}

// ReadFocused copies the whole field. When copy yields nothing it falls back
// to cut, which empties the field and is reported as destructive.
func (c *ClipboardCapture) ReadFocused(ctx context.Context) (Capture, error) {
	snapshot := c.snapshot()
	defer c.restoreClipboard(snapshot)

	text, err := c.grab(ctx, Copy)
	if err != nil {
		return Capture{}, err
	}
	if text != "" {
		if err := c.kb.CollapseSelection(); err != nil {
			c.log.Debug().Err(err).Msg("Could not collapse selection")
		}
		return Capture{Text: text}, nil
	}

	c.log.Debug().Msg("Copy produced nothing, falling back to cut")
	text, err = c.grab(ctx, Cut)
	if err != nil {
		return Capture{}, err
	}
	if text == "" {
		return Capture{}, ErrNoFocusedText
	}
	return Capture{Text: text, Destructive: true}, nil
}

// grab selects everything and sends op, returning what landed on the
// clipboard. A marker written first tells an empty copy from stale content.
func (c *ClipboardCapture) grab(ctx context.Context, op Shortcut) (string, error) {
	marker := "triplespace-marker-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := c.clip.WriteAll(marker); err != nil {
		return "", fmt.Errorf("write clipboard: %w", err)
	}
	if err := c.send(SelectAll, op); err != nil {
		return "", err
	}
	if err := sleep(ctx, c.settle); err != nil {
		return "", err
	}

	text, err := c.clip.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	if text == marker {
		return "", nil
	}
	return text, nil
}

// Replace selects the whole field and pastes text over it
func (c *ClipboardCapture) Replace(ctx context.Context, text string) error {
	snapshot := c.snapshot()

	if err := c.clip.WriteAll(text); err != nil {
		return fmt.Errorf("%w: write clipboard: %v", ErrReplaceFailed, err)
	}
	if err := sleep(ctx, c.settle); err != nil {
		c.restoreClipboard(snapshot)
		return err
	}
	if err := c.send(SelectAll, Paste); err != nil {
		c.restoreClipboard(snapshot)
		return fmt.Errorf("%w: %v", ErrReplaceFailed, err)
	}
	if err := sleep(ctx, pasteRestoreDelay); err != nil {
		return err
	}

	// Only restore if the user hasn't copied something in the meantime
	if current, _ := c.clip.ReadAll(); current == text {
		c.restoreClipboard(snapshot)
	}
	return nil
}

func (c *ClipboardCapture) send(shortcuts ...Shortcut) error {
	for _, s := range shortcuts {
		if err := c.kb.Shortcut(s); err != nil {
			return fmt.Errorf("send %s: %w", s, err)
		}
	}
	return nil
}

// clipSnapshot is the user's clipboard before we touched it. An unreadable
// clipboard is left alone afterwards rather than cleared.
type clipSnapshot struct {
	text string
	ok   bool
}

func (c *ClipboardCapture) snapshot() clipSnapshot {
	text, err := c.clip.ReadAll()
	if err != nil {
		c.log.Debug().Err(err).Msg("Could not read clipboard, it will not be restored")
		return clipSnapshot{}
	}
	return clipSnapshot{text: text, ok: true}
}

func (c *ClipboardCapture) restoreClipboard(snapshot clipSnapshot) {
	if !snapshot.ok {
		return
	}
	if err := c.clip.WriteAll(snapshot.text); err != nil {
		c.log.Debug().Err(err).Msg("Could not restore clipboard")
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
