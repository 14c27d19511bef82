package inject

import (
	"errors"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"
)

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("clipboard unsupported on this system")
	}
	return clipboard.ReadAll()
}

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(text)
}

var shortcutKeys = map[Shortcut]int{
	SelectAll: keybd_event.VK_A,
	Copy:      keybd_event.VK_C,
	Cut:       keybd_event.VK_X,
	Paste:     keybd_event.VK_V,
}

// systemKeyboard posts chords with keybd_event; the modifier is per platform
type systemKeyboard struct {
	mu    sync.Mutex
	kb    keybd_event.KeyBonding
	delay time.Duration
}

func newSystemKeyboard(delay time.Duration) (*systemKeyboard, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, err
	}
	// The virtual device needs a moment before the first event is seen
	time.Sleep(deviceWarmup)
	return &systemKeyboard{kb: kb, delay: delay}, nil
}

func (k *systemKeyboard) Shortcut(s Shortcut) error {
	key, ok := shortcutKeys[s]
	if !ok {
		return errors.New("unknown shortcut")
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.kb.Clear()
	setShortcutModifier(&k.kb)
	k.kb.SetKeys(key)
	err := k.kb.Launching()
	time.Sleep(k.delay)
	return err
}

func (k *systemKeyboard) CollapseSelection() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.kb.Clear()
	k.kb.SetKeys(keybd_event.VK_RIGHT)
	err := k.kb.Launching()
	time.Sleep(k.delay)
	return err
}
