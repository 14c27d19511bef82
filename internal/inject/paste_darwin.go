//go:build darwin

package inject

import "github.com/micmonay/keybd_event"

const deviceWarmup = 0

// Cmd is the shortcut modifier on macOS
func setShortcutModifier(kb *keybd_event.KeyBonding) {
	kb.HasSuper(true)
}
