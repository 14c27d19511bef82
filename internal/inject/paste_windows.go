//go:build windows

package inject

import "github.com/micmonay/keybd_event"

const deviceWarmup = 0

func setShortcutModifier(kb *keybd_event.KeyBonding) {
	kb.HasCTRL(true)
}
