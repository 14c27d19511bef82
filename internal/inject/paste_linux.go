//go:build linux

package inject

import (
	"time"

	"github.com/micmonay/keybd_event"
)

// uinput devices are invisible to X/Wayland for a short while after creation
const deviceWarmup = 2 * time.Second

func setShortcutModifier(kb *keybd_event.KeyBonding) {
	kb.HasCTRL(true)
}
