//go:build linux

package focus

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

const xdotoolTimeout = 500 * time.Millisecond

// foregroundID asks xdotool for the active window class. Wayland sessions
// without XWayland focus report an error and toggles fall back to "unknown".
func foregroundID() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), xdotoolTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "xdotool", "getactivewindow", "getwindowclassname").Output()
	if err != nil {
		return "", fmt.Errorf("xdotool: %w", err)
	}
	return string(out), nil
}
