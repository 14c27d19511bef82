//go:build !darwin && !windows && !linux

package focus

import "errors"

func foregroundID() (string, error) {
	return "", errors.New("foreground application not supported on this platform")
}
