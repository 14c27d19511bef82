// Package focus identifies the foreground application so a toggle only
// applies in the window that received the last replacement.
package focus

import (
	"strings"

	"github.com/rs/zerolog"
)

// Foreground reports the identifier of the frontmost application: a bundle
// id on macOS, an executable name on Windows, a window class on X11.
type Foreground struct {
	log   zerolog.Logger
	query func() (string, error)
}

func New(log zerolog.Logger) *Foreground {
	return &Foreground{log: log, query: foregroundID}
}

// ForegroundID returns "" when the application cannot be determined
func (f *Foreground) ForegroundID() string {
	id, err := f.query()
	if err != nil {
		f.log.Debug().Err(err).Msg("Foreground application unknown")
		return ""
	}
	return cleanID(id)
}

func cleanID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
