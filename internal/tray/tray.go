package tray

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"github.com/getlantern/systray"
	"github.com/petems/triplespace/internal/app"
	"github.com/petems/triplespace/internal/config"
	"github.com/petems/triplespace/internal/logging"
	"github.com/rs/zerolog"
)

type UI struct {
	app     *app.App
	cfg     *config.Config
	version string
	commit  string
	log     zerolog.Logger
	onQuit  func()

	mu      sync.Mutex
	ready   bool
	current app.Status

	// Menu items
	mStatus *systray.MenuItem
	mPause  *systray.MenuItem
}

func New(cfg *config.Config, version, commit string, log zerolog.Logger, onQuit func()) *UI {
	return &UI{
		cfg:     cfg,
		version: version,
		commit:  commit,
		log:     log,
		onQuit:  onQuit,
	}
}

// SetApp sets the app reference (for circular dependency resolution)
func (u *UI) SetApp(application *app.App) {
	u.app = application
}

// SetStatus is called by the app after each step of a trigger
func (u *UI) SetStatus(s app.Status) {
	u.mu.Lock()
	u.current = s
	ready := u.ready
	u.mu.Unlock()

	if ready {
		u.render(s)
	}
}

// Run blocks on the tray event loop until Quit is chosen or ctx is done
func (u *UI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()
	systray.Run(u.onReady, u.onExit)
	return nil
}

func (u *UI) onReady() {
	systray.SetTooltip("Press space three times to translate the focused text")

	// Build menu
	u.mStatus = systray.AddMenuItem("Ready", "Last result")
	u.mStatus.Disable()
	systray.AddSeparator()

	u.mPause = systray.AddMenuItemCheckbox("Pause monitoring", "Ignore the space bar", !u.cfg.MonitorEnabled)

	systray.AddSeparator()
	mLogs := systray.AddMenuItem("Open Logs", "View application logs")
	mAbout := systray.AddMenuItem("About", "About triplespace")
	mQuit := systray.AddMenuItem("Quit", "Exit application")

	u.mu.Lock()
	u.ready = true
	current := u.current
	u.mu.Unlock()
	u.render(current)

	// Event loop
	go u.handleEvents(mLogs, mAbout, mQuit)
}

func (u *UI) handleEvents(mLogs, mAbout, mQuit *systray.MenuItem) {
	for {
		select {
		case <-u.mPause.ClickedCh:
			u.togglePause()
		case <-mLogs.ClickedCh:
			u.openLogs()
		case <-mAbout.ClickedCh:
			u.showAbout()
		case <-mQuit.ClickedCh:
			systray.Quit()
			return
		}
	}
}

func (u *UI) togglePause() {
	if u.app == nil {
		return
	}
	enable := !u.app.IsMonitoring()
	if err := u.app.SetMonitoring(enable); err != nil {
		u.log.Error().Err(err).Msg("Failed to save config")
	}
	if enable {
		u.mPause.Uncheck()
		u.log.Info().Msg("Monitoring resumed")
	} else {
		u.mPause.Check()
		u.log.Info().Msg("Monitoring paused")
	}
}

func (u *UI) openLogs() {
	name, args := openCommand(logging.Path())
	if err := exec.Command(name, args...).Start(); err != nil {
		u.log.Error().Err(err).Msg("Failed to open logs")
	}
}

func (u *UI) showAbout() {
	fmt.Printf("triplespace %s (%s)\nTriple space to translate\n", u.version, u.commit)
	u.log.Info().Str("version", u.version).Str("commit", u.commit).Msg("About")
}

func (u *UI) onExit() {
	if u.onQuit != nil {
		u.onQuit()
	}
}

func (u *UI) render(s app.Status) {
	systray.SetTitle(titleFor(s.Outcome))
	if u.mStatus != nil {
		u.mStatus.SetTitle(statusLine(s))
	}
}

// titleFor sets the tray title with the status indicator
func titleFor(o app.Outcome) string {
	return fmt.Sprintf("␣ %s", emojiForOutcome(o))
}

// emojiForOutcome returns the appropriate status emoji
func emojiForOutcome(o app.Outcome) string {
	switch {
	case o == app.OutcomeWorking:
		return "🟡" // Yellow - translation in flight
	case o == app.OutcomePaused:
		return "⏸"
	case o == app.OutcomeWriteBackFailed:
		return "🟠" // Orange - computed but not applied
	case o.Failed():
		return "🔴"
	default:
		return "🟢" // Green - ready
	}
}

func statusLine(s app.Status) string {
	if s.Message == "" {
		return "Ready"
	}
	if s.At.IsZero() {
		return s.Message
	}
	return fmt.Sprintf("%s (%s)", s.Message, s.At.Format("15:04:05"))
}

func openCommand(path string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "explorer", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}
