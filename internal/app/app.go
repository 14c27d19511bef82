package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/petems/triplespace/internal/config"
	"github.com/petems/triplespace/internal/hotkey"
	"github.com/petems/triplespace/internal/inject"
	"github.com/petems/triplespace/internal/pairs"
	"github.com/petems/triplespace/internal/translator"
	"github.com/petems/triplespace/internal/trigger"
	"github.com/rs/zerolog"
)

// injectTimeout bounds a single read or replace of the focused field
const injectTimeout = 5 * time.Second

// Clock is the time source for every window comparison
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ContextProvider identifies the foreground application. An empty id means unknown.
type ContextProvider interface {
	ForegroundID() string
}

type noContext struct{}

func (noContext) ForegroundID() string { return "" }

type Config struct {
	Capture       inject.TextCapture
	Translator    translator.Translator
	Context       ContextProvider // Optional - unknown context when nil
	Clock         Clock           // Optional - SystemClock when nil
	Config        *config.Config
	Logger        zerolog.Logger
	StatusUpdater StatusUpdater // Optional - can be nil
	Metrics       Metrics       // Optional - can be nil
}

// Result is what handling one trigger produced
type Result struct {
	Outcome Outcome
	Output  string
	Message string
}

// App owns the pair cache and toggle state. Everything below the pulse
// channel is touched only from the Run goroutine.
type App struct {
	capture  inject.TextCapture
	tr       translator.Translator
	ctxProv  ContextProvider
	clock    Clock
	cfg      *config.Config
	log      zerolog.Logger
	status   StatusUpdater
	metrics  Metrics
	langs    translator.Languages
	required int

	pulses     chan struct{}
	busy       atomic.Bool
	monitoring atomic.Bool

	keyMu    sync.Mutex
	repeat   hotkey.RepeatFilter
	detector *trigger.Detector

	cache    *pairs.Cache
	lastPair *Pair
	applied  AppliedTracker
	windows  toggleWindows
}

func New(cfg Config) (*App, error) {
	if cfg.Capture == nil {
		return nil, errors.New("app: text capture is required")
	}
	if cfg.Translator == nil {
		return nil, errors.New("app: translator is required")
	}
	c := cfg.Config
	if c == nil {
		c = config.Default()
	}

	detector, err := trigger.New(trigger.Window{
		PressCount: c.Trigger.PressCount,
		Span:       c.Trigger.Window(),
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	a := &App{
		capture:  cfg.Capture,
		tr:       cfg.Translator,
		ctxProv:  cfg.Context,
		clock:    cfg.Clock,
		cfg:      c,
		log:      cfg.Logger,
		status:   cfg.StatusUpdater,
		metrics:  cfg.Metrics,
		langs:    translator.Languages{Source: c.Translator.SourceLanguage, Target: c.Translator.TargetLanguage},
		required: c.Trigger.PressCount,
		pulses:   make(chan struct{}, 1),
		detector: detector,
		cache:    pairs.NewCache(c.Cache.MaxEntries),
		windows: toggleWindows{
			context:   c.Toggle.ContextWindow(),
			retrigger: c.Toggle.RetriggerWindow(),
			immediate: c.Toggle.ImmediateWindow(),
		},
	}
	if a.ctxProv == nil {
		a.ctxProv = noContext{}
	}
	if a.clock == nil {
		a.clock = SystemClock{}
	}
	if a.metrics == nil {
		a.metrics = nopMetrics{}
	}
	a.monitoring.Store(c.MonitorEnabled)
	return a, nil
}

// OnKey feeds one trigger key transition from the listener goroutine
func (a *App) OnKey(ev hotkey.KeyEvent) {
	a.keyMu.Lock()
	defer a.keyMu.Unlock()

	if !a.repeat.Accept(ev) {
		return
	}
	if !a.monitoring.Load() {
		a.detector.Reset()
		return
	}
	if a.detector.RegisterPress(ev.At) {
		a.log.Debug().Int("presses", a.required).Msg("Trigger pulse")
		a.Trigger()
	}
}

// Trigger hands a pulse to the Run loop. It never blocks; the pulse is
// dropped when a trigger is already being handled.
func (a *App) Trigger() bool {
	if !a.monitoring.Load() {
		return false
	}
	if a.busy.Load() {
		a.log.Debug().Msg("Trigger dropped, translation in flight")
		a.metrics.ObserveOutcome(OutcomeDropped)
		return false
	}
	select {
	case a.pulses <- struct{}{}:
		return true
	default:
		a.metrics.ObserveOutcome(OutcomeDropped)
		return false
	}
}

// Run handles pulses one at a time until ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	a.log.Info().
		Int("press_count", a.required).
		Dur("window", a.cfg.Trigger.Window()).
		Str("source", a.langs.Source).
		Str("target", a.langs.Target).
		Msg("Orchestrator started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.pulses:
		}

		a.busy.Store(true)
		res := a.handle(ctx)
		a.drain()
		a.busy.Store(false)

		a.report(res)
	}
}

// drain discards pulses that slipped in while the last one was handled
func (a *App) drain() {
	for {
		select {
		case <-a.pulses:
			a.metrics.ObserveOutcome(OutcomeDropped)
		default:
			return
		}
	}
}

func (a *App) report(res Result) {
	a.metrics.ObserveOutcome(res.Outcome)
	a.metrics.SetCacheEntries(a.cache.Len())

	ev := a.log.Info()
	if res.Outcome.Failed() {
		ev = a.log.Warn()
	}
	ev.Str("outcome", res.Outcome.String()).Msg(res.Message)
	a.log.Debug().Str("output", res.Output).Msg("Trigger result")

	a.setStatus(res.Outcome, res.Message)
}

func (a *App) setStatus(o Outcome, msg string) {
	if a.status == nil {
		return
	}
	a.status.SetStatus(Status{Outcome: o, Message: msg, At: a.clock.Now()})
}

// handle runs the decision protocol for one pulse
func (a *App) handle(ctx context.Context) Result {
	readCtx, cancel := context.WithTimeout(ctx, injectTimeout)
	capture, err := a.capture.ReadFocused(readCtx)
	cancel()
	if err != nil {
		return Result{Outcome: OutcomeCaptureFailed, Message: fmt.Sprintf("Could not read focused text: %v", err)}
	}

	now := a.clock.Now()
	contextID := a.ctxProv.ForegroundID()

	stripped := stripTrigger(capture.Text, a.required)
	input := pairs.Normalize(stripped)

	if input == "" {
		if target, ok := a.forcedToggleTarget(input, now, contextID, true); ok {
			return a.apply(ctx, capture, "", target, now, contextID, OutcomeForcedToggle)
		}
		a.restore(ctx, capture)
		return Result{Outcome: OutcomeEmptyInput, Message: "Nothing to translate"}
	}

	if target, ok := a.pairToggleTarget(input, now, contextID); ok {
		return a.apply(ctx, capture, stripped, target, now, contextID, OutcomeToggled)
	}
	if target, ok := a.forcedToggleTarget(input, now, contextID, false); ok {
		return a.apply(ctx, capture, stripped, target, now, contextID, OutcomeForcedToggle)
	}
	if target, ok := a.cache.Lookup(input); ok {
		return a.apply(ctx, capture, stripped, target, now, contextID, OutcomeCacheHit)
	}

	dir, ok := DetectDirection(stripped)
	if !ok {
		a.restore(ctx, capture)
		return Result{Outcome: OutcomeNoScript, Message: "No recognizable content"}
	}

	_, to := a.langs.Resolve(dir)
	a.setStatus(OutcomeWorking, fmt.Sprintf("Translating to %s…", translator.Label(to)))

	output, err := a.translate(ctx, input, dir)
	if err != nil {
		a.restore(ctx, capture)
		return Result{Outcome: OutcomeTranslateFailed, Message: fmt.Sprintf("Translation failed: %v", err)}
	}
	return a.apply(ctx, capture, stripped, output, now, contextID, OutcomeTranslated)
}

func (a *App) translate(ctx context.Context, text string, dir translator.Direction) (string, error) {
	tctx, cancel := context.WithTimeout(ctx, a.cfg.Translator.Timeout())
	defer cancel()

	start := time.Now()
	out, err := a.tr.Translate(tctx, text, dir)
	a.metrics.ObserveTranslate(time.Since(start), err)
	if err != nil {
		return "", err
	}
	out = pairs.Normalize(out)
	if out == "" {
		return "", translator.ErrEmptyTranslation
	}
	return out, nil
}

// apply records the pair and writes output back. A pair is only recorded
// when there is a source side; the empty-input toggle only moves the
// applied record.
func (a *App) apply(ctx context.Context, capture inject.Capture, source, output string, now time.Time, contextID string, outcome Outcome) Result {
	if source != "" {
		a.cache.Upsert(source, output)
		a.lastPair = &Pair{Left: pairs.Normalize(source), Right: pairs.Normalize(output)}
	}

	wctx, cancel := context.WithTimeout(ctx, injectTimeout)
	err := a.capture.Replace(wctx, output)
	cancel()
	if err != nil {
		a.restore(ctx, capture)
		return Result{Outcome: OutcomeWriteBackFailed, Output: output, Message: fmt.Sprintf("Translated but could not write back: %v", err)}
	}

	a.applied.Record(output, now, contextID)
	return Result{Outcome: outcome, Output: output, Message: successMessage(outcome)}
}

// restore puts destructively captured text back; failures are only logged
func (a *App) restore(ctx context.Context, capture inject.Capture) {
	if !capture.Destructive {
		return
	}
	rctx, cancel := context.WithTimeout(ctx, injectTimeout)
	defer cancel()
	if err := a.capture.Replace(rctx, capture.Text); err != nil {
		a.log.Warn().Err(err).Msg("Could not restore original text")
	}
}

func successMessage(o Outcome) string {
	switch o {
	case OutcomeToggled, OutcomeForcedToggle:
		return "Toggled back"
	case OutcomeCacheHit:
		return "Replaced from cache"
	default:
		return "Translated"
	}
}

// SetMonitoring pauses or resumes trigger detection
func (a *App) SetMonitoring(enabled bool) error {
	a.monitoring.Store(enabled)
	a.keyMu.Lock()
	a.detector.Reset()
	a.repeat.Reset()
	a.keyMu.Unlock()

	if enabled {
		a.setStatus(OutcomeNone, "Monitoring")
	} else {
		a.setStatus(OutcomePaused, "Paused")
	}

	a.cfg.MonitorEnabled = enabled
	return a.cfg.Save()
}

func (a *App) IsMonitoring() bool {
	return a.monitoring.Load()
}

// IsBusy reports whether a trigger is being handled
func (a *App) IsBusy() bool {
	return a.busy.Load()
}

// Shutdown waits for an in-flight trigger to finish, up to ctx's deadline
func (a *App) Shutdown(ctx context.Context) error {
	a.monitoring.Store(false)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for a.busy.Load() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
