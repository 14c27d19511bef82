package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/petems/triplespace/internal/app"
	"github.com/petems/triplespace/internal/config"
	"github.com/petems/triplespace/internal/focus"
	"github.com/petems/triplespace/internal/hotkey"
	"github.com/petems/triplespace/internal/inject"
	"github.com/petems/triplespace/internal/logging"
	"github.com/petems/triplespace/internal/metrics"
	"github.com/petems/triplespace/internal/permissions"
	"github.com/petems/triplespace/internal/translator"
	"github.com/petems/triplespace/internal/tray"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

var (
	configPath string
	logLevel   string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "triplespace",
		Short: "Press space three times to translate the focused text",
		Long: `triplespace watches the space bar. Three quick presses replace the text of
the focused input with its translation; pressing again right away toggles
back to the original.

Without a subcommand the tray app is started.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: per-user config dir)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log_level from the config")

	root.AddCommand(
		newRunCmd(),
		newTranslateCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the tray app (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray()
		},
	}
}

func runTray() error {
	// Load config from XDG/Library/AppData
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger with configured level
	log := logging.NewWithLevel(cfg.LogLevel)

	// macOS requires accessibility approval before the key hook or synthesized shortcuts work
	if err := permissions.EnsurePermissions(); err != nil {
		log.Fatal().Err(err).Msg("Required permissions not granted")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr, err := translator.New(cfg.Translator)
	if err != nil {
		return fmt.Errorf("translator: %w", err)
	}

	capture, err := inject.New(cfg.Inject, log)
	if err != nil {
		return fmt.Errorf("text capture: %w", err)
	}

	recorder := metrics.New()

	// Create tray UI first (we'll pass it to app)
	trayUI := tray.New(cfg, Version, Commit, log, cancel)

	// Create app with tray as status updater
	application, err := app.New(app.Config{
		Capture:       capture,
		Translator:    tr,
		Context:       focus.New(log),
		Config:        cfg,
		Logger:        log,
		StatusUpdater: trayUI,
		Metrics:       recorder,
	})
	if err != nil {
		return err
	}

	// Set app reference in tray
	trayUI.SetApp(application)
	if !cfg.MonitorEnabled {
		trayUI.SetStatus(app.Status{Outcome: app.OutcomePaused, Message: "Paused"})
	}

	listener := hotkey.NewHookListener(log)

	workers := pool.New().WithContext(ctx).WithCancelOnError()
	workers.Go(func(ctx context.Context) error {
		return listener.Listen(ctx, application.OnKey)
	})
	workers.Go(func(ctx context.Context) error {
		if err := application.Run(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if cfg.Metrics.ListenAddr != "" {
		workers.Go(func(ctx context.Context) error {
			return recorder.Serve(ctx, cfg.Metrics.ListenAddr, log)
		})
	}

	log.Info().Str("version", Version).Str("provider", cfg.Translator.Provider).Msg("triplespace starting...")

	// Setup shutdown signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			log.Info().Msg("Shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	workersDone := make(chan error, 1)
	go func() {
		err := workers.Wait()
		// Tear down the tray if a worker failed
		cancel()
		workersDone <- err
	}()

	// Start tray UI - MUST run on main thread
	if err := trayUI.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Tray error")
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}

	return <-workersDone
}

func newTranslateCmd() *cobra.Command {
	var (
		direction string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text once with the configured provider",
		Long: `Translate text with the configured provider and print the result.
The direction is picked from the dominant script unless --direction is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			text := strings.TrimSpace(strings.Join(args, " "))
			dir, err := parseDirection(direction, text)
			if err != nil {
				return err
			}

			tr, err := translator.New(cfg.Translator)
			if err != nil {
				return err
			}

			if timeout <= 0 {
				timeout = cfg.Translator.Timeout()
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			out, err := tr.Translate(ctx, text, dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&direction, "direction", "auto", "auto, to-target or to-source")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Request timeout (0 = translator.timeout_ms)")
	return cmd
}

func parseDirection(flag, text string) (translator.Direction, error) {
	switch strings.ToLower(flag) {
	case "", "auto":
		dir, ok := app.DetectDirection(text)
		if !ok {
			return 0, errors.New("no Chinese or English text to translate")
		}
		return dir, nil
	case translator.ToTarget.String():
		return translator.ToTarget, nil
	case translator.ToSource.String():
		return translator.ToSource, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", flag)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "triplespace version %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:    %s\n", Commit)
		},
	}
}
