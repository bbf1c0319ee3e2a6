package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/Garsondee/planetary-defense/internal/config"
	"github.com/Garsondee/planetary-defense/internal/sfx"
	"github.com/Garsondee/planetary-defense/internal/term"
	"github.com/Garsondee/planetary-defense/internal/theme"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath, logPath string
	cmd := &cobra.Command{
		Use:           "invaders-term",
		Short:         "Terminal profile page with a hidden planetary defense game",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath, logPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&logPath, "log-file", "", "write logs here instead of discarding them")
	return cmd
}

func run(ctx context.Context, configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// The screen owns stdout, so logs go to a file or nowhere.
	logger := config.NewLogger(cfg.Log, io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = config.NewLogger(cfg.Log, f)
	}

	snd := sfx.New(cfg.Audio.Enabled, cfg.Audio.SampleRate, math.Pow(2, cfg.Audio.Volume), logger)
	if m, ok := snd.(*sfx.Mixer); ok {
		defer m.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := term.New(screen, term.Options{
		Rules:      cfg.Rules.ToEngine(),
		Code:       cfg.Code,
		Theme:      theme.ID(cfg.Theme),
		Sound:      snd,
		Logger:     logger,
		CellW:      cfg.Terminal.CellWidth,
		CellH:      cfg.Terminal.CellHeight,
		FrameRate:  cfg.Terminal.FrameRate,
		HoldWindow: cfg.Terminal.HoldWindow,
	})
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
