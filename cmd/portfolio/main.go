package main

import (
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/Garsondee/planetary-defense/internal/config"
	"github.com/Garsondee/planetary-defense/internal/game"
	"github.com/Garsondee/planetary-defense/internal/sfx"
	"github.com/Garsondee/planetary-defense/internal/theme"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Profile page with a hidden planetary defense game",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	return cmd
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.Log, os.Stderr)

	snd := sfx.New(cfg.Audio.Enabled, cfg.Audio.SampleRate, math.Pow(2, cfg.Audio.Volume), logger)
	if m, ok := snd.(*sfx.Mixer); ok {
		defer m.Close()
	}

	g := game.New(game.Options{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Rules:  cfg.Rules.ToEngine(),
		Code:   cfg.Code,
		Theme:  theme.ID(cfg.Theme),
		Sound:  snd,
		Logger: logger,
	})

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	logger.Info("starting", "width", cfg.Window.Width, "height", cfg.Window.Height, "audio", cfg.Audio.Enabled)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
