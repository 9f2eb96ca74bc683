package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"ghostgame/pkg/engine/capability"
	"ghostgame/pkg/engine/input"
	"ghostgame/pkg/engine/logger"
	"ghostgame/pkg/engine/terminal"
	"ghostgame/pkg/game/config"
	"ghostgame/pkg/game/gameplay"
	"ghostgame/pkg/game/locale"
	"ghostgame/pkg/game/renderer"
	"ghostgame/pkg/game/renderer/ebiten"
	"ghostgame/pkg/game/renderer/tui"
	"ghostgame/pkg/game/setup"
	"ghostgame/pkg/game/state"
)

// NewPlayCmd creates the play subcommand.
func NewPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a level",
		Long: `Play a level in the terminal or in a window. Without --level the
built-in garden is played. Settings come from the config file and
are overridden by flags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runPlay(cmd.Context(), cmd, cfg)
		},
	}
	config.Flags(cmd.Flags())
	return cmd
}

func runPlay(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	out, closeLog, err := logOutput(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log := logger.Setup(logger.Options{Level: level, Format: cfg.Log.Format, Output: out})

	if _, err := locale.Load(cfg.Locale); err != nil {
		return err
	}
	applyBindings(cfg)

	def, err := loadLevel(cfg.Level)
	if err != nil {
		return err
	}
	mode, err := capability.ParseMode(cfg.Inventory.Mode)
	if err != nil {
		return err
	}

	g := state.NewGame(mode, log)
	if err := gameplay.StartLevel(g, def); err != nil {
		return err
	}

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}
	renderer.SetRenderer(r)
	renderer.Init()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("session started", "renderer", cfg.Renderer, "level", def.Title(), "mode", mode.String())
	if err := r.Run(ctx, g); err != nil {
		logger.LogError(log, "renderer stopped", err)
		return err
	}

	if g.Finished {
		cmd.Println(renderer.StripMarkup(locale.Getf("GOAL_REACHED", g.Stopwatch.String())))
	}
	cmd.Println(renderer.StripMarkup(locale.Get("GOODBYE")))
	return nil
}

func applyBindings(cfg *config.Config) {
	for action, code := range cfg.KeyBindings() {
		input.SetSingleBinding(action, code)
	}
}

// logOutput picks where logs go. The terminal frontend owns the screen, so
// without a log file its logs are discarded.
func logOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, oops.Code("LOG_FILE_OPEN_FAILED").With("path", cfg.Log.File).Wrapf(err, "open log file")
		}
		return f, func() { _ = f.Close() }, nil
	}
	if cfg.Renderer == config.RendererTUI {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

// loadLevel reads the level at path, or the built-in level when path is empty.
func loadLevel(path string) (*setup.Level, error) {
	if path == "" {
		return setup.DefaultLevel()
	}
	return setup.LoadLevel(path)
}

func newRenderer(cfg *config.Config) (renderer.Renderer, error) {
	switch cfg.Renderer {
	case config.RendererEbiten:
		return ebiten.New(cfg.Tick.RateHz), nil
	default:
		if !terminal.IsInteractive() {
			return nil, oops.Code("NOT_A_TERMINAL").
				Hint("run in a terminal or pass --renderer ebiten").
				Errorf("the terminal renderer needs an interactive terminal")
		}
		return tui.New(cfg.Tick.RateHz), nil
	}
}
