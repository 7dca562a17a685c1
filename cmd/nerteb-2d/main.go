package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/nerteb-2d/audio"
	"github.com/lixenwraith/nerteb-2d/config"
	"github.com/lixenwraith/nerteb-2d/driver/terminal"
	"github.com/lixenwraith/nerteb-2d/driver/window"
	"github.com/lixenwraith/nerteb-2d/game"
	"github.com/lixenwraith/nerteb-2d/logging"
)

const debugLogFile = "logs/nerteb.log"

var (
	configFlag  = flag.String("config", "", "Path to YAML config file")
	backendFlag = flag.String("backend", "", "Override backend: window, terminal")
	debugFlag   = flag.Bool("debug", false, "Debug logging to "+debugLogFile+" unless a log file is configured")
)

func main() {
	// Panic Recovery: leave the terminal usable if the terminal backend crashes mid-frame
	defer func() {
		if r := recover(); r != nil {
			emergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mNERTEB-2D CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "nerteb-2d: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *backendFlag != "" {
		cfg.Backend = *backendFlag
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if *debugFlag {
		cfg.Log.Level = "debug"
		if cfg.Log.File == "" {
			cfg.Log.File = debugLogFile
		}
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer func() { _ = closeLog() }()
	logger.Info("starting", zap.String("backend", cfg.Backend), zap.Int("tps", cfg.Timing.TPS))

	sound := audio.NewSoundManager(cfg.Audio, logger.Named("audio"))
	if err := sound.Initialize(); err != nil {
		// Non-fatal, the game runs without sound
		logger.Warn("audio initialization failed", zap.Error(err))
	}
	defer sound.Cleanup()

	state, err := game.New(cfg, sound, logger.Named("game"))
	if err != nil {
		return err
	}

	switch cfg.Backend {
	case config.BackendTerminal:
		err = runTerminal(cfg, state, logger.Named("terminal"))
	default:
		err = window.Run(state, window.Options{
			Title:      cfg.Window.Title,
			Width:      cfg.Window.Width,
			Height:     cfg.Window.Height,
			TPS:        cfg.Timing.TPS,
			MaxCatchUp: cfg.Timing.MaxCatchUp,
		}, logger.Named("window"))
	}
	if err != nil {
		logger.Error("game loop failed", zap.Error(err))
		return err
	}
	logger.Info("exited", zap.Int("ticks", state.Ticks()))
	return nil
}

func runTerminal(cfg *config.Config, state *game.State, logger *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()

	d, err := terminal.New(screen, terminal.Options{
		Title:      cfg.Window.Title,
		WorldW:     float64(cfg.Window.Width),
		WorldH:     float64(cfg.Window.Height),
		TPS:        cfg.Timing.TPS,
		FrameRate:  cfg.Timing.FrameRate,
		MaxCatchUp: cfg.Timing.MaxCatchUp,
		ShowStatus: true,
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return d.Run(ctx, state)
}

// emergencyReset restores attributes, cursor, mouse reporting and the main screen buffer
func emergencyReset(w io.Writer) {
	_, _ = io.WriteString(w, "\x1b[0m\x1b[?25h\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l\x1b[?1049l\r\n")
}
