package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"torus-snake/audio"
	"torus-snake/config"
	"torus-snake/game"
	"torus-snake/game/manager"
	"torus-snake/game/types"
	"torus-snake/metrics"
	"torus-snake/spectate"
	"torus-snake/ui"
	"torus-snake/ui/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "snake:", err)
		if errors.Is(err, config.ErrInvalid) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	speed := flag.Float64("speed", config.Default().Snake.Speed, "Initial snake speed in cells per tick")
	frontend := flag.String("frontend", config.Default().Frontend, "raylib or terminal")
	fps := flag.Int("fps", config.Default().FPS, "Target frames per second")
	spectateAddr := flag.String("spectate", "", "Loopback address for the spectator and metrics server, e.g. 127.0.0.1:8089")
	seed := flag.Uint64("seed", 0, "Food placement seed (0 picks one from the clock)")
	mute := flag.Bool("mute", false, "Disable sound effects")
	maxFrames := flag.Uint64("frames", 0, "Stop after this many frames (0 runs until quit)")
	logFile := flag.String("log", "", "Write logs to this file instead of stderr")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags given explicitly win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "speed":
			cfg.Snake.Speed = *speed
		case "frontend":
			cfg.Frontend = *frontend
		case "fps":
			cfg.FPS = *fps
		case "spectate":
			cfg.Spectate.Addr = *spectateAddr
		case "seed":
			cfg.Seed = *seed
		case "mute":
			cfg.Audio.Enabled = !*mute
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, *logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	grid := types.NewGrid(cfg.Grid.Width, cfg.Grid.Height)
	state := manager.NewStateManager(grid, manager.Settings{
		Speed:          cfg.Snake.Speed,
		SpeedIncrement: cfg.Snake.SpeedIncrement,
		AllowReversal:  cfg.Snake.AllowReversal,
		StartDirection: cfg.Snake.StartDirection,
		Walls:          cfg.WallPoints(),
		Seed:           cfg.Seed,
	})

	fe, closeFrontend, err := openFrontend(cfg, grid, logger)
	if err != nil {
		return err
	}
	defer closeFrontend()

	recorder := metrics.NewRecorder()
	observers := []game.Observer{recorder}

	if cfg.Audio.Enabled {
		if player := audio.Open(cfg.Audio.Volume, logger); player != nil {
			defer player.Close()
			observers = append(observers, player)
		}
	}

	if cfg.Spectate.Addr != "" {
		srv := spectate.NewServer(recorder.Handler(), logger)
		if err := srv.Start(cfg.Spectate.Addr); err != nil {
			logger.Error("spectator server disabled", "err", err)
		} else {
			observers = append(observers, srv)
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = srv.Shutdown(ctx)
			}()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := game.NewGame(state, fe, game.Options{
		FPS:       cfg.FPS,
		MaxFrames: *maxFrames,
		Logger:    logger,
		Observers: observers,
	})
	if err := g.Run(ctx); err != nil {
		return err
	}
	logger.Info("game over", "score", state.GetScore(), "high_score", state.GetHighScore())
	return nil
}

// newLogger writes text logs to stderr, or to path when given. The terminal
// frontend owns the tty, so without a path its logs are discarded.
func newLogger(cfg config.Config, path string) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case cfg.Frontend == config.FrontendTerminal:
		w = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

func openFrontend(cfg config.Config, grid types.Grid, logger *slog.Logger) (game.Frontend, func(), error) {
	switch cfg.Frontend {
	case config.FrontendTerminal:
		s, err := term.Open(grid)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		w, err := ui.NewWindow(cfg.Screen.Width, cfg.Screen.Height, grid, cfg.Sprites, logger)
		if err != nil {
			return nil, nil, err
		}
		return w, w.Close, nil
	}
}
