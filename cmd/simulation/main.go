package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"robot-sim/internal/config"
	"robot-sim/internal/observability/log"
	"robot-sim/internal/simulation"
	"robot-sim/internal/visualization"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "simulation.yaml", "path to the YAML config")
	headless := flag.Bool("headless", false, "run without a window")
	ticks := flag.Int("ticks", 0, "headless: number of ticks to run, 0 runs until interrupted")
	record := flag.Bool("record", false, "record every tick to the frame log")
	load := flag.String("load", "", "load a saved room before starting")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	world, err := cfg.NewWorld(simulation.WithLogger(logger))
	if err != nil {
		logger.Fatal("create world", zap.Error(err))
	}
	if err := cfg.Build(world); err != nil {
		logger.Warn("scenario partially placed", zap.Error(err))
	}

	driver := simulation.NewDriver(world, logger)
	if *load != "" {
		driver.Submit(simulation.LoadState{Path: *load})
	}
	if *record {
		driver.Submit(simulation.StartRecording{})
	}
	defer func() {
		if err := driver.StopRecording(); err != nil {
			logger.Error("seal frame log", zap.Error(err))
		}
	}()

	logger.Info("room ready",
		zap.String("room", world.ID()),
		zap.Float64("width", world.Width()),
		zap.Float64("height", world.Height()),
		zap.Int("robots", len(world.Robots())),
		zap.Int("obstacles", len(world.Obstacles())))

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		runHeadless(ctx, driver, cfg.TickRate, *ticks)
		fmt.Println(simulation.Summarize(world))
		return
	}

	renderer := visualization.NewRenderer(driver, cfg.Defaults, logger)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.TickRate)
	if err := ebiten.RunGame(renderer); err != nil {
		logger.Error("window closed", zap.Error(err))
	}
}

// runHeadless steps the room without input. A positive count runs that many
// ticks back to back; otherwise ticks are paced at tickRate until ctx is done.
func runHeadless(ctx context.Context, driver *simulation.Driver, tickRate, count int) {
	if count > 0 {
		for i := 0; i < count && ctx.Err() == nil; i++ {
			driver.Tick(simulation.Input{})
		}
		return
	}

	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			driver.Tick(simulation.Input{})
		}
	}
}
