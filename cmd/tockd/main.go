package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tockworks/go-tock/internal/config"
	"github.com/tockworks/go-tock/internal/log"
	"github.com/tockworks/go-tock/pkg/actuator"
	"github.com/tockworks/go-tock/pkg/audioio"
	"github.com/tockworks/go-tock/pkg/clips"
	"github.com/tockworks/go-tock/pkg/clock"
	"github.com/tockworks/go-tock/pkg/device"
	"github.com/tockworks/go-tock/pkg/eye"
	"github.com/tockworks/go-tock/pkg/input"
	"github.com/tockworks/go-tock/pkg/mouth"
	"github.com/tockworks/go-tock/pkg/phrase"
	"github.com/tockworks/go-tock/pkg/playback"
	"github.com/tockworks/go-tock/pkg/web"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (defaults apply if empty)")
	clipDir := flag.String("clips", "", "Clip directory (overrides config)")
	flag.Parse()

	// Local overrides for development; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("config invalid", "err", err)
		os.Exit(1)
	}
	if *clipDir != "" {
		cfg.Clips.Dir = *clipDir
	}

	log.Init(cfg.LogLevel, cfg.Environment)
	logger := log.L()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		cancel()
	}()

	// Startup health checks. No clock or no clips means no correct
	// announcements are possible; halt loudly instead of speaking wrong.
	clk := clock.NewSystemSource()
	if _, err := clk.Now(); err != nil && !errors.Is(err, clock.ErrNotSet) {
		logger.Error("clock unavailable", "err", err)
		os.Exit(1)
	}

	store := clips.NewDirStore(cfg.Clips.Dir)
	if err := store.Ping(); err != nil {
		logger.Error("clip store unavailable", "dir", cfg.Clips.Dir, "err", err)
		os.Exit(1)
	}
	probeClips(store, logger)

	mouthAct, eyeAct := buildActuators(cfg, logger)

	sink, err := audioio.New(cfg.Audio.ToAudioIO(), logger.With("component", "audioio"))
	if err != nil {
		logger.Error("audio output unavailable", "err", err)
		os.Exit(1)
	}
	defer sink.Close()
	if err := sink.Start(ctx); err != nil {
		logger.Error("audio output start failed", "err", err)
		os.Exit(1)
	}

	mouthDrv := mouth.NewDriver(mouthAct, cfg.Mouth)
	engine := playback.NewEngine(store, sink, mouthDrv, logger.With("component", "playback"))
	blinker := eye.NewBlinker(eyeAct, cfg.Eye.ToEye())

	devCfg, err := cfg.ToDevice()
	if err != nil {
		logger.Error("config invalid", "err", err)
		os.Exit(1)
	}

	// On a dev host, Enter stands in for the hardware button.
	button := input.NewLineButton(os.Stdin, 50*time.Millisecond)

	dev := device.New(devCfg, clk, engine, blinker, button, logger.With("component", "device"))

	if cfg.Web.Enabled {
		srv := web.NewServer(cfg.Web.Addr(), dev, logger.With("component", "web"))
		go func() {
			if err := srv.Run(ctx); err != nil {
				logger.Error("diagnostics endpoint failed", "err", err)
			}
		}()
	}

	if err := dev.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("device loop ended", "err", err)
		os.Exit(1)
	}
}

// probeClips warns about vocabulary clips missing from the store before the
// first press. A missing clip is recoverable at play time, but the operator
// wants to know now.
func probeClips(store clips.Store, logger *slog.Logger) {
	for _, id := range phrase.Vocabulary() {
		rc, err := store.Open(id)
		if err != nil {
			logger.Warn("vocabulary clip missing", "clip", id, "err", err)
			continue
		}
		rc.Close()
	}
}

func buildActuators(cfg config.Config, logger *slog.Logger) (actuator.Brightness, actuator.Digital) {
	if cfg.Leds.Backend == "httpd" {
		ledLog := logger.With("component", "leds")
		return actuator.NewHTTPActuator(cfg.Leds.DaemonURL, cfg.Leds.MouthChannel, ledLog),
			actuator.NewHTTPActuator(cfg.Leds.DaemonURL, cfg.Leds.EyeChannel, ledLog)
	}

	// Mock backend: surface LED activity in the debug log instead.
	return actuator.BrightnessFunc(func(level uint8) {
			logger.Debug("mouth led", "brightness", level)
		}), actuator.DigitalFunc(func(on bool) {
			logger.Debug("eye led", "on", on)
		})
}
