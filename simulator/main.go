package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/rook-computer/imageclock/internal/app"
	"github.com/rook-computer/imageclock/internal/config"
	"github.com/rook-computer/imageclock/internal/input"
	"github.com/rook-computer/imageclock/internal/render"
	"github.com/rook-computer/imageclock/internal/state"
	"github.com/rook-computer/imageclock/internal/web"
)

func main() {
	defaults, err := web.ServerConfigFromEnv(web.ServerConfig{ListenAddr: ":8080"})
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	configPath := flag.String("config", config.DefaultPath, "config file (JSON or YAML)")
	imagesDir := flag.String("images", "images", "directory holding one sub-directory per theme")
	fakeReadouts := flag.Bool("fake-readouts", true, "point unset temperature/weather URLs at the simulator's fake endpoints")
	temperature := flag.Float64("temperature", 68, "initial fake temperature in °F")
	condition := flag.String("condition", "", "initial fake weather condition")
	debug := flag.Bool("debug", false, "log to stdout")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		logger = app.NewFileLogger(os.Stdout)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	control := NewSimControl(SimReadouts{Temperature: *temperature, Condition: *condition})

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode}, web.APIV1Deps{Status: store})
	server.Handler = web.NewDefaultMux(web.APIV1Config{Deps: web.APIV1Deps{Status: store}})
	registerSimEndpoints(server.Handler, control)
	if *devMode {
		server.Handler = web.WithDevCORS(server.Handler)
	}
	server.Logger = logger
	if err := server.Start(processCtx); err != nil {
		fmt.Println("server start error:", err)
		os.Exit(1)
	}
	base := "http://" + hostPort(server.ListenAddr())

	if *fakeReadouts {
		if cfg.TemperatureURL == "" {
			cfg.TemperatureURL = base + "/sim/temperature"
		}
		if cfg.WeatherURL == "" {
			cfg.WeatherURL = base + "/sim/weather"
		}
	}

	clock, err := app.NewClock(cfg, app.ClockDeps{
		Images: os.DirFS(*imagesDir),
		Store:  store,
		Logger: logger,
		Start:  time.Now(),
	})
	if err != nil {
		fmt.Printf("theme %q under %s: %v\n", cfg.Theme, *imagesDir, err)
		os.Exit(1)
	}

	presenter := &render.SnapshotPresenter{}
	events := input.NewChanSource(32)
	a := app.New(store, clock, presenter, events, server)
	a.Logger = logger
	a.Interval = cfg.FrameInterval()

	appCtx, cancel := context.WithCancel(processCtx)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.Run(appCtx) }()

	fmt.Println("Image clock simulator, theme:", cfg.Theme)
	fmt.Println("API:", base+"/api/v1/status")
	fmt.Println("Faults:", base+"/sim/faults")

	ebiten.SetWindowSize(render.CanvasWidth/2, render.CanvasHeight/2)
	ebiten.SetWindowTitle("Image Clock – theme: " + cfg.Theme)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(cfg.FPS))

	win := newWindow(presenter, events, done)
	if err := ebiten.RunGame(win); err != nil {
		fmt.Println("window error:", err)
	}

	// Window closed: stop the clock if it is still running.
	cancel()
	err = win.err
	if err == nil {
		select {
		case err = <-done:
		case <-time.After(5 * time.Second):
		}
	}
	if err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}

func hostPort(addr string) string {
	// Best-effort for display; don't attempt full URL parsing here.
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if len(addr) > 8 && addr[:8] == "0.0.0.0:" {
		return "127.0.0.1" + addr[7:]
	}
	if len(addr) > 5 && addr[:5] == "[::]:" {
		return "127.0.0.1" + addr[4:]
	}
	if addr == "" {
		return "127.0.0.1:8080"
	}
	// If it's already a host:port, keep it.
	return addr
}
