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

	"github.com/rook-computer/imageclock/internal/app"
	"github.com/rook-computer/imageclock/internal/config"
	"github.com/rook-computer/imageclock/internal/input"
	"github.com/rook-computer/imageclock/internal/render"
	"github.com/rook-computer/imageclock/internal/state"
	"github.com/rook-computer/imageclock/internal/system"
	"github.com/rook-computer/imageclock/internal/web"
)

func main() {
	os.Exit(run())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type options struct {
	ConfigPath string
	ImagesDir  string
	Debug      bool
	StdioLog   string
	FBPath     string
	Server     web.ServerConfig
}

// parseOptions reads flags with their environment fallbacks. The listen address is
// validated here so a bad value fails before any device is opened.
func parseOptions(args []string) (options, error) {
	serverCfg, err := web.ServerConfigFromEnv(web.ServerConfig{})
	if err != nil {
		return options{}, err
	}

	var opts options
	flags := flag.NewFlagSet("imageclock", flag.ContinueOnError)
	flags.StringVar(&opts.ConfigPath, "config", envOr("IMAGECLOCK_CONFIG", config.DefaultPath), "config file (JSON or YAML); a missing file means defaults")
	flags.StringVar(&opts.ImagesDir, "images", envOr("IMAGECLOCK_IMAGES", "images"), "directory holding one sub-directory per theme")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging to ./imageclock-debug.log")
	flags.StringVar(&opts.StdioLog, "stdio-log", os.Getenv("IMAGECLOCK_STDIO_LOG"), "redirect stdout+stderr (including panics) to this file; also configurable via IMAGECLOCK_STDIO_LOG")
	flags.StringVar(&serverCfg.ListenAddr, "listen", serverCfg.ListenAddr, "serve the status API on this address (empty disables); also configurable via "+web.EnvListenAddr)
	flags.StringVar(&opts.FBPath, "fb", render.DefaultFramebuffer, "framebuffer device")
	if err := flags.Parse(args); err != nil {
		return options{}, err
	}

	if err := serverCfg.Validate(); err != nil {
		return options{}, err
	}
	opts.Server = serverCfg
	return opts, nil
}

func run() int {
	opts, err := parseOptions(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Println("options error:", err)
		return 2
	}

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	if opts.StdioLog != "" {
		if err := redirectStdIO(opts.StdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if opts.Debug {
		f, err := os.OpenFile("./imageclock-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Println("config error:", err)
		return 2
	}

	store := state.NewStore()
	clock, err := app.NewClock(cfg, app.ClockDeps{
		Images: os.DirFS(opts.ImagesDir),
		Store:  store,
		Logger: logger,
		Start:  time.Now(),
	})
	if err != nil {
		fmt.Printf("theme %q under %s: %v\n", cfg.Theme, opts.ImagesDir, err)
		return 1
	}

	presenter, err := render.OpenFramebuffer(opts.FBPath, logger)
	if err != nil {
		fmt.Println("framebuffer error:", err)
		return 1
	}

	server := web.NewServer(opts.Server, web.APIV1Deps{Status: store}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(store, clock, presenter, input.NewEvdevSource(render.CanvasSize(), logger), server)
	a.Logger = logger
	a.Console = system.NewConsole(logger)
	a.Interval = cfg.FrameInterval()

	if err := a.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Println("app error:", err)
		return 1
	}
	return 0
}
