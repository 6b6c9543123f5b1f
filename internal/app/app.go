package app

import (
	"context"
	"errors"
	"time"

	"github.com/rook-computer/imageclock/internal/input"
	"github.com/rook-computer/imageclock/internal/render"
	"github.com/rook-computer/imageclock/internal/state"
	"github.com/rook-computer/imageclock/internal/system"
	"github.com/rook-computer/imageclock/internal/web"
)

// ErrQuit is returned by Run when the user asked to exit.
var ErrQuit = errors.New("quit requested")

type App struct {
	Store     *state.Store
	Clock     *Clock
	Canvas    *render.Canvas
	Presenter render.Presenter
	Input     input.Source
	Web       web.Server
	// Console is nil when the app does not own a VT (simulator, tests).
	Console  *system.Console
	Logger   Logger
	Interval time.Duration
	Now      func() time.Time
}

func New(store *state.Store, clock *Clock, presenter render.Presenter, src input.Source, webServer web.Server) *App {
	if src == nil {
		src = input.NewNoopSource()
	}
	if presenter == nil {
		presenter = render.NoopPresenter{}
	}
	if webServer == nil {
		webServer = web.Disabled{}
	}
	return &App{
		Store:     store,
		Clock:     clock,
		Canvas:    render.NewCanvas(render.CanvasSize(), clock.Text),
		Presenter: presenter,
		Input:     src,
		Web:       webServer,
		Logger:    NoopLogger{},
		Interval:  time.Second / 30,
		Now:       time.Now,
	}
}

// Run draws frames at Interval until ctx is done or a quit event arrives.
// A quit returns ErrQuit; cancellation returns nil.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.Console != nil {
		app.Console.Enter()
		defer app.Console.Restore()
	}
	if err := app.Input.Start(ctx); err != nil {
		app.Logger.Errorf("app", "input start error: %v", err)
		app.Store.Fail(err)
		return err
	}
	defer func() { _ = app.Input.Stop() }()

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("app", "web start error: %v", err)
		} else {
			defer func() { _ = app.Web.Stop() }()
		}
	}
	defer func() {
		if err := app.Presenter.Close(); err != nil {
			app.Logger.Errorf("app", "presenter close: %v", err)
		}
	}()

	app.Store.Start(app.Clock.Theme.Name, app.Now())
	app.Logger.Infof("app", "running theme %s at %s per frame", app.Clock.Theme.Name, app.Interval)

	err := app.loop(ctx)

	// Abandon in-flight fetches before waiting for their goroutines.
	cancel()
	app.Clock.Wait()
	app.Store.SetPhase(state.STOPPED)
	return err
}

func (app *App) loop(ctx context.Context) error {
	if app.Step(ctx) {
		return ErrQuit
	}
	ticker := time.NewTicker(app.Interval)
	defer ticker.Stop()
	lastLog := app.Now()
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if app.Step(ctx) {
				app.Logger.Infof("app", "quit requested")
				return ErrQuit
			}
			frames++
			if now := app.Now(); now.Sub(lastLog) > time.Minute {
				app.Logger.Infof("app", "heartbeat, %d frames", frames)
				lastLog = now
				frames = 0
			}
		}
	}
}

// Step renders and presents one frame. It reports whether quit was requested.
func (app *App) Step(ctx context.Context) bool {
	events := input.Drain(app.Input.Events())
	ops, quit := app.Clock.Frame(ctx, app.Now(), events)
	app.Canvas.Execute(ops)
	// A failed present keeps the loop running; the store reports ERROR until a
	// frame gets through again.
	if err := app.Presenter.Present(app.Canvas.Image()); err != nil {
		app.Logger.Errorf("app", "present: %v", err)
		app.Store.Fail(err)
	} else {
		app.Store.Recover()
	}
	return quit
}
