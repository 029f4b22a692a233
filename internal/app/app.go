// Package app runs the figure: it wires input, animation and the scene to a
// rendering backend and drives them once per frame.
package app

import (
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/figurine/internal/animation"
	"github.com/Faultbox/figurine/internal/assets"
	"github.com/Faultbox/figurine/internal/config"
	"github.com/Faultbox/figurine/internal/engine/input"
	"github.com/Faultbox/figurine/internal/scene"
)

// Platform is the window side of the loop.
type Platform interface {
	PollEvents(q *input.Queue)
	SwapBuffers()
	SetTitle(title string)
}

// App is one running figure.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	backend scene.Backend

	queue   *input.Queue
	tracker *input.Tracker
	driver  *animation.Driver
	state   *scene.State
	paused  bool
}

// New builds the input tracker, the animation driver and a fresh scene
// from cfg. The pendulum is settled at the initial tilt so the first frame
// is already in pose.
func New(cfg *config.Config, backend scene.Backend, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	bindings, err := Bindings(cfg)
	if err != nil {
		return nil, fmt.Errorf("bindings: %w", err)
	}
	animCfg, err := AnimationConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("animation: %w", err)
	}
	driver, err := animation.NewDriver(animCfg, animation.WithLogger(log.Named("animation")))
	if err != nil {
		return nil, fmt.Errorf("animation: %w", err)
	}

	a := &App{
		cfg:     cfg,
		log:     log,
		backend: backend,
		queue:   input.NewQueue(cfg.Input.QueueSize),
		tracker: input.NewTracker(InputSettings(cfg), bindings),
		driver:  driver,
		state:   scene.NewState(SceneSetup(cfg)),
		paused:  cfg.Animation.Paused,
	}
	a.driver.Settle(a.state, a.tracker.State().Tilt)

	log.Info("figure ready",
		zap.Int("oscillators", len(animCfg.Oscillators)),
		zap.Int("bindings", len(bindings)),
		zap.Bool("perspective", a.tracker.State().Perspective),
		zap.Bool("paused", a.paused))
	return a, nil
}

// Load builds the vertex buffer from src, checks that every mesh the scene
// draws is present and uploads the buffer and texture to the backend.
func (a *App) Load(src assets.Source, texture *image.RGBA) error {
	specs, err := MeshSpecs(a.cfg)
	if err != nil {
		return err
	}
	buf, err := assets.Build(src, GridSpec(a.cfg), specs, a.log.Named("assets"))
	if err != nil {
		return fmt.Errorf("building meshes: %w", err)
	}
	if err := a.state.CheckMeshes(&buf); err != nil {
		return err
	}
	return a.backend.Upload(buf, texture)
}

// Queue is where the platform delivers events.
func (a *App) Queue() *input.Queue {
	return a.queue
}

// Input returns the current tracked input values.
func (a *App) Input() input.State {
	return a.tracker.State()
}

// Scene returns the animated scene.
func (a *App) Scene() *scene.State {
	return a.state
}

// View returns the camera view for the current input.
func (a *App) View() scene.View {
	in := a.tracker.State()
	return scene.View{
		CameraX:     in.CameraX,
		CameraY:     in.CameraY,
		CameraZ:     in.CameraZ,
		LookAngle:   in.Look,
		LightX:      in.LightX,
		Perspective: in.Perspective,
	}
}

// Step runs one frame of dt: it applies queued events, integrates held
// keys, advances the animation and draws. It reports false once a quit
// was requested; nothing is drawn on that frame.
func (a *App) Step(dt time.Duration) (bool, error) {
	a.queue.Drain(func(e input.Event) {
		if r, ok := e.(input.Resize); ok {
			a.backend.Resize(r.Width, r.Height)
			a.log.Debug("viewport resized", zap.Int("width", r.Width), zap.Int("height", r.Height))
		}
		a.tracker.Handle(e)
	})

	in := a.tracker.State()
	if in.Quit {
		return false, nil
	}

	ms := float32(dt.Seconds() * 1000)
	a.tracker.Tick(ms)
	if !a.paused {
		a.driver.Tick(a.state, ms, a.tracker.State().Tilt)
	}

	if err := a.backend.DrawFrame(a.state.Frame(a.View())); err != nil {
		return false, fmt.Errorf("render error: %w", err)
	}
	return true, nil
}

var errNoPlatform = errors.New("app: nil platform")

// Run polls p, steps and presents until quit or a draw error.
func (a *App) Run(p Platform) error {
	if p == nil {
		return errNoPlatform
	}

	var frameBudget time.Duration
	if limit := a.cfg.Graphics.FPSLimit; limit > 0 {
		frameBudget = time.Second / time.Duration(limit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	a.log.Info("starting frame loop", zap.Duration("frame_budget", frameBudget))

	for {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		p.PollEvents(a.queue)

		running, err := a.Step(dt)
		if err != nil {
			return err
		}
		if !running {
			a.log.Info("quit requested")
			return nil
		}

		p.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Uint64("dropped_events", a.queue.Dropped()))
			if a.cfg.Graphics.ShowFPS {
				p.SetTitle(fmt.Sprintf("figurine - %d fps", frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}
}

// Close releases the backend.
func (a *App) Close() {
	a.log.Info("closing")
	a.backend.Close()
}
