// Package app wires the interactive viewer together: window, input, render
// pipeline, controller and cube map hot reload.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/config"
	"github.com/Faultbox/cubeview/internal/engine/input"
	"github.com/Faultbox/cubeview/internal/engine/window"
	"github.com/Faultbox/cubeview/internal/imageio"
	"github.com/Faultbox/cubeview/internal/logger"
	"github.com/Faultbox/cubeview/internal/render"
	"github.com/Faultbox/cubeview/internal/viewer"
)

// idleWait bounds how long the loop waits for a frame before polling input
// again.
const idleWait = 10 * time.Millisecond

// App is the interactive viewer.
type App struct {
	cfg         *config.Config
	log         *zap.Logger
	running     bool
	window      *window.Window
	input       *input.Input
	renderer    *render.Renderer
	controller  *viewer.Controller
	watcher     *viewer.Watcher
	screenshots *imageio.ScreenshotCapture

	frames     chan *render.Frame
	latest     *render.Frame
	pendingDir chan string
}

// New loads the cube map, opens the window and prepares the renderer.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:        cfg,
		log:        logger.Named("app"),
		input:      input.New(),
		frames:     make(chan *render.Frame, 2),
		pendingDir: make(chan string, 1),
	}

	params, err := viewer.ParamsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("view settings: %w", err)
	}
	format, err := imageio.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf("screenshot format: %w", err)
	}
	a.screenshots = imageio.NewScreenshotCapture(cfg.Output.ScreenshotDir, "cubeview", format)

	cm, err := viewer.LoadCubemap(cfg.Cubemap)
	if err != nil {
		return nil, fmt.Errorf("loading cube map: %w", err)
	}
	a.log.Info("cube map loaded", zap.String("name", cm.Name()), zap.Int("size", cm.Size()))

	a.window, err = window.New(window.Config{
		Title:  "cubeview - " + cm.Name(),
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		VSync:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer = render.New(render.Options{
		Workers:   cfg.Render.Workers,
		LUTSize:   cfg.Render.LUTSize,
		Publisher: render.PublisherFunc(a.publish),
		Logger:    logger.Named("render"),
	})

	params.Width, params.Height = a.window.GetSize()
	params.Cubemap = cm
	if err := viewer.Apply(a.renderer.Stage(), params); err != nil {
		a.Close()
		return nil, fmt.Errorf("applying view settings: %w", err)
	}

	a.controller = viewer.NewController(a.renderer.Stage(), viewer.ControllerOptions{
		InvertMouse: cfg.Viewer.InvertMouse,
		Logger:      logger.Named("controller"),
	})

	if cfg.Cubemap.Watch && !cfg.Cubemap.Calibration {
		a.watcher, err = viewer.NewWatcher(cfg.Cubemap.Dir, cfg.Cubemap.WatchDebounce,
			a.renderer.Stage().SetCubemap, logger.Named("watch"))
		if err != nil {
			a.log.Warn("hot reload disabled", zap.Error(err))
			a.watcher = nil
		}
	}

	a.log.Info("viewer initialized")
	return a, nil
}

// publish runs on the render goroutine. When the main loop falls behind
// the frame is dropped.
func (a *App) publish(f *render.Frame) {
	select {
	case a.frames <- f:
	default:
		a.renderer.Recycle(f)
	}
}

// Run processes input and presents frames until the user quits.
func (a *App) Run() error {
	a.running = true
	a.renderer.Start()
	if a.watcher != nil {
		a.watcher.Start()
	}

	idle := time.NewTicker(idleWait)
	defer idle.Stop()

	a.log.Info("starting viewer loop")
	for a.running {
		a.input.Reset()
		if a.window.PollEvents(a.input) {
			a.running = false
		}
		for _, ev := range a.input.Events() {
			switch a.controller.Handle(ev) {
			case viewer.ActionQuit:
				a.running = false
			case viewer.ActionScreenshot:
				a.screenshot()
			case viewer.ActionOpen:
				a.openDialog()
			case viewer.ActionSaveAs:
				a.saveAsDialog()
			}
		}
		if !a.running {
			break
		}

		select {
		case dir := <-a.pendingDir:
			a.openCubemap(dir)
		default:
		}

		select {
		case f := <-a.frames:
			if err := a.window.Present(f.Img); err != nil {
				a.renderer.Recycle(f)
				return fmt.Errorf("present error: %w", err)
			}
			if a.latest != nil {
				a.renderer.Recycle(a.latest)
			}
			a.latest = f
		case <-idle.C:
		}
	}
	return nil
}

func (a *App) screenshot() {
	if a.latest == nil {
		a.log.Warn("no frame to capture yet")
		return
	}
	name, err := a.screenshots.Capture(a.latest.Img)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

// Close stops the watcher and the renderer and destroys the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing watcher", zap.Error(err))
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
