// Package app owns the window and drives the fly-through frame loop.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/glowtrail/internal/config"
	"github.com/Faultbox/glowtrail/internal/engine/capture"
	"github.com/Faultbox/glowtrail/internal/engine/input"
	"github.com/Faultbox/glowtrail/internal/engine/renderer"
	"github.com/Faultbox/glowtrail/internal/engine/window"
	"github.com/Faultbox/glowtrail/internal/flight"
	"github.com/Faultbox/glowtrail/internal/logger"
	"github.com/Faultbox/glowtrail/internal/scene"
	"github.com/Faultbox/glowtrail/internal/tour"
	"github.com/Faultbox/glowtrail/internal/trace"
)

// Title is the window title.
const Title = "Glowtrail"

// App is the running viewer.
type App struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	session  *tour.Session
	capturer *capture.Capturer
	log      *zap.Logger

	// captureNext saves the next composited frame before it is swapped
	captureNext bool
}

// New opens the window, builds the renderer and the scene.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int64("seed", cfg.Scene.Seed),
	)

	points, err := loadPath(cfg.Scene.PathFile)
	if err != nil {
		return nil, err
	}
	sessionCfg, err := sessionConfig(cfg, points)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:   cfg,
		input:    input.New(),
		capturer: capture.New(cfg.Capture.Dir, "glowtrail"),
		log:      logger.Named("loop"),
	}

	// Window first, it creates the OpenGL context
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(rendererConfig(cfg, w, h))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	sessionCfg.Width, sessionCfg.Height = w, h
	a.session, err = tour.NewSession(sessionCfg, a.renderer)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	logger.Info("initialized")
	return a, nil
}

// loadPath reads control points from a CSV file. An empty name selects the
// built-in path.
func loadPath(name string) ([]r3.Vec, error) {
	if name == "" {
		return nil, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening path file: %w", err)
	}
	defer f.Close()

	points, err := trace.ReadPath(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	logger.Info("loaded path", zap.String("file", name), zap.Int("points", len(points)))
	return points, nil
}

// sessionConfig maps settings onto the scene description.
func sessionConfig(cfg *config.Config, points []r3.Vec) (tour.SessionConfig, error) {
	mode, err := scene.ParseSpinMode(cfg.Animation.SpinMode)
	if err != nil {
		return tour.SessionConfig{}, err
	}
	return tour.SessionConfig{
		Points:          points,
		Decorations:     cfg.Scene.Decorations,
		Particles:       cfg.Scene.Particles,
		ParticleExtent:  cfg.Scene.ParticleExtent,
		MarkerDivisions: cfg.Scene.MarkerDivisions,
		Seed:            cfg.Scene.Seed,
		Flight: flight.Params{
			LoopDurationMs: cfg.Flight.LoopDurationMs,
			SpeedFactor:    cfg.Flight.SpeedFactor,
			LookAhead:      cfg.Flight.LookAhead,
		},
		Spin:         mode,
		OrbitDamping: cfg.Animation.OrbitDamping,
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
	}, nil
}

// rendererConfig applies the graphics and bloom settings to the stock look.
func rendererConfig(cfg *config.Config, width, height int) renderer.Config {
	rc := renderer.DefaultConfig(width, height)
	rc.FovY = cfg.Graphics.FOV
	rc.Bloom.Threshold = cfg.Bloom.Threshold
	rc.Bloom.Strength = cfg.Bloom.Strength
	rc.Bloom.Radius = cfg.Bloom.Radius
	rc.Bloom.Mips = cfg.Bloom.Mips
	rc.Bloom.Exposure = cfg.Bloom.Exposure
	return rc
}

// frameBudget is the minimum frame time for an fps limit, 0 when unlimited.
func frameBudget(limit int) time.Duration {
	if limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(limit)
}

// Run starts the frame loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	start := sdl.GetTicks64()
	budget := frameBudget(a.config.Graphics.FPSLimit)
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		frameStart := time.Now()

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		if !a.running {
			break
		}

		a.session.Frame(float64(sdl.GetTicks64() - start))
		if a.captureNext {
			a.screenshot()
			a.captureNext = false
		}
		a.window.SwapBuffers()

		if budget > 0 {
			if rest := budget - time.Since(frameStart); rest > 0 {
				sdl.Delay(uint32(rest.Milliseconds()))
			}
		}

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			a.log.Debug("fps",
				zap.Float64("fps", fps),
				zap.Uint64("frames", a.session.Frames()),
				zap.Float64("param", a.session.Camera().Param),
			)
			if a.config.Graphics.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("%s - %.0f fps", Title, fps))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	a.log.Info("frame loop stopped", zap.Uint64("frames", a.session.Frames()))
	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			// Event sizes are in screen coordinates; GL needs pixels
			a.session.Resize(a.window.DrawableSize())
		case input.EventDrag:
			a.session.Drag(float64(event.DX), float64(event.DY))
		case input.EventWheel:
			a.session.Zoom(event.Wheel)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_R:
				a.session.ResetView()
			case sdl.SCANCODE_F12:
				a.captureNext = true
			}
		}
	}
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadFrame()
	path, err := a.capturer.Save(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene, renderer and window in reverse creation order.
func (a *App) Close() {
	logger.Info("closing")

	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
