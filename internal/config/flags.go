package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging and the FPS counter")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagSeed        = flag.Int64("seed", 0, "Decoration and particle seed (0 keeps the configured seed)")
	flagSpeed       = flag.Float64("speed", 0, "Camera speed factor")
	flagDecorations = flag.Int("decorations", 0, "Number of icosahedra along the path")
	flagPath        = flag.String("path", "", "CSV file of x,y,z path control points")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagSeed != 0 {
		cfg.Scene.Seed = *flagSeed
	}
	if *flagSpeed > 0 {
		cfg.Flight.SpeedFactor = *flagSpeed
	}
	if *flagDecorations > 0 {
		cfg.Scene.Decorations = *flagDecorations
	}
	if *flagPath != "" {
		cfg.Scene.PathFile = *flagPath
	}
}
