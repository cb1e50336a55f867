// Package config handles fly-through configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/glowtrail/internal/logger"
	"github.com/Faultbox/glowtrail/internal/scene"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Flight    FlightConfig    `yaml:"flight"`
	Scene     SceneConfig     `yaml:"scene"`
	Bloom     BloomConfig     `yaml:"bloom"`
	Animation AnimationConfig `yaml:"animation"`
	Capture   CaptureConfig   `yaml:"capture"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"` // 0 = unlimited
	FOV        float32 `yaml:"fov"`       // vertical, degrees
	ShowFPS    bool    `yaml:"show_fps"`
}

// FlightConfig holds camera timing.
type FlightConfig struct {
	LoopDurationMs float64 `yaml:"loop_duration_ms"`
	SpeedFactor    float64 `yaml:"speed_factor"`
	LookAhead      float64 `yaml:"look_ahead"`
}

// SceneConfig holds what gets built.
type SceneConfig struct {
	Decorations     int     `yaml:"decorations"`
	Particles       int     `yaml:"particles"`
	ParticleExtent  float64 `yaml:"particle_extent"`
	MarkerDivisions int     `yaml:"marker_divisions"`
	Seed            int64   `yaml:"seed"`
	PathFile        string  `yaml:"path_file"` // CSV of x,y,z control points; empty = built-in path
}

// BloomConfig holds post-processing settings.
type BloomConfig struct {
	Threshold float32 `yaml:"threshold"`
	Strength  float32 `yaml:"strength"`
	Radius    float32 `yaml:"radius"`
	Mips      int     `yaml:"mips"`
	Exposure  float32 `yaml:"exposure"`
}

// AnimationConfig holds spin and orbit settings.
type AnimationConfig struct {
	SpinMode     string  `yaml:"spin_mode"` // per_frame or per_second
	OrbitDamping float64 `yaml:"orbit_damping"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        75,
		},
		Flight: FlightConfig{
			LoopDurationMs: 10000,
			SpeedFactor:    0.2,
			LookAhead:      0.03,
		},
		Scene: SceneConfig{
			Decorations:     40,
			Particles:       1000,
			ParticleExtent:  10,
			MarkerDivisions: 100,
			Seed:            1,
		},
		Bloom: BloomConfig{
			Threshold: 0.05,
			Strength:  1.8,
			Radius:    0.5,
			Mips:      5,
			Exposure:  1,
		},
		Animation: AnimationConfig{
			SpinMode:     "per_frame",
			OrbitDamping: 0.05,
		},
		Capture: CaptureConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports the first setting that cannot produce a running scene.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	case c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180:
		return fmt.Errorf("%w: fov %v", ErrInvalid, c.Graphics.FOV)
	case c.Graphics.FPSLimit < 0:
		return fmt.Errorf("%w: fps_limit %d", ErrInvalid, c.Graphics.FPSLimit)
	case c.Flight.LoopDurationMs <= 0 || c.Flight.SpeedFactor <= 0:
		return fmt.Errorf("%w: loop %vms at speed %v", ErrInvalid, c.Flight.LoopDurationMs, c.Flight.SpeedFactor)
	case c.Scene.Decorations <= 0:
		return fmt.Errorf("%w: decorations %d", ErrInvalid, c.Scene.Decorations)
	case c.Scene.Particles < 0 || c.Scene.ParticleExtent <= 0:
		return fmt.Errorf("%w: %d particles in extent %v", ErrInvalid, c.Scene.Particles, c.Scene.ParticleExtent)
	case c.Scene.MarkerDivisions <= 0:
		return fmt.Errorf("%w: marker_divisions %d", ErrInvalid, c.Scene.MarkerDivisions)
	case c.Bloom.Mips <= 0 || c.Bloom.Strength < 0 || c.Bloom.Exposure <= 0:
		return fmt.Errorf("%w: bloom %+v", ErrInvalid, c.Bloom)
	case c.Animation.OrbitDamping < 0 || c.Animation.OrbitDamping > 1:
		return fmt.Errorf("%w: orbit_damping %v", ErrInvalid, c.Animation.OrbitDamping)
	}
	if _, err := scene.ParseSpinMode(c.Animation.SpinMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
