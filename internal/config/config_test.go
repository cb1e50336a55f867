package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.FOV != 75 {
		t.Errorf("expected fov 75, got %v", cfg.Graphics.FOV)
	}

	if cfg.Flight.LoopDurationMs != 10000 || cfg.Flight.SpeedFactor != 0.2 || cfg.Flight.LookAhead != 0.03 {
		t.Errorf("unexpected flight defaults %+v", cfg.Flight)
	}

	if cfg.Scene.Decorations != 40 {
		t.Errorf("expected 40 decorations, got %d", cfg.Scene.Decorations)
	}
	if cfg.Scene.Particles != 1000 {
		t.Errorf("expected 1000 particles, got %d", cfg.Scene.Particles)
	}
	if cfg.Scene.PathFile != "" {
		t.Errorf("expected built-in path, got %s", cfg.Scene.PathFile)
	}

	if cfg.Bloom.Threshold != 0.05 || cfg.Bloom.Strength != 1.8 || cfg.Bloom.Radius != 0.5 {
		t.Errorf("unexpected bloom defaults %+v", cfg.Bloom)
	}

	if cfg.Animation.SpinMode != "per_frame" {
		t.Errorf("expected spin mode per_frame, got %s", cfg.Animation.SpinMode)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

flight:
  speed_factor: 0.5

scene:
  decorations: 12
  seed: 42
  path_file: "loop.csv"

bloom:
  strength: 0.9

animation:
  spin_mode: per_second

logging:
  level: "debug"
  log_file: "glowtrail.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Flight.SpeedFactor != 0.5 {
		t.Errorf("expected speed 0.5, got %v", cfg.Flight.SpeedFactor)
	}
	// Keys absent from the file keep their defaults
	if cfg.Flight.LoopDurationMs != 10000 {
		t.Errorf("expected default loop duration, got %v", cfg.Flight.LoopDurationMs)
	}

	if cfg.Scene.Decorations != 12 || cfg.Scene.Seed != 42 || cfg.Scene.PathFile != "loop.csv" {
		t.Errorf("unexpected scene %+v", cfg.Scene)
	}
	if cfg.Bloom.Strength != 0.9 || cfg.Bloom.Threshold != 0.05 {
		t.Errorf("unexpected bloom %+v", cfg.Bloom)
	}
	if cfg.Animation.SpinMode != "per_second" {
		t.Errorf("expected per_second, got %s", cfg.Animation.SpinMode)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "glowtrail.log" {
		t.Errorf("expected log file 'glowtrail.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }},
		{"flat fov", func(c *Config) { c.Graphics.FOV = 180 }},
		{"negative fps limit", func(c *Config) { c.Graphics.FPSLimit = -1 }},
		{"zero loop", func(c *Config) { c.Flight.LoopDurationMs = 0 }},
		{"zero speed", func(c *Config) { c.Flight.SpeedFactor = 0 }},
		{"no decorations", func(c *Config) { c.Scene.Decorations = 0 }},
		{"negative particles", func(c *Config) { c.Scene.Particles = -5 }},
		{"zero extent", func(c *Config) { c.Scene.ParticleExtent = 0 }},
		{"no markers", func(c *Config) { c.Scene.MarkerDivisions = 0 }},
		{"no mips", func(c *Config) { c.Bloom.Mips = 0 }},
		{"damping above one", func(c *Config) { c.Animation.OrbitDamping = 1.5 }},
		{"unknown spin mode", func(c *Config) { c.Animation.SpinMode = "sometimes" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "scene flags",
			setup: func() {
				*flagSeed = 7
				*flagSpeed = 0.4
				*flagDecorations = 80
				*flagPath = "custom.csv"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Seed != 7 || cfg.Scene.Decorations != 80 || cfg.Scene.PathFile != "custom.csv" {
					t.Errorf("unexpected scene %+v", cfg.Scene)
				}
				if cfg.Flight.SpeedFactor != 0.4 {
					t.Errorf("expected speed 0.4, got %v", cfg.Flight.SpeedFactor)
				}
			},
			teardown: func() {
				*flagSeed = 0
				*flagSpeed = 0
				*flagDecorations = 0
				*flagPath = ""
			},
		},
		{
			name:  "unset flags keep defaults",
			setup: func() {},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Seed != 1 || cfg.Flight.SpeedFactor != 0.2 {
					t.Errorf("flags changed defaults: seed %d speed %v", cfg.Scene.Seed, cfg.Flight.SpeedFactor)
				}
			},
			teardown: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  decorations: -3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.Seed = 99
	cfg.Animation.SpinMode = "per_second"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip = %+v, want %+v", loaded, cfg)
	}
}
