package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultTaskbarHeight = 40
	DefaultWindowWidth   = 600
	DefaultWindowHeight  = 400
	DefaultMinWidth      = 200
	DefaultMinHeight     = 100
	DefaultCascadeOrigin = 50
	DefaultCascadeStep   = 30

	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
)

// TaskbarConfig configures the reserved strip at the top of the viewport.
type TaskbarConfig struct {
	// Height in pixels; windows never move above it (default: 40)
	Height int `yaml:"height,omitempty"`
}

// WindowConfig configures window creation defaults and limits.
type WindowConfig struct {
	// DefaultWidth/DefaultHeight apply when createWindow omits a size
	// (defaults: 600x400)
	DefaultWidth  int `yaml:"default_width,omitempty"`
	DefaultHeight int `yaml:"default_height,omitempty"`
	// MinWidth/MinHeight are enforced on every size mutation
	// (defaults: 200x100)
	MinWidth  int `yaml:"min_width,omitempty"`
	MinHeight int `yaml:"min_height,omitempty"`
}

// CascadeConfig configures default placement of new windows. Each window
// without an explicit position lands step pixels down-right of the previous.
type CascadeConfig struct {
	OriginX int `yaml:"origin_x,omitempty"`
	OriginY int `yaml:"origin_y,omitempty"`
	Step    int `yaml:"step,omitempty"`
}

// ViewportConfig is the fallback viewport size used by backends that cannot
// measure the display (the X11 backend measures; tests and headless daemons
// use these).
type ViewportConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// LoggingConfig configures window lifecycle logging.
type LoggingConfig struct {
	// Enabled turns lifecycle logging on/off
	Enabled bool `yaml:"enabled,omitempty"`
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the log file path (default: ~/.local/share/deskwm/deskwm-events.log)
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// HotkeysConfig maps global X11 key sequences (xgbutil keybind syntax,
// e.g. "Mod4-n") to window commands. Empty sequences are not bound.
type HotkeysConfig struct {
	// NewWindow creates an untitled window
	NewWindow string `yaml:"new_window,omitempty"`
	// Minimize minimizes the focused window
	Minimize string `yaml:"minimize,omitempty"`
	// ToggleMaximize toggles maximize on the focused window
	ToggleMaximize string `yaml:"toggle_maximize,omitempty"`
	// Close closes the focused window
	Close string `yaml:"close,omitempty"`
	// CycleFocus raises the bottom-most visible window
	CycleFocus string `yaml:"cycle_focus,omitempty"`
}

// Config is the effective deskwm configuration.
type Config struct {
	Taskbar  TaskbarConfig  `yaml:"taskbar,omitempty"`
	Window   WindowConfig   `yaml:"window,omitempty"`
	Cascade  CascadeConfig  `yaml:"cascade,omitempty"`
	Viewport ViewportConfig `yaml:"viewport,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Hotkeys  HotkeysConfig  `yaml:"hotkeys,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Taskbar: TaskbarConfig{Height: DefaultTaskbarHeight},
		Window: WindowConfig{
			DefaultWidth:  DefaultWindowWidth,
			DefaultHeight: DefaultWindowHeight,
			MinWidth:      DefaultMinWidth,
			MinHeight:     DefaultMinHeight,
		},
		Cascade: CascadeConfig{
			OriginX: DefaultCascadeOrigin,
			OriginY: DefaultCascadeOrigin,
			Step:    DefaultCascadeStep,
		},
		Viewport: ViewportConfig{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		},
		Logging: LoggingConfig{
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  3,
		},
		Hotkeys: HotkeysConfig{
			NewWindow:      "Mod4-Return",
			Minimize:       "Mod4-m",
			ToggleMaximize: "Mod4-f",
			Close:          "Mod4-q",
			CycleFocus:     "Mod4-Tab",
		},
	}
}

// GetLoggingConfig returns logging config with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	logging := c.Logging
	if logging.Level == "" {
		logging.Level = "info"
	}
	if logging.File == "" {
		if home, err := os.UserHomeDir(); err == nil {
			logging.File = filepath.Join(home, ".local", "share", "deskwm", "deskwm-events.log")
		}
	}
	if logging.MaxSizeMB <= 0 {
		logging.MaxSizeMB = 10
	}
	if logging.MaxFiles <= 0 {
		logging.MaxFiles = 3
	}
	return logging
}

// applyDefaults fills unset fields after a file load.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Taskbar.Height == 0 {
		c.Taskbar.Height = def.Taskbar.Height
	}
	if c.Window.DefaultWidth == 0 {
		c.Window.DefaultWidth = def.Window.DefaultWidth
	}
	if c.Window.DefaultHeight == 0 {
		c.Window.DefaultHeight = def.Window.DefaultHeight
	}
	if c.Window.MinWidth == 0 {
		c.Window.MinWidth = def.Window.MinWidth
	}
	if c.Window.MinHeight == 0 {
		c.Window.MinHeight = def.Window.MinHeight
	}
	if c.Cascade.OriginX == 0 {
		c.Cascade.OriginX = def.Cascade.OriginX
	}
	if c.Cascade.OriginY == 0 {
		c.Cascade.OriginY = def.Cascade.OriginY
	}
	if c.Cascade.Step == 0 {
		c.Cascade.Step = def.Cascade.Step
	}
	if c.Viewport.Width == 0 {
		c.Viewport.Width = def.Viewport.Width
	}
	if c.Viewport.Height == 0 {
		c.Viewport.Height = def.Viewport.Height
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = def.Logging.MaxSizeMB
	}
	if c.Logging.MaxFiles == 0 {
		c.Logging.MaxFiles = def.Logging.MaxFiles
	}
	// Hotkeys default as a block: once a file customizes any binding,
	// the remaining empty ones stay unbound.
	if c.Hotkeys == (HotkeysConfig{}) {
		c.Hotkeys = def.Hotkeys
	}
}

// Validate checks ranges that would break geometry math.
func (c *Config) Validate() error {
	if c.Taskbar.Height < 0 {
		return fmt.Errorf("taskbar.height must be >= 0, got %d", c.Taskbar.Height)
	}
	if c.Window.MinWidth < 1 || c.Window.MinHeight < 1 {
		return fmt.Errorf("window.min_width and window.min_height must be >= 1, got %dx%d",
			c.Window.MinWidth, c.Window.MinHeight)
	}
	if c.Window.DefaultWidth < c.Window.MinWidth {
		return fmt.Errorf("window.default_width %d is below window.min_width %d",
			c.Window.DefaultWidth, c.Window.MinWidth)
	}
	if c.Window.DefaultHeight < c.Window.MinHeight {
		return fmt.Errorf("window.default_height %d is below window.min_height %d",
			c.Window.DefaultHeight, c.Window.MinHeight)
	}
	if c.Cascade.Step < 0 {
		return fmt.Errorf("cascade.step must be >= 0, got %d", c.Cascade.Step)
	}
	if c.Viewport.Width < c.Window.MinWidth || c.Viewport.Height < c.Taskbar.Height+c.Window.MinHeight {
		return fmt.Errorf("viewport %dx%d cannot hold a minimum-size window",
			c.Viewport.Width, c.Viewport.Height)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug/info/warn/error, got %q", c.Logging.Level)
	}
	return nil
}
