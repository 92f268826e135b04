package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Taskbar.Height != 40 {
		t.Fatalf("taskbar height = %d, want 40", cfg.Taskbar.Height)
	}
	if cfg.Window.DefaultWidth != 600 || cfg.Window.DefaultHeight != 400 {
		t.Fatalf("window defaults = %dx%d, want 600x400",
			cfg.Window.DefaultWidth, cfg.Window.DefaultHeight)
	}
	if cfg.Window.MinWidth != 200 || cfg.Window.MinHeight != 100 {
		t.Fatalf("window minimums = %dx%d, want 200x100",
			cfg.Window.MinWidth, cfg.Window.MinHeight)
	}
	if cfg.Cascade.OriginX != 50 || cfg.Cascade.OriginY != 50 || cfg.Cascade.Step != 30 {
		t.Fatalf("cascade = (%d,%d) step %d, want (50,50) step 30",
			cfg.Cascade.OriginX, cfg.Cascade.OriginY, cfg.Cascade.Step)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if res.Source != SourceDefault {
		t.Fatalf("source = %q, want %q", res.Source, SourceDefault)
	}
	if res.Config.Taskbar.Height != 40 {
		t.Fatalf("expected defaults, got taskbar height %d", res.Config.Taskbar.Height)
	}
}

func TestLoadFromPathPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "taskbar:\n  height: 32\nwindow:\n  default_width: 800\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if res.Source != SourceFile || res.Path != path {
		t.Fatalf("source = %q path = %q", res.Source, res.Path)
	}
	cfg := res.Config
	if cfg.Taskbar.Height != 32 {
		t.Fatalf("taskbar height = %d, want 32", cfg.Taskbar.Height)
	}
	if cfg.Window.DefaultWidth != 800 {
		t.Fatalf("default width = %d, want 800", cfg.Window.DefaultWidth)
	}
	// unset fields fall back to defaults
	if cfg.Window.DefaultHeight != 400 || cfg.Window.MinWidth != 200 {
		t.Fatalf("unset fields not defaulted: height %d min width %d",
			cfg.Window.DefaultHeight, cfg.Window.MinWidth)
	}
}

func TestLoadFromPathHotkeysBlock(t *testing.T) {
	dir := t.TempDir()

	// Omitting the hotkeys section entirely yields the default bindings.
	plain := filepath.Join(dir, "plain.yaml")
	if err := os.WriteFile(plain, []byte("taskbar:\n  height: 32\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	res, err := LoadFromPath(plain)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if res.Config.Hotkeys.NewWindow != "Mod4-Return" {
		t.Fatalf("new_window = %q, want default Mod4-Return", res.Config.Hotkeys.NewWindow)
	}

	// Customizing one binding leaves the others unbound.
	custom := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(custom, []byte("hotkeys:\n  close: Mod1-F4\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	res, err = LoadFromPath(custom)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if res.Config.Hotkeys.Close != "Mod1-F4" {
		t.Fatalf("close = %q, want Mod1-F4", res.Config.Hotkeys.Close)
	}
	if res.Config.Hotkeys.NewWindow != "" {
		t.Fatalf("new_window = %q, want unbound", res.Config.Hotkeys.NewWindow)
	}
}

func TestLoadFromPathInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("taskbar: [not a map"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative taskbar", func(c *Config) { c.Taskbar.Height = -1 }, "taskbar.height"},
		{"zero min width", func(c *Config) { c.Window.MinWidth = 0 }, "min_width"},
		{"default below min", func(c *Config) { c.Window.DefaultWidth = 150 }, "default_width"},
		{"negative cascade step", func(c *Config) { c.Cascade.Step = -5 }, "cascade.step"},
		{"tiny viewport", func(c *Config) { c.Viewport.Width = 100 }, "viewport"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestGetLoggingConfigDefaults(t *testing.T) {
	cfg := &Config{}
	logging := cfg.GetLoggingConfig()
	if logging.Level != "info" {
		t.Fatalf("level = %q, want info", logging.Level)
	}
	if logging.MaxSizeMB != 10 || logging.MaxFiles != 3 {
		t.Fatalf("rotation defaults = %d MB / %d files", logging.MaxSizeMB, logging.MaxFiles)
	}
	if logging.File == "" {
		t.Fatal("expected a default log file path")
	}
}
