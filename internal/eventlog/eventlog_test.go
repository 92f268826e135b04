package eventlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledLoggerWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deskwm-events.log")

	l, err := New(Config{Enabled: false, FilePath: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Log(ActionCreate, "win-1", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("disabled logger must not create a file")
	}
}

func TestLogWritesSortedDetails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deskwm-events.log")

	l, err := New(Config{Enabled: true, Level: LevelDebug, FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Log(ActionMinimize, "win-3", map[string]interface{}{
		"y":     70,
		"title": "Files",
		"x":     100,
	})
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "[MINIMIZE] window=win-3") {
		t.Fatalf("unexpected entry: %q", line)
	}
	// Details render in sorted key order.
	if !strings.Contains(line, `title="Files" x=100 y=70`) {
		t.Fatalf("details not sorted: %q", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deskwm-events.log")

	l, err := New(Config{Enabled: true, Level: LevelInfo, FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Log(ActionFocus, "win-1", nil) // debug-level action, filtered
	l.Log(ActionClose, "win-1", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "[FOCUS]") {
		t.Fatalf("debug action leaked through info level: %q", string(data))
	}
	if !strings.Contains(string(data), "[CLOSE]") {
		t.Fatalf("info action missing: %q", string(data))
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != LevelDebug {
		t.Fatalf("debug parse failed")
	}
	if ParseLevel("WARNING") != LevelWarn {
		t.Fatalf("warning parse failed")
	}
	if ParseLevel("bogus") != LevelInfo {
		t.Fatalf("unknown levels default to info")
	}
}
