package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level defines the logging verbosity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Action represents the type of windowing action being logged.
type Action string

const (
	ActionCreate   Action = "CREATE"
	ActionClose    Action = "CLOSE"
	ActionFocus    Action = "FOCUS"
	ActionMinimize Action = "MINIMIZE"
	ActionMaximize Action = "MAXIMIZE"
	ActionRestore  Action = "RESTORE"
	ActionDrag     Action = "DRAG"
	ActionResize   Action = "RESIZE"
)

// actionLevel returns the log level for an action type. Pointer-gesture
// actions fire on every creation-to-release cycle and stay at debug.
func actionLevel(action Action) Level {
	switch action {
	case ActionDrag, ActionResize, ActionFocus:
		return LevelDebug
	case ActionCreate, ActionClose, ActionMinimize, ActionMaximize, ActionRestore:
		return LevelInfo
	default:
		return LevelInfo
	}
}

// Config holds configuration for the lifecycle logger.
type Config struct {
	Enabled   bool
	Level     Level
	FilePath  string
	MaxSizeMB int
	MaxFiles  int
}

// Logger records window lifecycle actions to a file with size-based rotation.
// A nil Logger is valid and discards everything.
type Logger struct {
	mu          sync.Mutex
	file        *os.File
	config      Config
	currentSize int64
}

// New creates a new logger with the given configuration.
func New(cfg Config) (*Logger, error) {
	if !cfg.Enabled {
		return &Logger{config: cfg}, nil
	}

	dir := filepath.Dir(cfg.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.FilePath, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return &Logger{
		file:        f,
		config:      cfg,
		currentSize: stat.Size(),
	}, nil
}

// Log records a windowing action. windowID may be empty for manager-level
// actions. Details are rendered in sorted key order for stable output.
func (l *Logger) Log(action Action, windowID string, details map[string]interface{}) {
	if l == nil || !l.config.Enabled {
		return
	}

	if actionLevel(action) < l.config.Level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	maxBytes := int64(l.config.MaxSizeMB) * 1024 * 1024
	if l.currentSize >= maxBytes {
		if err := l.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
		if l.file == nil {
			return
		}
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	var sb strings.Builder
	sb.WriteString(timestamp)
	sb.WriteString(" [")
	sb.WriteString(string(action))
	sb.WriteString("]")

	if windowID != "" {
		sb.WriteString(" window=")
		sb.WriteString(windowID)
	}

	if len(details) > 0 {
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			v := details[k]
			switch val := v.(type) {
			case string:
				sb.WriteString(fmt.Sprintf(" %s=%q", k, val))
			default:
				sb.WriteString(fmt.Sprintf(" %s=%v", k, val))
			}
		}
	}

	sb.WriteString("\n")
	entry := sb.String()

	n, err := l.file.WriteString(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
		return
	}
	l.currentSize += int64(n)
}

// Close closes the logger and releases resources.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.file.Close()
	l.file = nil
	return err
}

// rotate shifts deskwm-events.log -> .1 -> .2 -> ... keeping MaxFiles
// rotated files, then reopens a fresh log.
func (l *Logger) rotate() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	basePath := l.config.FilePath
	for i := l.config.MaxFiles; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", basePath, i)
		newPath := fmt.Sprintf("%s.%d", basePath, i+1)
		if i == l.config.MaxFiles {
			os.Remove(oldPath)
		} else {
			os.Rename(oldPath, newPath)
		}
	}

	if err := os.Rename(basePath, basePath+".1"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	f, err := os.OpenFile(basePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}

	l.file = f
	l.currentSize = 0
	return nil
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
