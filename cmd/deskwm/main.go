package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/deskwm/internal/config"
	"github.com/1broseidon/deskwm/internal/eventlog"
	"github.com/1broseidon/deskwm/internal/geometry"
	"github.com/1broseidon/deskwm/internal/hotkeys"
	"github.com/1broseidon/deskwm/internal/ipc"
	"github.com/1broseidon/deskwm/internal/surface"
	"github.com/1broseidon/deskwm/internal/surface/x11"
	"github.com/1broseidon/deskwm/internal/tui"
	"github.com/1broseidon/deskwm/internal/wm"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: deskwm daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: deskwm daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "window":
		os.Exit(runWindow(os.Args[2:]))
	case "taskbar":
		os.Exit(runTaskbar(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deskwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the deskwm daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  window create       Create a window")
	fmt.Fprintln(w, "  window list         List windows in stacking order")
	fmt.Fprintln(w, "  window close        Close a window")
	fmt.Fprintln(w, "  window focus        Focus a window")
	fmt.Fprintln(w, "  window minimize     Minimize a window to the taskbar")
	fmt.Fprintln(w, "  window maximize     Maximize a window to the work area")
	fmt.Fprintln(w, "  window restore      Restore a window to its normal geometry")
	fmt.Fprintln(w, "  window move         Move a window")
	fmt.Fprintln(w, "  window resize       Resize a window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  taskbar             List taskbar entries for minimized windows")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open the terminal desktop demo")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskwm <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running:  %v\n", status.DaemonRunning)
	fmt.Printf("window_count:    %d\n", status.WindowCount)
	fmt.Printf("minimized_count: %d\n", status.MinimizedCount)
	fmt.Printf("active_window:   %s\n", status.ActiveWindowID)
	fmt.Printf("viewport:        %dx%d\n", status.ViewportWidth, status.ViewportHeight)
	fmt.Printf("uptime_seconds:  %d\n", status.UptimeSeconds)
	return 0
}

func runTaskbar(args []string) int {
	fs := flag.NewFlagSet("taskbar", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm taskbar")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List taskbar entries for minimized windows, oldest first.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "taskbar takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetTaskbar()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(data.Items) == 0 {
		fmt.Println("taskbar: empty")
		return 0
	}
	for _, item := range data.Items {
		fmt.Printf("%s  %s\n", item.ID, item.Title)
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  deskwm config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  deskwm config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.Load()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/deskwm/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		if *printDefaults {
			cfg = config.DefaultConfig()
		} else {
			var res *config.LoadResult
			var err error
			if *path == "" {
				res, err = config.Load()
			} else {
				res, err = config.LoadFromPath(*path)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			if res.Source == config.SourceFile {
				fmt.Printf("# source: %s\n", res.Path)
			} else {
				fmt.Println("# source: built-in defaults")
			}
			cfg = res.Config
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: deskwm tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Self-contained terminal desktop: the full windowing engine rendered")
		fmt.Fprintln(os.Stderr, "with character cells. Needs no daemon and no X display.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  n         New window")
		fmt.Fprintln(os.Stderr, "  m         Minimize focused window")
		fmt.Fprintln(os.Stderr, "  z         Toggle maximize on focused window")
		fmt.Fprintln(os.Stderr, "  x         Close focused window")
		fmt.Fprintln(os.Stderr, "  Tab       Cycle focus")
		fmt.Fprintln(os.Stderr, "  Mouse     Drag title bars, resize borders, click chrome buttons")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C Quit")
		return 0
	}
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "tui takes no arguments")
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "tui requires an interactive terminal")
		return 1
	}

	if err := tui.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// syncFactory wraps the display backend's surface factory so chrome events
// raised on the X event loop run under the IPC server's manager lock. The
// run hook is bound after the server exists; surfaces are only created
// through IPC commands, which the server cannot serve before Start.
type syncFactory struct {
	inner surface.Factory
	run   func(fn func())
}

func (f *syncFactory) Create(initial geometry.Rect, chrome surface.Chrome) (surface.Handle, error) {
	h, err := f.inner.Create(initial, chrome)
	if err != nil {
		return nil, err
	}
	return &syncHandle{Handle: h, factory: f}, nil
}

type syncHandle struct {
	surface.Handle
	factory *syncFactory
}

func (h *syncHandle) Subscribe(fn surface.EventFunc) {
	h.Handle.Subscribe(func(ev surface.Event) {
		if h.factory.run == nil {
			fn(ev)
			return
		}
		h.factory.run(func() { fn(ev) })
	})
}

func runDaemon() {
	res, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := res.Config
	if res.Source == config.SourceFile {
		log.Printf("Configuration loaded from %s", res.Path)
	} else {
		log.Println("Configuration loaded (built-in defaults)")
	}

	conn, err := x11.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	width, height := conn.ViewportSize()
	log.Printf("Display connected (%dx%d, taskbar height %dpx)", width, height, cfg.Taskbar.Height)

	logCfg := cfg.GetLoggingConfig()
	logger, err := eventlog.New(eventlog.Config{
		Enabled:   cfg.Logging.Enabled,
		Level:     eventlog.ParseLevel(logCfg.Level),
		FilePath:  logCfg.File,
		MaxSizeMB: logCfg.MaxSizeMB,
		MaxFiles:  logCfg.MaxFiles,
	})
	if err != nil {
		log.Fatalf("Failed to open event log: %v", err)
	}
	defer logger.Close()
	if cfg.Logging.Enabled {
		log.Printf("Event log: %s", logCfg.File)
	}

	backend := x11.NewFactory(conn)
	guard := &syncFactory{inner: backend}

	mgr := wm.NewManager(guard, wm.Options{
		Viewport: geometry.Viewport{
			Width:         width,
			Height:        height,
			TaskbarHeight: cfg.Taskbar.Height,
		},
		Limits: geometry.Limits{
			MinWidth:  cfg.Window.MinWidth,
			MinHeight: cfg.Window.MinHeight,
		},
		DefaultWidth:   cfg.Window.DefaultWidth,
		DefaultHeight:  cfg.Window.DefaultHeight,
		CascadeOriginX: cfg.Cascade.OriginX,
		CascadeOriginY: cfg.Cascade.OriginY,
		CascadeStep:    cfg.Cascade.Step,
		EventLog:       logger,
	})

	srv, err := ipc.NewServer(mgr)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	guard.run = func(fn func()) {
		srv.Do(func(*wm.Manager) { fn() })
	}
	backend.OnPointer(
		func(x, y int) {
			srv.Do(func(m *wm.Manager) { m.PointerMove(x, y) })
		},
		func() {
			srv.Do(func(m *wm.Manager) { m.PointerUp() })
		},
	)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer srv.Stop()

	registerHotkeys(hotkeys.NewHandler(conn.XUtil, conn.Root), cfg.Hotkeys, srv)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down deskwm daemon...")
		srv.Stop()
		conn.Quit()
	}()

	log.Println("deskwm daemon started, entering event loop...")
	conn.EventLoop()
}

// registerHotkeys binds the configured global shortcuts to window commands.
// Hotkey callbacks arrive on the X event loop, so they take the manager lock
// the same way chrome events do.
func registerHotkeys(hk *hotkeys.Handler, cfg config.HotkeysConfig, srv *ipc.Server) {
	bind := func(sequence, name string, fn func(m *wm.Manager)) {
		if sequence == "" {
			return
		}
		if err := hk.Register(sequence, func() {
			srv.Do(fn)
		}); err != nil {
			log.Printf("Warning: failed to register %s hotkey %q: %v", name, sequence, err)
			return
		}
		log.Printf("Hotkey registered: %s -> %s", sequence, name)
	}

	bind(cfg.NewWindow, "new_window", func(m *wm.Manager) {
		if _, err := m.CreateWindow("Untitled", nil, wm.WindowOptions{}); err != nil {
			log.Printf("new_window hotkey: %v", err)
		}
	})
	bind(cfg.Minimize, "minimize", func(m *wm.Manager) {
		if id, ok := m.ActiveWindowID(); ok {
			m.MinimizeWindow(id)
		}
	})
	bind(cfg.ToggleMaximize, "toggle_maximize", func(m *wm.Manager) {
		if id, ok := m.ActiveWindowID(); ok {
			m.ToggleMaximize(id)
		}
	})
	bind(cfg.Close, "close", func(m *wm.Manager) {
		if id, ok := m.ActiveWindowID(); ok {
			m.CloseWindow(id)
		}
	})
	bind(cfg.CycleFocus, "cycle_focus", func(m *wm.Manager) {
		// Raising the bottom-most visible window walks the whole stack
		// over repeated presses.
		for _, w := range m.WindowsByStacking() {
			if w.State() != wm.StateMinimized {
				m.FocusWindow(w.ID())
				return
			}
		}
	})
}
