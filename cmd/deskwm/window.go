package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/1broseidon/deskwm/internal/ipc"
)

func printWindowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  deskwm window create --title TITLE [--x N --y N] [--width N --height N] [--fixed]")
	fmt.Fprintln(w, "  deskwm window list [--json]")
	fmt.Fprintln(w, "  deskwm window close <id>")
	fmt.Fprintln(w, "  deskwm window focus <id>")
	fmt.Fprintln(w, "  deskwm window minimize <id>")
	fmt.Fprintln(w, "  deskwm window maximize <id>")
	fmt.Fprintln(w, "  deskwm window restore <id>")
	fmt.Fprintln(w, "  deskwm window move <id> <x> <y>")
	fmt.Fprintln(w, "  deskwm window resize <id> <width> <height>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'deskwm window <command> --help' for command-specific options.")
}

func runWindow(args []string) int {
	if len(args) == 0 {
		printWindowUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printWindowUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "create":
		return runWindowCreate(client, args[1:])
	case "list":
		return runWindowList(client, args[1:])
	case "close":
		return runWindowID("close", "Close a window and drop it from the desktop.", args[1:], client.CloseWindow)
	case "focus":
		return runWindowID("focus", "Raise a window to the top of the stack and focus it.", args[1:], client.FocusWindow)
	case "minimize":
		return runWindowID("minimize", "Hide a window and park it on the taskbar.", args[1:], client.MinimizeWindow)
	case "maximize":
		return runWindowID("maximize", "Grow a window to fill the work area below the taskbar.", args[1:], client.MaximizeWindow)
	case "restore":
		return runWindowID("restore", "Return a minimized or maximized window to its normal geometry.", args[1:], client.RestoreWindow)
	case "move":
		return runWindowMove(client, args[1:])
	case "resize":
		return runWindowResize(client, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n\n", args[0])
		printWindowUsage(os.Stderr)
		return 2
	}
}

func runWindowCreate(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm window create --title TITLE [--x N --y N] [--width N --height N] [--fixed]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Create a window. Without --x/--y the window cascades from the last")
		fmt.Fprintln(os.Stderr, "default placement; without --width/--height the configured default")
		fmt.Fprintln(os.Stderr, "size applies.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	title := fs.String("title", "", "Window title (required)")
	x := fs.Int("x", -1, "Initial x position (omit to cascade)")
	y := fs.Int("y", -1, "Initial y position (omit to cascade)")
	width := fs.Int("width", 0, "Initial width (0 = default)")
	height := fs.Int("height", 0, "Initial height (0 = default)")
	fixed := fs.Bool("fixed", false, "Create the window non-resizable")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "window create takes no positional arguments")
		fs.Usage()
		return 2
	}
	if *title == "" {
		fmt.Fprintln(os.Stderr, "window create requires --title")
		fs.Usage()
		return 2
	}

	payload := ipc.CreateWindowPayload{
		Title:  *title,
		Width:  *width,
		Height: *height,
	}
	if *x >= 0 && *y >= 0 {
		payload.X = x
		payload.Y = y
	}
	if *fixed {
		resizable := false
		payload.Resizable = &resizable
	}

	info, err := client.CreateWindow(payload)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("%s  %q at %d,%d %dx%d\n", info.ID, info.Title, info.X, info.Y, info.Width, info.Height)
	return 0
}

func runWindowList(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm window list [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List all windows bottom-to-top in stacking order.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output window details as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "window list takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := client.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data.Windows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	if len(data.Windows) == 0 {
		fmt.Println("no windows")
		return 0
	}
	for _, w := range data.Windows {
		marker := " "
		if w.Active {
			marker = "*"
		}
		fmt.Printf("%s %s  %-20q %4d,%-4d %4dx%-4d z=%d %s\n",
			marker, w.ID, w.Title, w.X, w.Y, w.Width, w.Height, w.Z, w.State)
	}
	return 0
}

// runWindowID handles the single-id subcommands, which differ only in the
// client call and help text.
func runWindowID(name, help string, args []string, call func(string) error) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: deskwm window %s <id>\n", name)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, help)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "window %s requires exactly one <id>\n", name)
		fs.Usage()
		return 2
	}

	if err := call(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runWindowMove(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm window move <id> <x> <y>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Move a window. The position is clamped so the window stays reachable")
		fmt.Fprintln(os.Stderr, "and never slides under the taskbar. Maximized windows cannot move.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "window move requires <id> <x> <y>")
		fs.Usage()
		return 2
	}

	x, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid x: %s\n", fs.Arg(1))
		return 2
	}
	y, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid y: %s\n", fs.Arg(2))
		return 2
	}

	if err := client.MoveWindow(fs.Arg(0), x, y); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runWindowResize(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: deskwm window resize <id> <width> <height>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Resize a window. Sizes below the configured minimum are raised to it.")
		fmt.Fprintln(os.Stderr, "Non-resizable and maximized windows cannot resize.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "window resize requires <id> <width> <height>")
		fs.Usage()
		return 2
	}

	width, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid width: %s\n", fs.Arg(1))
		return 2
	}
	height, err := strconv.Atoi(fs.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid height: %s\n", fs.Arg(2))
		return 2
	}

	if err := client.ResizeWindow(fs.Arg(0), width, height); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
