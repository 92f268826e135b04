// Package mcp exposes the window manager to MCP clients over stdio. Tools
// talk to a running deskwm daemon through the IPC socket, so the MCP server
// itself holds no window state.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/ipc"
)

const (
	ServerName    = "deskwm"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for desktop window control.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates a new MCP server backed by the daemon's IPC socket.
func NewServer() *Server {
	s := &Server{
		client: ipc.NewClient(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "create_window",
		Description: "Create a new window. Without an explicit position the window cascades down-right from the previous one. The new window is focused and raised to the front. Returns the window descriptor including its id.",
	}, s.handleCreateWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List all windows in stacking order, back to front. Each entry carries geometry, state (normal/minimized/maximized), and whether it is the active window.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window by id and destroy its surface. Focus transfers to the frontmost remaining window.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Raise a window to the front and give it focus.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Hide a window and add it to the taskbar. The window's geometry is preserved for restore. Minimizing a maximized window is rejected; restore it first.",
	}, s.handleMinimizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "maximize_window",
		Description: "Expand a window to fill the work area below the taskbar. The window's geometry is preserved for restore.",
	}, s.handleMaximizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "Return a minimized or maximized window to its exact previous geometry and focus it.",
	}, s.handleRestoreWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window to (x, y). The position is clamped so the window stays reachable: at least 100px remains inside the viewport and the title bar never goes above the taskbar. Rejected for maximized windows.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a window to width x height, clamped to the 200x100 minimum. Rejected for non-resizable and maximized windows.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_taskbar",
		Description: "List taskbar entries, one per minimized window, in the order they were minimized.",
	}, s.handleGetTaskbar)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report daemon status: window counts, active window id, viewport size, and uptime.",
	}, s.handleGetStatus)
}
