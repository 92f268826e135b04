package mcp

// CreateWindowInput is the input for the create_window tool.
type CreateWindowInput struct {
	Title     string `json:"title" jsonschema:"required,Window title shown in the title bar and taskbar"`
	X         *int   `json:"x,omitempty" jsonschema:"Optional x position. When omitted the window is cascaded."`
	Y         *int   `json:"y,omitempty" jsonschema:"Optional y position. When omitted the window is cascaded."`
	Width     int    `json:"width,omitempty" jsonschema:"Window width in pixels (default: 600, minimum: 200)"`
	Height    int    `json:"height,omitempty" jsonschema:"Window height in pixels (default: 400, minimum: 100)"`
	Resizable *bool  `json:"resizable,omitempty" jsonschema:"Whether the window can be resized (default: true)"`
}

// WindowDescriptor describes a single window.
type WindowDescriptor struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Z      int    `json:"z"`
	State  string `json:"state"`
	Active bool   `json:"active"`
}

// CreateWindowOutput is the output for the create_window tool.
type CreateWindowOutput struct {
	Window WindowDescriptor `json:"window"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowDescriptor `json:"windows"`
}

// WindowIDInput is the input for tools targeting a single window.
type WindowIDInput struct {
	ID string `json:"id" jsonschema:"required,Window id as returned by create_window or list_windows"`
}

// WindowIDOutput is the output for tools targeting a single window.
type WindowIDOutput struct {
	ID string `json:"id"`
	OK bool   `json:"ok"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	ID string `json:"id" jsonschema:"required,Window id"`
	X  int    `json:"x" jsonschema:"required,Target x position"`
	Y  int    `json:"y" jsonschema:"required,Target y position"`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	ID     string `json:"id" jsonschema:"required,Window id"`
	Width  int    `json:"width" jsonschema:"required,Target width in pixels"`
	Height int    `json:"height" jsonschema:"required,Target height in pixels"`
}

// TaskbarEntry describes one minimized window on the taskbar.
type TaskbarEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// GetTaskbarInput is the input for the get_taskbar tool.
type GetTaskbarInput struct{}

// GetTaskbarOutput is the output for the get_taskbar tool.
type GetTaskbarOutput struct {
	Entries []TaskbarEntry `json:"entries"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	WindowCount    int    `json:"window_count"`
	MinimizedCount int    `json:"minimized_count"`
	ActiveWindowID string `json:"active_window_id,omitempty"`
	ViewportWidth  int    `json:"viewport_width"`
	ViewportHeight int    `json:"viewport_height"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
}
