package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandCreateWindow   CommandType = "CREATE_WINDOW"
	CommandCloseWindow    CommandType = "CLOSE_WINDOW"
	CommandListWindows    CommandType = "LIST_WINDOWS"
	CommandFocusWindow    CommandType = "FOCUS_WINDOW"
	CommandMinimizeWindow CommandType = "MINIMIZE_WINDOW"
	CommandMaximizeWindow CommandType = "MAXIMIZE_WINDOW"
	CommandRestoreWindow  CommandType = "RESTORE_WINDOW"
	CommandMoveWindow     CommandType = "MOVE_WINDOW"
	CommandResizeWindow   CommandType = "RESIZE_WINDOW"
	CommandGetTaskbar     CommandType = "GET_TASKBAR"
	CommandGetStatus      CommandType = "GET_STATUS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// CreateWindowPayload represents the payload for CREATE_WINDOW
type CreateWindowPayload struct {
	Title     string `json:"title"`
	X         *int   `json:"x,omitempty"`
	Y         *int   `json:"y,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Resizable *bool  `json:"resizable,omitempty"`
}

// WindowIDPayload carries a window id for single-target commands
type WindowIDPayload struct {
	ID string `json:"id"`
}

// MoveWindowPayload represents the payload for MOVE_WINDOW
type MoveWindowPayload struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// ResizeWindowPayload represents the payload for RESIZE_WINDOW
type ResizeWindowPayload struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// WindowInfo describes one window in LIST_WINDOWS output
type WindowInfo struct {
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

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// CreatedData represents the data returned by CREATE_WINDOW
type CreatedData struct {
	Window WindowInfo `json:"window"`
}

// TaskbarItem describes one minimized window on the taskbar
type TaskbarItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TaskbarData represents the data returned by GET_TASKBAR
type TaskbarData struct {
	Items []TaskbarItem `json:"items"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	WindowCount    int    `json:"window_count"`
	MinimizedCount int    `json:"minimized_count"`
	ActiveWindowID string `json:"active_window_id,omitempty"`
	ViewportWidth  int    `json:"viewport_width"`
	ViewportHeight int    `json:"viewport_height"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	DaemonRunning  bool   `json:"daemon_running"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
