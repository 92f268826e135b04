package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/deskwm/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// sendWindowCommand sends a single-target command identified by window id.
func (c *Client) sendWindowCommand(cmd CommandType, id string) error {
	payload, err := json.Marshal(WindowIDPayload{ID: id})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: cmd, Payload: payload})
	return err
}

// CreateWindow creates a window and returns its descriptor
func (c *Client) CreateWindow(p CreateWindowPayload) (*WindowInfo, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal create payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: CommandCreateWindow, Payload: payload})
	if err != nil {
		return nil, err
	}

	var created CreatedData
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		return nil, fmt.Errorf("failed to parse create data: %w", err)
	}

	return &created.Window, nil
}

// CloseWindow closes a window by id
func (c *Client) CloseWindow(id string) error {
	return c.sendWindowCommand(CommandCloseWindow, id)
}

// FocusWindow raises a window to the front
func (c *Client) FocusWindow(id string) error {
	return c.sendWindowCommand(CommandFocusWindow, id)
}

// MinimizeWindow hides a window onto the taskbar
func (c *Client) MinimizeWindow(id string) error {
	return c.sendWindowCommand(CommandMinimizeWindow, id)
}

// MaximizeWindow fills the work area with a window
func (c *Client) MaximizeWindow(id string) error {
	return c.sendWindowCommand(CommandMaximizeWindow, id)
}

// RestoreWindow returns a window to its saved geometry
func (c *Client) RestoreWindow(id string) error {
	return c.sendWindowCommand(CommandRestoreWindow, id)
}

// MoveWindow places a window at (x, y)
func (c *Client) MoveWindow(id string, x, y int) error {
	payload, err := json.Marshal(MoveWindowPayload{ID: id, X: x, Y: y})
	if err != nil {
		return fmt.Errorf("failed to marshal move payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandMoveWindow, Payload: payload})
	return err
}

// ResizeWindow sets a window's size
func (c *Client) ResizeWindow(id string, width, height int) error {
	payload, err := json.Marshal(ResizeWindowPayload{ID: id, Width: width, Height: height})
	if err != nil {
		return fmt.Errorf("failed to marshal resize payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandResizeWindow, Payload: payload})
	return err
}

// ListWindows retrieves all windows in stacking order (back to front)
func (c *Client) ListWindows() (*WindowsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListWindows})
	if err != nil {
		return nil, err
	}

	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}

	return &data, nil
}

// GetTaskbar retrieves taskbar entries for minimized windows
func (c *Client) GetTaskbar() (*TaskbarData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetTaskbar})
	if err != nil {
		return nil, err
	}

	var data TaskbarData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse taskbar data: %w", err)
	}

	return &data, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
