package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/deskwm/internal/runtimepath"
	"github.com/1broseidon/deskwm/internal/wm"
)

// Server handles IPC requests from clients. The window manager is not safe
// for concurrent use, so every command handler runs under mgrMu; connections
// are concurrent but manager access is serialized.
type Server struct {
	socketPath   string
	listener     net.Listener
	mgr          *wm.Manager
	mgrMu        sync.Mutex
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(mgr *wm.Manager) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		mgr:        mgr,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.mgrMu.Lock()
	defer s.mgrMu.Unlock()

	switch req.Command {
	case CommandCreateWindow:
		return s.handleCreateWindow(req.Payload)
	case CommandCloseWindow:
		return s.handleWindowCommand(req.Payload, func(id wm.ID) { s.mgr.CloseWindow(id) })
	case CommandListWindows:
		return s.handleListWindows()
	case CommandFocusWindow:
		return s.handleWindowCommand(req.Payload, func(id wm.ID) { s.mgr.FocusWindow(id) })
	case CommandMinimizeWindow:
		return s.handleWindowCommand(req.Payload, func(id wm.ID) { s.mgr.MinimizeWindow(id) })
	case CommandMaximizeWindow:
		return s.handleWindowCommand(req.Payload, func(id wm.ID) { s.mgr.MaximizeWindow(id) })
	case CommandRestoreWindow:
		return s.handleWindowCommand(req.Payload, func(id wm.ID) { s.mgr.RestoreWindow(id) })
	case CommandMoveWindow:
		return s.handleMoveWindow(req.Payload)
	case CommandResizeWindow:
		return s.handleResizeWindow(req.Payload)
	case CommandGetTaskbar:
		return s.handleGetTaskbar()
	case CommandGetStatus:
		return s.handleGetStatus()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) windowInfo(w *wm.Window) WindowInfo {
	activeID, hasActive := s.mgr.ActiveWindowID()
	r := w.Rect()
	return WindowInfo{
		ID:     string(w.ID()),
		Title:  w.Title(),
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
		Z:      w.Z(),
		State:  w.State().String(),
		Active: hasActive && activeID == w.ID(),
	}
}

func (s *Server) handleCreateWindow(payload json.RawMessage) *Response {
	var create CreateWindowPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &create); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid create payload: %v", err))
		}
	}
	if create.Title == "" {
		return NewErrorResponse("title is required")
	}

	w, err := s.mgr.CreateWindow(create.Title, nil, wm.WindowOptions{
		X:         create.X,
		Y:         create.Y,
		Width:     create.Width,
		Height:    create.Height,
		Resizable: create.Resizable,
	})
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to create window: %v", err))
	}

	resp, _ := NewOKResponse(CreatedData{Window: s.windowInfo(w)})
	return resp
}

// handleWindowCommand runs a single-target command after checking the id
// exists; the manager itself treats stale ids as no-ops, but clients want
// to hear about typos.
func (s *Server) handleWindowCommand(payload json.RawMessage, run func(wm.ID)) *Response {
	var target WindowIDPayload
	if err := json.Unmarshal(payload, &target); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid payload: %v", err))
	}
	if target.ID == "" {
		return NewErrorResponse("id is required")
	}
	id := wm.ID(target.ID)
	if _, ok := s.mgr.Window(id); !ok {
		return NewErrorResponse(fmt.Sprintf("Unknown window: %s", target.ID))
	}

	run(id)

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleListWindows() *Response {
	windows := s.mgr.WindowsByStacking()
	infos := make([]WindowInfo, len(windows))
	for i, w := range windows {
		infos[i] = s.windowInfo(w)
	}

	resp, _ := NewOKResponse(WindowsData{Windows: infos})
	return resp
}

func (s *Server) handleMoveWindow(payload json.RawMessage) *Response {
	var move MoveWindowPayload
	if err := json.Unmarshal(payload, &move); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid move payload: %v", err))
	}
	if move.ID == "" {
		return NewErrorResponse("id is required")
	}
	id := wm.ID(move.ID)
	w, ok := s.mgr.Window(id)
	if !ok {
		return NewErrorResponse(fmt.Sprintf("Unknown window: %s", move.ID))
	}
	if w.State() == wm.StateMaximized {
		return NewErrorResponse("cannot move a maximized window")
	}

	s.mgr.MoveWindow(id, move.X, move.Y)

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleResizeWindow(payload json.RawMessage) *Response {
	var resize ResizeWindowPayload
	if err := json.Unmarshal(payload, &resize); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid resize payload: %v", err))
	}
	if resize.ID == "" {
		return NewErrorResponse("id is required")
	}
	id := wm.ID(resize.ID)
	w, ok := s.mgr.Window(id)
	if !ok {
		return NewErrorResponse(fmt.Sprintf("Unknown window: %s", resize.ID))
	}
	if !w.Resizable() {
		return NewErrorResponse("window is not resizable")
	}
	if w.State() == wm.StateMaximized {
		return NewErrorResponse("cannot resize a maximized window")
	}

	s.mgr.ResizeWindow(id, resize.Width, resize.Height)

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleGetTaskbar() *Response {
	entries := s.mgr.TaskbarEntries()
	items := make([]TaskbarItem, len(entries))
	for i, e := range entries {
		items[i] = TaskbarItem{ID: string(e.ID), Title: e.Title}
	}

	resp, _ := NewOKResponse(TaskbarData{Items: items})
	return resp
}

func (s *Server) handleGetStatus() *Response {
	vp := s.mgr.Viewport()
	activeID, hasActive := s.mgr.ActiveWindowID()

	status := StatusData{
		WindowCount:    len(s.mgr.Windows()),
		MinimizedCount: len(s.mgr.TaskbarEntries()),
		ViewportWidth:  vp.Width,
		ViewportHeight: vp.Height,
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
		DaemonRunning:  true,
	}
	if hasActive {
		status.ActiveWindowID = string(activeID)
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// Do runs fn under the same lock the command handlers use. Display backends
// feeding pointer and chrome events into the manager from their own event
// loop must go through here so IPC commands never interleave with a gesture.
func (s *Server) Do(fn func(*wm.Manager)) {
	s.mgrMu.Lock()
	defer s.mgrMu.Unlock()
	fn(s.mgr)
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
