package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskwm/internal/ipc"
)

func descriptorFromInfo(info ipc.WindowInfo) WindowDescriptor {
	return WindowDescriptor{
		ID:     info.ID,
		Title:  info.Title,
		X:      info.X,
		Y:      info.Y,
		Width:  info.Width,
		Height: info.Height,
		Z:      info.Z,
		State:  info.State,
		Active: info.Active,
	}
}

func (s *Server) handleCreateWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args CreateWindowInput) (*mcpsdk.CallToolResult, CreateWindowOutput, error) {
	info, err := s.client.CreateWindow(ipc.CreateWindowPayload{
		Title:     args.Title,
		X:         args.X,
		Y:         args.Y,
		Width:     args.Width,
		Height:    args.Height,
		Resizable: args.Resizable,
	})
	if err != nil {
		return nil, CreateWindowOutput{}, err
	}
	return nil, CreateWindowOutput{Window: descriptorFromInfo(*info)}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	out := ListWindowsOutput{Windows: make([]WindowDescriptor, len(data.Windows))}
	for i, info := range data.Windows {
		out.Windows[i] = descriptorFromInfo(info)
	}
	return nil, out, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowIDOutput, error) {
	if err := s.client.CloseWindow(args.ID); err != nil {
		return nil, WindowIDOutput{}, err
	}
	return nil, WindowIDOutput{ID: args.ID, OK: true}, nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowIDOutput, error) {
	if err := s.client.FocusWindow(args.ID); err != nil {
		return nil, WindowIDOutput{}, err
	}
	return nil, WindowIDOutput{ID: args.ID, OK: true}, nil
}

func (s *Server) handleMinimizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowIDOutput, error) {
	if err := s.client.MinimizeWindow(args.ID); err != nil {
		return nil, WindowIDOutput{}, err
	}
	return nil, WindowIDOutput{ID: args.ID, OK: true}, nil
}

func (s *Server) handleMaximizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowIDOutput, error) {
	if err := s.client.MaximizeWindow(args.ID); err != nil {
		return nil, WindowIDOutput{}, err
	}
	return nil, WindowIDOutput{ID: args.ID, OK: true}, nil
}

func (s *Server) handleRestoreWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowIDOutput, error) {
	if err := s.client.RestoreWindow(args.ID); err != nil {
		return nil, WindowIDOutput{}, err
	}
	return nil, WindowIDOutput{ID: args.ID, OK: true}, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, WindowIDOutput, error) {
	if err := s.client.MoveWindow(args.ID, args.X, args.Y); err != nil {
		return nil, WindowIDOutput{}, err
	}
	return nil, WindowIDOutput{ID: args.ID, OK: true}, nil
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, WindowIDOutput, error) {
	if err := s.client.ResizeWindow(args.ID, args.Width, args.Height); err != nil {
		return nil, WindowIDOutput{}, err
	}
	return nil, WindowIDOutput{ID: args.ID, OK: true}, nil
}

func (s *Server) handleGetTaskbar(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetTaskbarInput) (*mcpsdk.CallToolResult, GetTaskbarOutput, error) {
	data, err := s.client.GetTaskbar()
	if err != nil {
		return nil, GetTaskbarOutput{}, err
	}
	out := GetTaskbarOutput{Entries: make([]TaskbarEntry, len(data.Items))}
	for i, item := range data.Items {
		out.Entries[i] = TaskbarEntry{ID: item.ID, Title: item.Title}
	}
	return nil, out, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		WindowCount:    status.WindowCount,
		MinimizedCount: status.MinimizedCount,
		ActiveWindowID: status.ActiveWindowID,
		ViewportWidth:  status.ViewportWidth,
		ViewportHeight: status.ViewportHeight,
		UptimeSeconds:  status.UptimeSeconds,
	}, nil
}
