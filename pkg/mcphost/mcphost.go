// Package mcphost exposes the command surface as MCP tools over stdio and
// forwards click events to connected clients as notifications.
package mcphost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/offlinefirst/cursorcast/pkg/app"
	"github.com/offlinefirst/cursorcast/pkg/logging"
)

// Options configures the MCP host.
type Options struct {
	Name    string
	Version string
	Logger  *slog.Logger
}

// Host binds an App to an MCP server.
type Host struct {
	app    *app.App
	mcp    *server.MCPServer
	logger *slog.Logger
}

// New registers every command as an MCP tool.
func New(a *app.App, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	name := opts.Name
	if name == "" {
		name = "cursorcast"
	}
	h := &Host{
		app:    a,
		mcp:    server.NewMCPServer(name, opts.Version, server.WithToolCapabilities(false)),
		logger: logger,
	}

	h.mcp.AddTool(mcp.NewTool("check_permissions",
		mcp.WithDescription("Report whether capture permissions are granted"),
	), h.checkPermissions)
	h.mcp.AddTool(mcp.NewTool("list_cameras",
		mcp.WithDescription("List camera devices available for recording"),
	), h.listCameras)
	h.mcp.AddTool(mcp.NewTool("list_screens",
		mcp.WithDescription("List screens and windows available for recording"),
	), h.listScreens)
	h.mcp.AddTool(mcp.NewTool("start_recording",
		mcp.WithDescription("Start a recording session; clicks are captured while it is active"),
	), h.startRecording)
	h.mcp.AddTool(mcp.NewTool("stop_recording",
		mcp.WithDescription("Stop the active recording session"),
	), h.stopRecording)
	h.mcp.AddTool(mcp.NewTool("recording_status",
		mcp.WithDescription("Report recording state and input listener health"),
	), h.recordingStatus)

	return h
}

// Serve speaks MCP on the given streams and forwards outbound events as
// notifications until ctx is cancelled.
func (h *Host) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	sub, err := h.app.Subscribe()
	if err != nil {
		return fmt.Errorf("subscribe to events: %w", err)
	}
	defer sub.Close()

	go func() {
		for msg := range sub.C() {
			params, err := toParams(msg.Payload)
			if err != nil {
				h.logger.Warn("dropping unencodable event", "event", msg.Name, "error", err)
				continue
			}
			h.mcp.SendNotificationToAllClients(msg.Name, params)
		}
	}()

	stdio := server.NewStdioServer(h.mcp)
	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}

func (h *Host) checkPermissions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]bool{"granted": h.app.CheckPermissions()})
}

func (h *Host) listCameras(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cameras, err := h.app.ListCameras(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(cameras)
}

func (h *Host) listScreens(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	screens, err := h.app.ListScreens(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(screens)
}

func (h *Host) startRecording(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.app.StartRecording(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("recording started"), nil
}

func (h *Host) stopRecording(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.app.StopRecording(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("recording stopped"), nil
}

func (h *Host) recordingStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.app.Status())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func toParams(payload any) (map[string]any, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, err
	}
	return params, nil
}
