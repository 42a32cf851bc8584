package mcphost

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/offlinefirst/cursorcast/pkg/app"
	"github.com/offlinefirst/cursorcast/pkg/config"
	"github.com/offlinefirst/cursorcast/pkg/devices"
	"github.com/offlinefirst/cursorcast/pkg/input"
)

func newTestHost(t *testing.T) *Host {
	t.Helper()
	a, err := app.New(app.Options{
		Config: config.Default(),
		Source: input.NewSyntheticSource(input.SyntheticOptions{Script: []input.RawEvent{{Kind: input.KindOther}}}),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(a.Close)
	return New(a, Options{Version: "test"})
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil {
		t.Fatalf("nil tool result")
	}
	for _, c := range res.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			return tc.Text
		case *mcp.TextContent:
			return tc.Text
		}
	}
	t.Fatalf("no text content in %+v", res)
	return ""
}

func TestRecordingTools(t *testing.T) {
	h := newTestHost(t)
	ctx := context.Background()

	res, err := h.stopRecording(ctx, mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "not recording") {
		t.Fatalf("expected not recording error, got %+v", res)
	}

	res, err = h.startRecording(ctx, mcp.CallToolRequest{})
	if err != nil || res.IsError {
		t.Fatalf("start failed: %+v (%v)", res, err)
	}
	res, _ = h.startRecording(ctx, mcp.CallToolRequest{})
	if !res.IsError || !strings.Contains(resultText(t, res), "already recording") {
		t.Fatalf("expected already recording error, got %+v", res)
	}

	res, err = h.recordingStatus(ctx, mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var status app.Status
	if err := json.Unmarshal([]byte(resultText(t, res)), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if !status.Recording || status.SessionID == "" {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestDeviceAndPermissionTools(t *testing.T) {
	h := newTestHost(t)
	ctx := context.Background()

	res, err := h.checkPermissions(ctx, mcp.CallToolRequest{})
	if err != nil || !strings.Contains(resultText(t, res), `"granted":true`) {
		t.Fatalf("unexpected permissions result %+v (%v)", res, err)
	}

	res, err = h.listCameras(ctx, mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("cameras: %v", err)
	}
	var cameras []devices.Camera
	if err := json.Unmarshal([]byte(resultText(t, res)), &cameras); err != nil {
		t.Fatalf("decode cameras: %v", err)
	}
	if len(cameras) != 2 {
		t.Fatalf("expected two cameras, got %d", len(cameras))
	}

	res, err = h.listScreens(ctx, mcp.CallToolRequest{})
	if err != nil || !strings.Contains(resultText(t, res), "main_display") {
		t.Fatalf("unexpected screens result %+v (%v)", res, err)
	}
}

func TestToParams(t *testing.T) {
	params, err := toParams(input.ClickEvent{X: 1.5, Y: 2, Timestamp: 99})
	if err != nil {
		t.Fatalf("to params: %v", err)
	}
	if params["x"] != 1.5 || params["y"] != 2.0 || params["timestamp"] != 99.0 {
		t.Fatalf("unexpected params %v", params)
	}
}
