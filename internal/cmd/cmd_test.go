package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/offlinefirst/cursorcast/pkg/config"
	"github.com/offlinefirst/cursorcast/pkg/devices"
	"github.com/offlinefirst/cursorcast/pkg/permissions"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv() *Env {
	cfg := config.Default()
	cfg.Listener.Source = "synthetic"
	cfg.Listener.SyntheticIntervalMS = 5
	cfg.HTTP.Address = "127.0.0.1:0"
	return &Env{Config: cfg, Logger: newTestLogger()}
}

func parseFlags(t *testing.T, cmd command, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if cmd.configure != nil {
		cmd.configure(fs)
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func newTestRoot() (*RootCommand, *bytes.Buffer) {
	rc := NewRootCommand()
	var stdout bytes.Buffer
	rc.stdout = &stdout
	rc.stderr = io.Discard
	return rc, &stdout
}

func TestVersionCommand(t *testing.T) {
	origVersion, origGOOS := runtimeVersion, runtimeGOOS
	runtimeVersion = func() string { return "go1.24.0" }
	runtimeGOOS = func() string { return "linux" }
	defer func() { runtimeVersion, runtimeGOOS = origVersion, origGOOS }()

	rc, stdout := newTestRoot()
	if err := rc.Execute([]string{"version"}); err != nil {
		t.Fatalf("version returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "(go1.24.0/linux)") {
		t.Fatalf("unexpected version output %q", stdout.String())
	}
}

func TestHelpListsCommands(t *testing.T) {
	rc, stdout := newTestRoot()
	if err := rc.Execute(nil); err != nil {
		t.Fatalf("help returned error: %v", err)
	}
	for _, name := range []string{"serve", "mcp", "devices", "doctor", "version", "-log-format"} {
		if !strings.Contains(stdout.String(), name) {
			t.Fatalf("help output missing %q: %s", name, stdout.String())
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	rc, _ := newTestRoot()
	if err := rc.Execute([]string{"record"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestInvalidLogLevelOverride(t *testing.T) {
	rc, _ := newTestRoot()
	if err := rc.Execute([]string{"--log-level", "loud", "doctor"}); err == nil {
		t.Fatalf("expected error for invalid log level")
	}
}

func TestDevicesCommand(t *testing.T) {
	cmd := newDevicesCommand()
	fs := parseFlags(t, cmd, "-provider", "static")

	var stdout bytes.Buffer
	if err := cmd.run(fs, nil, newTestEnv(), &stdout, io.Discard); err != nil {
		t.Fatalf("devices returned error: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"FaceTime HD Camera", "1280x720", "continuity", "main_display", "Main Display"} {
		if !strings.Contains(out, want) {
			t.Fatalf("devices output missing %q: %s", want, out)
		}
	}
}

func TestDevicesCommandJSON(t *testing.T) {
	cmd := newDevicesCommand()
	fs := parseFlags(t, cmd, "-json")

	var stdout bytes.Buffer
	if err := cmd.run(fs, nil, newTestEnv(), &stdout, io.Discard); err != nil {
		t.Fatalf("devices returned error: %v", err)
	}
	var decoded struct {
		Cameras []devices.Camera `json:"cameras"`
		Screens []devices.Screen `json:"screens"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &decoded); err != nil {
		t.Fatalf("decode devices json: %v", err)
	}
	if len(decoded.Cameras) != 2 || len(decoded.Screens) != 1 {
		t.Fatalf("unexpected devices %+v", decoded)
	}
	if decoded.Cameras[1].Resolution == nil || decoded.Cameras[1].Resolution.Width != 1920 {
		t.Fatalf("unexpected continuity camera %+v", decoded.Cameras[1])
	}
}

func TestDevicesCommandRejectsUnknownProvider(t *testing.T) {
	cmd := newDevicesCommand()
	fs := parseFlags(t, cmd, "-provider", "webcamd")
	if err := cmd.run(fs, nil, newTestEnv(), io.Discard, io.Discard); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestDoctorCommand(t *testing.T) {
	orig := probeReport
	probeReport = func() permissions.Report {
		return permissions.Report{
			Accessibility:   permissions.ProbeResult{Status: permissions.StatusGranted},
			ScreenRecording: permissions.ProbeResult{Status: permissions.StatusDenied, Guidance: "enable screen recording"},
			Camera:          permissions.ProbeResult{Status: permissions.StatusPromptRequired},
			Microphone:      permissions.ProbeResult{},
		}
	}
	defer func() { probeReport = orig }()

	cmd := newDoctorCommand()
	var stdout bytes.Buffer
	if err := cmd.run(parseFlags(t, cmd), nil, newTestEnv(), &stdout, io.Discard); err != nil {
		t.Fatalf("doctor returned error: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"accessibility", "granted", "denied", "enable screen recording", "prompt", "unknown", "synthetic", "not_applicable"} {
		if !strings.Contains(out, want) {
			t.Fatalf("doctor output missing %q: %s", want, out)
		}
	}
}

func TestServeCommandStopsOnSignal(t *testing.T) {
	orig := signalContext
	signalContext = func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), 100*time.Millisecond)
	}
	defer func() { signalContext = orig }()

	cmd := newServeCommand()
	var stdout bytes.Buffer
	if err := cmd.run(parseFlags(t, cmd), nil, newTestEnv(), &stdout, io.Discard); err != nil {
		t.Fatalf("serve returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "listening on 127.0.0.1:0") {
		t.Fatalf("unexpected serve output %q", stdout.String())
	}
}

func TestMCPCommandEndsWithInput(t *testing.T) {
	origSignal, origInput := signalContext, mcpInput
	signalContext = func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.Background(), time.Second)
	}
	mcpInput = strings.NewReader("")
	defer func() { signalContext, mcpInput = origSignal, origInput }()

	cmd := newMCPCommand()
	if err := cmd.run(parseFlags(t, cmd), nil, newTestEnv(), io.Discard, io.Discard); err != nil {
		t.Fatalf("mcp returned error: %v", err)
	}
}

func TestVersionSkipsConfigLoading(t *testing.T) {
	rc, stdout := newTestRoot()
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	if err := rc.Execute([]string{"--config", missing, "version"}); err != nil {
		t.Fatalf("version should not load config: %v", err)
	}
	if stdout.Len() == 0 {
		t.Fatalf("expected version output")
	}
}

func TestMissingConfigFailsConfiguredCommand(t *testing.T) {
	rc, _ := newTestRoot()
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	if err := rc.Execute([]string{"--config", missing, "doctor"}); err == nil {
		t.Fatalf("expected error for missing config")
	}
}
