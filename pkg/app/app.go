// Package app is the command surface shared by every host boundary. It owns
// the recording session, the global input listener and the event broadcaster,
// and exposes the permission, device and recording commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/offlinefirst/cursorcast/pkg/config"
	"github.com/offlinefirst/cursorcast/pkg/devices"
	"github.com/offlinefirst/cursorcast/pkg/emit"
	"github.com/offlinefirst/cursorcast/pkg/input"
	"github.com/offlinefirst/cursorcast/pkg/logging"
	"github.com/offlinefirst/cursorcast/pkg/permissions"
	"github.com/offlinefirst/cursorcast/pkg/session"
)

// Options controls App construction. Source and Devices override the
// providers selected by Config.
type Options struct {
	Config  config.Config
	Logger  *slog.Logger
	Clock   func() time.Time
	Source  input.Source
	Devices devices.Provider
	Lookup  permissions.LookupEnvFunc
}

// App wires the session, listener and broadcaster together.
type App struct {
	session  *session.Session
	listener *input.Listener
	events   *emit.Broadcaster
	devices  devices.Provider
	lookup   permissions.LookupEnvFunc
	buffer   int
	logger   *slog.Logger
}

// Status is the externally visible recording and capture state.
type Status struct {
	Recording     bool        `json:"recording"`
	SessionID     string      `json:"session_id,omitempty"`
	StartedAt     *time.Time  `json:"started_at,omitempty"`
	Listener      input.State `json:"listener"`
	ListenerError string      `json:"listener_error,omitempty"`
	Clicks        ClickStats  `json:"clicks"`
}

// ClickStats mirrors input.Stats for JSON consumers.
type ClickStats struct {
	Emitted   uint64 `json:"emitted"`
	Discarded uint64 `json:"discarded"`
	Failed    uint64 `json:"failed"`
}

// New builds an App. The listener is not started until Run.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	provider := opts.Devices
	if provider == nil {
		p, err := devices.NewProvider(opts.Config.Devices.Provider)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	source := opts.Source
	if source == nil {
		source = input.NewSource(opts.Config.Listener.Source, input.SyntheticOptions{
			Interval: time.Duration(opts.Config.Listener.SyntheticIntervalMS) * time.Millisecond,
			Loop:     true,
		})
	}

	sess := session.New(session.Options{Clock: clock})
	events := emit.NewBroadcaster()
	listener, err := input.NewListener(input.ListenerOptions{
		Source:  source,
		Session: sess,
		Emitter: events,
		Clock:   clock,
		Logger:  logger.With("component", "input"),
	})
	if err != nil {
		return nil, fmt.Errorf("initialise input listener: %w", err)
	}

	return &App{
		session:  sess,
		listener: listener,
		events:   events,
		devices:  provider,
		lookup:   opts.Lookup,
		buffer:   opts.Config.Emitter.Buffer,
		logger:   logger,
	}, nil
}

// Run starts the global input listener. Only the first call has an effect;
// the listener lives until ctx ends or its subscription fails.
func (a *App) Run(ctx context.Context) {
	a.listener.Start(ctx)
}

// ListenerDone is closed when the input listener ends.
func (a *App) ListenerDone() <-chan struct{} {
	return a.listener.Done()
}

// Subscribe attaches a new consumer of outbound events.
func (a *App) Subscribe() (*emit.Subscription, error) {
	return a.events.Subscribe(a.buffer)
}

// Close releases every event subscription.
func (a *App) Close() {
	a.events.Close()
}

// CheckPermissions reports whether capture is permitted.
func (a *App) CheckPermissions() bool {
	return permissions.Check()
}

// PermissionReport returns the detailed per-capability probe results.
func (a *App) PermissionReport() permissions.Report {
	return permissions.Probe(a.lookup)
}

// ListCameras enumerates camera devices.
func (a *App) ListCameras(ctx context.Context) ([]devices.Camera, error) {
	cameras, err := a.devices.Cameras(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}
	return cameras, nil
}

// ListScreens enumerates screens and windows.
func (a *App) ListScreens(ctx context.Context) ([]devices.Screen, error) {
	screens, err := a.devices.Screens(ctx)
	if err != nil {
		return nil, fmt.Errorf("list screens: %w", err)
	}
	return screens, nil
}

// StartRecording begins a session. It returns session.ErrAlreadyRecording
// when one is active.
func (a *App) StartRecording() error {
	snap, err := a.session.Start()
	if err != nil {
		return err
	}
	a.logger.Info("recording started", "session_id", snap.ID, "listener", a.listener.State())
	return nil
}

// StopRecording ends the active session. It returns session.ErrNotRecording
// when idle.
func (a *App) StopRecording() error {
	summary, err := a.session.Stop()
	if err != nil {
		return err
	}
	a.logger.Info("recording stopped", "session_id", summary.ID, "duration", summary.Duration().String())
	return nil
}

// Status reports the session snapshot plus listener health.
func (a *App) Status() Status {
	snap := a.session.Snapshot()
	stats := a.listener.Stats()
	status := Status{
		Recording: snap.Recording(),
		SessionID: snap.ID,
		Listener:  a.listener.State(),
		Clicks: ClickStats{
			Emitted:   stats.Emitted,
			Discarded: stats.Discarded,
			Failed:    stats.Failed,
		},
	}
	if snap.Recording() {
		started := snap.StartedAt.UTC()
		status.StartedAt = &started
	}
	if err := a.listener.Err(); err != nil && !errors.Is(err, context.Canceled) {
		status.ListenerError = err.Error()
	}
	return status
}

// IsConflict reports whether err is a rejected session transition.
func IsConflict(err error) bool {
	return errors.Is(err, session.ErrAlreadyRecording) || errors.Is(err, session.ErrNotRecording)
}
