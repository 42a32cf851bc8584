// Package httpapi exposes the command surface over local HTTP and streams
// click events to subscribers with Server-Sent Events.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/offlinefirst/cursorcast/pkg/app"
	"github.com/offlinefirst/cursorcast/pkg/logging"
)

// Options configures the HTTP host.
type Options struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       *slog.Logger
}

// Server serves the command surface and the click event stream over HTTP.
type Server struct {
	app     *app.App
	address string
	logger  *slog.Logger
	server  *http.Server

	closing   chan struct{}
	closeOnce sync.Once
}

// NewServer binds the command surface to an address. Call Start to listen.
func NewServer(a *app.App, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		app:     a,
		address: opts.Address,
		logger:  logger,
		closing: make(chan struct{}),
	}
	s.server = &http.Server{
		Addr:         opts.Address,
		Handler:      s.routes(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	s.server.RegisterOnShutdown(s.signalClosing)
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/permissions", s.handlePermissions)
	mux.HandleFunc("/permissions/report", s.handlePermissionReport)
	mux.HandleFunc("/cameras", s.handleCameras)
	mux.HandleFunc("/screens", s.handleScreens)
	mux.HandleFunc("/recording", s.handleRecording)
	mux.HandleFunc("/recording/start", s.handleStart)
	mux.HandleFunc("/recording/stop", s.handleStop)
	mux.HandleFunc("/events", s.handleEvents)
	return mux
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on l until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http host listening", "address", l.Addr().String())
		if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http host")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}

func (s *Server) signalClosing() {
	s.closeOnce.Do(func() { close(s.closing) })
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
}

func (s *Server) handlePermissions(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"granted": s.app.CheckPermissions()})
}

func (s *Server) handlePermissionReport(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, s.app.PermissionReport())
}

func (s *Server) handleCameras(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	cameras, err := s.app.ListCameras(r.Context())
	if err != nil {
		s.logger.Error("camera enumeration failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, cameras)
}

func (s *Server) handleScreens(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	screens, err := s.app.ListScreens(r.Context())
	if err != nil {
		s.logger.Error("screen enumeration failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, screens)
}

func (s *Server) handleRecording(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, s.app.Status())
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.app.StartRecording)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, s.app.StopRecording)
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request, op func() error) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if err := op(); err != nil {
		if app.IsConflict(err) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	http.Error(w, method+" only", http.StatusMethodNotAllowed)
	return false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
