package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// handleEvents streams outbound events as Server-Sent Events. Slow readers
// lose events rather than stalling the capture loop.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// The server write timeout would otherwise cut the stream.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		s.logger.Debug("cannot clear write deadline", "error", err)
	}

	sub, err := s.app.Subscribe()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, ": subscribed\n\n")
	flusher.Flush()

	s.logger.Debug("event subscriber attached", "remote", r.RemoteAddr)
	defer s.logger.Debug("event subscriber detached", "remote", r.RemoteAddr)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.closing:
			return
		case msg, ok := <-sub.C():
			if !ok {
				return
			}
			data, err := json.Marshal(msg.Payload)
			if err != nil {
				s.logger.Warn("dropping unencodable event", "event", msg.Name, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Name, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
