package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/jonathan/resume-ats/internal/pipeline"
)

// SSEWriter writes Server-Sent Events. It is safe for concurrent use.
type SSEWriter struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares w for an event stream.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends one event with a JSON payload.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// handleAnalyzeStream runs an analysis and streams progress as "step"
// events. The result is sent as a "complete" event carrying the same
// envelope as POST /api/resumeAI, or an "error" event carrying the error
// block. Request validation failures are answered as plain JSON before the
// stream opens.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := s.decodeAnalyzeRequest(w, r)
	if err != nil {
		s.errorResponse(w, r, start, err)
		return
	}

	// The logging middleware wraps w, so unwrap to reach the Flusher.
	stream, err := NewSSEWriter(flushable(w))
	if err != nil {
		s.errorResponse(w, r, start, err)
		return
	}

	onProgress := func(ev pipeline.ProgressEvent) {
		if err := stream.WriteEvent("step", ev); err != nil {
			log.Printf("[server] error writing SSE event: %v", err)
		}
	}

	out, err := s.pipeline.RunWithProgress(r.Context(), req, s.metadata(r, start).RequestID, onProgress)
	if err != nil {
		_, body := s.errorBody(err)
		stream.WriteEvent("error", body) //nolint:errcheck
		return
	}
	stream.WriteEvent("complete", s.successResponse(r, start, out)) //nolint:errcheck
}

// flushable returns the innermost writer that can flush.
func flushable(w http.ResponseWriter) http.ResponseWriter {
	for {
		if _, ok := w.(http.Flusher); ok {
			return w
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return w
		}
		w = u.Unwrap()
	}
}
