package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jonathan/resume-ats/internal/types"
)

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

func (s *Server) metadata(r *http.Request, start time.Time) types.ResponseMetadata {
	return types.ResponseMetadata{
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		RequestID:        middleware.GetReqID(r.Context()),
	}
}

// errorBody converts err to the response error block. Details are the
// underlying error chain and are only exposed outside production.
func (s *Server) errorBody(err error) (int, *types.ErrorBody) {
	apiErr := classify(err)
	body := &types.ErrorBody{Code: apiErr.Code, Message: apiErr.Message}
	if !s.production() && apiErr.Cause != nil {
		body.Details = apiErr.Cause.Error()
	}
	return apiErr.Status, body
}

// errorResponse writes a failure envelope for err.
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, start time.Time, err error) {
	status, body := s.errorBody(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	s.jsonResponse(w, status, types.AnalyzeResponse{
		Success:  false,
		Error:    body,
		Metadata: s.metadata(r, start),
	})
}

func (s *Server) production() bool {
	return strings.EqualFold(strings.TrimSpace(s.config.Environment), EnvProduction)
}
