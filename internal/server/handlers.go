package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-ats/internal/archive"
	"github.com/jonathan/resume-ats/internal/atsrules"
	"github.com/jonathan/resume-ats/internal/pipeline"
	"github.com/jonathan/resume-ats/internal/skillmaps"
	"github.com/jonathan/resume-ats/internal/types"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// RulesResponse is the body of GET /api/ats-rules.
type RulesResponse struct {
	atsrules.Table
	Roles     []string `json:"roles"`
	Companies []string `json:"companies"`
}

// ArchivedAnalysis is the body of GET /api/analyses/{id}.
type ArchivedAnalysis struct {
	Success         bool            `json:"success"`
	ID              string          `json:"id"`
	CreatedAt       string          `json:"createdAt"`
	JobRole         string          `json:"jobRole"`
	Company         string          `json:"company"`
	AdvisorFallback bool            `json:"advisorFallback"`
	Data            json.RawMessage `json:"data"`
}

// handleAnalyze runs one analysis and returns the full payload.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, err := s.decodeAnalyzeRequest(w, r)
	if err != nil {
		s.errorResponse(w, r, start, err)
		return
	}

	out, err := s.pipeline.Run(r.Context(), req, s.metadata(r, start).RequestID)
	if err != nil {
		s.errorResponse(w, r, start, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.successResponse(r, start, out))
}

func (s *Server) successResponse(r *http.Request, start time.Time, out *pipeline.Output) types.AnalyzeResponse {
	meta := s.metadata(r, start)
	meta.AnalysisID = out.AnalysisID
	meta.AdvisorFallback = out.AdvisorFallback
	return types.AnalyzeResponse{Success: true, Data: &out.Data, Metadata: meta}
}

// decodeAnalyzeRequest reads and validates the request body.
func (s *Server) decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (*types.AnalyzeRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, badRequest(CodeInvalidRequest, "Request body is too large", err)
		}
		return nil, badRequest(CodeInvalidRequest, "Request body could not be read", err)
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil, badRequest(CodeInvalidRequest, msgBodyRequired, nil)
	}

	var req types.AnalyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, badRequest(CodeInvalidRequest, "Request body must be a JSON object", err)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
	})
}

// handleATSRules publishes the scoring tables and known roles and companies.
func (s *Server) handleATSRules(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, RulesResponse{
		Table:     atsrules.Snapshot(),
		Roles:     skillmaps.RoleNames(),
		Companies: skillmaps.CompanyNames(),
	})
}

// handleGetAnalysis returns an archived analysis by id.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	notFound := &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: msgAnalysisAbsent}

	if s.archive == nil {
		s.errorResponse(w, r, start, notFound)
		return
	}

	rec, err := s.archive.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, archive.ErrNotFound) {
		s.errorResponse(w, r, start, notFound)
		return
	}
	if err != nil {
		s.errorResponse(w, r, start, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ArchivedAnalysis{
		Success:         true,
		ID:              rec.ID,
		CreatedAt:       rec.CreatedAt.UTC().Format(time.RFC3339),
		JobRole:         rec.JobRole,
		Company:         rec.Company,
		AdvisorFallback: rec.Fallback,
		Data:            rec.Response,
	})
}

// handlePreflight answers CORS preflight requests. Headers are set by the
// cors middleware.
func (s *Server) handlePreflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
