// Package server provides the HTTP API for résumé analysis.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jonathan/resume-ats/internal/archive"
	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/pipeline"
	authmw "github.com/jonathan/resume-ats/internal/server/middleware"
	"github.com/jonathan/resume-ats/internal/server/ratelimit"
	"github.com/jonathan/resume-ats/internal/types"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// EnvProduction hides error details from responses.
const EnvProduction = "production"

// DefaultMaxBodyBytes caps request bodies. Uploads arrive base64 encoded, so
// this is larger than the decoded file limit.
const DefaultMaxBodyBytes = 16 << 20

// Config holds server configuration.
type Config struct {
	Port           int
	Environment    string
	AllowedOrigins []string
	MaxBodyBytes   int64
	RateLimit      ratelimit.Config
	// JWT enables bearer authentication on analysis routes when set.
	JWT *config.JWTConfig
}

// Server serves the analysis API.
type Server struct {
	config      Config
	pipeline    *pipeline.Pipeline
	archive     archive.Store
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	handler     http.Handler
	httpServer  *http.Server
}

// New creates a server. store may be nil, in which case archived analyses
// are never found.
func New(cfg Config, p *pipeline.Pipeline, store archive.Store) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		config:      cfg,
		pipeline:    p,
		archive:     store,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
	}
	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	protect := func(h http.HandlerFunc) http.Handler { return h }
	if s.jwtService != nil {
		auth := authmw.AuthMiddleware(s.jwtService.AsTokenValidator(), s.unauthorized)
		protect = func(h http.HandlerFunc) http.Handler { return auth(h) }
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/resumeAI", protect(s.handleAnalyze))
	mux.Handle("POST /api/resumeAI/stream", protect(s.handleAnalyzeStream))
	mux.Handle("GET /api/analyses/{id}", protect(s.handleGetAnalysis))
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/ats-rules", s.handleATSRules)
	mux.HandleFunc("OPTIONS /api/", s.handlePreflight)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:     cfg.AllowedOrigins,
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"Content-Type", "Authorization"},
		ExposedHeaders:     []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		OptionsPassthrough: true,
		MaxAge:             300,
	})

	var h http.Handler = mux
	h = s.withRateLimit(h)
	h = corsHandler(h)
	h = s.withRecover(h)
	h = s.withLogging(h)
	h = middleware.RealIP(h)
	h = middleware.RequestID(h)
	s.handler = h

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second, // model calls plus rendering
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return err
	case <-ctx.Done():
	}

	log.Println("[server] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer s.rateLimiter.Stop()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("[server] stopped")
	return nil
}

// withLogging echoes the request id and logs each request with its status
// and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		w.Header().Set("X-Request-Id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Printf("[server] %s %s %d %v req=%s", r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

// withRecover turns panics into INTERNAL_ERROR responses.
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			stack := debug.Stack()
			log.Printf("[server] panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, stack)
			s.errorResponse(w, r, start, &APIError{
				Status:  http.StatusInternalServerError,
				Code:    CodeInternal,
				Message: msgInternal,
				Cause:   fmt.Errorf("panic: %v\n%s", rec, stack),
			})
		}()
		next.ServeHTTP(w, r)
	})
}

// withRateLimit applies per-client limits and sets the rate limit headers.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !allowed {
			if info.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds()+0.5)))
			}
			log.Printf("[rate-limit] %s exceeded limit %d on %s %s", clientID(r), info.Limit, r.Method, r.URL.Path)
			s.jsonResponse(w, http.StatusTooManyRequests, types.AnalyzeResponse{
				Error:    &types.ErrorBody{Code: CodeRateLimited, Message: msgRateLimited},
				Metadata: s.metadata(r, time.Now()),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) unauthorized(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusUnauthorized, types.AnalyzeResponse{
		Error:    &types.ErrorBody{Code: CodeUnauthorized, Message: msgUnauthorized},
		Metadata: s.metadata(r, time.Now()),
	})
}

// clientID identifies the caller by IP. RealIP has already applied
// X-Forwarded-For and X-Real-IP.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
