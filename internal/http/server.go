package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"runway/internal/classify"
	"runway/internal/remote"
	"runway/internal/store"
)

type Server struct {
	http.Server
	store       *store.Store
	classifier  classify.Classifier
	remote      remote.Client
	userID      string
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run http.Server.
// remoteClient may be nil; the remote load endpoint then responds 503.
func NewServer(addr string, st *store.Store, classifier classify.Classifier, remoteClient remote.Client, userID string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		store:       st,
		classifier:  classifier,
		remote:      remoteClient,
		userID:      userID,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.withRequestLogging(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withRequestLogging(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withRequestLogging(s.handleDeleteTransaction))
	mux.HandleFunc("PATCH /api/transactions/{id}/amount", s.withRequestLogging(s.handleEditAmount))

	mux.HandleFunc("GET /api/recurring", s.withRequestLogging(s.handleListRecurring))
	mux.HandleFunc("POST /api/recurring", s.withRequestLogging(s.handleCreateRecurring))

	mux.HandleFunc("GET /api/balances", s.withRequestLogging(s.handleGetBalances))
	mux.HandleFunc("PUT /api/balances", s.withRequestLogging(s.handleSetBalances))

	mux.HandleFunc("GET /api/runway", s.withRequestLogging(s.handleRunway))
	mux.HandleFunc("GET /api/summary/month", s.withRequestLogging(s.handleMonthSummary))
	mux.HandleFunc("GET /api/summary/year", s.withRequestLogging(s.handleYearSummary))
	mux.HandleFunc("GET /api/summary/categories", s.withRequestLogging(s.handleCategoryTotals))
	mux.HandleFunc("GET /api/categories", s.withRequestLogging(s.handleListCategories))

	mux.HandleFunc("POST /api/sync/load", s.withRequestLogging(s.handleRemoteLoad))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withRequestLogging adds rate limiting and request logging to responses
func (s *Server) withRequestLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := r.Context()

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Rate limit mutating requests only
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
