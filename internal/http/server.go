// Package http exposes the JSON API: catalog, orders, transactions
// and the financial dashboard.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"grafica/internal/cache"
	"grafica/internal/export"
	"grafica/internal/ledger"
	"grafica/internal/log"
	"grafica/internal/services"
)

type Server struct {
	http.Server

	catalog *services.CatalogService
	orders  *services.OrderService
	txs     *services.TransactionService
	reports *services.ReportService

	// exporter is optional; POST /dashboard/export answers 503 when nil.
	exporter export.ReportWriter

	defaultSource services.Source
	rateLimiter   *rateLimiter

	// resultCache holds one pipeline result per source. Any write to
	// orders or transactions purges it.
	resultCache  *cache.LRUCache[ledger.Result]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run http.Server.
func NewServer(addr string, catalog *services.CatalogService, orders *services.OrderService,
	txs *services.TransactionService, reports *services.ReportService,
	exporter export.ReportWriter, defaultSource services.Source) *Server {

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		catalog:       catalog,
		orders:        orders,
		txs:           txs,
		reports:       reports,
		exporter:      exporter,
		defaultSource: defaultSource,
		rateLimiter:   newRateLimiter(),
		resultCache:   cache.NewLRUCache[ledger.Result](8, 5*time.Minute),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.resultCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /services", s.withMiddleware(s.handleListServices))
	mux.HandleFunc("POST /services", s.withMiddleware(s.handleCreateService))
	mux.HandleFunc("GET /services/{id}", s.withMiddleware(s.handleGetService))
	mux.HandleFunc("PUT /services/{id}", s.withMiddleware(s.handleUpdateService))
	mux.HandleFunc("DELETE /services/{id}", s.withMiddleware(s.handleDeleteService))

	mux.HandleFunc("GET /orders", s.withMiddleware(s.handleListOrders))
	mux.HandleFunc("POST /orders", s.withMiddleware(s.handleCreateOrder))
	mux.HandleFunc("GET /orders/{id}", s.withMiddleware(s.handleGetOrder))
	mux.HandleFunc("PUT /orders/{id}", s.withMiddleware(s.handleUpdateOrder))
	mux.HandleFunc("DELETE /orders/{id}", s.withMiddleware(s.handleDeleteOrder))

	mux.HandleFunc("GET /transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("POST /transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))

	mux.HandleFunc("GET /dashboard/summary", s.withMiddleware(s.handleDashboardSummary))
	mux.HandleFunc("GET /dashboard/chart", s.withMiddleware(s.handleDashboardChart))
	mux.HandleFunc("GET /dashboard/report", s.withMiddleware(s.handleDashboardReport))
	mux.HandleFunc("POST /dashboard/export", s.withMiddleware(s.handleDashboardExport))

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withMiddleware adds security headers, rate limiting and request
// logging to a handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			log.FieldComponent, log.ComponentHTTP,
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				log.FieldComponent, log.ComponentHTTP,
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			log.FieldComponent, log.ComponentHTTP,
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

type requestIDKey struct{}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// invalidateDashboard drops every cached pipeline result. Called on
// any write to orders or transactions.
func (s *Server) invalidateDashboard() {
	s.resultCache.Purge()
}

// buildResult returns the pipeline result for a source, cached for a
// few minutes between writes.
func (s *Server) buildResult(ctx context.Context, source services.Source) (ledger.Result, error) {
	key := string(source)
	if res, found := s.resultCache.Get(key); found {
		slog.DebugContext(ctx, "Dashboard cache hit", "source", key)
		return res, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	res, err := s.reports.Build(cctx, source)
	if err != nil {
		return ledger.Result{}, err
	}

	s.resultCache.Set(key, res)
	return res, nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
