package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fitlog/internal/advisor"
	"fitlog/internal/cache"
	"fitlog/internal/core"
	applog "fitlog/internal/log"
	"fitlog/internal/services"
	appweb "fitlog/web"
)

const recordsCacheKey = "all"

type Server struct {
	http.Server
	templates   *template.Template
	records     *services.RecordService
	reports     *services.ReportService
	advisor     *advisor.Client
	rateLimiter *rateLimiter
	structured  *applog.StructuredLogger

	// Records are loaded once and reused until a mutation invalidates them.
	recordsCache *cache.LRUCache[[]core.Record]
	reportCache  *cache.LRUCache[*services.WeeklyReport]
	caches       *cache.Manager

	shutdownOnce sync.Once
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

// startCleanup runs periodic cleanup to remove stale client entries
func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// stop gracefully shuts down the rate limiter cleanup goroutine
func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{
			lastRequest: now,
			requests:    1,
		}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, records *services.RecordService, reports *services.ReportService, adv *advisor.Client) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		records:      records,
		reports:      reports,
		advisor:      adv,
		rateLimiter:  newRateLimiter(),
		structured:   applog.NewStructuredLogger(applog.New(applog.DefaultConfig())),
		recordsCache: cache.NewLRUCache[[]core.Record](4, 10*time.Minute),
		reportCache:  cache.NewLRUCache[*services.WeeklyReport](32, 10*time.Minute),
		caches:       cache.NewManager(),
	}

	s.caches.Register(s.recordsCache)
	s.caches.Register(s.reportCache)
	s.caches.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Tiny cache for static assets
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/records", s.withSecurityHeaders(s.handleCreateRecord))
	mux.HandleFunc("/records/delete", s.withSecurityHeaders(s.handleDeleteRecord))
	mux.HandleFunc("/history", s.withSecurityHeaders(s.handleHistory))
	mux.HandleFunc("/report", s.withSecurityHeaders(s.handleReport))
	mux.HandleFunc("/report/chart.json", s.withSecurityHeaders(s.handleChartJSON))
	mux.HandleFunc("/report/poster.png", s.withSecurityHeaders(s.handlePoster))
	mux.HandleFunc("/advice/caption", s.withSecurityHeaders(s.handleAdviceCaption))
	mux.HandleFunc("/advice/meal", s.withSecurityHeaders(s.handleAdviceMeal))
	mux.HandleFunc("/advice/rescue", s.withSecurityHeaders(s.handleAdviceRescue))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.caches.Stop()

		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}

		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
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

		// Generate request ID for tracing
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		s.structured.LogHTTPStart(ctx, r, requestID, clientIP)

		// Apply rate limiting to mutations and advice calls
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Create a custom response writer to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		// Log request completion
		duration := time.Since(start)
		s.structured.LogHTTPEnd(ctx, r, requestID, rw.statusCode, duration.Milliseconds(), clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// getRecords returns all records, serving cached data until a mutation.
func (s *Server) getRecords(ctx context.Context) ([]core.Record, error) {
	if items, found := s.recordsCache.Get(recordsCacheKey); found {
		slog.DebugContext(ctx, "Records cache hit", "count", len(items))
		// Return a copy to prevent external mutation
		result := make([]core.Record, len(items))
		copy(result, items)
		return result, nil
	}

	items, err := s.records.Records(ctx)
	if err != nil {
		return nil, err
	}

	s.recordsCache.Set(recordsCacheKey, items)
	slog.DebugContext(ctx, "Records cached", "count", len(items))
	return items, nil
}

// getReport returns the weekly report for ref, cached by week label.
func (s *Server) getReport(ctx context.Context, ref time.Time) (*services.WeeklyReport, error) {
	key := ref.Format(core.DateLayout)
	if r, found := s.reportCache.Get(key); found {
		return r, nil
	}

	r, err := s.reports.WeeklyReport(ctx, ref)
	if err != nil {
		return nil, err
	}

	s.reportCache.Set(key, r)
	return r, nil
}

// invalidate drops all cached records and derived reports after a mutation.
func (s *Server) invalidate() {
	s.recordsCache.Purge()
	s.reportCache.Purge()
}
