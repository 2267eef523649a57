// Package http exposes the dashboard JSON API: login, filtered
// dashboard queries, partner options, report exports and a manual
// record-set refresh.
package http

import (
	"context"
	"net/http"
	"time"

	"vendas/internal/auth"
	"vendas/internal/dashboard"
	"vendas/internal/log"
	"vendas/internal/middleware/ratelimit"
	"vendas/internal/middleware/security"
	"vendas/internal/middleware/trace"
	"vendas/internal/report"
	"vendas/internal/session"
)

// Deps carries everything the API serves from. Sheets may be nil when
// the spreadsheet export is not configured.
type Deps struct {
	Auth      *auth.Authenticator
	Sessions  session.Store
	Dashboard *dashboard.Service
	Sheets    report.Writer
	Logger    *log.Logger
}

type Server struct {
	httpServer *http.Server
	limiter    *ratelimit.Limiter

	auth     *auth.Authenticator
	sessions session.Store
	svc      *dashboard.Service
	sheets   report.Writer
	logger   *log.Logger

	now func() time.Time
}

func NewServer(addr string, deps Deps) *Server {
	s := &Server{
		limiter:  ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		auth:     deps.Auth,
		sessions: deps.Sessions,
		svc:      deps.Dashboard,
		sheets:   deps.Sheets,
		logger:   deps.Logger.WithComponent(log.ComponentHTTP),
		now:      func() time.Time { return time.Now().UTC() },
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.requireAuth(s.handleLogout))

	mux.HandleFunc("GET /api/dashboard", s.requireAuth(s.handleDashboard))
	mux.HandleFunc("GET /api/sales", s.requireAuth(s.handleSales))
	mux.HandleFunc("GET /api/partners", s.requireAuth(s.handlePartners))
	mux.HandleFunc("GET /api/report.csv", s.requireAuth(s.handleReportCSV))
	mux.HandleFunc("POST /api/report/sheets", s.requireAuth(s.handleReportSheets))
	mux.HandleFunc("POST /api/refresh", s.requireAuth(s.handleRefresh))

	limited := s.limiter.Middleware(security.ExtractClientIP, s.onRateLimited)

	var handler http.Handler = mux
	handler = limited(handler)
	handler = security.Headers(handler)
	handler = trace.Middleware(s.logger)(handler)
	return handler
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	respondError(w, http.StatusTooManyRequests, "Muitas requisições, tente novamente em instantes")
}

// requireAuth validates the bearer token signature and resolves it
// against the session store, so logout revokes access before the token
// expires. A missing, invalid or revoked token is a 401; a session
// backend failure is a 503 so the client can retry instead of
// re-authenticating.
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, session.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Não autenticado")
			return
		}
		if _, err := s.auth.ParseToken(token); err != nil {
			respondError(w, http.StatusUnauthorized, "Sessão expirada, faça login novamente")
			return
		}

		sess, err := s.sessions.FindSession(r.Context(), token)
		if err == session.ErrNotFound {
			respondError(w, http.StatusUnauthorized, "Sessão expirada, faça login novamente")
			return
		}
		if err != nil {
			log.FromContext(r.Context()).Error("session lookup failed", log.FieldError, err.Error())
			respondError(w, http.StatusServiceUnavailable, "Serviço indisponível, tente novamente")
			return
		}

		next(w, r, sess)
	}
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

// ListenAndServe blocks until the server stops or ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info("HTTP server listening", log.FieldPath, s.httpServer.Addr)

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown drains in-flight requests and stops the rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the full middleware chain, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
