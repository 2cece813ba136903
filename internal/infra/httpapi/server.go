// Package httpapi exposes the catalog and preference operations over a
// JSON HTTP API.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"hexageeky/internal/domain"
	"hexageeky/internal/infra/catalog"
	"hexageeky/internal/infra/telemetry"
	"hexageeky/internal/prefs"
)

// SessionHeader carries the session identity. Requests without it get a
// generated id, echoed back in the response.
const SessionHeader = "X-Session-Id"

type Server struct {
	logger   *zap.Logger
	provider catalog.Provider
	prefs    *prefs.Manager
	metrics  domain.Metrics
}

func NewServer(provider catalog.Provider, manager *prefs.Manager, metrics domain.Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Server{
		logger:   logger.Named("httpapi"),
		provider: provider,
		prefs:    manager,
		metrics:  metrics,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/tools", s.handleListTools)
	mux.HandleFunc("GET /api/tools/{id}", s.handleGetTool)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)

	mux.HandleFunc("GET /api/preferences", s.session(s.handleGetPreferences))
	mux.HandleFunc("PATCH /api/preferences", s.session(s.handlePatchPreferences))
	mux.HandleFunc("POST /api/preferences/favorites/toggle", s.session(s.handleToggleFavorite))
	mux.HandleFunc("POST /api/preferences/tags/toggle", s.session(s.handleToggleTag))
	mux.HandleFunc("POST /api/preferences/recent", s.session(s.handleRecordView))
	mux.HandleFunc("DELETE /api/preferences/recent", s.session(s.handleClearRecent))
	mux.HandleFunc("POST /api/preferences/filters/clear", s.session(s.handleClearFilters))
	mux.HandleFunc("POST /api/preferences/sidebar/toggle", s.session(s.handleToggleSidebar))
	mux.HandleFunc("PUT /api/preferences/settings", s.session(s.handleUpdateSettings))

	return mux
}

// Start runs the API listener until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	if addr == "" {
		addr = "0.0.0.0:8080"
	}

	server := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("api server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("api server failed to start: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("api server shutdown error", zap.Error(err))
			return err
		}
		s.logger.Info("api server stopped")
		return nil
	}
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sessionID string)

// session resolves the session id before the handler runs and echoes it
// on the response so first-time clients can keep it.
func (s *Server) session(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			sessionID = s.prefs.NewSessionID()
		}
		w.Header().Set(SessionHeader, sessionID)
		next(w, r, sessionID)
	}
}
