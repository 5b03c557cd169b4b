// Package health serves the HTTP liveness endpoint used by the host
// platform to keep the bot process alive and monitored.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"voidbot/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Status is the JSON body of a health response.
type Status struct {
	Status    string `json:"status"`
	Bot       string `json:"bot"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// Server exposes GET / and GET /health.
type Server struct {
	cfg       *config.Config
	startedAt time.Time
	botReady  func() bool
	srv       *http.Server
}

// NewServer builds the health server. botReady reports whether the gateway
// session is up; the endpoint stays 200 either way so the platform does not
// restart the bot during a Discord outage.
func NewServer(cfg *config.Config, startedAt time.Time, botReady func() bool) *Server {
	return &Server{
		cfg:       cfg,
		startedAt: startedAt,
		botReady:  botReady,
	}
}

// Handler returns the HTTP routes, separated from Start for tests.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHealth)
	r.Get("/health", s.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	bot := "connecting"
	if s.botReady() {
		bot = "ready"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(Status{
		Status:    "ok",
		Bot:       bot,
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Start runs the server in the background and returns immediately.
func (s *Server) Start() {
	addr := s.cfg.GetHealthAddr()
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		s.cfg.Logger.Info("Health endpoint listening", "addr", addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.cfg.Logger.Error("Health endpoint failed", "error", err)
		}
	}()
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
