// Package server exposes the ledger and settlement engine as a JSON HTTP API.
package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/googol23/ExpenseTracker/internal/ledger"
	"github.com/googol23/ExpenseTracker/internal/middleware"
	"github.com/googol23/ExpenseTracker/internal/observability"
)

// Server holds the HTTP handler dependencies.
type Server struct {
	ledger   *ledger.Ledger
	validate *validator.Validate
	metrics  *observability.Metrics

	// staticDir, when non-empty, is served for all non-API routes with an
	// index.html fallback.
	staticDir string
}

// New creates a Server around the given ledger.
func New(l *ledger.Ledger, metrics *observability.Metrics, staticDir string) *Server {
	return &Server{
		ledger:    l,
		validate:  validator.New(),
		metrics:   metrics,
		staticDir: staticDir,
	}
}

// Routes builds the chi router with all middleware and endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.CORS)
	r.Use(s.metrics.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/members", s.handleListMembers)
		r.Post("/members", s.handleAddMember)
		r.Get("/expenses", s.handleListExpenses)
		r.Post("/expenses", s.handleCreateExpense)
		r.Get("/balances", s.handleBalances)
		r.Get("/settlements", s.handleSettlements)
	})

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	if s.staticDir != "" {
		r.Get("/*", s.handleStatic)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatic serves files from the static directory, falling back to
// index.html for unknown paths so a single-page frontend can route itself.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	filePath := filepath.Join(s.staticDir, filepath.Clean(urlPath))
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
		return
	}

	http.ServeFile(w, r, filePath)
}
