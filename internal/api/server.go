// Package api exposes the portfolio service over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/tendant/portfolio-content/pkg/portfolio"
	"github.com/tendant/portfolio-content/pkg/portfolio/session"
)

// Server wires the portfolio and session handlers into one router
type Server struct {
	content     *PortfolioHandler
	sessions    *SessionHandler
	gate        *session.Gate
	environment string
}

// NewServer creates a new API server
func NewServer(svc portfolio.Service, gate *session.Gate, environment string) *Server {
	return &Server{
		content:     NewPortfolioHandler(svc),
		sessions:    NewSessionHandler(gate),
		gate:        gate,
		environment: environment,
	}
}

// Routes sets up the HTTP routes
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS for development
	if s.environment == "development" {
		r.Use(corsAllowAll)
	}

	// Health check
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		// Public reads
		r.Get("/artworks", s.content.ListArtworks)
		r.Get("/exhibitions", s.content.ListExhibitions)
		r.Get("/about", s.content.GetAbout)

		r.Post("/session", s.sessions.Login)

		// Everything below requires a valid session token.
		r.Group(func(r chi.Router) {
			r.Use(s.gate.Verifier())
			r.Use(s.gate.Authenticator)

			r.Delete("/session", s.sessions.Logout)

			r.Post("/artworks", s.content.CreateArtwork)
			r.Delete("/artworks/{id}", s.content.DeleteArtwork)
			r.Post("/exhibitions", s.content.CreateExhibition)
			r.Delete("/exhibitions/{id}", s.content.DeleteExhibition)
			r.Put("/about", s.content.UpdateAbout)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":      "healthy",
		"environment": s.environment,
	})
}

func corsAllowAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
