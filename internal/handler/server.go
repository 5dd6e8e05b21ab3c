// Package handler implements the HTTP handlers for the HolaCupid profile API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, profile.go, slug.go) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/firnco-tech/holacupid/backend/internal/domain"
)

// ProfileServicer defines the business operations the profile handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type ProfileServicer interface {
	Create(ctx context.Context, p domain.Profile) (domain.Profile, error)
	GetByID(ctx context.Context, id int64) (domain.Profile, error)
	GetBySlug(ctx context.Context, lang domain.Language, slug string) (domain.Profile, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Profile, domain.Pagination, error)
	Alternates(ctx context.Context, id int64) (domain.SlugBundle, error)
}

// Server serves every API endpoint.
// Wire it in main.go by mounting Server.Routes on the root router.
type Server struct {
	profiles ProfileServicer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger discards unexpected-error logs.
func NewServer(profiles ProfileServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{profiles: profiles, log: log}
}

// Routes returns the API router. Middleware is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", s.ListProfiles)
		r.Post("/", s.CreateProfile)
		r.Get("/{id}", s.GetProfile)
		r.Get("/{id}/alternates", s.GetProfileAlternates)
	})
	r.Get("/{lang}/profiles/{slug}", s.GetProfileBySlug)
	r.Get("/slugs/parse", s.ParseSlug)

	return r
}
