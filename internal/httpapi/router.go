package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"impactsTracker/internal/auth"
	"impactsTracker/internal/config"
	"impactsTracker/internal/db"
	"impactsTracker/repository"
	"impactsTracker/service"
)

type lookupKind struct {
	path  string
	table repository.LookupTable
	label string
}

var lookupKinds = []lookupKind{
	{path: "/categories", table: repository.ActivityCategories, label: "Category"},
	{path: "/simulation-types", table: repository.SimulationTypes, label: "Simulation type"},
	{path: "/feedback-form-types", table: repository.FeedbackFormTypes, label: "Feedback form type"},
}

// NewRouter builds the full HTTP API over d.
func NewRouter(log zerolog.Logger, cfg *config.Config, d *db.DB) http.Handler {
	users := repository.NewUserRepository(d)
	lookups := make(map[repository.LookupTable]*LookupHTTP, len(lookupKinds))
	for _, k := range lookupKinds {
		lookups[k.table] = NewLookupHTTP(repository.NewLookupRepository(d, k.table), k.label)
	}

	uh := NewUserHTTP(service.NewAuthService(users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), users)
	ah := NewActivityHTTP(
		repository.NewActivityRepository(d),
		lookups[repository.ActivityCategories].repo,
		lookups[repository.SimulationTypes].repo,
		lookups[repository.FeedbackFormTypes].repo,
	)
	mh := NewMilestoneHTTP(repository.NewMilestoneRepository(d))
	rh := NewReadinessHTTP(repository.NewReadinessRepository(d))

	r := chi.NewRouter()
	r.Use(RequestLogger(log))
	r.Use(Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.HTTP.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(cfg.HTTP.RateLimitPerMinute, time.Minute))

	r.Get("/healthz", Health(d))

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", uh.Register)
		r.Post("/users/login", uh.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(cfg.Auth.JWTSecret))

			r.Get("/users/me", uh.Me)

			r.Route("/activities", func(r chi.Router) {
				r.Get("/", ah.List)
				r.Post("/", ah.Create)
				for _, k := range lookupKinds {
					r.Get(k.path, lookups[k.table].List)
				}
				r.Put("/{id}", ah.Update)
				r.Delete("/{id}", ah.Delete)
			})

			r.Route("/milestones", func(r chi.Router) {
				r.Get("/", mh.List)
				r.Post("/{itemId}/toggle", mh.Toggle)
				r.Put("/{itemId}/notes", mh.UpdateNotes)
			})

			r.Get("/readiness-assessment", rh.Get)
			r.Put("/readiness-assessment", rh.Save)
			r.Post("/readiness-assessment", rh.Save)

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireAdmin(users))
				for _, k := range lookupKinds {
					h := lookups[k.table]
					r.Route(k.path, func(r chi.Router) {
						r.Get("/", h.List)
						r.Post("/", h.Create)
						r.Put("/{id}", h.Update)
						r.Delete("/{id}", h.Delete)
					})
				}
			})
		})
	})
	return r
}
