package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"planservice/internal/api"
	"planservice/internal/money"
	"planservice/internal/plan"
	"planservice/internal/school"
	"planservice/pkg/config"
)

type Dependencies struct {
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	schoolsRepo := school.NewRepository(deps.DB)
	planHandlers := plan.Handlers{
		Repo:   plan.NewRepository(deps.DB),
		Locale: money.LocaleFor(deps.Cfg.Locale),
	}

	// v1
	r.Route("/v1", func(r chi.Router) {
		r.Use(api.CORSMiddleware(api.CORSOptions{
			AllowedOrigins: deps.Cfg.AdminAllowedOrigins,
			AllowedHeaders: []string{"Content-Type", "Authorization", "X-School-Domain"},
		}))

		// Staff admin APIs (school-scoped)
		r.Group(func(r chi.Router) {
			// Production: signed staff session token auth
			// Dev: falls back to X-School-Domain if Authorization is missing.
			r.Use(api.StaffSessionAuth(deps.Cfg, schoolsRepo))

			r.Get("/plans", planHandlers.List)
			r.Post("/plans", planHandlers.Create)
			r.Get("/plans/{id}", planHandlers.Get)
			r.Put("/plans/{id}", planHandlers.Update)
			r.Delete("/plans/{id}", planHandlers.Delete)
		})
	})

	return r
}
