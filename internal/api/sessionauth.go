package api

import (
	"net/http"
	"strings"
	"time"

	"planservice/internal/auth"
	"planservice/internal/school"
	"planservice/pkg/config"
)

// StaffSessionAuth validates staff session tokens issued by the tenant
// frontend.
//
// Expected header:
// - Authorization: Bearer <JWT>
//
// In dev, if Authorization is missing, it falls back to X-School-Domain to
// keep local testing simple.
func StaffSessionAuth(cfg config.Config, schools *school.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token := strings.TrimSpace(authz[7:])
				vs, err := auth.VerifySessionToken(token, cfg.Auth.SessionAudience, cfg.Auth.SessionSecret, time.Now())
				if err != nil {
					// Dev rescue: forgotten SESSION_SECRET exports shouldn't
					// brick the local UI; fall back to the header scheme.
					if cfg.AppEnv != "prod" {
						if domain := strings.TrimSpace(r.Header.Get("X-School-Domain")); domain != "" {
							SchoolAuth(schools)(next).ServeHTTP(w, r)
							return
						}
					}

					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session token")
					return
				}

				s, err := schools.FindByDomain(r.Context(), vs.SchoolDomain)
				if err != nil {
					s, err = schools.Upsert(r.Context(), vs.SchoolDomain, "")
					if err != nil {
						WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to register school")
						return
					}
				}

				next.ServeHTTP(w, r.WithContext(WithSchool(r.Context(), s)))
				return
			}

			// Dev fallback
			if cfg.AppEnv != "prod" {
				SchoolAuth(schools)(next).ServeHTTP(w, r)
				return
			}

			WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
		})
	}
}
