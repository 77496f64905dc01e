package api

import (
	"net/http"
	"strings"

	"planservice/internal/school"
)

// SchoolAuth is a minimal school-scoped middleware for early development.
//
// Contract:
// - Caller must provide the school domain via `X-School-Domain` header or `?school=` query param.
// - Middleware loads the school record from DB and attaches it to context.
//
// Note: in production this is wrapped by StaffSessionAuth, which derives the
// domain from a signed session token instead of trusting a header.
func SchoolAuth(schools *school.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			domain := strings.TrimSpace(r.Header.Get("X-School-Domain"))
			if domain == "" {
				domain = strings.TrimSpace(r.URL.Query().Get("school"))
			}
			if domain == "" {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing school identity")
				return
			}

			s, err := schools.FindByDomain(r.Context(), domain)
			if err != nil {
				// Dev bootstrap: register unknown schools on first contact so a
				// fresh database doesn't block local testing.
				s, err = schools.Upsert(r.Context(), domain, "")
				if err != nil {
					WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to register school")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithSchool(r.Context(), s)))
		})
	}
}
