package plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"planservice/internal/api"
	"planservice/internal/money"
)

type Handlers struct {
	Repo   *Repository
	Locale money.Locale
}

// List serves GET /v1/plans?page&per_page[&id_curso].
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	s := api.SchoolFromContext(r.Context())
	if s == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing school identity")
		return
	}

	q := r.URL.Query()
	filter := ListFilter{CourseID: q.Get("id_curso")}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PerPage, _ = strconv.Atoi(q.Get("per_page"))

	items, total, effective, err := h.Repo.List(r.Context(), s.ID, filter)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	recs := make([]Record, 0, len(items))
	for _, p := range items {
		recs = append(recs, ToRecord(p, h.Locale))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"items":    recs,
		"page":     effective.Page,
		"per_page": effective.PerPage,
		"total":    total,
	})
}

// Get serves GET /v1/plans/{id}.
func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	s := api.SchoolFromContext(r.Context())
	if s == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing school identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	p, err := h.Repo.GetByID(r.Context(), s.ID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "plan not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ToRecord(p, h.Locale))
}

// Create serves POST /v1/plans. The body is the urlencoded wire payload.
func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	s := api.SchoolFromContext(r.Context())
	if s == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing school identity")
		return
	}

	if err := r.ParseForm(); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid form body")
		return
	}

	p := Decode(r.PostForm)
	p.ID = ""
	if err := Validate(p); err != nil {
		writeValidation(w, err)
		return
	}

	created, err := h.Repo.Create(r.Context(), s.ID, p)
	if err != nil {
		writeValidation(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(ToRecord(created, h.Locale))
}

// Update serves PUT /v1/plans/{id}. The body is the urlencoded wire payload
// (including `id`, which must match the path).
func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	s := api.SchoolFromContext(r.Context())
	if s == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing school identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	if err := r.ParseForm(); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid form body")
		return
	}

	p := Decode(r.PostForm)
	if p.ID != "" && p.ID != id {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "body id does not match path")
		return
	}
	p.ID = id
	if err := Validate(p); err != nil {
		writeValidation(w, err)
		return
	}

	updated, err := h.Repo.Update(r.Context(), s.ID, id, p)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "plan not found")
			return
		}
		writeValidation(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ToRecord(updated, h.Locale))
}

// Delete serves DELETE /v1/plans/{id}.
func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	s := api.SchoolFromContext(r.Context())
	if s == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing school identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	if err := h.Repo.Delete(r.Context(), s.ID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "plan not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeValidation(w http.ResponseWriter, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		api.WriteValidationError(w, verr.Fields)
		return
	}
	api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}
