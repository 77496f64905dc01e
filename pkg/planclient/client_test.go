package planclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"planservice/internal/money"
	"planservice/internal/plan"
)

func TestCreatePlan_SendsWireFormatAndHydratesRecord(t *testing.T) {
	var gotForm map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/plans" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %q", ct)
		}
		if got := r.Header.Get("X-School-Domain"); got != "escola.app.br" {
			t.Errorf("missing school header, got %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = r.PostForm

		p := plan.Decode(r.PostForm)
		p.ID = "novo-id"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(plan.ToRecord(p, money.PtBR))
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SchoolDomain: "escola.app.br"}

	p := plan.New("curso-7")
	p.Name = "Tabela 2026"
	p = p.WithTotal("1200.00")

	created, err := c.CreatePlan(context.Background(), p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "novo-id" {
		t.Fatalf("expected hydrated id, got %q", created.ID)
	}
	if created.Options[1].Value != "200.00" {
		t.Fatalf("expected derived row back, got %+v", created.Options[1])
	}

	if got := gotForm["valor"]; len(got) != 1 || got[0] != "1200.00" {
		t.Fatalf("flat valor not sent canonical: %v", got)
	}
	if got := gotForm["config[valor]"]; len(got) != 1 || got[0] != "R$ 1.200,00" {
		t.Fatalf("config valor not sent masked: %v", got)
	}
}

func TestCreatePlan_LocalGateBlocksInvalidDiscount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request must not reach the network while the gate is closed")
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SchoolDomain: "escola.app.br"}

	p := plan.New("curso-7")
	p.Name = "Tabela"
	p = p.WithTotal("1200.00") // row 1 derives 200.00
	p = p.WithDiscount(1, "500.00")

	_, err := c.CreatePlan(context.Background(), p)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.First("parcelas[1][desconto]") == "" {
		t.Fatalf("expected a message on the flagged row, got %+v", verr.Fields)
	}
}

func TestCreatePlan_SurfacesServerFieldErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"code":"VALIDATION_FAILED","message":"verifique os campos destacados","fields":{"nome":["já existe uma tabela com este nome para o curso"]}}}`))
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SchoolDomain: "escola.app.br"}

	p := plan.New("curso-7")
	p.Name = "Tabela duplicada"

	_, err := c.CreatePlan(context.Background(), p)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if got := verr.First("nome"); got != "já existe uma tabela com este nome para o curso" {
		t.Fatalf("unexpected message %q", got)
	}
	if verr.Summary() == "" {
		t.Fatalf("expected a combined summary")
	}
}

func TestCreatePlan_TransportErrorIsNotValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SchoolDomain: "escola.app.br"}
	p := plan.New("curso-7")
	p.Name = "Tabela"

	_, err := c.CreatePlan(context.Background(), p)
	if err == nil {
		t.Fatalf("expected error")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Fatalf("transport failures must not read as validation")
	}
}

func TestListPlans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/plans" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("id_curso"); got != "curso-7" {
			t.Errorf("missing course filter, got %q", got)
		}

		p := plan.New("curso-7")
		p.ID = "p1"
		p.Name = "Tabela A"
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":    []plan.Record{plan.ToRecord(p, money.PtBR)},
			"page":     1,
			"per_page": 20,
			"total":    1,
		})
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SchoolDomain: "escola.app.br"}
	page, err := c.ListPlans(context.Background(), ListOptions{CourseID: "curso-7"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Items[0].Name != "Tabela A" {
		t.Fatalf("unexpected item %+v", page.Items[0])
	}
}

func TestDeletePlan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/v1/plans/p1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SchoolDomain: "escola.app.br"}
	if err := c.DeletePlan(context.Background(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
