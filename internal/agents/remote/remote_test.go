package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/averill/parley/internal/domain"
)

func testOrder() domain.Order {
	return domain.Order{
		ID:                    "ord-1",
		Customer:              "Acme Industrial",
		Product:               "PC-400",
		Quantity:              50,
		RequestedPrice:        10.00,
		RequestedDeliveryDays: 18,
		Priority:              domain.PriorityRush,
	}
}

func TestEvaluate_RoundTrip(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/evaluate" {
			t.Errorf("path = %q, want /evaluate", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")

		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Role != domain.RoleFinance {
			t.Errorf("req.Role = %q, want %q", req.Role, domain.RoleFinance)
		}
		if req.Round != 2 {
			t.Errorf("req.Round = %d, want 2", req.Round)
		}
		if req.Prev == nil || req.Prev.Round != 1 {
			t.Errorf("req.Prev = %+v, want round 1 summary", req.Prev)
		}

		json.NewEncoder(w).Encode(domain.AgentProposal{
			Role:      domain.RoleFinance,
			Round:     2,
			Status:    domain.StatusProposing,
			Reasoning: "margin recalculated",
			Approved:  true,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-xyz")
	prev := &domain.RoundSummary{Round: 1, Price: 10.00, DeliveryDays: 18}
	p, err := c.Evaluate(context.Background(), domain.RoleFinance, testOrder(), 2, prev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Approved {
		t.Error("Approved = false, want true")
	}
	if p.Reasoning != "margin recalculated" {
		t.Errorf("Reasoning = %q, want %q", p.Reasoning, "margin recalculated")
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-xyz")
	}
}

func TestEvaluate_FillsRoleAndRound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.AgentProposal{Status: domain.StatusProposing, Approved: true})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	p, err := c.Evaluate(context.Background(), domain.RoleSales, testOrder(), 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Role != domain.RoleSales {
		t.Errorf("Role = %q, want %q", p.Role, domain.RoleSales)
	}
	if p.Round != 1 {
		t.Errorf("Round = %d, want 1", p.Round)
	}
}

func TestEvaluate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.Evaluate(context.Background(), domain.RoleProduction, testOrder(), 1, nil)
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestPing(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q, want /health", r.URL.Path)
		}
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	healthy = false
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected error for unhealthy service")
	}
}

func TestName(t *testing.T) {
	if got := New("http://x", "").Name(); got != "remote" {
		t.Errorf("Name() = %q, want %q", got, "remote")
	}
}
