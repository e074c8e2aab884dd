package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/averill/parley/internal/domain"
)

func referenceOrder() domain.Order {
	return domain.Order{
		ID:                    "ord-001",
		Customer:              "Acme Industrial",
		Product:               "PC-400",
		Quantity:              50,
		RequestedPrice:        10.00,
		RequestedDeliveryDays: 18,
		Priority:              domain.PriorityRush,
	}
}

func TestForRole(t *testing.T) {
	for _, role := range domain.Roles() {
		ev, err := ForRole(role)
		if err != nil {
			t.Errorf("ForRole(%q) returned error: %v", role, err)
		}
		if ev == nil {
			t.Errorf("ForRole(%q) returned nil evaluator", role)
		}
	}
	if _, err := ForRole("janitor"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestWindow(t *testing.T) {
	order := referenceOrder()
	if got := Window(order, 1, nil); got != 18 {
		t.Errorf("round 1 window = %d, want 18", got)
	}
	prev := &domain.RoundSummary{Round: 1, DeliveryDays: 18}
	if got := Window(order, 2, prev); got != 19 {
		t.Errorf("round 2 window = %d, want 19", got)
	}
	prev = &domain.RoundSummary{Round: 2, DeliveryDays: 19}
	if got := Window(order, 3, prev); got != 19 {
		t.Errorf("round 3 window = %d, want 19", got)
	}
}

func TestDeterministicEvaluate(t *testing.T) {
	backend := Deterministic{}
	if backend.Name() != "deterministic" {
		t.Errorf("Name() = %q, want deterministic", backend.Name())
	}
	p, err := backend.Evaluate(context.Background(), domain.RoleFinance, referenceOrder(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Role != domain.RoleFinance || p.Round != 1 {
		t.Errorf("proposal = role %q round %d, want finance round 1", p.Role, p.Round)
	}
	if _, err := backend.Evaluate(context.Background(), "janitor", referenceOrder(), 1, nil); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestProductionApprovesWithCapacity(t *testing.T) {
	p, err := productionEvaluator{}.Evaluate(referenceOrder(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Approved {
		t.Errorf("expected approval, got: %s", p.Reasoning)
	}
	if got := p.MetricInt("overtimeHours", -1); got != 0 {
		t.Errorf("overtimeHours = %d, want 0", got)
	}
	if p.Status != domain.StatusProposing {
		t.Errorf("Status = %q, want proposing", p.Status)
	}
}

func TestProductionOvertimeBridgesShortfall(t *testing.T) {
	order := referenceOrder()
	order.Quantity = 1600
	order.RequestedDeliveryDays = 6

	p, err := productionEvaluator{}.Evaluate(order, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Approved {
		t.Errorf("expected overtime to keep the schedule feasible: %s", p.Reasoning)
	}
	if got := p.MetricInt("overtimeHours", 0); got != 4 {
		t.Errorf("overtimeHours = %d, want 4", got)
	}
}

func TestProductionObjectsBeyondOvertime(t *testing.T) {
	order := referenceOrder()
	order.Quantity = 12000
	order.RequestedDeliveryDays = 10

	p, err := productionEvaluator{}.Evaluate(order, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Approved {
		t.Errorf("expected objection for a ten day shortfall: %s", p.Reasoning)
	}
	if p.Status != domain.StatusObjecting {
		t.Errorf("Status = %q, want objecting", p.Status)
	}
}

func TestProductionLocksScheduleInFinalRound(t *testing.T) {
	prev := &domain.RoundSummary{Round: 2, DeliveryDays: 19}
	p, err := productionEvaluator{}.Evaluate(referenceOrder(), 3, prev)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != domain.StatusAgreed || !p.Approved {
		t.Errorf("final round = status %q approved %t, want agreed/true", p.Status, p.Approved)
	}
}

func TestFinanceApprovesAtFloor(t *testing.T) {
	// $10.00 against an $8.50 unit cost sits exactly on the 15% floor.
	p, err := financeEvaluator{}.Evaluate(referenceOrder(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Approved {
		t.Errorf("expected approval at the floor: %s", p.Reasoning)
	}
	if got := p.MetricFloat("margin", 0); got != 15.0 {
		t.Errorf("margin = %v, want 15.0", got)
	}
}

func TestFinanceObjectsBelowFloor(t *testing.T) {
	order := referenceOrder()
	order.RequestedPrice = 8.80

	p, err := financeEvaluator{}.Evaluate(order, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Approved {
		t.Errorf("expected objection below the floor: %s", p.Reasoning)
	}
	if p.Status != domain.StatusObjecting {
		t.Errorf("Status = %q, want objecting", p.Status)
	}
	if got := p.MetricFloat("proposedPrice", 0); got != 9.86 {
		t.Errorf("proposedPrice = %v, want 9.86 (12%% surcharge)", got)
	}
}

func TestFinanceCompromisePrice(t *testing.T) {
	prev := &domain.RoundSummary{Round: 1, DeliveryDays: 18, Price: 10.00}
	p, err := financeEvaluator{}.Evaluate(referenceOrder(), 2, prev)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.MetricFloat("price", 0); got != 10.80 {
		t.Errorf("round 2 price = %v, want 10.80", got)
	}
	if !p.Approved {
		t.Errorf("expected approval at the compromise price: %s", p.Reasoning)
	}
}

func TestFinanceSignsOffFinalRound(t *testing.T) {
	order := referenceOrder()
	order.RequestedPrice = 8.80
	prev := &domain.RoundSummary{Round: 2, DeliveryDays: 19, Price: 9.53}

	p, err := financeEvaluator{}.Evaluate(order, 3, prev)
	if err != nil {
		t.Fatal(err)
	}
	// Sign-off is structural in round 3; the floor miss surfaces at consensus.
	if !p.Approved || p.Status != domain.StatusAgreed {
		t.Errorf("final round = status %q approved %t, want agreed/true", p.Status, p.Approved)
	}
	if !strings.Contains(p.Reasoning, "flagged for consensus") {
		t.Errorf("expected floor miss flag, got: %s", p.Reasoning)
	}
}

func TestLogisticsSelectsModeByWindow(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{14, "air"},
		{17, "express"},
		{19, "ground"},
	}
	for _, tt := range tests {
		order := referenceOrder()
		order.RequestedDeliveryDays = tt.days
		p, err := logisticsEvaluator{}.Evaluate(order, 1, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.MetricString("shippingMode", ""); got != tt.want {
			t.Errorf("shippingMode for %d days = %q, want %q", tt.days, got, tt.want)
		}
		if !p.Approved {
			t.Errorf("logistics must never block, objected at %d days", tt.days)
		}
	}
}

func TestProcurementChecksLeadTime(t *testing.T) {
	p, err := procurementEvaluator{}.Evaluate(referenceOrder(), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Approved {
		t.Errorf("expected approval inside the buffered window: %s", p.Reasoning)
	}
	if got := p.MetricString("supplier", ""); got != "ChemCorp Asia" {
		t.Errorf("supplier = %q, want ChemCorp Asia", got)
	}

	order := referenceOrder()
	order.RequestedDeliveryDays = 14
	p, err = procurementEvaluator{}.Evaluate(order, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Approved {
		t.Errorf("expected objection for a 14 day window: %s", p.Reasoning)
	}
	if !strings.Contains(p.Reasoning, "EuroChem") {
		t.Errorf("expected alternate supplier in reasoning, got: %s", p.Reasoning)
	}
}

func TestSalesAlwaysApproves(t *testing.T) {
	for round := 1; round <= domain.MaxRounds; round++ {
		var prev *domain.RoundSummary
		if round > 1 {
			prev = &domain.RoundSummary{Round: round - 1, DeliveryDays: 18, Price: 10.80}
		}
		p, err := salesEvaluator{}.Evaluate(referenceOrder(), round, prev)
		if err != nil {
			t.Fatal(err)
		}
		if !p.Approved {
			t.Errorf("sales objected in round %d: %s", round, p.Reasoning)
		}
	}
}

func TestSalesCounterOffer(t *testing.T) {
	prev := &domain.RoundSummary{Round: 1, DeliveryDays: 18, Price: 10.00}
	p, err := salesEvaluator{}.Evaluate(referenceOrder(), 2, prev)
	if err != nil {
		t.Fatal(err)
	}
	// Midpoint of the $11.20 surcharge and the $10.00 ask.
	if got := p.MetricFloat("counterOffer", 0); got != 10.60 {
		t.Errorf("counterOffer = %v, want 10.60", got)
	}
}

func TestProfiles(t *testing.T) {
	profiles := Profiles()
	if len(profiles) != 5 {
		t.Fatalf("Profiles() returned %d entries, want 5", len(profiles))
	}
	for i, role := range domain.Roles() {
		if profiles[i].ID != role {
			t.Errorf("Profiles()[%d].ID = %q, want %q", i, profiles[i].ID, role)
		}
		if profiles[i].Name == "" || profiles[i].Description == "" {
			t.Errorf("profile for %q is missing display fields", role)
		}
		if len(profiles[i].Tools) == 0 {
			t.Errorf("profile for %q lists no tools", role)
		}
	}
}

func TestProfileForUnknownRole(t *testing.T) {
	if _, err := ProfileFor("janitor"); err == nil {
		t.Error("expected error for unknown role")
	}
}
