package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/averill/parley/internal/domain"
	"github.com/averill/parley/internal/stream"
)

func approvedOutcome() *stream.Outcome {
	return &stream.Outcome{
		Order: domain.Order{
			ID:                    "ord-17",
			Customer:              "Acme Industrial",
			Product:               "PC-400",
			Quantity:              50,
			RequestedPrice:        10.00,
			RequestedDeliveryDays: 18,
			Priority:              domain.PriorityRush,
		},
		Rounds: make([]domain.RoundSummary, 3),
		Consensus: domain.ConsensusResult{
			Approved:          true,
			FinalPrice:        10.80,
			FinalDeliveryDays: 19,
			FinalMargin:       21.3,
			ShippingMode:      domain.ShipGround,
			OvertimeHours:     8,
			RiskScore:         domain.RiskLow,
			Confidence:        94,
			Supplier:          "ChemCorp Asia",
		},
		Backend: "deterministic",
	}
}

func rejectedOutcome() *stream.Outcome {
	o := approvedOutcome()
	o.Consensus = domain.ConsensusResult{
		Approved:        false,
		RiskScore:       domain.RiskHigh,
		Confidence:      45,
		RejectionReason: "Margin below the 15% floor.",
	}
	return o
}

func TestOutcomeMessage_Approved(t *testing.T) {
	msg := OutcomeMessage(approvedOutcome())

	if msg.Title != "Rush order ord-17 approved" {
		t.Errorf("Title = %q, want %q", msg.Title, "Rush order ord-17 approved")
	}
	if msg.Color != ColorApproved {
		t.Errorf("Color = %q, want %q", msg.Color, ColorApproved)
	}
	if !strings.Contains(msg.Body, "$10.80/unit") {
		t.Errorf("Body missing price: %s", msg.Body)
	}
	if !strings.Contains(msg.Body, "19-day delivery") {
		t.Errorf("Body missing delivery days: %s", msg.Body)
	}
	if !strings.Contains(msg.Body, "8h of overtime") {
		t.Errorf("Body missing overtime: %s", msg.Body)
	}
	if len(msg.Fields) != 4 {
		t.Fatalf("len(Fields) = %d, want 4", len(msg.Fields))
	}
	if msg.Fields[1].Value != "Low" {
		t.Errorf("Risk field = %q, want %q", msg.Fields[1].Value, "Low")
	}
}

func TestOutcomeMessage_Rejected(t *testing.T) {
	msg := OutcomeMessage(rejectedOutcome())

	if msg.Title != "Rush order ord-17 rejected" {
		t.Errorf("Title = %q, want %q", msg.Title, "Rush order ord-17 rejected")
	}
	if msg.Color != ColorRejected {
		t.Errorf("Color = %q, want %q", msg.Color, ColorRejected)
	}
	if !strings.Contains(msg.Body, "Margin below the 15% floor.") {
		t.Errorf("Body missing rejection reason: %s", msg.Body)
	}
	if strings.Contains(msg.Body, "/unit") {
		t.Errorf("rejected body should not carry deal terms: %s", msg.Body)
	}
}

func TestAnnounceOutcome(t *testing.T) {
	mock := NewMockAdapter()
	if err := mock.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}

	n := NewNotifier(mock)
	if err := n.AnnounceOutcome(context.Background(), approvedOutcome()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sent, ok := mock.LastSent()
	if !ok {
		t.Fatal("no message sent")
	}
	if sent.Title != "Rush order ord-17 approved" {
		t.Errorf("sent.Title = %q", sent.Title)
	}
}

func TestAnnounceOutcome_SendError(t *testing.T) {
	mock := NewMockAdapter()
	if err := mock.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	mock.FailSends(errors.New("channel archived"))

	n := NewNotifier(mock)
	err := n.AnnounceOutcome(context.Background(), approvedOutcome())
	if err == nil {
		t.Fatal("expected error from failing adapter")
	}
	if !strings.Contains(err.Error(), "notify: announce order ord-17") {
		t.Errorf("error = %q, want wrapped announce error", err.Error())
	}
}

func TestAnnounceOutcome_NilNotifier(t *testing.T) {
	var n *Notifier
	if err := n.AnnounceOutcome(context.Background(), approvedOutcome()); err != nil {
		t.Fatalf("nil notifier should be a no-op, got %v", err)
	}
}

func TestMockAdapter_SendBeforeConnect(t *testing.T) {
	mock := NewMockAdapter()
	if err := mock.Send(context.Background(), Message{Title: "x"}); err == nil {
		t.Fatal("expected error sending before connect")
	}
}
