package agents

import (
	"fmt"

	"github.com/averill/parley/internal/baseline"
	"github.com/averill/parley/internal/domain"
)

// logisticsEvaluator picks a freight mode from the delivery window.
// Logistics never blocks a negotiation.
type logisticsEvaluator struct{}

func (logisticsEvaluator) Evaluate(order domain.Order, round int, prev *domain.RoundSummary) (domain.AgentProposal, error) {
	window := Window(order, round, prev)
	opt := baseline.ShippingFor(window)
	totalCost := baseline.Round2(opt.CostPerUnit * float64(order.Quantity))

	status := domain.StatusProposing
	var reasoning string
	switch round {
	case 1:
		reasoning = fmt.Sprintf("%s freight fits the %d-day window: %d transit days, $%.2f total shipping.",
			opt.Mode, window, opt.TransitDays, totalCost)
	case 2:
		reasoning = fmt.Sprintf("Re-checked against the %d-day window: %s routing confirmed with carrier capacity held.",
			window, opt.Mode)
	default:
		status = domain.StatusAgreed
		reasoning = fmt.Sprintf("Carrier booking locked: %s freight, %d transit days.", opt.Mode, opt.TransitDays)
	}

	actions := []domain.ActionStep{
		{
			Kind:   domain.StepToolCall,
			Label:  "select_shipping_mode()",
			Detail: fmt.Sprintf("Round %d mode selection for a %d-day delivery window.", round, window),
			Data:   map[string]any{"deliveryDays": window},
		},
		{
			Kind:   domain.StepToolResult,
			Label:  "carrier_quote",
			Detail: fmt.Sprintf("%s: $%.2f/unit, %d transit days.", opt.Mode, opt.CostPerUnit, opt.TransitDays),
			Data:   map[string]any{"mode": string(opt.Mode), "costPerUnit": opt.CostPerUnit, "transitDays": opt.TransitDays},
		},
	}
	if round == domain.MaxRounds {
		actions = append(actions, domain.ActionStep{
			Kind:   domain.StepToolCall,
			Label:  "book_carrier()",
			Detail: "Carrier booking confirmed for the negotiated schedule.",
		})
	}
	actions = append(actions, verdictStep(domain.RoleLogistics, true, reasoning))

	return domain.AgentProposal{
		Role:      domain.RoleLogistics,
		Round:     round,
		Status:    status,
		Reasoning: reasoning,
		Approved:  true,
		Metrics: map[string]any{
			"shippingMode": string(opt.Mode),
			"shippingCost": totalCost,
			"costPerUnit":  opt.CostPerUnit,
			"transitDays":  opt.TransitDays,
			"deliveryDays": window,
		},
		Actions: actions,
	}, nil
}
