package agents

import (
	"fmt"

	"github.com/averill/parley/internal/baseline"
	"github.com/averill/parley/internal/domain"
)

// procurementEvaluator checks supplier lead times against the window.
type procurementEvaluator struct{}

func (procurementEvaluator) Evaluate(order domain.Order, round int, prev *domain.RoundSummary) (domain.AgentProposal, error) {
	window := Window(order, round, prev)
	viable := baseline.PrimarySupplierViable(window)

	approved := true
	status := domain.StatusProposing
	supplier := baseline.PrimarySupplier
	var reasoning string

	switch round {
	case 1:
		approved = viable
		if viable {
			reasoning = fmt.Sprintf("%s can deliver materials in %d days, inside the %d-day window with buffer.",
				baseline.PrimarySupplier, baseline.PrimaryLeadTimeDays, window)
		} else {
			status = domain.StatusObjecting
			reasoning = fmt.Sprintf("%s's %d-day lead time misses the %d-day window; evaluating %s at %d days and $%.2f/unit.",
				baseline.PrimarySupplier, baseline.PrimaryLeadTimeDays, window,
				baseline.AlternateSupplier, baseline.AlternateLeadTimeDays, baseline.AlternateMaterialCost)
		}
	case 2:
		reasoning = fmt.Sprintf("Materials reserved with %s for %d units.", supplier, order.Quantity)
	default:
		status = domain.StatusAgreed
		reasoning = fmt.Sprintf("Purchase order queued with %s; reservation converts on sign-off.", supplier)
	}

	actions := []domain.ActionStep{
		{
			Kind:   domain.StepToolCall,
			Label:  "query_supplier_inventory()",
			Detail: fmt.Sprintf("Round %d lead-time check against a %d-day window.", round, window),
			Data:   map[string]any{"supplier": supplier, "leadTimeDays": baseline.PrimaryLeadTimeDays},
		},
		{
			Kind:   domain.StepToolResult,
			Label:  "lead_time",
			Detail: fmt.Sprintf("Primary supplier viable: %t.", viable),
			Data:   map[string]any{"viable": viable},
		},
	}
	switch round {
	case 2:
		actions = append(actions, domain.ActionStep{
			Kind:   domain.StepToolCall,
			Label:  "reserve_materials()",
			Detail: fmt.Sprintf("Reservation placed for %d units.", order.Quantity),
		})
	case domain.MaxRounds:
		actions = append(actions, domain.ActionStep{
			Kind:   domain.StepToolCall,
			Label:  "queue_purchase_order()",
			Detail: "Purchase order staged pending consensus.",
		})
	}
	actions = append(actions, verdictStep(domain.RoleProcurement, approved, reasoning))

	return domain.AgentProposal{
		Role:      domain.RoleProcurement,
		Round:     round,
		Status:    status,
		Reasoning: reasoning,
		Approved:  approved,
		Metrics: map[string]any{
			"supplier":     supplier,
			"leadTimeDays": baseline.PrimaryLeadTimeDays,
			"viable":       viable,
			"quantity":     order.Quantity,
		},
		Actions: actions,
	}, nil
}
