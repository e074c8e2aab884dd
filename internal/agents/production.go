package agents

import (
	"fmt"

	"github.com/averill/parley/internal/baseline"
	"github.com/averill/parley/internal/domain"
)

// productionEvaluator sizes the factory schedule against the delivery window.
type productionEvaluator struct{}

func (productionEvaluator) Evaluate(order domain.Order, round int, prev *domain.RoundSummary) (domain.AgentProposal, error) {
	window := Window(order, round, prev)
	available := window - baseline.GroundTransitDays
	daysNeeded := baseline.DaysNeeded(order.Quantity)
	shortfall := daysNeeded - available
	overtime := baseline.OvertimeHours(order.Quantity, window)
	overtimeCost := float64(overtime) * baseline.OvertimeCostPerHour

	approved := true
	status := domain.StatusProposing
	var reasoning string

	switch round {
	case 1:
		// The schedule blocks only when overtime cannot absorb the gap.
		approved = shortfall <= baseline.ShortfallRejectDays
		if shortfall <= 0 {
			reasoning = fmt.Sprintf("Capacity check passed: %d units need %d production days against %d available.",
				order.Quantity, daysNeeded, available)
		} else if approved {
			reasoning = fmt.Sprintf("Schedule is %d days short; %dh of overtime closes the gap at $%.0f.",
				shortfall, overtime, overtimeCost)
		} else {
			status = domain.StatusObjecting
			reasoning = fmt.Sprintf("Shortfall of %d days exceeds what overtime can absorb; the requested window is not feasible.",
				shortfall)
		}
	case 2:
		// Re-plan against the extended window; overtime only shrinks.
		approved = shortfall <= baseline.ShortfallRejectDays
		reasoning = fmt.Sprintf("Re-planned against a %d-day window: %dh overtime required.", window, overtime)
	default:
		// The schedule is treated as lockable by the final round.
		status = domain.StatusAgreed
		reasoning = fmt.Sprintf("Production schedule locked: %d-day window, %dh overtime.", window, overtime)
	}

	actions := []domain.ActionStep{
		{
			Kind:   domain.StepToolCall,
			Label:  "check_production_capacity()",
			Detail: fmt.Sprintf("Round %d capacity check for %d units.", round, order.Quantity),
			Data:   map[string]any{"quantity": order.Quantity, "deliveryDays": window},
		},
		{
			Kind:   domain.StepToolResult,
			Label:  "capacity",
			Detail: fmt.Sprintf("%d production days needed, %d available before freight.", daysNeeded, available),
			Data:   map[string]any{"daysNeeded": daysNeeded, "daysAvailable": available},
		},
	}
	if overtime > 0 {
		actions = append(actions, domain.ActionStep{
			Kind:   domain.StepToolCall,
			Label:  "calculate_overtime()",
			Detail: fmt.Sprintf("%dh overtime at $%.0f/h to recover %d days.", overtime, baseline.OvertimeCostPerHour, shortfall),
			Data:   map[string]any{"overtimeHours": overtime, "overtimeCost": overtimeCost},
		})
	}
	if round == domain.MaxRounds {
		actions = append(actions, domain.ActionStep{
			Kind:   domain.StepToolCall,
			Label:  "lock_production_schedule()",
			Detail: "Schedule committed for the negotiated terms.",
		})
	}
	actions = append(actions, verdictStep(domain.RoleProduction, approved, reasoning))

	return domain.AgentProposal{
		Role:      domain.RoleProduction,
		Round:     round,
		Status:    status,
		Reasoning: reasoning,
		Approved:  approved,
		Metrics: map[string]any{
			"daysNeeded":              daysNeeded,
			"productionDaysAvailable": available,
			"overtimeHours":           overtime,
			"overtimeCost":            overtimeCost,
			"deliveryDays":            window,
		},
		Actions: actions,
	}, nil
}

// verdictStep is the closing trace entry every evaluator appends.
func verdictStep(role domain.Role, approved bool, detail string) domain.ActionStep {
	kind := domain.StepAgreement
	if !approved {
		kind = domain.StepObjection
	}
	return domain.ActionStep{
		Kind:   kind,
		Label:  string(role) + "_verdict",
		Detail: detail,
		Data:   map[string]any{"approved": approved},
	}
}
