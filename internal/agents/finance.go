package agents

import (
	"fmt"

	"github.com/averill/parley/internal/baseline"
	"github.com/averill/parley/internal/domain"
)

// financeEvaluator guards the margin floor and prices the deal.
type financeEvaluator struct{}

func (financeEvaluator) Evaluate(order domain.Order, round int, prev *domain.RoundSummary) (domain.AgentProposal, error) {
	window := Window(order, round, prev)
	overtime := baseline.OvertimeHours(order.Quantity, window)
	cost := baseline.UnitCost(order.Quantity, overtime)

	var price float64
	switch round {
	case 1:
		price = carriedPrice(order, prev)
	case 2:
		price = negotiatedPrice(order)
	default:
		price = carriedPrice(order, prev)
	}
	margin := baseline.Margin(price, cost)
	marginPct := baseline.Round1(margin * 100)

	approved := margin >= baseline.MarginFloor
	status := domain.StatusProposing
	var reasoning string
	metrics := map[string]any{
		"price":    baseline.Round2(price),
		"margin":   marginPct,
		"unitCost": baseline.Round2(cost),
		"quantity": order.Quantity,
	}

	switch round {
	case 1:
		if approved {
			reasoning = fmt.Sprintf("Margin check at $%.2f/unit: %.1f%% clears the %.0f%% floor.",
				price, marginPct, baseline.MarginFloor*100)
		} else {
			status = domain.StatusObjecting
			proposed := surchargedPrice(order)
			metrics["proposedPrice"] = proposed
			reasoning = fmt.Sprintf("Margin at $%.2f/unit is %.1f%%, below the %.0f%% floor; proposing a %.0f%% rush surcharge to $%.2f.",
				price, marginPct, baseline.MarginFloor*100, baseline.RushSurchargeRate*100, proposed)
		}
	case 2:
		if approved {
			reasoning = fmt.Sprintf("Compromise price of $%.2f/unit restores a %.1f%% margin.", price, marginPct)
		} else {
			status = domain.StatusObjecting
			reasoning = fmt.Sprintf("Even at the $%.2f/unit compromise the margin is %.1f%%, still below floor.", price, marginPct)
		}
	default:
		// Final round: verify the carried price and grant sign-off. A miss
		// here surfaces at consensus, not as a convergence blocker.
		status = domain.StatusAgreed
		approved = true
		if margin >= baseline.MarginFloor {
			reasoning = fmt.Sprintf("Final price $%.2f/unit verified: %.1f%% margin holds above the floor.", price, marginPct)
		} else {
			reasoning = fmt.Sprintf("Final price $%.2f/unit signed off at %.1f%% margin; floor miss flagged for consensus.", price, marginPct)
		}
	}

	actions := []domain.ActionStep{
		{
			Kind:   domain.StepToolCall,
			Label:  "compute_unit_cost()",
			Detail: fmt.Sprintf("Round %d cost model: base $%.2f plus %dh overtime amortized.", round, baseline.BaseCostPerUnit, overtime),
			Data:   map[string]any{"unitCost": baseline.Round2(cost), "overtimeHours": overtime},
		},
		{
			Kind:   domain.StepToolResult,
			Label:  "margin",
			Detail: fmt.Sprintf("Margin at $%.2f/unit is %.1f%%.", price, marginPct),
			Data:   map[string]any{"price": baseline.Round2(price), "margin": marginPct},
		},
		verdictStep(domain.RoleFinance, approved, reasoning),
	}

	return domain.AgentProposal{
		Role:      domain.RoleFinance,
		Round:     round,
		Status:    status,
		Reasoning: reasoning,
		Approved:  approved,
		Metrics:   metrics,
		Actions:   actions,
	}, nil
}
