// Package negotiation runs the three-round evaluation protocol and
// synthesizes the terminal consensus decision.
package negotiation

import (
	"context"
	"fmt"

	"github.com/averill/parley/internal/agents"
	"github.com/averill/parley/internal/baseline"
	"github.com/averill/parley/internal/domain"
)

// RunRound executes one evaluation round. All five evaluators see identical
// inputs; none sees another's same-round output. The caller threads each
// summary into the next call; rounds are never recomputed or mutated.
func RunRound(ctx context.Context, backend agents.Backend, order domain.Order, round int, prev *domain.RoundSummary) (domain.RoundSummary, error) {
	if err := order.Validate(); err != nil {
		return domain.RoundSummary{}, err
	}
	if round < 1 || round > domain.MaxRounds {
		return domain.RoundSummary{}, fmt.Errorf("negotiation: round must be between 1 and %d, got %d", domain.MaxRounds, round)
	}
	if round > 1 {
		if prev == nil {
			return domain.RoundSummary{}, fmt.Errorf("negotiation: round %d requires the round %d summary", round, round-1)
		}
		if prev.Round != round-1 {
			return domain.RoundSummary{}, fmt.Errorf("negotiation: round %d follows round %d, got summary for round %d", round, round-1, prev.Round)
		}
	}

	proposals := make([]domain.AgentProposal, 0, len(domain.Roles()))
	for _, role := range domain.Roles() {
		p, err := backend.Evaluate(ctx, role, order, round, prev)
		if err != nil {
			// Never continue with four proposals: the round aborts whole.
			return domain.RoundSummary{}, fmt.Errorf("negotiation: round %d: evaluate %s: %w", round, role, err)
		}
		proposals = append(proposals, p)
	}

	summary := resolveRound(order, round, prev, proposals)
	return summary, nil
}

// resolveRound derives the round's aggregate terms from the proposals using
// the fixed round-indexed rules.
func resolveRound(order domain.Order, round int, prev *domain.RoundSummary, proposals []domain.AgentProposal) domain.RoundSummary {
	summary := domain.RoundSummary{
		Round:        round,
		DeliveryDays: agents.Window(order, round, prev),
		Proposals:    proposals,
	}

	finance := proposalFor(proposals, domain.RoleFinance)
	production := proposalFor(proposals, domain.RoleProduction)
	logistics := proposalFor(proposals, domain.RoleLogistics)

	switch round {
	case 1:
		summary.Price = order.RequestedPrice
		if !finance.Approved {
			// Finance objected: the rush surcharge becomes the working price.
			summary.Price = finance.MetricFloat("proposedPrice", baseline.Round2(order.RequestedPrice*(1+baseline.RushSurchargeRate)))
		}
	case 2:
		summary.Price = finance.MetricFloat("price", order.RequestedPrice)
	default:
		// Terms stabilize at the round-2 resolution.
		summary.Price = prev.Price
	}

	summary.Margin = finance.MetricFloat("margin", 0)
	if round == 1 && !finance.Approved {
		// Finance quoted its margin at the requested price; restate it at
		// the surcharged working price so the summary pair is consistent.
		cost := finance.MetricFloat("unitCost", baseline.BaseCostPerUnit)
		summary.Margin = baseline.Round1(baseline.Margin(summary.Price, cost) * 100)
	}
	summary.OvertimeHours = production.MetricInt("overtimeHours", 0)

	mode := logistics.MetricString("shippingMode", string(baseline.ShippingFor(summary.DeliveryDays).Mode))
	summary.ShippingMode = domain.ShippingMode(mode)

	summary.Converged = round >= 2 && summary.AllApproved()
	return summary
}

func proposalFor(proposals []domain.AgentProposal, role domain.Role) domain.AgentProposal {
	for _, p := range proposals {
		if p.Role == role {
			return p
		}
	}
	return domain.AgentProposal{}
}

// RunAll executes rounds 1 through 3 in order, threading each summary into
// the next call, and returns the full round sequence.
func RunAll(ctx context.Context, backend agents.Backend, order domain.Order) ([]domain.RoundSummary, error) {
	rounds := make([]domain.RoundSummary, 0, domain.MaxRounds)
	var prev *domain.RoundSummary
	for round := 1; round <= domain.MaxRounds; round++ {
		summary, err := RunRound(ctx, backend, order, round, prev)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, summary)
		prev = &rounds[len(rounds)-1]
	}
	return rounds, nil
}
