// Package agents implements the five role evaluators and the backend
// abstraction that lets a remote reasoning service stand in for them.
package agents

import (
	"context"
	"fmt"

	"github.com/averill/parley/internal/baseline"
	"github.com/averill/parley/internal/domain"
)

// Evaluator produces one role's proposal for one round. Implementations are
// pure functions of their inputs: no I/O, no hidden state, deterministic.
type Evaluator interface {
	Evaluate(order domain.Order, round int, prev *domain.RoundSummary) (domain.AgentProposal, error)
}

// Backend evaluates any role for any round. The deterministic backend wraps
// the five evaluators below; the remote backend delegates to an external
// reasoning service that honors the same contract.
type Backend interface {
	// Name identifies the backend in backend_status events.
	Name() string

	// Evaluate returns the proposal for one (role, round) pair.
	Evaluate(ctx context.Context, role domain.Role, order domain.Order, round int, prev *domain.RoundSummary) (domain.AgentProposal, error)
}

// ForRole maps a role to its evaluator. The switch is exhaustive over the
// closed role set; an unknown role is a programming error surfaced as such.
func ForRole(role domain.Role) (Evaluator, error) {
	switch role {
	case domain.RoleProduction:
		return productionEvaluator{}, nil
	case domain.RoleFinance:
		return financeEvaluator{}, nil
	case domain.RoleLogistics:
		return logisticsEvaluator{}, nil
	case domain.RoleProcurement:
		return procurementEvaluator{}, nil
	case domain.RoleSales:
		return salesEvaluator{}, nil
	}
	return nil, fmt.Errorf("agents: no evaluator for role %q", role)
}

// Deterministic is the default backend: the scripted rule-based evaluators.
type Deterministic struct{}

// Name implements Backend.
func (Deterministic) Name() string { return "deterministic" }

// Evaluate implements Backend by dispatching to the role's evaluator.
func (Deterministic) Evaluate(_ context.Context, role domain.Role, order domain.Order, round int, prev *domain.RoundSummary) (domain.AgentProposal, error) {
	ev, err := ForRole(role)
	if err != nil {
		return domain.AgentProposal{}, err
	}
	return ev.Evaluate(order, round, prev)
}

// Window returns the delivery window in force for a given round: the
// requested window in round 1, one extra day granted in round 2, and the
// locked round-2 window in round 3. The round runner and every evaluator
// resolve the window through this one function.
func Window(order domain.Order, round int, prev *domain.RoundSummary) int {
	if prev == nil {
		return order.RequestedDeliveryDays
	}
	if round == 2 {
		return prev.DeliveryDays + 1
	}
	return prev.DeliveryDays
}

// carriedPrice returns the unit price in force entering a round.
func carriedPrice(order domain.Order, prev *domain.RoundSummary) float64 {
	if prev == nil {
		return order.RequestedPrice
	}
	return prev.Price
}

// surchargedPrice applies the rush surcharge to the order's requested price.
func surchargedPrice(order domain.Order) float64 {
	return baseline.Round2(order.RequestedPrice * (1 + baseline.RushSurchargeRate))
}

// negotiatedPrice is finance's round-2 compromise: the midpoint of the
// surcharged and original price plus a small buffer.
func negotiatedPrice(order domain.Order) float64 {
	mid := (surchargedPrice(order) + order.RequestedPrice) / 2
	return baseline.Round2(mid + baseline.CompromiseBuffer)
}
