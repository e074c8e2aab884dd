package agents

import (
	"fmt"

	"github.com/averill/parley/internal/baseline"
	"github.com/averill/parley/internal/domain"
)

// salesEvaluator speaks for the customer relationship. Sales always approves;
// its job is shaping the offer, not blocking it.
type salesEvaluator struct{}

func (salesEvaluator) Evaluate(order domain.Order, round int, prev *domain.RoundSummary) (domain.AgentProposal, error) {
	status := domain.StatusProposing
	var reasoning string
	metrics := map[string]any{
		"customerTier":      baseline.CustomerTier,
		"relationshipYears": baseline.RelationshipYears,
		"annualVolume":      baseline.AnnualVolumeUnits,
	}

	switch round {
	case 1:
		reasoning = fmt.Sprintf("%s is a %s account (%d years, %d units/yr); recommend accommodating the %s request.",
			order.Customer, baseline.CustomerTier, baseline.RelationshipYears, baseline.AnnualVolumeUnits, order.Priority)
	case 2:
		// Split the difference between finance's surcharge and the ask.
		counter := baseline.Round2((surchargedPrice(order) + order.RequestedPrice) / 2)
		metrics["counterOffer"] = counter
		reasoning = fmt.Sprintf("Counter-offer at $%.2f/unit splits the difference between the surcharge and the original ask.", counter)
	default:
		status = domain.StatusAgreed
		price := carriedPrice(order, prev)
		dealValue := baseline.Round2(price * float64(order.Quantity))
		metrics["dealValue"] = dealValue
		reasoning = fmt.Sprintf("Final deal value $%.2f at $%.2f/unit; sales signs off.", dealValue, price)
	}

	actions := []domain.ActionStep{
		{
			Kind:   domain.StepToolCall,
			Label:  "lookup_customer_profile()",
			Detail: fmt.Sprintf("Round %d account review for %s.", round, order.Customer),
			Data:   map[string]any{"tier": baseline.CustomerTier, "relationshipYears": baseline.RelationshipYears},
		},
		{
			Kind:   domain.StepResponse,
			Label:  "account_position",
			Detail: reasoning,
		},
		verdictStep(domain.RoleSales, true, reasoning),
	}

	return domain.AgentProposal{
		Role:      domain.RoleSales,
		Round:     round,
		Status:    status,
		Reasoning: reasoning,
		Approved:  true,
		Metrics:   metrics,
		Actions:   actions,
	}, nil
}
