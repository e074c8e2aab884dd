package negotiation

import (
	"fmt"

	"github.com/averill/parley/internal/baseline"
	"github.com/averill/parley/internal/domain"
)

// Confidence constants reported with the decision. They correlate with
// approval; the exact values match the reference display contract.
const (
	confidenceApproved = 94
	confidenceRejected = 45
)

// SynthesizeConsensus derives the terminal decision from the completed round
// sequence. Only the last round decides; earlier rounds inform the narrative.
// Pure: identical input always yields an identical result.
func SynthesizeConsensus(rounds []domain.RoundSummary, order domain.Order) (domain.ConsensusResult, error) {
	if len(rounds) == 0 {
		return domain.ConsensusResult{}, fmt.Errorf("negotiation: consensus requires at least one round")
	}

	last := rounds[len(rounds)-1]
	marginOK := last.Margin >= baseline.MarginFloor*100
	approved := last.Converged && marginOK

	risk := domain.RiskHigh
	switch {
	case last.Margin >= 18:
		risk = domain.RiskLow
	case last.Margin >= 15:
		risk = domain.RiskMedium
	}

	result := domain.ConsensusResult{
		Approved:          approved,
		FinalPrice:        baseline.Round2(last.Price),
		FinalDeliveryDays: last.DeliveryDays,
		FinalMargin:       baseline.Round1(last.Margin),
		ShippingMode:      last.ShippingMode,
		OvertimeHours:     last.OvertimeHours,
		RiskScore:         risk,
		Supplier:          baseline.PrimarySupplier,
		Confidence:        confidenceRejected,
	}
	if approved {
		result.Confidence = confidenceApproved
	}

	if !approved {
		result.RejectionReason = rejectionReason(last, marginOK)
	}
	result.Summary = narrative(order, rounds, result)
	return result, nil
}

// rejectionReason picks the most specific explanation for a rejected deal.
func rejectionReason(last domain.RoundSummary, marginOK bool) string {
	if !last.Converged {
		for _, p := range last.Proposals {
			if !p.Approved {
				return p.Reasoning
			}
		}
		return "Participants did not converge within the round limit."
	}
	if !marginOK {
		return fmt.Sprintf("Final margin %.1f%% is below the %.0f%% floor.", last.Margin, baseline.MarginFloor*100)
	}
	return "Unable to meet requested terms within operational constraints."
}

// narrative renders the human-readable decision summary.
func narrative(order domain.Order, rounds []domain.RoundSummary, r domain.ConsensusResult) string {
	if r.Approved {
		return fmt.Sprintf("Order %s APPROVED. %d units of %s at $%.2f/unit, delivered in %d days via %s freight. Margin: %.1f%%. All agents reached consensus in %d rounds.",
			order.ID, order.Quantity, order.Product, r.FinalPrice, r.FinalDeliveryDays, r.ShippingMode, r.FinalMargin, len(rounds))
	}
	return fmt.Sprintf("Order %s REJECTED. Reason: %s (after %d rounds).", order.ID, r.RejectionReason, len(rounds))
}
