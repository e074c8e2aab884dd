package domain

// ShippingMode is one of the three fixed freight options.
type ShippingMode string

const (
	ShipGround  ShippingMode = "ground"
	ShipExpress ShippingMode = "express"
	ShipAir     ShippingMode = "air"
)

// Negotiations always run exactly MaxRounds rounds, numbered from 1.
const MaxRounds = 3

// RoundSummary is the aggregate state of one negotiation round. Round N+1
// reads round N's summary as input and never mutates it.
type RoundSummary struct {
	Round         int             `json:"round"`
	Price         float64         `json:"price"`
	DeliveryDays  int             `json:"deliveryDays"`
	Margin        float64         `json:"margin"` // percentage, e.g. 17.2
	ShippingMode  ShippingMode    `json:"shippingMode"`
	OvertimeHours int             `json:"overtimeHours"`
	Proposals     []AgentProposal `json:"proposals"`
	Converged     bool            `json:"converged"`
}

// ProposalFor returns the proposal submitted by the given role in this round.
func (rs RoundSummary) ProposalFor(role Role) (AgentProposal, bool) {
	for _, p := range rs.Proposals {
		if p.Role == role {
			return p, true
		}
	}
	return AgentProposal{}, false
}

// AllApproved reports whether every proposal in the round carries approval.
func (rs RoundSummary) AllApproved() bool {
	if len(rs.Proposals) == 0 {
		return false
	}
	for _, p := range rs.Proposals {
		if !p.Approved {
			return false
		}
	}
	return true
}
