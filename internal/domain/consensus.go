package domain

// RiskScore classifies the commercial risk of an approved deal.
type RiskScore string

const (
	RiskLow    RiskScore = "Low"
	RiskMedium RiskScore = "Medium"
	RiskHigh   RiskScore = "High"
)

// ConsensusResult is the terminal decision of a negotiation. Derived once
// from the full round sequence and immutable after creation.
type ConsensusResult struct {
	Approved          bool         `json:"approved"`
	FinalPrice        float64      `json:"finalPrice"`
	FinalDeliveryDays int          `json:"finalDeliveryDays"`
	FinalMargin       float64      `json:"finalMargin"` // percentage
	ShippingMode      ShippingMode `json:"shippingMode"`
	OvertimeHours     int          `json:"overtimeHours"`
	RiskScore         RiskScore    `json:"riskScore"`
	Confidence        int          `json:"confidence"`
	Supplier          string       `json:"supplier"`
	RejectionReason   string       `json:"rejectionReason,omitempty"`
	Summary           string       `json:"summary"`
}
