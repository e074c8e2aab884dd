// Package baseline holds the fixed business constants every evaluator
// computes against. The values describe one plant, one primary supplier and
// one strategic customer; they are deliberately static so negotiations stay
// deterministic.
package baseline

import (
	"math"

	"github.com/averill/parley/internal/domain"
)

// Production constants.
const (
	WeeklyCapacity       = 4000 // units per week
	WorkingDaysPerWeek   = 5
	MaxOvertimePerDay    = 4  // hours
	OvertimeHoursCap     = 20 // total hours per order
	OvertimeCostPerHour  = 45.0
	ShortfallRejectDays  = 5 // production objects beyond this shortfall
)

// Finance constants.
const (
	BaseCostPerUnit   = 8.50
	MarginFloor       = 0.15
	TargetMargin      = 0.20
	RushSurchargeRate = 0.12
	CompromiseBuffer  = 0.20 // dollars added on top of the split price
)

// Procurement constants.
const (
	PrimarySupplier          = "ChemCorp Asia"
	PrimaryLeadTimeDays      = 10
	PrimaryMaterialCost      = 3.20
	AlternateSupplier        = "EuroChem GmbH"
	AlternateLeadTimeDays    = 6
	AlternateMaterialCost    = 3.85
	SupplierBufferDays       = 5 // lead time must fit inside window minus this
)

// Sales constants describing the standing customer profile.
const (
	CustomerTier            = "strategic"
	RelationshipYears       = 6
	AnnualVolumeUnits       = 120000
	AcceptableDeliveryDelta = 2 // days of slippage the account tolerates
)

// ShippingOption is one row of the fixed freight decision table.
type ShippingOption struct {
	Mode        domain.ShippingMode
	CostPerUnit float64
	TransitDays int
}

var shippingTable = []ShippingOption{
	{domain.ShipAir, 2.10, 1},
	{domain.ShipExpress, 0.85, 3},
	{domain.ShipGround, 0.30, 5},
}

// ShippingFor selects a freight option from the delivery window: ≤15 days
// needs air, ≤18 express, anything longer rides ground.
func ShippingFor(deliveryDays int) ShippingOption {
	switch {
	case deliveryDays <= 15:
		return shippingTable[0]
	case deliveryDays <= 18:
		return shippingTable[1]
	default:
		return shippingTable[2]
	}
}

// GroundTransitDays is the transit constant used when sizing the production
// window, regardless of which mode logistics later selects.
const GroundTransitDays = 5

// UnitsPerDay is the plant's daily throughput.
func UnitsPerDay() float64 {
	return float64(WeeklyCapacity) / float64(WorkingDaysPerWeek)
}

// DaysNeeded returns the whole production days required for a quantity.
func DaysNeeded(quantity int) int {
	return int(math.Ceil(float64(quantity) / UnitsPerDay()))
}

// OvertimeHours computes the capped overtime needed to close a production
// shortfall against the given delivery window. Zero when the schedule fits.
func OvertimeHours(quantity, deliveryDays int) int {
	available := deliveryDays - GroundTransitDays
	shortfall := DaysNeeded(quantity) - available
	if shortfall <= 0 {
		return 0
	}
	hours := MaxOvertimePerDay * shortfall
	if hours > OvertimeHoursCap {
		return OvertimeHoursCap
	}
	return hours
}

// UnitCost is the finance cost model: base cost plus overtime amortized
// across the order quantity.
func UnitCost(quantity, overtimeHours int) float64 {
	if quantity <= 0 {
		return BaseCostPerUnit
	}
	return BaseCostPerUnit + float64(overtimeHours)*OvertimeCostPerHour/float64(quantity)
}

// Margin returns (price − cost) / price. Zero when price is not positive.
func Margin(price, unitCost float64) float64 {
	if price <= 0 {
		return 0
	}
	return (price - unitCost) / price
}

// PrimarySupplierViable reports whether the primary supplier's lead time
// fits inside the delivery window minus the procurement buffer.
func PrimarySupplierViable(deliveryDays int) bool {
	return PrimaryLeadTimeDays <= deliveryDays-SupplierBufferDays
}

// Round2 rounds a dollar amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds a percentage to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
