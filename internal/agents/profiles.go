package agents

import (
	"fmt"

	"github.com/averill/parley/internal/baseline"
	"github.com/averill/parley/internal/domain"
)

// Profile describes one role for the catalog endpoints. Display metadata
// only; nothing here influences evaluation.
type Profile struct {
	ID          domain.Role    `json:"id"`
	Name        string         `json:"name"`
	Title       string         `json:"role"`
	Description string         `json:"description"`
	Tools       []string       `json:"tools"`
	Parameters  map[string]any `json:"operationalParameters,omitempty"`
}

// Profiles returns all role profiles in the fixed protocol order.
func Profiles() []Profile {
	out := make([]Profile, 0, len(domain.Roles()))
	for _, role := range domain.Roles() {
		p, _ := ProfileFor(role)
		out = append(out, p)
	}
	return out
}

// ProfileFor returns the profile for one role.
func ProfileFor(role domain.Role) (Profile, error) {
	switch role {
	case domain.RoleProduction:
		return Profile{
			ID:    role,
			Name:  "Production Planner",
			Title: "Manufacturing capacity and scheduling",
			Description: fmt.Sprintf("Plans factory schedules against a %d unit/week line and up to %dh of overtime per order.",
				baseline.WeeklyCapacity, baseline.OvertimeHoursCap),
			Tools: []string{"check_production_capacity", "calculate_overtime", "lock_production_schedule"},
			Parameters: map[string]any{
				"weeklyCapacity":      baseline.WeeklyCapacity,
				"workingDaysPerWeek":  baseline.WorkingDaysPerWeek,
				"maxOvertimePerDay":   baseline.MaxOvertimePerDay,
				"overtimeCostPerHour": baseline.OvertimeCostPerHour,
			},
		}, nil
	case domain.RoleFinance:
		return Profile{
			ID:    role,
			Name:  "Finance Controller",
			Title: "Margin protection and pricing",
			Description: fmt.Sprintf("Holds every deal above a %.0f%% margin floor, pricing rush work with a %.0f%% surcharge when needed.",
				baseline.MarginFloor*100, baseline.RushSurchargeRate*100),
			Tools: []string{"compute_unit_cost", "check_margin", "propose_surcharge"},
			Parameters: map[string]any{
				"baseCostPerUnit":   baseline.BaseCostPerUnit,
				"marginFloor":       baseline.MarginFloor,
				"targetMargin":      baseline.TargetMargin,
				"rushSurchargeRate": baseline.RushSurchargeRate,
			},
		}, nil
	case domain.RoleLogistics:
		return Profile{
			ID:          role,
			Name:        "Logistics Coordinator",
			Title:       "Freight mode selection and carrier booking",
			Description: "Matches delivery windows to ground, express or air freight and locks carrier capacity.",
			Tools:       []string{"select_shipping_mode", "book_carrier"},
			Parameters: map[string]any{
				"ground":  map[string]any{"costPerUnit": 0.30, "transitDays": 5},
				"express": map[string]any{"costPerUnit": 0.85, "transitDays": 3},
				"air":     map[string]any{"costPerUnit": 2.10, "transitDays": 1},
			},
		}, nil
	case domain.RoleProcurement:
		return Profile{
			ID:    role,
			Name:  "Procurement Buyer",
			Title: "Supplier lead times and material supply",
			Description: fmt.Sprintf("Sources materials from %s (%dd lead) with %s as the expedite fallback.",
				baseline.PrimarySupplier, baseline.PrimaryLeadTimeDays, baseline.AlternateSupplier),
			Tools: []string{"query_supplier_inventory", "reserve_materials", "queue_purchase_order"},
			Parameters: map[string]any{
				"primarySupplier":    baseline.PrimarySupplier,
				"primaryLeadDays":    baseline.PrimaryLeadTimeDays,
				"alternateSupplier":  baseline.AlternateSupplier,
				"alternateLeadDays":  baseline.AlternateLeadTimeDays,
				"supplierBufferDays": baseline.SupplierBufferDays,
			},
		}, nil
	case domain.RoleSales:
		return Profile{
			ID:          role,
			Name:        "Sales Director",
			Title:       "Customer relationship and deal shaping",
			Description: "Represents the account: weighs relationship history against pricing moves and closes the offer.",
			Tools:       []string{"lookup_customer_profile", "draft_counter_offer", "sign_off_deal"},
			Parameters: map[string]any{
				"customerTier":      baseline.CustomerTier,
				"relationshipYears": baseline.RelationshipYears,
				"annualVolume":      baseline.AnnualVolumeUnits,
			},
		}, nil
	}
	return Profile{}, fmt.Errorf("agents: no profile for role %q", role)
}
