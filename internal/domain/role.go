package domain

import "fmt"

// Role identifies one of the five fixed negotiation participants. The set is
// closed: evaluators dispatch on Role with an exhaustive switch, never on raw
// strings from the wire.
type Role string

const (
	RoleProduction  Role = "production"
	RoleFinance     Role = "finance"
	RoleLogistics   Role = "logistics"
	RoleProcurement Role = "procurement"
	RoleSales       Role = "sales"
)

// Roles returns all roles in the fixed emission order used throughout the
// protocol: production, finance, logistics, procurement, sales.
func Roles() []Role {
	return []Role{RoleProduction, RoleFinance, RoleLogistics, RoleProcurement, RoleSales}
}

// ParseRole converts a wire identifier into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleProduction, RoleFinance, RoleLogistics, RoleProcurement, RoleSales:
		return Role(s), nil
	}
	return "", fmt.Errorf("domain: unknown role %q", s)
}
