package domain

// Principal identifies the authenticated caller of an operation
type Principal struct {
	UserID string
	Roles  []Role
}

// HasRole returns true if the principal carries the role
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin returns true if the principal carries the ADMIN role
func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// IsEmployee returns true if the principal carries the EMPLOYEE role
func (p Principal) IsEmployee() bool {
	return p.HasRole(RoleEmployee)
}

// EffectiveRole returns the strongest role for status transitions:
// ADMIN over EMPLOYEE over CUSTOMER
func (p Principal) EffectiveRole() Role {
	switch {
	case p.HasRole(RoleAdmin):
		return RoleAdmin
	case p.HasRole(RoleEmployee):
		return RoleEmployee
	default:
		return RoleCustomer
	}
}
