package domain

import (
	"errors"
	"fmt"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending           AppointmentStatus = "PENDING"
	StatusConfirmed         AppointmentStatus = "CONFIRMED"
	StatusInProgress        AppointmentStatus = "IN_PROGRESS"
	StatusCompleted         AppointmentStatus = "COMPLETED"
	StatusCustomerConfirmed AppointmentStatus = "CUSTOMER_CONFIRMED"
	StatusCancelled         AppointmentStatus = "CANCELLED"
	StatusNoShow            AppointmentStatus = "NO_SHOW"
)

// Role represents the role of the principal performing an operation
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

var (
	// ErrInvalidTransition возвращается, когда переход статуса запрещён
	// таблицей переходов или роль не авторизована для перехода
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnknownStatus возвращается при неизвестном статусе
	ErrUnknownStatus = errors.New("unknown appointment status")

	// ErrUnknownRole возвращается при неизвестной роли
	ErrUnknownRole = errors.New("unknown role")
)

// ParseStatus validates and converts a raw status token
func ParseStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCustomerConfirmed, StatusCancelled, StatusNoShow:
		return AppointmentStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// ParseRole validates and converts a raw role token.
// SUPER_ADMIN is normalized to ADMIN: it carried the same transition rights
// in the upstream role model.
func ParseRole(s string) (Role, error) {
	switch s {
	case "CUSTOMER":
		return RoleCustomer, nil
	case "EMPLOYEE":
		return RoleEmployee, nil
	case "ADMIN", "SUPER_ADMIN":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// validTransitions is the appointment state machine: for each current status,
// the set of reachable statuses and the roles allowed to perform the edge.
// Built once at startup; ValidateTransition never mutates it.
var validTransitions = map[AppointmentStatus]map[AppointmentStatus][]Role{
	StatusPending: {
		StatusConfirmed: {RoleAdmin},
		StatusCancelled: {RoleCustomer, RoleAdmin},
	},
	StatusConfirmed: {
		StatusInProgress: {RoleEmployee, RoleAdmin},
		StatusNoShow:     {RoleAdmin},
		StatusCancelled:  {RoleAdmin},
	},
	StatusInProgress: {
		StatusCompleted: {RoleEmployee, RoleAdmin},
		StatusCancelled: {RoleAdmin},
	},
	StatusCompleted: {
		StatusCustomerConfirmed: {RoleCustomer},
	},
	// Terminal states: no outgoing edges
	StatusCustomerConfirmed: {},
	StatusCancelled:         {},
	StatusNoShow:            {},
}

// ValidateTransition reports whether the transition current -> target is
// permitted for the given role. It is pure: the caller applies the mutation
// only after successful validation.
func ValidateTransition(current, target AppointmentStatus, role Role) error {
	edges, ok := validTransitions[current]
	if !ok {
		return fmt.Errorf("%w: status %q is not recognized in the state machine", ErrInvalidTransition, current)
	}

	roles, ok := edges[target]
	if !ok {
		return fmt.Errorf("%w: transition from %q to %q is not allowed", ErrInvalidTransition, current, target)
	}

	for _, r := range roles {
		if r == role {
			return nil
		}
	}

	return fmt.Errorf("%w: role %q is not authorized to transition from %q to %q",
		ErrInvalidTransition, role, current, target)
}

// ValidTransitions returns the reachable statuses and allowed roles for the
// given status. Unknown statuses yield an empty map.
func ValidTransitions(current AppointmentStatus) map[AppointmentStatus][]Role {
	edges, ok := validTransitions[current]
	if !ok {
		return map[AppointmentStatus][]Role{}
	}
	out := make(map[AppointmentStatus][]Role, len(edges))
	for target, roles := range edges {
		out[target] = append([]Role(nil), roles...)
	}
	return out
}

// IsTerminal reports whether the status has no outgoing transitions
func IsTerminal(status AppointmentStatus) bool {
	return len(validTransitions[status]) == 0
}
