package domain

import (
	"time"
)

// Appointment represents a service appointment in the workshop
type Appointment struct {
	ID         string
	CustomerID string
	VehicleID  string

	// AssignedEmployeeIDs has set semantics: unordered, no duplicates
	AssignedEmployeeIDs []string
	AssignedBayID       *string

	ConfirmationNumber string
	ServiceType        string
	RequestedDateTime  time.Time
	Status             AppointmentStatus

	SpecialInstructions *string

	// Set once, when the vehicle arrival is accepted by an employee
	VehicleArrivedAt            *time.Time
	VehicleAcceptedByEmployeeID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its bay window
// (not cancelled and not a no-show)
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// CanBeUpdated returns true if the customer may still change time/instructions
func (a *Appointment) CanBeUpdated() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// HasEmployee returns true if the employee is in the assigned set
func (a *Appointment) HasEmployee(employeeID string) bool {
	for _, id := range a.AssignedEmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// AssignEmployee adds the employee to the assigned set (no-op if present)
func (a *Appointment) AssignEmployee(employeeID string) {
	if !a.HasEmployee(employeeID) {
		a.AssignedEmployeeIDs = append(a.AssignedEmployeeIDs, employeeID)
	}
}

// OccupiedWindow returns the conflict window of the appointment.
// Existing appointments occupy a fixed default duration regardless of their
// service's real duration (see DefaultOccupancyMinutes).
func (a *Appointment) OccupiedWindow() (start, end time.Time) {
	start = a.RequestedDateTime
	end = start.Add(DefaultOccupancyMinutes * time.Minute)
	return start, end
}

// Overlaps reports whether two half-open time windows intersect.
// Boundary-touching windows (aEnd == bStart) do not overlap.
// Shared by the bay resolver and the availability calculator so the two
// call sites can never diverge.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// AppointmentFilter фильтр для выборки записей
type AppointmentFilter struct {
	CustomerID *string            // Фильтр по клиенту (опционально)
	VehicleID  *string            // Фильтр по автомобилю (опционально)
	Status     *AppointmentStatus // Фильтр по статусу (опционально)
	FromDate   *time.Time         // Начало периода (опционально)
	ToDate     *time.Time         // Конец периода (опционально)
}
