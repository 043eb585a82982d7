package domain

import "time"

// ServiceBay represents a physical service position that can host exactly
// one appointment's work at a time
type ServiceBay struct {
	ID          string
	BayNumber   string // e.g. "BAY-01"; sortable, used as assignment tie-break
	Name        string // e.g. "Bay 1 - General Service"
	Description *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
