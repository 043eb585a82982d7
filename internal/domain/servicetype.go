package domain

import "time"

// ServiceType is a catalog entry for a bookable workshop service
type ServiceType struct {
	ID                       string
	Name                     string
	Category                 string // e.g. "Maintenance", "Repair", "Modification"
	BasePrice                float64
	EstimatedDurationMinutes int
	Description              *string
	Active                   bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
