package domain

import "time"

// TimeSlot is a candidate time window within a day's operating hours,
// bound to the first free bay that can host it
type TimeSlot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool
	BayID     string
	BayName   string
}
