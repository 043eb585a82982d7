package domain

import (
	"fmt"
	"time"

	"github.com/techtorque/appointment-service/pkg/types"
)

// BusinessHours describes the operating hours for one weekday.
// Static reference data, read-only to the scheduling core.
type BusinessHours struct {
	ID             string
	DayOfWeek      time.Weekday
	OpenTime       types.TimeString
	CloseTime      types.TimeString
	BreakStartTime *types.TimeString
	BreakEndTime   *types.TimeString
	IsOpen         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasBreak returns true if a break window is configured for the day
func (h *BusinessHours) HasBreak() bool {
	return h.BreakStartTime != nil && h.BreakEndTime != nil
}

// Holiday marks an entire date as unavailable for booking
type Holiday struct {
	ID          string
	Date        time.Time // date only, time part is zero
	Name        string    // e.g. "Christmas"
	Description *string
	CreatedAt   time.Time
}

// weekdayTokens maps weekdays to the tokens persisted in the database.
// Stored as strings to avoid ordinal mismatches between schemas.
var weekdayTokens = map[time.Weekday]string{
	time.Monday:    "MONDAY",
	time.Tuesday:   "TUESDAY",
	time.Wednesday: "WEDNESDAY",
	time.Thursday:  "THURSDAY",
	time.Friday:    "FRIDAY",
	time.Saturday:  "SATURDAY",
	time.Sunday:    "SUNDAY",
}

// WeekdayToken returns the persisted token for a weekday
func WeekdayToken(d time.Weekday) string {
	return weekdayTokens[d]
}

// ParseWeekdayToken converts a persisted token back to a weekday
func ParseWeekdayToken(s string) (time.Weekday, error) {
	for d, token := range weekdayTokens {
		if token == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday token: %q", s)
}
