package domain

import "time"

// TimeSession records one continuous work period an employee logs against
// an appointment. At most one active session may exist per
// (appointment, employee) pair at any instant. Sessions are closed on
// clock-out and kept for audit, never deleted.
type TimeSession struct {
	ID            string
	AppointmentID string
	EmployeeID    string
	ClockInTime   time.Time
	ClockOutTime  *time.Time
	Active        bool
	TimeLogID     *string // ledger entry reference in the time-logging service
	CreatedAt     time.Time
}

// HoursWorked returns the fractional hours between clock-in and clock-out.
// Returns 0 for a session that has not been closed yet.
func (s *TimeSession) HoursWorked() float64 {
	if s.ClockOutTime == nil {
		return 0
	}
	return s.ClockOutTime.Sub(s.ClockInTime).Hours()
}

// ElapsedSince returns the seconds elapsed between clock-in and now
func (s *TimeSession) ElapsedSince(now time.Time) int64 {
	return int64(now.Sub(s.ClockInTime).Seconds())
}
