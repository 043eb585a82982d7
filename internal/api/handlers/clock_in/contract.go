package clock_in

import (
	"context"

	"github.com/techtorque/appointment-service/internal/service/timetracking"
)

type TimeTrackingService interface {
	ClockIn(ctx context.Context, appointmentID, employeeID string) (*timetracking.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
