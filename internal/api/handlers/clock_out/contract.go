package clock_out

import (
	"context"

	"github.com/techtorque/appointment-service/internal/service/timetracking"
)

type TimeTrackingService interface {
	ClockOut(ctx context.Context, appointmentID, employeeID string) (*timetracking.ClockOutResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
