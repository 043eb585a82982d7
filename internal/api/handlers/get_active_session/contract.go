package get_active_session

import (
	"context"

	"github.com/techtorque/appointment-service/internal/service/timetracking"
)

type TimeTrackingService interface {
	GetActiveSession(ctx context.Context, appointmentID, employeeID string) (*timetracking.ActiveSessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
