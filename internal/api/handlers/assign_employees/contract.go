package assign_employees

import (
	"context"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/internal/service/appointments/models"
)

type AppointmentService interface {
	AssignEmployees(ctx context.Context, id string, employeeIDs []string, principal domain.Principal) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
