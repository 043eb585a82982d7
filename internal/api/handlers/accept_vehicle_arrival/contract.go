package accept_vehicle_arrival

import (
	"context"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/internal/service/appointments/models"
)

type AppointmentService interface {
	AcceptVehicleArrival(ctx context.Context, id string, principal domain.Principal) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
