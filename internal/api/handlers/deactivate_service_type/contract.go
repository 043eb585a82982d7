package deactivate_service_type

import (
	"context"

	"github.com/techtorque/appointment-service/internal/domain"
)

type ServiceTypeService interface {
	Deactivate(ctx context.Context, id string, principal domain.Principal) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
