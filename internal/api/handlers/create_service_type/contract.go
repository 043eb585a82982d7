package create_service_type

import (
	"context"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/internal/service/servicetypes"
)

type ServiceTypeService interface {
	Create(ctx context.Context, req *servicetypes.CreateServiceTypeRequest, principal domain.Principal) (*servicetypes.ServiceTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
