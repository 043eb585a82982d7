package update_service_type

import (
	"context"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/internal/service/servicetypes"
)

type ServiceTypeService interface {
	Update(ctx context.Context, id string, req *servicetypes.UpdateServiceTypeRequest, principal domain.Principal) (*servicetypes.ServiceTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
