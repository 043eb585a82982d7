package list_service_types

import (
	"context"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/internal/service/servicetypes"
)

type ServiceTypeService interface {
	ListActive(ctx context.Context) (*servicetypes.ServiceTypeListResponse, error)
	ListAll(ctx context.Context, principal domain.Principal) (*servicetypes.ServiceTypeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
