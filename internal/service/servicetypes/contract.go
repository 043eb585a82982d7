package servicetypes

import (
	"context"

	"github.com/techtorque/appointment-service/internal/domain"
)

// ServiceTypeRepository интерфейс репозитория каталога типов обслуживания
type ServiceTypeRepository interface {
	Create(ctx context.Context, st *domain.ServiceType) (*domain.ServiceType, error)
	GetByID(ctx context.Context, id string) (*domain.ServiceType, error)
	GetByName(ctx context.Context, name string) (*domain.ServiceType, error)
	ListActive(ctx context.Context) ([]*domain.ServiceType, error)
	ListAll(ctx context.Context) ([]*domain.ServiceType, error)
	Update(ctx context.Context, st *domain.ServiceType) error
	Deactivate(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
