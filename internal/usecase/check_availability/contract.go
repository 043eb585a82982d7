package check_availability

import (
	"context"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
)

// ServiceTypeRepository интерфейс каталога типов обслуживания
type ServiceTypeRepository interface {
	GetByName(ctx context.Context, name string) (*domain.ServiceType, error)
}

// AvailabilityCalculator вычисляет сетку слотов на дату
type AvailabilityCalculator interface {
	CalculateSlots(ctx context.Context, date time.Time, durationMinutes int) ([]*domain.TimeSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
