package scheduling

import (
	"context"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория графика мастерской
type ScheduleRepository interface {
	GetBusinessHours(ctx context.Context, day time.Weekday) (*domain.BusinessHours, error)
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

// BayRepository интерфейс репозитория сервисных боксов
type BayRepository interface {
	ListActive(ctx context.Context) ([]*domain.ServiceBay, error)
}

// AppointmentRepository интерфейс репозитория записей (в части выборок по боксу)
type AppointmentRepository interface {
	ListByBayAndRange(ctx context.Context, bayID string, from, to time.Time) ([]*domain.Appointment, error)
}

// TimeProvider источник текущего времени; в тестах подменяется фиксированным
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
