package timetracking

import (
	"context"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей (в части учёта времени)
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	UpdateStatusFrom(ctx context.Context, id string, from, to domain.AppointmentStatus) error
}

// SessionRepository интерфейс репозитория рабочих сессий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.TimeSession) (*domain.TimeSession, error)
	GetActive(ctx context.Context, appointmentID, employeeID string) (*domain.TimeSession, error)
	Close(ctx context.Context, id string, clockOut time.Time, timeLogID *string) error
	SetTimeLogID(ctx context.Context, id, timeLogID string) error
	ListByAppointment(ctx context.Context, appointmentID string) ([]*domain.TimeSession, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*domain.TimeSession, error)
}

// TimeLoggingClient интерфейс клиента сервиса учёта рабочего времени
type TimeLoggingClient interface {
	OpenEntry(ctx context.Context, appointmentID, employeeID string, startedAt time.Time) (string, error)
	CloseEntry(ctx context.Context, entryID string, endedAt time.Time, hoursWorked float64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени
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
