package appointments

import (
	"context"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/internal/integrations/notification"
	"github.com/techtorque/appointment-service/internal/service/timetracking"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Appointment, error)
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]*domain.Appointment, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, apt *domain.Appointment) error
	UpdateStatusFrom(ctx context.Context, id string, from, to domain.AppointmentStatus) error
	SetAssignedEmployees(ctx context.Context, id string, employeeIDs []string) error
	SetVehicleArrival(ctx context.Context, id, employeeID string, arrivedAt time.Time) error
}

// ScheduleRepository интерфейс репозитория графика (для календаря)
type ScheduleRepository interface {
	ListHolidaysInRange(ctx context.Context, from, to time.Time) ([]*domain.Holiday, error)
}

// ServiceTypeRepository интерфейс каталога типов обслуживания
type ServiceTypeRepository interface {
	GetByName(ctx context.Context, name string) (*domain.ServiceType, error)
}

// BookingValidator проверяет запрошенное время против графика мастерской
type BookingValidator interface {
	ValidateBookingTime(ctx context.Context, start time.Time, durationMinutes int) error
}

// BayResolver подбирает свободный бокс для окна работы
type BayResolver interface {
	ResolveBay(ctx context.Context, start, end time.Time, excludeAppointmentID *string) (*domain.ServiceBay, error)
}

// TimeTracker интерфейс сервиса учёта рабочего времени
type TimeTracker interface {
	ClockIn(ctx context.Context, appointmentID, employeeID string) (*timetracking.SessionResponse, error)
}

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	Dispatch(n notification.Notification)
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
