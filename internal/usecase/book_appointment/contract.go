package book_appointment

import (
	"context"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/internal/integrations/notification"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
	GetMaxConfirmationNumber(ctx context.Context, prefix string) (*string, error)
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

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	Dispatch(n notification.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
