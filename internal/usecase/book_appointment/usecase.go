package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
	servicetypeRepo "github.com/techtorque/appointment-service/internal/infra/storage/servicetype"
	"github.com/techtorque/appointment-service/internal/integrations/notification"
	"github.com/techtorque/appointment-service/internal/service/appointments/models"
)

// UseCase use case создания записи на обслуживание
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceTypeRepo ServiceTypeRepository
	validator       BookingValidator
	bayResolver     BayResolver
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceTypeRepo ServiceTypeRepository,
	validator BookingValidator,
	bayResolver BayResolver,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceTypeRepo: serviceTypeRepo,
		validator:       validator,
		bayResolver:     bayResolver,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Подбор бокса, выдача номера подтверждения и вставка выполняются
// в одной сериализуемой транзакции: два конкурентных бронирования
// не могут получить один бокс или один номер
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: customer=%s, vehicle=%s, service=%q, datetime=%s",
		req.CustomerID, req.VehicleID, req.ServiceType, req.RequestedDateTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Тип обслуживания и его длительность
	serviceType, err := uc.serviceTypeRepo.GetByName(ctx, req.ServiceType)
	if err != nil {
		if errors.Is(err, servicetypeRepo.ErrServiceTypeNotFound) {
			uc.logger.Warn("BookAppointment: service type %q not found", req.ServiceType)
			return nil, ErrServiceTypeNotFound
		}
		uc.logger.Error("BookAppointment: failed to get service type %q: %v", req.ServiceType, err)
		return nil, fmt.Errorf("%w: failed to get service type: %v", ErrInternal, err)
	}
	if !serviceType.Active {
		uc.logger.Warn("BookAppointment: service type %q is inactive", req.ServiceType)
		return nil, ErrServiceTypeInactive
	}

	// 3. Проверка запрошенного времени против графика мастерской
	if err := uc.validator.ValidateBookingTime(ctx, req.RequestedDateTime, serviceType.EstimatedDurationMinutes); err != nil {
		uc.logger.Warn("BookAppointment: booking time rejected: %v", err)
		return nil, err
	}

	end := req.RequestedDateTime.Add(time.Duration(serviceType.EstimatedDurationMinutes) * time.Minute)

	var result *domain.Appointment

	// 4. Подбор бокса, номер подтверждения и вставка — атомарно
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		bay, err := uc.bayResolver.ResolveBay(txCtx, req.RequestedDateTime, end, nil)
		if err != nil {
			uc.logger.Warn("BookAppointment: bay resolution failed: %v", err)
			return err
		}

		confirmationNumber, err := uc.nextConfirmationNumber(txCtx, uc.timeProvider.Now())
		if err != nil {
			uc.logger.Error("BookAppointment: confirmation number generation failed: %v", err)
			return err
		}

		apt := &domain.Appointment{
			CustomerID:          req.CustomerID,
			VehicleID:           req.VehicleID,
			AssignedEmployeeIDs: []string{},
			AssignedBayID:       &bay.ID,
			ConfirmationNumber:  confirmationNumber,
			ServiceType:         serviceType.Name,
			RequestedDateTime:   req.RequestedDateTime,
			Status:              domain.StatusPending,
			SpecialInstructions: req.SpecialInstructions,
		}

		created, err := uc.appointmentRepo.Create(txCtx, apt)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		uc.logger.Info("BookAppointment: bay %s reserved, confirmation %s issued", bay.BayNumber, confirmationNumber)
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(notification.Notification{
		UserID:   result.CustomerID,
		Title:    "Appointment requested",
		Message:  fmt.Sprintf("Your appointment %s is awaiting confirmation", result.ConfirmationNumber),
		Severity: notification.SeverityInfo,
	})

	uc.logger.Info("BookAppointment: successfully created appointment id=%s confirmation=%s",
		result.ID, result.ConfirmationNumber)

	return models.FromDomainAppointment(result), nil
}
