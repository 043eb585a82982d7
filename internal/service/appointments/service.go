package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
	appointmentRepo "github.com/techtorque/appointment-service/internal/infra/storage/appointment"
	servicetypeRepo "github.com/techtorque/appointment-service/internal/infra/storage/servicetype"
	"github.com/techtorque/appointment-service/internal/integrations/notification"
	"github.com/techtorque/appointment-service/internal/service/appointments/models"
	"github.com/techtorque/appointment-service/pkg/ptr"
)

// Service сервис для работы с записями на обслуживание:
// доступ по ролям, переходы статусов, назначение сотрудников,
// приём автомобиля и подтверждение выполнения клиентом
type Service struct {
	appointmentRepo AppointmentRepository
	serviceTypeRepo ServiceTypeRepository
	scheduleRepo    ScheduleRepository
	validator       BookingValidator
	bayResolver     BayResolver
	timeTracker     TimeTracker
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	serviceTypeRepo ServiceTypeRepository,
	scheduleRepo ScheduleRepository,
	validator BookingValidator,
	bayResolver BayResolver,
	timeTracker TimeTracker,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		serviceTypeRepo: serviceTypeRepo,
		scheduleRepo:    scheduleRepo,
		validator:       validator,
		bayResolver:     bayResolver,
		timeTracker:     timeTracker,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свои записи, сотрудник и администратор — любые
func (s *Service) GetByID(ctx context.Context, id string, principal domain.Principal) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, principal.UserID)

	apt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReadAccess(apt, principal); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", principal.UserID, id)
		return nil, err
	}

	return models.FromDomainAppointment(apt), nil
}

// List получает список записей с фильтрацией
// Клиент всегда видит только свои записи; фильтр по клиенту для него игнорируется
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest, principal domain.Principal) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for user=%s role=%s", principal.UserID, principal.EffectiveRole())

	if !principal.IsAdmin() && !principal.IsEmployee() {
		appointments, err := s.appointmentRepo.ListByCustomer(ctx, principal.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: List - list customer appointments: %v", ErrInternal, err)
		}
		return models.FromDomainAppointmentList(appointments), nil
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter from user=%s: %v", principal.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - list with filter: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus выполняет переход статуса записи.
// Переход проверяется таблицей переходов по эффективной роли вызывающего;
// конкурентные переходы разрешаются через compare-and-set
func (s *Service) UpdateStatus(ctx context.Context, id string, targetStatus string, principal domain.Principal) (*models.AppointmentResponse, error) {
	target, err := domain.ParseStatus(targetStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("UpdateStatus: appointment=%s target=%s user=%s role=%s",
		id, target, principal.UserID, principal.EffectiveRole())

	var updated *domain.Appointment

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		apt, err := s.getAppointment(ctx, id)
		if err != nil {
			return err
		}

		// Клиент может переводить статусы только своих записей
		if !principal.IsAdmin() && !principal.IsEmployee() && apt.CustomerID != principal.UserID {
			return ErrAccessDenied
		}

		if err := domain.ValidateTransition(apt.Status, target, principal.EffectiveRole()); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		if err := s.appointmentRepo.UpdateStatusFrom(ctx, id, apt.Status, target); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				return ErrStatusConflict
			}
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - update status: %v", ErrInternal, err)
		}

		// Перевод в работу или подтверждение без назначенных сотрудников
		// закрепляет за записью инициатора перехода, иначе clock-in
		// не пройдёт проверку назначения
		if (target == domain.StatusConfirmed || target == domain.StatusInProgress) &&
			len(apt.AssignedEmployeeIDs) == 0 &&
			(principal.IsEmployee() || principal.IsAdmin()) {
			apt.AssignEmployee(principal.UserID)
			if err := s.appointmentRepo.SetAssignedEmployees(ctx, id, apt.AssignedEmployeeIDs); err != nil {
				return fmt.Errorf("%w: UpdateStatus - assign employee: %v", ErrInternal, err)
			}
		}

		apt.Status = target
		updated = apt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatusChange(updated)

	s.logger.Info("UpdateStatus: appointment=%s moved to %s", id, target)
	return models.FromDomainAppointment(updated), nil
}

// Cancel отменяет запись.
// Клиент может отменить только свою запись и только до подтверждения;
// администратор — на любом этапе, где переход в CANCELLED разрешён
func (s *Service) Cancel(ctx context.Context, id string, principal domain.Principal) (*models.AppointmentResponse, error) {
	return s.UpdateStatus(ctx, id, string(domain.StatusCancelled), principal)
}

// ConfirmCompletion подтверждает выполнение работ клиентом.
// Доступно только владельцу записи в статусе COMPLETED
func (s *Service) ConfirmCompletion(ctx context.Context, id string, principal domain.Principal) (*models.AppointmentResponse, error) {
	s.logger.Info("ConfirmCompletion: appointment=%s user=%s", id, principal.UserID)

	var updated *domain.Appointment

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		apt, err := s.getAppointment(ctx, id)
		if err != nil {
			return err
		}

		if apt.CustomerID != principal.UserID {
			return ErrAccessDenied
		}

		if err := domain.ValidateTransition(apt.Status, domain.StatusCustomerConfirmed, domain.RoleCustomer); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		if err := s.appointmentRepo.UpdateStatusFrom(ctx, id, apt.Status, domain.StatusCustomerConfirmed); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				return ErrStatusConflict
			}
			return fmt.Errorf("%w: ConfirmCompletion - update status: %v", ErrInternal, err)
		}

		apt.Status = domain.StatusCustomerConfirmed
		updated = apt
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сотрудники, выполнявшие работу, узнают о подтверждении клиента
	for _, employeeID := range updated.AssignedEmployeeIDs {
		s.notifier.Dispatch(notification.Notification{
			UserID:   employeeID,
			Title:    "Completion confirmed",
			Message:  fmt.Sprintf("Customer confirmed completion of appointment %s", updated.ConfirmationNumber),
			Severity: notification.SeveritySuccess,
		})
	}

	s.logger.Info("ConfirmCompletion: appointment=%s confirmed by customer=%s", id, principal.UserID)
	return models.FromDomainAppointment(updated), nil
}

// AssignEmployees назначает сотрудников на запись (только администратор).
// Назначение на ожидающую запись подтверждает её
func (s *Service) AssignEmployees(ctx context.Context, id string, employeeIDs []string, principal domain.Principal) (*models.AppointmentResponse, error) {
	if !principal.IsAdmin() {
		return nil, ErrAccessDenied
	}
	if len(employeeIDs) == 0 {
		return nil, ErrNoEmployees
	}

	s.logger.Info("AssignEmployees: appointment=%s employees=%v admin=%s", id, employeeIDs, principal.UserID)

	var updated *domain.Appointment

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		apt, err := s.getAppointment(ctx, id)
		if err != nil {
			return err
		}

		if domain.IsTerminal(apt.Status) {
			return fmt.Errorf("%w: appointment is in terminal status %s", ErrInvalidTransition, apt.Status)
		}

		for _, employeeID := range employeeIDs {
			apt.AssignEmployee(employeeID)
		}

		if err := s.appointmentRepo.SetAssignedEmployees(ctx, id, apt.AssignedEmployeeIDs); err != nil {
			return fmt.Errorf("%w: AssignEmployees - set employees: %v", ErrInternal, err)
		}

		if apt.Status == domain.StatusPending {
			if err := domain.ValidateTransition(apt.Status, domain.StatusConfirmed, domain.RoleAdmin); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
			}
			if err := s.appointmentRepo.UpdateStatusFrom(ctx, id, domain.StatusPending, domain.StatusConfirmed); err != nil {
				if errors.Is(err, appointmentRepo.ErrStatusConflict) {
					return ErrStatusConflict
				}
				return fmt.Errorf("%w: AssignEmployees - confirm appointment: %v", ErrInternal, err)
			}
			apt.Status = domain.StatusConfirmed
		}

		updated = apt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatusChange(updated)

	// Каждый назначенный сотрудник получает своё уведомление
	for _, employeeID := range employeeIDs {
		s.notifier.Dispatch(notification.Notification{
			UserID:   employeeID,
			Title:    "New assignment",
			Message:  fmt.Sprintf("You have been assigned to appointment %s", updated.ConfirmationNumber),
			Severity: notification.SeverityInfo,
		})
	}

	s.logger.Info("AssignEmployees: appointment=%s now has %d employees, status=%s",
		id, len(updated.AssignedEmployeeIDs), updated.Status)
	return models.FromDomainAppointment(updated), nil
}

// AcceptVehicleArrival фиксирует приём автомобиля сотрудником:
// сотрудник добавляется в назначенные, фиксируется время прибытия,
// открывается рабочая сессия (что переводит запись в работу)
func (s *Service) AcceptVehicleArrival(ctx context.Context, id string, principal domain.Principal) (*models.AppointmentResponse, error) {
	if !principal.IsEmployee() && !principal.IsAdmin() {
		return nil, ErrAccessDenied
	}

	employeeID := principal.UserID
	s.logger.Info("AcceptVehicleArrival: appointment=%s employee=%s", id, employeeID)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		apt, err := s.getAppointment(ctx, id)
		if err != nil {
			return err
		}

		if apt.VehicleArrivedAt != nil {
			return ErrVehicleAlreadyAccepted
		}

		if apt.Status != domain.StatusConfirmed {
			return fmt.Errorf("%w: transition from %q is not allowed for vehicle arrival", ErrInvalidTransition, apt.Status)
		}

		if !apt.HasEmployee(employeeID) {
			apt.AssignEmployee(employeeID)
			if err := s.appointmentRepo.SetAssignedEmployees(ctx, id, apt.AssignedEmployeeIDs); err != nil {
				return fmt.Errorf("%w: AcceptVehicleArrival - assign employee: %v", ErrInternal, err)
			}
		}

		if err := s.appointmentRepo.SetVehicleArrival(ctx, id, employeeID, s.timeProvider.Now()); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrVehicleAlreadyAccepted
			}
			return fmt.Errorf("%w: AcceptVehicleArrival - set arrival: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Первый clock-in переводит запись в работу; выполняется в своей транзакции
	if _, err := s.timeTracker.ClockIn(ctx, id, employeeID); err != nil {
		return nil, err
	}

	apt, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.Dispatch(notification.Notification{
		UserID:   apt.CustomerID,
		Title:    "Vehicle received",
		Message:  fmt.Sprintf("Your vehicle has been received for appointment %s and work has started", apt.ConfirmationNumber),
		Severity: notification.SeverityInfo,
	})

	s.logger.Info("AcceptVehicleArrival: appointment=%s accepted by employee=%s", id, employeeID)
	return models.FromDomainAppointment(apt), nil
}

// Update изменяет время и комментарий записи.
// Доступно владельцу до начала работ; перенос времени проходит полную
// повторную проверку графика и подбор бокса заново
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateAppointmentRequest, principal domain.Principal) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: appointment=%s user=%s", id, principal.UserID)

	var updated *domain.Appointment

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		apt, err := s.getAppointment(ctx, id)
		if err != nil {
			return err
		}

		if !principal.IsAdmin() && apt.CustomerID != principal.UserID {
			return ErrAccessDenied
		}

		if !apt.CanBeUpdated() {
			return ErrCannotUpdate
		}

		if req.SpecialInstructions != nil {
			apt.SpecialInstructions = req.SpecialInstructions
		}

		if req.RequestedDateTime != nil && !req.RequestedDateTime.Equal(apt.RequestedDateTime) {
			duration, err := s.serviceDuration(ctx, apt.ServiceType)
			if err != nil {
				return err
			}

			if err := s.validator.ValidateBookingTime(ctx, *req.RequestedDateTime, duration); err != nil {
				return err
			}

			end := req.RequestedDateTime.Add(minutes(duration))
			bay, err := s.bayResolver.ResolveBay(ctx, *req.RequestedDateTime, end, ptr.Ptr(apt.ID))
			if err != nil {
				return err
			}

			apt.RequestedDateTime = *req.RequestedDateTime
			apt.AssignedBayID = &bay.ID
		}

		if err := s.appointmentRepo.Update(ctx, apt); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Update - update appointment: %v", ErrInternal, err)
		}

		updated = apt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: appointment=%s updated", id)
	return models.FromDomainAppointment(updated), nil
}

// GetEmployeeSchedule возвращает записи, назначенные сотруднику, на период.
// Сотрудник видит только своё расписание, администратор — любое
func (s *Service) GetEmployeeSchedule(ctx context.Context, employeeID string, from, to string, principal domain.Principal) (*models.EmployeeScheduleResponse, error) {
	if !principal.IsAdmin() && principal.UserID != employeeID {
		return nil, ErrAccessDenied
	}

	fromDate, toDate, err := parseDateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.ListByEmployeeAndRange(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("%w: GetEmployeeSchedule - list appointments: %v", ErrInternal, err)
	}

	resp := &models.EmployeeScheduleResponse{
		EmployeeID:   employeeID,
		FromDate:     fromDate.Format(domain.DateFormat),
		ToDate:       toDate.Format(domain.DateFormat),
		Appointments: models.FromDomainAppointmentList(appointments).Appointments,
	}
	return resp, nil
}

// checkReadAccess проверяет право чтения записи
func (s *Service) checkReadAccess(apt *domain.Appointment, principal domain.Principal) error {
	if principal.IsAdmin() || principal.IsEmployee() {
		return nil
	}
	if apt.CustomerID != principal.UserID {
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) getAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: get appointment: %v", ErrInternal, err)
	}
	return apt, nil
}

func (s *Service) serviceDuration(ctx context.Context, serviceTypeName string) (int, error) {
	st, err := s.serviceTypeRepo.GetByName(ctx, serviceTypeName)
	if err != nil {
		if errors.Is(err, servicetypeRepo.ErrServiceTypeNotFound) {
			// Тип мог быть выведен из каталога после бронирования
			return domain.DefaultOccupancyMinutes, nil
		}
		return 0, fmt.Errorf("%w: get service type: %v", ErrInternal, err)
	}
	return st.EstimatedDurationMinutes, nil
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// parseDateRange разбирает границы периода в формате YYYY-MM-DD;
// верхняя граница включает весь день
func parseDateRange(from, to string) (time.Time, time.Time, error) {
	fromDate, err := time.ParseInLocation(domain.DateFormat, from, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q: %v", from, err)
	}
	toDate, err := time.ParseInLocation(domain.DateFormat, to, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q: %v", to, err)
	}
	if toDate.Before(fromDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date %q is before from date %q", to, from)
	}
	toDate = toDate.Add(24*time.Hour - time.Second)
	return fromDate, toDate, nil
}

// notifyStatusChange отправляет клиенту уведомление о смене статуса записи
func (s *Service) notifyStatusChange(apt *domain.Appointment) {
	if apt == nil {
		return
	}

	var title, message string
	severity := notification.SeverityInfo

	switch apt.Status {
	case domain.StatusConfirmed:
		title = "Appointment confirmed"
		message = fmt.Sprintf("Your appointment %s has been confirmed", apt.ConfirmationNumber)
		severity = notification.SeveritySuccess
	case domain.StatusInProgress:
		title = "Work started"
		message = fmt.Sprintf("Work on your appointment %s has started", apt.ConfirmationNumber)
	case domain.StatusCompleted:
		title = "Work completed"
		message = fmt.Sprintf("Work on your appointment %s has been completed", apt.ConfirmationNumber)
		severity = notification.SeveritySuccess
	case domain.StatusCustomerConfirmed:
		title = "Completion confirmed"
		message = fmt.Sprintf("Your confirmation for appointment %s has been recorded", apt.ConfirmationNumber)
		severity = notification.SeveritySuccess
	case domain.StatusCancelled:
		title = "Appointment cancelled"
		message = fmt.Sprintf("Your appointment %s has been cancelled", apt.ConfirmationNumber)
		severity = notification.SeverityWarning
	case domain.StatusNoShow:
		title = "Missed appointment"
		message = fmt.Sprintf("Your appointment %s was marked as a no-show", apt.ConfirmationNumber)
		severity = notification.SeverityWarning
	default:
		return
	}

	s.notifier.Dispatch(notification.Notification{
		UserID:   apt.CustomerID,
		Title:    title,
		Message:  message,
		Severity: severity,
	})
}
