package timetracking

import (
	"context"
	"errors"
	"fmt"

	"github.com/techtorque/appointment-service/internal/domain"
	appointmentRepo "github.com/techtorque/appointment-service/internal/infra/storage/appointment"
	sessionRepo "github.com/techtorque/appointment-service/internal/infra/storage/session"
)

// Service сервис учёта рабочего времени сотрудников по записям.
// Первый clock-in по записи переводит её в работу, закрытие последней
// активной сессии завершает работу по записи
type Service struct {
	appointmentRepo AppointmentRepository
	sessionRepo     SessionRepository
	timeLogClient   TimeLoggingClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса учёта времени
func NewService(
	appointmentRepo AppointmentRepository,
	sessionRepo SessionRepository,
	timeLogClient TimeLoggingClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		sessionRepo:     sessionRepo,
		timeLogClient:   timeLogClient,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// ClockIn открывает рабочую сессию сотрудника по записи.
// Повторный clock-in при уже открытой сессии идемпотентен и возвращает её.
// Первый clock-in по подтверждённой записи переводит её в работу
func (s *Service) ClockIn(ctx context.Context, appointmentID, employeeID string) (*SessionResponse, error) {
	s.logger.Info("ClockIn: employee=%s appointment=%s", employeeID, appointmentID)

	var result *SessionResponse
	var reused bool

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		result = nil
		reused = false

		apt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: ClockIn - get appointment: %v", ErrInternal, err)
		}

		if !apt.HasEmployee(employeeID) {
			return ErrNotAssigned
		}

		if apt.Status != domain.StatusConfirmed && apt.Status != domain.StatusInProgress {
			return fmt.Errorf("%w: status is %s", ErrInvalidState, apt.Status)
		}

		// Идемпотентность: уже открытая сессия возвращается как есть
		existing, err := s.sessionRepo.GetActive(ctx, appointmentID, employeeID)
		if err == nil {
			s.logger.Info("ClockIn: employee=%s already clocked in on appointment=%s, returning existing session %s",
				employeeID, appointmentID, existing.ID)
			resp := FromDomainSession(existing)
			result = &resp
			reused = true
			return nil
		}
		if !errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return fmt.Errorf("%w: ClockIn - get active session: %v", ErrInternal, err)
		}

		if apt.Status == domain.StatusConfirmed {
			if err := domain.ValidateTransition(apt.Status, domain.StatusInProgress, domain.RoleEmployee); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidState, err)
			}
			if err := s.appointmentRepo.UpdateStatusFrom(ctx, appointmentID, domain.StatusConfirmed, domain.StatusInProgress); err != nil {
				return fmt.Errorf("%w: ClockIn - mark appointment in progress: %v", ErrInternal, err)
			}
			s.logger.Info("ClockIn: appointment=%s moved to %s", appointmentID, domain.StatusInProgress)
		}

		session := &domain.TimeSession{
			AppointmentID: appointmentID,
			EmployeeID:    employeeID,
			ClockInTime:   s.timeProvider.Now(),
		}

		created, err := s.sessionRepo.Create(ctx, session)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionExists) {
				// Конкурентный clock-in успел раньше; читаем его сессию
				existing, getErr := s.sessionRepo.GetActive(ctx, appointmentID, employeeID)
				if getErr != nil {
					return fmt.Errorf("%w: ClockIn - refetch concurrent session: %v", ErrInternal, getErr)
				}
				resp := FromDomainSession(existing)
				result = &resp
				reused = true
				return nil
			}
			return fmt.Errorf("%w: ClockIn - create session: %v", ErrInternal, err)
		}

		resp := FromDomainSession(created)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Проводка во внешнем сервисе учёта времени открывается best-effort:
	// его недоступность не должна блокировать работу мастерской.
	// Для уже открытой сессии проводка существует и не создаётся повторно
	if !reused {
		s.openTimeLogEntry(ctx, result)
	}

	s.logger.Info("ClockIn: session %s open for employee=%s appointment=%s", result.ID, employeeID, appointmentID)
	return result, nil
}

// ClockOut закрывает активную сессию сотрудника по записи.
// Закрытие последней активной сессии записи в работе завершает запись
func (s *Service) ClockOut(ctx context.Context, appointmentID, employeeID string) (*ClockOutResponse, error) {
	s.logger.Info("ClockOut: employee=%s appointment=%s", employeeID, appointmentID)

	var result *ClockOutResponse
	var closedEntryID *string
	var closedHours float64

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		result = nil
		closedEntryID = nil

		apt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: ClockOut - get appointment: %v", ErrInternal, err)
		}

		session, err := s.sessionRepo.GetActive(ctx, appointmentID, employeeID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return ErrNoActiveSession
			}
			return fmt.Errorf("%w: ClockOut - get active session: %v", ErrInternal, err)
		}

		now := s.timeProvider.Now()
		if err := s.sessionRepo.Close(ctx, session.ID, now, nil); err != nil {
			return fmt.Errorf("%w: ClockOut - close session: %v", ErrInternal, err)
		}

		session.ClockOutTime = &now
		session.Active = false
		closedHours = session.HoursWorked()
		closedEntryID = session.TimeLogID

		status := apt.Status
		if apt.Status == domain.StatusInProgress {
			stillActive, err := s.hasOtherActiveSessions(ctx, appointmentID, session.ID)
			if err != nil {
				return err
			}
			if !stillActive {
				if err := domain.ValidateTransition(apt.Status, domain.StatusCompleted, domain.RoleEmployee); err != nil {
					return fmt.Errorf("%w: %v", ErrInvalidState, err)
				}
				if err := s.appointmentRepo.UpdateStatusFrom(ctx, appointmentID, domain.StatusInProgress, domain.StatusCompleted); err != nil {
					return fmt.Errorf("%w: ClockOut - mark appointment completed: %v", ErrInternal, err)
				}
				status = domain.StatusCompleted
				s.logger.Info("ClockOut: appointment=%s moved to %s", appointmentID, domain.StatusCompleted)
			}
		}

		result = &ClockOutResponse{
			Session:           FromDomainSession(session),
			HoursWorked:       closedHours,
			AppointmentStatus: status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Закрытие проводки учёта времени best-effort
	if closedEntryID != nil {
		if err := s.timeLogClient.CloseEntry(ctx, *closedEntryID, s.timeProvider.Now(), closedHours); err != nil {
			s.logger.Warn("ClockOut: failed to close time log entry %s: %v", *closedEntryID, err)
		}
	}

	s.logger.Info("ClockOut: session %s closed, %.2f hours worked", result.Session.ID, closedHours)
	return result, nil
}

// GetActiveSession возвращает активную сессию сотрудника по записи
// вместе с набежавшим временем. Отсутствие активной сессии — не ошибка:
// возвращается nil
func (s *Service) GetActiveSession(ctx context.Context, appointmentID, employeeID string) (*ActiveSessionResponse, error) {
	session, err := s.sessionRepo.GetActive(ctx, appointmentID, employeeID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: GetActiveSession - get active session: %v", ErrInternal, err)
	}

	return &ActiveSessionResponse{
		SessionResponse: FromDomainSession(session),
		ElapsedSeconds:  session.ElapsedSince(s.timeProvider.Now()),
	}, nil
}

// ListEmployeeSessions возвращает все сессии сотрудника
func (s *Service) ListEmployeeSessions(ctx context.Context, employeeID string) ([]SessionResponse, error) {
	sessions, err := s.sessionRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEmployeeSessions - list sessions: %v", ErrInternal, err)
	}

	result := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, FromDomainSession(session))
	}
	return result, nil
}

func (s *Service) hasOtherActiveSessions(ctx context.Context, appointmentID, excludeSessionID string) (bool, error) {
	sessions, err := s.sessionRepo.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return false, fmt.Errorf("%w: hasOtherActiveSessions - list sessions: %v", ErrInternal, err)
	}

	for _, session := range sessions {
		if session.Active && session.ID != excludeSessionID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) openTimeLogEntry(ctx context.Context, session *SessionResponse) {
	entryID, err := s.timeLogClient.OpenEntry(ctx, session.AppointmentID, session.EmployeeID, session.ClockInTime)
	if err != nil {
		s.logger.Warn("failed to open time log entry for session %s: %v", session.ID, err)
		return
	}

	// Ссылку на проводку дописываем вне основной транзакции
	if err := s.sessionRepo.SetTimeLogID(ctx, session.ID, entryID); err != nil {
		s.logger.Warn("failed to store time log reference %s for session %s: %v", entryID, session.ID, err)
	}
}
