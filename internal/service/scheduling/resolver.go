package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
)

// BayResolver подбирает бокс для запрошенного окна работы.
// Подбор детерминирован: первый свободный бокс в порядке возрастания номера
type BayResolver struct {
	bayRepo         BayRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewBayResolver создает новый резолвер боксов
func NewBayResolver(bayRepo BayRepository, appointmentRepo AppointmentRepository, logger Logger) *BayResolver {
	return &BayResolver{
		bayRepo:         bayRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// ResolveBay возвращает первый бокс, свободный в окне [start, end).
// excludeAppointmentID исключает запись из проверки конфликтов
// (перенос записи не должен конфликтовать сам с собой).
// Если ни один бокс не свободен, возвращает ErrNoBayAvailable
func (r *BayResolver) ResolveBay(ctx context.Context, start, end time.Time, excludeAppointmentID *string) (*domain.ServiceBay, error) {
	bays, err := r.bayRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveBay - list active bays: %v", ErrInternal, err)
	}

	for _, bay := range bays {
		free, err := r.isBayFree(ctx, bay.ID, start, end, excludeAppointmentID)
		if err != nil {
			return nil, err
		}
		if free {
			r.logger.Debug("ResolveBay: bay %s (%s) is free for window %s - %s",
				bay.BayNumber, bay.ID, start.Format(time.RFC3339), end.Format(time.RFC3339))
			return bay, nil
		}
	}

	return nil, ErrNoBayAvailable
}

// IsBayFree проверяет, свободен ли конкретный бокс в окне [start, end)
func (r *BayResolver) IsBayFree(ctx context.Context, bayID string, start, end time.Time, excludeAppointmentID *string) (bool, error) {
	return r.isBayFree(ctx, bayID, start, end, excludeAppointmentID)
}

func (r *BayResolver) isBayFree(ctx context.Context, bayID string, start, end time.Time, excludeAppointmentID *string) (bool, error) {
	// Выборка существующих записей ограничена окном вокруг запрошенного
	// времени: записи дальше не могут пересечь окно работы
	from := start.Add(-domain.BayConflictWindow)
	to := start.Add(domain.BayConflictWindow)

	existing, err := r.appointmentRepo.ListByBayAndRange(ctx, bayID, from, to)
	if err != nil {
		return false, fmt.Errorf("%w: isBayFree - list appointments for bay %s: %v", ErrInternal, bayID, err)
	}

	for _, apt := range existing {
		if excludeAppointmentID != nil && apt.ID == *excludeAppointmentID {
			continue
		}
		aptStart, aptEnd := apt.OccupiedWindow()
		if domain.Overlaps(start, end, aptStart, aptEnd) {
			return false, nil
		}
	}

	return true, nil
}
