package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
	scheduleRepo "github.com/techtorque/appointment-service/internal/infra/storage/schedule"
)

// AvailabilityCalculator вычисляет сетку слотов на дату.
// Слоты идут фиксированным шагом от открытия до закрытия; каждый кандидат
// привязывается к первому свободному боксу
type AvailabilityCalculator struct {
	scheduleRepo ScheduleRepository
	resolver     *BayResolver
	timeProvider TimeProvider
	logger       Logger
}

// NewAvailabilityCalculator создает новый калькулятор доступности
func NewAvailabilityCalculator(
	scheduleRepo ScheduleRepository,
	resolver *BayResolver,
	timeProvider TimeProvider,
	logger Logger,
) *AvailabilityCalculator {
	return &AvailabilityCalculator{
		scheduleRepo: scheduleRepo,
		resolver:     resolver,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CalculateSlots возвращает слоты на дату для работы указанной длительности.
// Праздник или нерабочий день дают пустой список, а не ошибку.
// Прошедшие слоты и слоты, пересекающие перерыв, не включаются
func (c *AvailabilityCalculator) CalculateSlots(ctx context.Context, date time.Time, durationMinutes int) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)

	isHoliday, err := c.scheduleRepo.IsHoliday(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: CalculateSlots - check holiday: %v", ErrInternal, err)
	}
	if isHoliday {
		return slots, nil
	}

	hours, err := c.scheduleRepo.GetBusinessHours(ctx, date.Weekday())
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBusinessHoursNotFound) {
			return slots, nil
		}
		return nil, fmt.Errorf("%w: CalculateSlots - get business hours: %v", ErrInternal, err)
	}
	if !hours.IsOpen {
		return slots, nil
	}

	openAt, err := hours.OpenTime.OnDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: CalculateSlots - parse open time: %v", ErrInternal, err)
	}
	closeAt, err := hours.CloseTime.OnDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: CalculateSlots - parse close time: %v", ErrInternal, err)
	}

	var breakStart, breakEnd time.Time
	if hours.HasBreak() {
		if breakStart, err = hours.BreakStartTime.OnDate(date); err != nil {
			return nil, fmt.Errorf("%w: CalculateSlots - parse break start: %v", ErrInternal, err)
		}
		if breakEnd, err = hours.BreakEndTime.OnDate(date); err != nil {
			return nil, fmt.Errorf("%w: CalculateSlots - parse break end: %v", ErrInternal, err)
		}
	}

	now := c.timeProvider.Now()
	duration := time.Duration(durationMinutes) * time.Minute
	step := domain.SlotIntervalMinutes * time.Minute

	for start := openAt; !start.Add(duration).After(closeAt); start = start.Add(step) {
		if start.Before(now) {
			continue
		}

		end := start.Add(duration)

		if hours.HasBreak() && domain.Overlaps(start, end, breakStart, breakEnd) {
			continue
		}

		slot := &domain.TimeSlot{StartTime: start, EndTime: end}

		bay, err := c.resolver.ResolveBay(ctx, start, end, nil)
		if err != nil {
			if errors.Is(err, ErrNoBayAvailable) {
				slots = append(slots, slot)
				continue
			}
			return nil, err
		}

		slot.Available = true
		slot.BayID = bay.ID
		slot.BayName = bay.Name
		slots = append(slots, slot)
	}

	return slots, nil
}
