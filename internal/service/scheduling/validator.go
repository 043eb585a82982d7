package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
	scheduleRepo "github.com/techtorque/appointment-service/internal/infra/storage/schedule"
)

// Validator проверяет запрошенное время записи против графика мастерской
type Validator struct {
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewValidator создает новый валидатор времени записи
func NewValidator(scheduleRepo ScheduleRepository, timeProvider TimeProvider, logger Logger) *Validator {
	return &Validator{
		scheduleRepo: scheduleRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ValidateBookingTime проверяет, что окно работы [start, start+duration)
// попадает в рабочее время мастерской:
// не в прошлом, не в праздник, внутри рабочих часов дня и не пересекает перерыв
func (v *Validator) ValidateBookingTime(ctx context.Context, start time.Time, durationMinutes int) error {
	now := v.timeProvider.Now()
	if start.Before(now) {
		return ErrPastDateTime
	}

	isHoliday, err := v.scheduleRepo.IsHoliday(ctx, start)
	if err != nil {
		return fmt.Errorf("%w: ValidateBookingTime - check holiday: %v", ErrInternal, err)
	}
	if isHoliday {
		return ErrHoliday
	}

	hours, err := v.scheduleRepo.GetBusinessHours(ctx, start.Weekday())
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBusinessHoursNotFound) {
			return ErrClosedDay
		}
		return fmt.Errorf("%w: ValidateBookingTime - get business hours: %v", ErrInternal, err)
	}
	if !hours.IsOpen {
		return ErrClosedDay
	}

	openAt, err := hours.OpenTime.OnDate(start)
	if err != nil {
		return fmt.Errorf("%w: ValidateBookingTime - parse open time: %v", ErrInternal, err)
	}
	closeAt, err := hours.CloseTime.OnDate(start)
	if err != nil {
		return fmt.Errorf("%w: ValidateBookingTime - parse close time: %v", ErrInternal, err)
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	if start.Before(openAt) || end.After(closeAt) {
		return ErrOutsideBusinessHours
	}

	if hours.HasBreak() {
		breakStart, err := hours.BreakStartTime.OnDate(start)
		if err != nil {
			return fmt.Errorf("%w: ValidateBookingTime - parse break start: %v", ErrInternal, err)
		}
		breakEnd, err := hours.BreakEndTime.OnDate(start)
		if err != nil {
			return fmt.Errorf("%w: ValidateBookingTime - parse break end: %v", ErrInternal, err)
		}
		if domain.Overlaps(start, end, breakStart, breakEnd) {
			return ErrDuringBreak
		}
	}

	return nil
}
