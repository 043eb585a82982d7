package scheduling

import (
	"context"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
	scheduleRepo "github.com/techtorque/appointment-service/internal/infra/storage/schedule"
	"github.com/techtorque/appointment-service/pkg/types"
)

// nopLogger глушит логи в тестах
type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fixedClock фиксированный источник времени
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// fakeScheduleRepo график мастерской в памяти
type fakeScheduleRepo struct {
	hours    map[time.Weekday]*domain.BusinessHours
	holidays map[string]bool
	err      error
}

func (f *fakeScheduleRepo) GetBusinessHours(_ context.Context, day time.Weekday) (*domain.BusinessHours, error) {
	if f.err != nil {
		return nil, f.err
	}
	h, ok := f.hours[day]
	if !ok {
		return nil, scheduleRepo.ErrBusinessHoursNotFound
	}
	return h, nil
}

func (f *fakeScheduleRepo) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.holidays[date.Format(domain.DateFormat)], nil
}

// fakeBayRepo набор боксов в памяти
type fakeBayRepo struct {
	bays []*domain.ServiceBay
	err  error
}

func (f *fakeBayRepo) ListActive(_ context.Context) ([]*domain.ServiceBay, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bays, nil
}

// fakeAppointmentRepo выборка записей по боксу в памяти
type fakeAppointmentRepo struct {
	byBay map[string][]*domain.Appointment
	err   error
}

func (f *fakeAppointmentRepo) ListByBayAndRange(_ context.Context, bayID string, from, to time.Time) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Appointment, 0)
	for _, apt := range f.byBay[bayID] {
		if !apt.RequestedDateTime.Before(from) && !apt.RequestedDateTime.After(to) {
			result = append(result, apt)
		}
	}
	return result, nil
}

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func tsPtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

// weekdayHours стандартный рабочий день 08:00-18:00 с перерывом 12:00-13:00
func weekdayHours(day time.Weekday) *domain.BusinessHours {
	return &domain.BusinessHours{
		DayOfWeek:      day,
		OpenTime:       ts("08:00"),
		CloseTime:      ts("18:00"),
		BreakStartTime: tsPtr("12:00"),
		BreakEndTime:   tsPtr("13:00"),
		IsOpen:         true,
	}
}

func bay(id, number, name string) *domain.ServiceBay {
	return &domain.ServiceBay{ID: id, BayNumber: number, Name: name, Active: true}
}

func bookedAt(id, bayID string, at time.Time) *domain.Appointment {
	return &domain.Appointment{
		ID:                id,
		AssignedBayID:     &bayID,
		RequestedDateTime: at,
		Status:            domain.StatusConfirmed,
	}
}
