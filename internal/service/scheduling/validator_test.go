package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/techtorque/appointment-service/internal/domain"
)

// monday 2026-03-09 is a Monday
func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, time.March, 9, hour, minute, 0, 0, time.Local)
}

func newTestValidator(schedule *fakeScheduleRepo, now time.Time) *Validator {
	return NewValidator(schedule, fixedClock{now: now}, nopLogger{})
}

func defaultSchedule() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		hours: map[time.Weekday]*domain.BusinessHours{
			time.Monday: weekdayHours(time.Monday),
		},
		holidays: map[string]bool{},
	}
}

func TestValidateBookingTime_OK(t *testing.T) {
	v := newTestValidator(defaultSchedule(), mondayAt(7, 0))

	err := v.ValidateBookingTime(context.Background(), mondayAt(10, 0), 60)
	assert.NoError(t, err)
}

func TestValidateBookingTime_Past(t *testing.T) {
	v := newTestValidator(defaultSchedule(), mondayAt(11, 0))

	err := v.ValidateBookingTime(context.Background(), mondayAt(10, 0), 60)
	assert.ErrorIs(t, err, ErrPastDateTime)
}

func TestValidateBookingTime_Holiday(t *testing.T) {
	schedule := defaultSchedule()
	schedule.holidays["2026-03-09"] = true
	v := newTestValidator(schedule, mondayAt(7, 0))

	err := v.ValidateBookingTime(context.Background(), mondayAt(10, 0), 60)
	assert.ErrorIs(t, err, ErrHoliday)
}

func TestValidateBookingTime_ClosedDay(t *testing.T) {
	schedule := defaultSchedule()
	schedule.hours[time.Monday].IsOpen = false
	v := newTestValidator(schedule, mondayAt(7, 0))

	err := v.ValidateBookingTime(context.Background(), mondayAt(10, 0), 60)
	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestValidateBookingTime_NoHoursConfigured(t *testing.T) {
	// В графике нет строки для этого дня недели
	schedule := &fakeScheduleRepo{hours: map[time.Weekday]*domain.BusinessHours{}, holidays: map[string]bool{}}
	v := newTestValidator(schedule, mondayAt(7, 0))

	err := v.ValidateBookingTime(context.Background(), mondayAt(10, 0), 60)
	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestValidateBookingTime_BusinessHoursBoundaries(t *testing.T) {
	v := newTestValidator(defaultSchedule(), mondayAt(0, 0))

	tests := []struct {
		name     string
		start    time.Time
		duration int
		wantErr  error
	}{
		{name: "before opening", start: mondayAt(7, 30), duration: 30, wantErr: ErrOutsideBusinessHours},
		{name: "at opening", start: mondayAt(8, 0), duration: 60},
		{name: "ends exactly at closing", start: mondayAt(17, 0), duration: 60},
		{name: "runs past closing", start: mondayAt(17, 30), duration: 60, wantErr: ErrOutsideBusinessHours},
		{name: "overlaps break start", start: mondayAt(11, 30), duration: 60, wantErr: ErrDuringBreak},
		{name: "inside break", start: mondayAt(12, 0), duration: 30, wantErr: ErrDuringBreak},
		{name: "ends at break start", start: mondayAt(11, 0), duration: 60},
		{name: "starts at break end", start: mondayAt(13, 0), duration: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBookingTime(context.Background(), tt.start, tt.duration)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBookingTime_NoBreakConfigured(t *testing.T) {
	schedule := defaultSchedule()
	schedule.hours[time.Monday].BreakStartTime = nil
	schedule.hours[time.Monday].BreakEndTime = nil
	v := newTestValidator(schedule, mondayAt(0, 0))

	err := v.ValidateBookingTime(context.Background(), mondayAt(12, 0), 60)
	assert.NoError(t, err)
}
