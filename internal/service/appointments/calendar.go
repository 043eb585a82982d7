package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/internal/service/appointments/models"
)

// GetMonthlyCalendar строит календарь записей на месяц: агрегаты по дням,
// праздничные отметки и сводная статистика по статусам.
// Доступно сотрудникам и администраторам
func (s *Service) GetMonthlyCalendar(ctx context.Context, year, month int, principal domain.Principal) (*models.MonthlyCalendarResponse, error) {
	if !principal.IsAdmin() && !principal.IsEmployee() {
		return nil, ErrAccessDenied
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}

	s.logger.Info("GetMonthlyCalendar: building calendar for %d-%02d, user=%s", year, month, principal.UserID)

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	appointments, err := s.appointmentRepo.ListByRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMonthlyCalendar - list appointments: %v", ErrInternal, err)
	}

	holidays, err := s.scheduleRepo.ListHolidaysInRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMonthlyCalendar - list holidays: %v", ErrInternal, err)
	}

	holidayByDate := make(map[string]*domain.Holiday, len(holidays))
	for _, h := range holidays {
		holidayByDate[h.Date.Format(domain.DateFormat)] = h
	}

	byDate := make(map[string][]*domain.Appointment)
	stats := models.CalendarStatistics{ByStatus: make(map[string]int)}
	for _, apt := range appointments {
		key := apt.RequestedDateTime.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], apt)
		stats.TotalAppointments++
		stats.ByStatus[string(apt.Status)]++
	}

	daysInMonth := monthStart.AddDate(0, 1, -1).Day()
	days := make([]models.CalendarDay, 0, daysInMonth)

	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		date := time.Date(year, time.Month(month), dayNum, 0, 0, 0, 0, time.Local)
		key := date.Format(domain.DateFormat)

		day := models.CalendarDay{
			Date:         key,
			Appointments: models.FromDomainAppointmentList(byDate[key]).Appointments,
		}
		day.AppointmentCount = len(day.Appointments)

		if holiday, ok := holidayByDate[key]; ok {
			day.IsHoliday = true
			day.HolidayName = &holiday.Name
		}

		days = append(days, day)
	}

	return &models.MonthlyCalendarResponse{
		Year:       year,
		Month:      month,
		Days:       days,
		Statistics: stats,
	}, nil
}
