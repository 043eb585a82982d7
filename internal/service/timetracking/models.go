package timetracking

import (
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
)

// SessionResponse ответ с данными рабочей сессии
type SessionResponse struct {
	ID            string     `json:"id"`
	AppointmentID string     `json:"appointmentId"`
	EmployeeID    string     `json:"employeeId"`
	ClockInTime   time.Time  `json:"clockInTime"`
	ClockOutTime  *time.Time `json:"clockOutTime,omitempty"`
	Active        bool       `json:"active"`
	HoursWorked   *float64   `json:"hoursWorked,omitempty"`
}

// ActiveSessionResponse ответ с активной сессией и набежавшим временем
type ActiveSessionResponse struct {
	SessionResponse
	ElapsedSeconds int64 `json:"elapsedSeconds"`
}

// ClockOutResponse результат завершения рабочей сессии
type ClockOutResponse struct {
	Session           SessionResponse          `json:"session"`
	HoursWorked       float64                  `json:"hoursWorked"`
	AppointmentStatus domain.AppointmentStatus `json:"appointmentStatus"`
}

// FromDomainSession конвертирует domain модель сессии в DTO
func FromDomainSession(s *domain.TimeSession) SessionResponse {
	resp := SessionResponse{
		ID:            s.ID,
		AppointmentID: s.AppointmentID,
		EmployeeID:    s.EmployeeID,
		ClockInTime:   s.ClockInTime,
		ClockOutTime:  s.ClockOutTime,
		Active:        s.Active,
	}
	if s.ClockOutTime != nil {
		hours := s.HoursWorked()
		resp.HoursWorked = &hours
	}
	return resp
}
