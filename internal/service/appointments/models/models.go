package models

import (
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
)

// Request модели

// UpdateAppointmentRequest запрос на изменение записи клиентом
type UpdateAppointmentRequest struct {
	RequestedDateTime   *time.Time `json:"requestedDateTime,omitempty"`
	SpecialInstructions *string    `json:"specialInstructions,omitempty"`
}

// ListAppointmentsRequest запрос на получение списка записей с фильтрацией
type ListAppointmentsRequest struct {
	CustomerID *string    `json:"customerId,omitempty"`
	VehicleID  *string    `json:"vehicleId,omitempty"`
	Status     *string    `json:"status,omitempty"`
	FromDate   *time.Time `json:"fromDate,omitempty"`
	ToDate     *time.Time `json:"toDate,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		CustomerID: r.CustomerID,
		VehicleID:  r.VehicleID,
		FromDate:   r.FromDate,
		ToDate:     r.ToDate,
	}

	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                  string   `json:"id"`
	CustomerID          string   `json:"customerId"`
	VehicleID           string   `json:"vehicleId"`
	AssignedEmployeeIDs []string `json:"assignedEmployeeIds"`
	AssignedBayID       *string  `json:"assignedBayId,omitempty"`
	ConfirmationNumber  string   `json:"confirmationNumber"`
	ServiceType         string   `json:"serviceType"`
	RequestedDateTime   string   `json:"requestedDateTime"` // "2026-03-02T10:00:00"
	Status              string   `json:"status"`
	SpecialInstructions *string  `json:"specialInstructions,omitempty"`

	VehicleArrivedAt            *string `json:"vehicleArrivedAt,omitempty"` // ISO 8601
	VehicleAcceptedByEmployeeID *string `json:"vehicleAcceptedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// EmployeeScheduleResponse расписание сотрудника на период
type EmployeeScheduleResponse struct {
	EmployeeID   string                `json:"employeeId"`
	FromDate     string                `json:"fromDate"` // "2026-03-02"
	ToDate       string                `json:"toDate"`
	Appointments []AppointmentResponse `json:"appointments"`
}

// CalendarDay агрегат записей одного дня месячного календаря
type CalendarDay struct {
	Date             string                `json:"date"` // "2026-03-02"
	AppointmentCount int                   `json:"appointmentCount"`
	IsHoliday        bool                  `json:"isHoliday"`
	HolidayName      *string               `json:"holidayName,omitempty"`
	Appointments     []AppointmentResponse `json:"appointments"`
}

// CalendarStatistics сводная статистика месяца по статусам
type CalendarStatistics struct {
	TotalAppointments int            `json:"totalAppointments"`
	ByStatus          map[string]int `json:"byStatus"`
}

// MonthlyCalendarResponse календарь записей на месяц
type MonthlyCalendarResponse struct {
	Year       int                `json:"year"`
	Month      int                `json:"month"`
	Days       []CalendarDay      `json:"days"`
	Statistics CalendarStatistics `json:"statistics"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                          a.ID,
		CustomerID:                  a.CustomerID,
		VehicleID:                   a.VehicleID,
		AssignedEmployeeIDs:         a.AssignedEmployeeIDs,
		AssignedBayID:               a.AssignedBayID,
		ConfirmationNumber:          a.ConfirmationNumber,
		ServiceType:                 a.ServiceType,
		RequestedDateTime:           a.RequestedDateTime.Format(domain.DateTimeFormat),
		Status:                      string(a.Status),
		SpecialInstructions:         a.SpecialInstructions,
		VehicleAcceptedByEmployeeID: a.VehicleAcceptedByEmployeeID,
		CreatedAt:                   a.CreatedAt,
		UpdatedAt:                   a.UpdatedAt,
	}

	if resp.AssignedEmployeeIDs == nil {
		resp.AssignedEmployeeIDs = []string{}
	}

	if a.VehicleArrivedAt != nil {
		arrived := a.VehicleArrivedAt.Format(time.RFC3339)
		resp.VehicleArrivedAt = &arrived
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}
