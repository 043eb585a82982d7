package update_appointment

import (
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/internal/service/appointments/models"
)

// UpdateAppointmentRequest HTTP request model
type UpdateAppointmentRequest struct {
	RequestedDateTime   *string `json:"requestedDateTime,omitempty"` // "2026-03-02T10:00:00"
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAppointmentRequest) ToServiceRequest() (*models.UpdateAppointmentRequest, error) {
	req := &models.UpdateAppointmentRequest{
		SpecialInstructions: r.SpecialInstructions,
	}

	if r.RequestedDateTime != nil {
		requestedAt, err := time.ParseInLocation(domain.DateTimeFormat, *r.RequestedDateTime, time.Local)
		if err != nil {
			return nil, err
		}
		req.RequestedDateTime = &requestedAt
	}

	return req, nil
}
