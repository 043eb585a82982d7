package book_appointment

import (
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
	bookAppointment "github.com/techtorque/appointment-service/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	VehicleID           string  `json:"vehicleId"`
	ServiceType         string  `json:"serviceType"`
	RequestedDateTime   string  `json:"requestedDateTime"` // "2026-03-02T10:00:00"
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest(customerID string) (*bookAppointment.Request, error) {
	requestedAt, err := time.ParseInLocation(domain.DateTimeFormat, r.RequestedDateTime, time.Local)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		CustomerID:          customerID,
		VehicleID:           r.VehicleID,
		ServiceType:         r.ServiceType,
		RequestedDateTime:   requestedAt,
		SpecialInstructions: r.SpecialInstructions,
	}, nil
}
