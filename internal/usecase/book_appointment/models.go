package book_appointment

import (
	"time"

	"github.com/techtorque/appointment-service/internal/service/appointments/models"
)

// Request запрос на создание записи
type Request struct {
	CustomerID          string
	VehicleID           string
	ServiceType         string
	RequestedDateTime   time.Time
	SpecialInstructions *string
}

// Response ответ с созданной записью
type Response = models.AppointmentResponse
