package book_appointment

import (
	"fmt"
	"strings"
)

// validateRequest проверяет обязательные поля запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerID) == "" {
		return fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.VehicleID) == "" {
		return fmt.Errorf("%w: vehicle id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ServiceType) == "" {
		return fmt.Errorf("%w: service type is required", ErrInvalidInput)
	}
	if req.RequestedDateTime.IsZero() {
		return fmt.Errorf("%w: requested date and time is required", ErrInvalidInput)
	}
	return nil
}
