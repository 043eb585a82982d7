package check_availability

import (
	"time"

	"github.com/techtorque/appointment-service/internal/domain"
)

// Request запрос доступных слотов на дату
type Request struct {
	Date        time.Time
	ServiceType string
}

// Slot слот в ответе
type Slot struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
	BayID     string `json:"bayId,omitempty"`
	BayName   string `json:"bayName,omitempty"`
}

// Response ответ со слотами на дату
type Response struct {
	Date            string `json:"date"` // "2026-03-02"
	ServiceType     string `json:"serviceType"`
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}

// FromDomainSlots конвертирует domain слоты в DTO
func FromDomainSlots(slots []*domain.TimeSlot) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		result = append(result, Slot{
			StartTime: s.StartTime.Format(domain.TimeFormat),
			EndTime:   s.EndTime.Format(domain.TimeFormat),
			Available: s.Available,
			BayID:     s.BayID,
			BayName:   s.BayName,
		})
	}
	return result
}
