package check_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/domain"
	checkAvailability "github.com/techtorque/appointment-service/internal/usecase/check_availability"
)

const (
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingServiceType  = "необходимо указать тип обслуживания"
	msgServiceTypeNotFound = "тип обслуживания не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/availability?date=YYYY-MM-DD&serviceType=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceType := query.Get("serviceType")
	if serviceType == "" {
		handlers.RespondBadRequest(w, msgMissingServiceType)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, query.Get("date"), time.Local)
	if err != nil {
		h.logger.Warn("GET /appointments/availability - Invalid date %q: %v", query.Get("date"), err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		Date:        date,
		ServiceType: serviceType,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, checkAvailability.ErrServiceTypeNotFound):
			handlers.RespondNotFound(w, msgServiceTypeNotFound)

		default:
			h.logger.Error("GET /appointments/availability - Failed for date=%s: %v", query.Get("date"), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
