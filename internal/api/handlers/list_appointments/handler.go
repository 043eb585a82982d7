package list_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/domain"
	"github.com/techtorque/appointment-service/internal/service/appointments"
	"github.com/techtorque/appointment-service/internal/service/appointments/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтрации"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query-параметры: customerId, vehicleId, status, fromDate, toDate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.List(r.Context(), req, principal)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /appointments - Failed to list appointments for user=%s: %v", principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request) (*models.ListAppointmentsRequest, error) {
	query := r.URL.Query()
	req := &models.ListAppointmentsRequest{}

	if v := query.Get("customerId"); v != "" {
		req.CustomerID = &v
	}
	if v := query.Get("vehicleId"); v != "" {
		req.VehicleID = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("fromDate"); v != "" {
		from, err := time.ParseInLocation(domain.DateFormat, v, time.Local)
		if err != nil {
			return nil, err
		}
		req.FromDate = &from
	}
	if v := query.Get("toDate"); v != "" {
		to, err := time.ParseInLocation(domain.DateFormat, v, time.Local)
		if err != nil {
			return nil, err
		}
		to = to.Add(24*time.Hour - time.Second)
		req.ToDate = &to
	}

	return req, nil
}
