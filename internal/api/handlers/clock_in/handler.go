package clock_in

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/service/timetracking"
)

const (
	msgAppointmentNotFound = "запись не найдена"
	msgNotAssigned         = "сотрудник не назначен на эту запись"
	msgInvalidState        = "статус записи не допускает учёт времени"
	msgEmployeeOnly        = "учёт времени доступен только сотруднику"
)

type Handler struct {
	service TimeTrackingService
	logger  Logger
}

func NewHandler(service TimeTrackingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{id}/clock-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if !principal.IsEmployee() && !principal.IsAdmin() {
		handlers.RespondForbidden(w, msgEmployeeOnly)
		return
	}

	appointmentID := mux.Vars(r)["id"]

	result, err := h.service.ClockIn(r.Context(), appointmentID, principal.UserID)
	if err != nil {
		switch {
		case errors.Is(err, timetracking.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, timetracking.ErrNotAssigned):
			handlers.RespondForbidden(w, msgNotAssigned)

		case errors.Is(err, timetracking.ErrInvalidState):
			handlers.RespondConflict(w, msgInvalidState)

		default:
			h.logger.Error("POST /appointments/{id}/clock-in - Failed for appointment=%s employee=%s: %v",
				appointmentID, principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/clock-in - Session %s open for employee=%s on appointment=%s",
		result.ID, principal.UserID, appointmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
