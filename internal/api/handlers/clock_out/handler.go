package clock_out

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
	msgNoActiveSession     = "нет открытой рабочей сессии по этой записи"
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

// Handle POST /api/v1/appointments/{id}/clock-out
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

	result, err := h.service.ClockOut(r.Context(), appointmentID, principal.UserID)
	if err != nil {
		switch {
		case errors.Is(err, timetracking.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, timetracking.ErrNoActiveSession):
			handlers.RespondConflict(w, msgNoActiveSession)

		default:
			h.logger.Error("POST /appointments/{id}/clock-out - Failed for appointment=%s employee=%s: %v",
				appointmentID, principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/clock-out - Session %s closed, %.2f hours, appointment status=%s",
		result.Session.ID, result.HoursWorked, result.AppointmentStatus)
	handlers.RespondJSON(w, http.StatusOK, result)
}
