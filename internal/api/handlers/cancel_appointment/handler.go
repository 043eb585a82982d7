package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/service/appointments"
)

const (
	msgAppointmentNotFound = "запись не найдена"
	msgAccessDenied        = "нет прав доступа к этой записи"
	msgCannotCancel        = "запись нельзя отменить на текущем этапе"
	msgStatusConflict      = "статус записи изменился, повторите запрос"
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

// Handle POST /api/v1/appointments/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := mux.Vars(r)["id"]

	result, err := h.service.Cancel(r.Context(), id, principal)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointments.ErrInvalidTransition):
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, appointments.ErrStatusConflict):
			handlers.RespondConflict(w, msgStatusConflict)

		default:
			h.logger.Error("POST /appointments/{id}/cancel - Failed to cancel appointment id=%s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/cancel - Appointment id=%s cancelled by user=%s", id, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
