package accept_vehicle_arrival

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/service/appointments"
	"github.com/techtorque/appointment-service/internal/service/timetracking"
)

const (
	msgAppointmentNotFound = "запись не найдена"
	msgAccessDenied        = "приём автомобиля доступен только сотруднику"
	msgAlreadyAccepted     = "автомобиль по этой записи уже принят"
	msgInvalidTransition   = "запись не подтверждена, приём автомобиля невозможен"
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

// Handle POST /api/v1/appointments/{id}/accept-arrival
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := mux.Vars(r)["id"]

	result, err := h.service.AcceptVehicleArrival(r.Context(), id, principal)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound),
			errors.Is(err, timetracking.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointments.ErrVehicleAlreadyAccepted):
			handlers.RespondConflict(w, msgAlreadyAccepted)

		case errors.Is(err, appointments.ErrInvalidTransition),
			errors.Is(err, timetracking.ErrInvalidState):
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, appointments.ErrStatusConflict):
			handlers.RespondConflict(w, msgStatusConflict)

		default:
			h.logger.Error("POST /appointments/{id}/accept-arrival - Failed for id=%s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/accept-arrival - Vehicle accepted for id=%s by employee=%s",
		id, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
