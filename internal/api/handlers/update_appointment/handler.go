package update_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/service/appointments"
	"github.com/techtorque/appointment-service/internal/service/scheduling"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректный формат даты и времени, ожидается YYYY-MM-DDTHH:MM:SS"
	msgAppointmentNotFound  = "запись не найдена"
	msgAccessDenied         = "нет прав доступа к этой записи"
	msgCannotUpdate         = "запись уже нельзя изменить"
	msgPastDateTime         = "нельзя перенести запись на прошедшее время"
	msgHoliday              = "мастерская закрыта в выбранную дату (праздничный день)"
	msgClosedDay            = "мастерская не работает в выбранный день"
	msgOutsideBusinessHours = "выбранное время вне рабочих часов"
	msgDuringBreak          = "выбранное время попадает на перерыв"
	msgNoBayAvailable       = "нет свободного бокса на новое время"
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

// Handle PUT /api/v1/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := mux.Vars(r)["id"]

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Failed to parse datetime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.service.Update(r.Context(), id, serviceReq, principal)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointments.ErrCannotUpdate):
			handlers.RespondConflict(w, msgCannotUpdate)

		case errors.Is(err, scheduling.ErrPastDateTime):
			handlers.RespondBadRequest(w, msgPastDateTime)

		case errors.Is(err, scheduling.ErrHoliday):
			handlers.RespondBadRequest(w, msgHoliday)

		case errors.Is(err, scheduling.ErrClosedDay):
			handlers.RespondBadRequest(w, msgClosedDay)

		case errors.Is(err, scheduling.ErrOutsideBusinessHours):
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, scheduling.ErrDuringBreak):
			handlers.RespondBadRequest(w, msgDuringBreak)

		case errors.Is(err, scheduling.ErrNoBayAvailable):
			handlers.RespondConflict(w, msgNoBayAvailable)

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to update appointment id=%s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment id=%s updated by user=%s", id, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
