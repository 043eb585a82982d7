package book_appointment

import (
	"errors"
	"net/http"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/service/scheduling"
	bookAppointment "github.com/techtorque/appointment-service/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректный формат даты и времени, ожидается YYYY-MM-DDTHH:MM:SS"
	msgServiceTypeNotFound  = "тип обслуживания не найден"
	msgServiceTypeInactive  = "тип обслуживания больше не предоставляется"
	msgPastDateTime         = "нельзя записаться на прошедшее время"
	msgHoliday              = "мастерская закрыта в выбранную дату (праздничный день)"
	msgClosedDay            = "мастерская не работает в выбранный день"
	msgOutsideBusinessHours = "выбранное время вне рабочих часов"
	msgDuringBreak          = "выбранное время попадает на перерыв"
	msgNoBayAvailable       = "нет свободного бокса на выбранное время"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal.UserID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse datetime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, bookAppointment.ErrServiceTypeNotFound):
			handlers.RespondNotFound(w, msgServiceTypeNotFound)

		case errors.Is(err, bookAppointment.ErrServiceTypeInactive):
			handlers.RespondBadRequest(w, msgServiceTypeInactive)

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
			h.logger.Warn("POST /appointments - No bay available: customer=%s", principal.UserID)
			handlers.RespondConflict(w, msgNoBayAvailable)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: customer=%s, error=%v",
				principal.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, confirmation=%s, customer=%s",
		result.ID, result.ConfirmationNumber, principal.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
