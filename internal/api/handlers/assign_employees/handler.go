package assign_employees

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/service/appointments"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgAppointmentNotFound = "запись не найдена"
	msgAccessDenied        = "назначение сотрудников доступно только администратору"
	msgNoEmployees         = "необходимо указать хотя бы одного сотрудника"
	msgInvalidTransition   = "запись в финальном статусе, назначение невозможно"
	msgStatusConflict      = "статус записи изменился, повторите запрос"
)

// AssignEmployeesRequest HTTP request model
type AssignEmployeesRequest struct {
	EmployeeIDs []string `json:"employeeIds"`
}

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

// Handle POST /api/v1/appointments/{id}/employees
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := mux.Vars(r)["id"]

	var req AssignEmployeesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/employees - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AssignEmployees(r.Context(), id, req.EmployeeIDs, principal)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointments.ErrNoEmployees):
			handlers.RespondBadRequest(w, msgNoEmployees)

		case errors.Is(err, appointments.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, appointments.ErrStatusConflict):
			handlers.RespondConflict(w, msgStatusConflict)

		default:
			h.logger.Error("POST /appointments/{id}/employees - Failed to assign employees for id=%s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/employees - %d employees assigned to id=%s by admin=%s",
		len(req.EmployeeIDs), id, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
