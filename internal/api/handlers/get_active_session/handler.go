package get_active_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
)

const (
	msgEmployeeOnly    = "учёт времени доступен только сотруднику"
	msgNoActiveSession = "нет открытой рабочей сессии по этой записи"
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

// Handle GET /api/v1/appointments/{id}/active-session
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

	result, err := h.service.GetActiveSession(r.Context(), appointmentID, principal.UserID)
	if err != nil {
		h.logger.Error("GET /appointments/{id}/active-session - Failed for appointment=%s employee=%s: %v",
			appointmentID, principal.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	if result == nil {
		handlers.RespondNotFound(w, msgNoActiveSession)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
