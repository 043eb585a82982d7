package deactivate_service_type

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/service/servicetypes"
)

const (
	msgAccessDenied        = "изменение каталога доступно только администратору"
	msgServiceTypeNotFound = "тип обслуживания не найден"
)

type Handler struct {
	service ServiceTypeService
	logger  Logger
}

func NewHandler(service ServiceTypeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/service-types/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := mux.Vars(r)["id"]

	if err := h.service.Deactivate(r.Context(), id, principal); err != nil {
		switch {
		case errors.Is(err, servicetypes.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, servicetypes.ErrServiceTypeNotFound):
			handlers.RespondNotFound(w, msgServiceTypeNotFound)

		default:
			h.logger.Error("DELETE /service-types/{id} - Failed to deactivate service type id=%s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /service-types/{id} - Service type id=%s deactivated by admin=%s", id, principal.UserID)
	handlers.RespondNoContent(w)
}
