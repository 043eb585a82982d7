package update_service_type

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/service/servicetypes"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
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

// Handle PUT /api/v1/service-types/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := mux.Vars(r)["id"]

	var req servicetypes.UpdateServiceTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /service-types/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req, principal)
	if err != nil {
		switch {
		case errors.Is(err, servicetypes.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, servicetypes.ErrServiceTypeNotFound):
			handlers.RespondNotFound(w, msgServiceTypeNotFound)

		case errors.Is(err, servicetypes.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /service-types/{id} - Failed to update service type id=%s: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /service-types/{id} - Service type id=%s updated by admin=%s", id, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
