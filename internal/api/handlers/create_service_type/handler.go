package create_service_type

import (
	"errors"
	"net/http"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/service/servicetypes"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAccessDenied       = "изменение каталога доступно только администратору"
	msgAlreadyExists      = "тип обслуживания с таким именем уже существует"
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

// Handle POST /api/v1/service-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req servicetypes.CreateServiceTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /service-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req, principal)
	if err != nil {
		switch {
		case errors.Is(err, servicetypes.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, servicetypes.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, servicetypes.ErrServiceTypeExists):
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /service-types - Failed to create service type: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /service-types - Service type %q created by admin=%s", result.Name, principal.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
