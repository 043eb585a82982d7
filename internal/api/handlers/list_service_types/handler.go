package list_service_types

import (
	"errors"
	"net/http"

	"github.com/techtorque/appointment-service/internal/api/handlers"
	"github.com/techtorque/appointment-service/internal/api/middleware"
	"github.com/techtorque/appointment-service/internal/service/servicetypes"
)

const msgAccessDenied = "полный каталог доступен только администратору"

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

// Handle GET /api/v1/service-types
// С параметром ?all=true возвращает и деактивированные типы (администратор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var err error
	var result *servicetypes.ServiceTypeListResponse

	if r.URL.Query().Get("all") == "true" {
		result, err = h.service.ListAll(r.Context(), principal)
	} else {
		result, err = h.service.ListActive(r.Context())
	}

	if err != nil {
		switch {
		case errors.Is(err, servicetypes.ErrAccessDenied):
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /service-types - Failed to list service types: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
