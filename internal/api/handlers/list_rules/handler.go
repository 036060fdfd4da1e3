package list_rules

import (
	"net/http"

	"github.com/m04kA/SMC-BookingWindowService/internal/api/handlers"
)

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-rules
// Правила ресторана идут первыми, затем правила позиций по возрастанию ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /booking-rules - Failed to list rules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /booking-rules - Rules listed: count=%d", len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
