package bulk_update_rules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingWindowService/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWindowService/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidData         = "некорректные правила или список позиций"
	msgUnauthorized        = "требуется авторизация"
	msgMenuItemNotFound    = "позиция меню не найдена"
	msgMenuItemNotBookable = "позиция меню недоступна для бронирования"
	msgConflict            = "правила были изменены параллельно, повторите запрос"
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

// Handle PUT /api/v1/booking-rules/bulk
// Применяет одни правила ко всем позициям из списка; либо все, либо ни одной
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req BulkUpdateRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-rules/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BulkUpdate(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("PUT /booking-rules/bulk - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, rules.ErrMenuItemNotFound):
			h.logger.Warn("PUT /booking-rules/bulk - Menu item not found: user_id=%d, error=%v", userID, err)
			handlers.RespondNotFound(w, msgMenuItemNotFound)

		case errors.Is(err, rules.ErrMenuItemNotBookable):
			handlers.RespondUnprocessable(w, msgMenuItemNotBookable)

		case errors.Is(err, rules.ErrRulesConflict):
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PUT /booking-rules/bulk - Failed to update rules: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /booking-rules/bulk - Rules updated: user_id=%d, items=%d", userID, len(result.Updated))
	handlers.RespondJSON(w, http.StatusOK, result)
}
