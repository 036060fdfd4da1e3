package update_item_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWindowService/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWindowService/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules"
)

const (
	msgInvalidItemID       = "некорректный ID позиции меню"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgUnauthorized        = "требуется авторизация"
	msgInvalidData         = "некорректные правила бронирования"
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

// Handle PUT /api/v1/items/{itemId}/booking-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(mux.Vars(r)["itemId"], 10, 64)
	if err != nil || itemID <= 0 {
		h.logger.Warn("PUT /items/{id}/booking-rules - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	h.upsert(w, r, "PUT /items/{id}/booking-rules", &itemID)
}

// HandleDefault PUT /api/v1/booking-rules/default
func (h *Handler) HandleDefault(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, "PUT /booking-rules/default", nil)
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request, route string, itemID *int64) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), req.ToServiceRequest(userID, itemID))
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("%s - Invalid rules: user_id=%d, error=%v", route, userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, rules.ErrMenuItemNotFound):
			h.logger.Warn("%s - Menu item not found: user_id=%d", route, userID)
			handlers.RespondNotFound(w, msgMenuItemNotFound)

		case errors.Is(err, rules.ErrMenuItemNotBookable):
			handlers.RespondUnprocessable(w, msgMenuItemNotBookable)

		case errors.Is(err, rules.ErrRulesConflict):
			h.logger.Warn("%s - Concurrent modification: user_id=%d", route, userID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("%s - Failed to save rules: user_id=%d, error=%v", route, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Rules saved: user_id=%d, rules_id=%d, level=%s", route, userID, result.ID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
