package delete_item_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWindowService/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWindowService/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules"
	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules/models"
)

const (
	msgInvalidItemID = "некорректный ID позиции меню"
	msgUnauthorized  = "требуется авторизация"
	msgNotFound      = "правила бронирования не найдены"
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

// Handle DELETE /api/v1/items/{itemId}/booking-rules
// После удаления позиция снова наследует правила ресторана
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(mux.Vars(r)["itemId"], 10, 64)
	if err != nil || itemID <= 0 {
		h.logger.Warn("DELETE /items/{id}/booking-rules - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	h.remove(w, r, "DELETE /items/{id}/booking-rules", &itemID)
}

// HandleDefault DELETE /api/v1/booking-rules/default
func (h *Handler) HandleDefault(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "DELETE /booking-rules/default", nil)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request, route string, itemID *int64) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	err := h.service.Delete(r.Context(), &models.DeleteRulesRequest{UserID: userID, MenuItemID: itemID})
	if err != nil {
		if errors.Is(err, rules.ErrRulesNotFound) {
			h.logger.Info("%s - Rules not found: user_id=%d", route, userID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("%s - Failed to delete rules: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s - Rules deleted: user_id=%d", route, userID)
	w.WriteHeader(http.StatusNoContent)
}
