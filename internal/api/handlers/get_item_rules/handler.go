package get_item_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWindowService/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules"
	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules/models"
)

const (
	msgInvalidItemID    = "некорректный ID позиции меню"
	msgInvalidEffective = "параметр effective должен быть true или false"
	msgNotFound         = "правила бронирования не найдены"
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

// Handle GET /api/v1/items/{itemId}/booking-rules
// Query params: effective (опционально) - с учётом правил ресторана и встроенных значений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(mux.Vars(r)["itemId"], 10, 64)
	if err != nil || itemID <= 0 {
		h.logger.Warn("GET /items/{id}/booking-rules - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	effective := false
	if raw := r.URL.Query().Get("effective"); raw != "" {
		effective, err = strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidEffective)
			return
		}
	}

	var result *models.RulesResponse
	if effective {
		result, err = h.service.GetEffective(r.Context(), itemID)
	} else {
		result, err = h.service.Get(r.Context(), &itemID)
	}
	if err != nil {
		h.respondError(w, "GET /items/{id}/booking-rules", err)
		return
	}

	h.logger.Info("GET /items/{id}/booking-rules - Rules retrieved: item_id=%d, level=%s", itemID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDefault GET /api/v1/booking-rules/default
func (h *Handler) HandleDefault(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context(), nil)
	if err != nil {
		h.respondError(w, "GET /booking-rules/default", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	if errors.Is(err, rules.ErrRulesNotFound) {
		h.logger.Info("%s - Rules not found", route)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Error("%s - Failed to get rules: %v", route, err)
	handlers.RespondInternalError(w)
}
