package get_booking_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWindowService/internal/api/handlers"
	getBookingWindow "github.com/m04kA/SMC-BookingWindowService/internal/usecase/get_booking_window"
)

const (
	msgInvalidItemID       = "некорректный ID позиции меню"
	msgMenuItemNotFound    = "позиция меню не найдена"
	msgMenuItemNotBookable = "позиция меню недоступна для бронирования"
)

type Handler struct {
	useCase GetBookingWindowUseCase
	logger  Logger
}

func NewHandler(useCase GetBookingWindowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/booking-window
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(mux.Vars(r)["itemId"], 10, 64)
	if err != nil || itemID <= 0 {
		h.logger.Warn("GET /items/{id}/booking-window - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getBookingWindow.Request{ItemID: itemID})
	if err != nil {
		switch {
		case errors.Is(err, getBookingWindow.ErrMenuItemNotFound):
			h.logger.Warn("GET /items/{id}/booking-window - Menu item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgMenuItemNotFound)

		case errors.Is(err, getBookingWindow.ErrMenuItemNotBookable):
			h.logger.Warn("GET /items/{id}/booking-window - Menu item not bookable: item_id=%d", itemID)
			handlers.RespondUnprocessable(w, msgMenuItemNotBookable)

		case errors.Is(err, getBookingWindow.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidItemID)

		default:
			h.logger.Error("GET /items/{id}/booking-window - Failed to compute window: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{id}/booking-window - Window computed: item_id=%d, level=%s", itemID, result.RulesLevel)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
