package check_booking_time

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWindowService/internal/api/handlers"
	checkBookingTime "github.com/m04kA/SMC-BookingWindowService/internal/usecase/check_booking_time"
	"github.com/m04kA/SMC-BookingWindowService/pkg/types"
)

const (
	msgInvalidItemID       = "некорректный ID позиции меню"
	msgMissingDateTime     = "параметры date и time обязательны"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput        = "некорректные параметры запроса"
	msgMenuItemNotFound    = "позиция меню не найдена"
	msgMenuItemNotBookable = "позиция меню недоступна для бронирования"
	msgTooEarly            = "выбранное время раньше самого раннего доступного"
	msgTooFarInFuture      = "выбранная дата ещё не открыта для бронирования"
)

type Handler struct {
	useCase CheckBookingTimeUseCase
	logger  Logger
}

func NewHandler(useCase CheckBookingTimeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/items/{itemId}/booking-window/check
// Query params: date (required, YYYY-MM-DD), time (required, HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(mux.Vars(r)["itemId"], 10, 64)
	if err != nil || itemID <= 0 {
		h.logger.Warn("GET /items/{id}/booking-window/check - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	timeStr := r.URL.Query().Get("time")
	if dateStr == "" || timeStr == "" {
		h.logger.Warn("GET /items/{id}/booking-window/check - Missing date or time: item_id=%d", itemID)
		handlers.RespondBadRequest(w, msgMissingDateTime)
		return
	}

	useCaseReq, err := ToUseCaseRequest(itemID, dateStr, timeStr)
	if err != nil {
		h.logger.Warn("GET /items/{id}/booking-window/check - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeString) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkBookingTime.ErrTooEarly):
			h.logger.Info("GET /items/{id}/booking-window/check - Too early: item_id=%d, date=%s, time=%s",
				itemID, dateStr, timeStr)
			handlers.RespondUnprocessable(w, msgTooEarly)

		case errors.Is(err, checkBookingTime.ErrTooFarInFuture):
			h.logger.Info("GET /items/{id}/booking-window/check - Too far in future: item_id=%d, date=%s",
				itemID, dateStr)
			handlers.RespondUnprocessable(w, msgTooFarInFuture)

		case errors.Is(err, checkBookingTime.ErrMenuItemNotFound):
			h.logger.Warn("GET /items/{id}/booking-window/check - Menu item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgMenuItemNotFound)

		case errors.Is(err, checkBookingTime.ErrMenuItemNotBookable):
			handlers.RespondUnprocessable(w, msgMenuItemNotBookable)

		case errors.Is(err, checkBookingTime.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /items/{id}/booking-window/check - Failed to check time: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /items/{id}/booking-window/check - Time allowed: item_id=%d, requested=%s",
		itemID, result.RequestedAt)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
