package check_booking_time

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	"github.com/m04kA/SMC-BookingWindowService/internal/usecase/get_booking_window"
)

// UseCase use case для проверки запрошенного времени бронирования
type UseCase struct {
	windowGetter BookingWindowGetter
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(windowGetter BookingWindowGetter, logger Logger) *UseCase {
	return &UseCase{
		windowGetter: windowGetter,
		logger:       logger,
	}
}

// Execute выполняет use case проверки времени бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckBookingTime: item=%d, date=%s, time=%s",
		req.ItemID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckBookingTime: validation failed: %v", err)
		return nil, err
	}

	// 2. Окно бронирования на текущий момент
	window, err := uc.windowGetter.Execute(ctx, &get_booking_window.Request{ItemID: req.ItemID})
	if err != nil {
		switch {
		case errors.Is(err, get_booking_window.ErrMenuItemNotFound):
			return nil, ErrMenuItemNotFound
		case errors.Is(err, get_booking_window.ErrMenuItemNotBookable):
			return nil, ErrMenuItemNotBookable
		case errors.Is(err, get_booking_window.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("CheckBookingTime: failed to get booking window for item=%d: %v", req.ItemID, err)
			return nil, fmt.Errorf("%w: failed to get booking window: %v", ErrInternal, err)
		}
	}

	// 3. Дата запроса трактуется в часовом поясе ресторана
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, window.Now.Location())
	requested, err := req.StartTime.On(day)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	// 4. Проверка границ окна
	if err := validateRequestedTime(requested, window); err != nil {
		uc.logger.Warn("CheckBookingTime: item=%d, requested=%s rejected: %v",
			req.ItemID, requested.Format(time.RFC3339), err)
		return nil, err
	}

	uc.logger.Info("CheckBookingTime: item=%d, requested=%s is within window", req.ItemID, requested.Format(time.RFC3339))

	return &Response{
		ItemID:          req.ItemID,
		RequestedAt:     requested,
		EarliestAllowed: earliestAllowed(window),
		LatestDay:       window.LatestDay,
		RulesLevel:      window.RulesLevel,
	}, nil
}
