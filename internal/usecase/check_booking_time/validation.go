package check_booking_time

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWindowService/internal/bookingwindow"
	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	"github.com/m04kA/SMC-BookingWindowService/internal/usecase/get_booking_window"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ItemID <= 0 {
		return fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// earliestAllowed самый ранний допустимый момент для правил окна
// Для advance доступен весь день самой ранней даты. Дата берется до округления,
// иначе после 23:45 округление переносит ее на следующие сутки
func earliestAllowed(window *get_booking_window.Response) time.Time {
	if _, ok := window.Closest.(domain.AdvanceNotice); ok {
		return bookingwindow.StartOfDay(window.Earliest)
	}
	return window.EarliestRounded
}

// validateRequestedTime проверяет, что момент попадает в окно бронирования
func validateRequestedTime(requested time.Time, window *get_booking_window.Response) error {
	earliest := earliestAllowed(window)
	if requested.Before(earliest) {
		return fmt.Errorf("%w: earliest allowed is %s", ErrTooEarly, earliest.Format(time.RFC3339))
	}

	if bookingwindow.StartOfDay(requested).After(window.LatestDay) {
		return fmt.Errorf("%w: last bookable day is %s", ErrTooFarInFuture, window.LatestDay.Format(domain.DateFormat))
	}

	return nil
}
