package get_booking_window

import (
	"context"

	getBookingWindow "github.com/m04kA/SMC-BookingWindowService/internal/usecase/get_booking_window"
)

type GetBookingWindowUseCase interface {
	Execute(ctx context.Context, req *getBookingWindow.Request) (*getBookingWindow.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
