package check_booking_time

import (
	"context"

	checkBookingTime "github.com/m04kA/SMC-BookingWindowService/internal/usecase/check_booking_time"
)

type CheckBookingTimeUseCase interface {
	Execute(ctx context.Context, req *checkBookingTime.Request) (*checkBookingTime.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
