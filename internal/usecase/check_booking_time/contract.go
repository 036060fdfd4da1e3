package check_booking_time

import (
	"context"

	"github.com/m04kA/SMC-BookingWindowService/internal/usecase/get_booking_window"
)

// BookingWindowGetter рассчитывает окно бронирования позиции
type BookingWindowGetter interface {
	Execute(ctx context.Context, req *get_booking_window.Request) (*get_booking_window.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
