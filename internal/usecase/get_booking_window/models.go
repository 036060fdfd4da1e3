package get_booking_window

import (
	"time"

	"github.com/m04kA/SMC-BookingWindowService/internal/bookingwindow"
	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
)

// Request модель запроса окна бронирования
type Request struct {
	ItemID int64 // ID позиции меню
}

// Response рассчитанное окно бронирования позиции
type Response struct {
	ItemID     int64
	RulesLevel string // item / restaurant / built-in
	Furthest   domain.FurthestBookingRule
	Closest    domain.ClosestBookingRule

	Now             time.Time // Момент расчёта в часовом поясе ресторана
	Latest          time.Time // Самая поздняя дата бронирования
	LatestDay       time.Time // Последний доступный день (00:00)
	Earliest        time.Time // Самый ранний момент без округления
	EarliestRounded time.Time // Самый ранний момент, округлённый до четверти часа

	FurthestPreview bookingwindow.Preview
	ClosestPreview  bookingwindow.Preview
}
