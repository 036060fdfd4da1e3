package check_booking_time

import (
	"time"

	"github.com/m04kA/SMC-BookingWindowService/pkg/types"
)

// Request модель запроса проверки времени бронирования
type Request struct {
	ItemID    int64            // ID позиции меню
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "19:30")
}

// Response модель ответа: запрошенный момент и границы окна
type Response struct {
	ItemID          int64
	RequestedAt     time.Time // Запрошенный момент в часовом поясе ресторана
	EarliestAllowed time.Time // Самый ранний допустимый момент
	LatestDay       time.Time // Последний доступный день (00:00)
	RulesLevel      string
}
