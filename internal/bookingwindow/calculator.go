// Package bookingwindow вычисляет границы окна бронирования позиции меню
// по правилам "самого дальнего" и "самого ближнего" бронирования.
//
// Все функции чистые: текущий момент передаётся вызывающим кодом,
// а полночь и календарные дни считаются в локации now.
package bookingwindow

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
)

const quarterHour = 15

// LatestBooking вычисляет самую позднюю дату, на которую можно забронировать
//
// daily   - now + Number дней или месяцев (день месяца прижимается к последнему дню целевого месяца)
// monthly - последний день месяца now.Month()+Number (00:00), месяц открывается целиком 1-го числа
func LatestBooking(rule domain.FurthestBookingRule, now time.Time) (time.Time, error) {
	if rule == nil {
		return time.Time{}, fmt.Errorf("%w: furthest rule is required", domain.ErrInvalidRule)
	}
	if err := rule.Validate(); err != nil {
		return time.Time{}, err
	}

	switch r := rule.(type) {
	case domain.RollingWindow:
		if r.Unit == domain.UnitMonths {
			return addMonthsClamped(now, r.Number), nil
		}
		return now.AddDate(0, 0, r.Number), nil
	case domain.MonthlyRelease:
		return lastDayOfMonth(now.Year(), now.Month()+time.Month(r.Number), now.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported furthest rule %T", domain.ErrInvalidRule, rule)
	}
}

// EarliestBooking вычисляет самый ранний момент, на который можно забронировать
//
// same-day - now + TimeIncrement минут
// advance  - now + Days календарных дней (время суток берётся из now)
func EarliestBooking(rule domain.ClosestBookingRule, now time.Time) (time.Time, error) {
	if rule == nil {
		return time.Time{}, fmt.Errorf("%w: closest rule is required", domain.ErrInvalidRule)
	}
	if err := rule.Validate(); err != nil {
		return time.Time{}, err
	}

	switch r := rule.(type) {
	case domain.SameDayNotice:
		return now.Add(time.Duration(r.TimeIncrement) * time.Minute), nil
	case domain.AdvanceNotice:
		return now.AddDate(0, 0, r.Days), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported closest rule %T", domain.ErrInvalidRule, rule)
	}
}

// RoundToNextQuarterHour округляет вверх до ближайших :00/:15/:30/:45, обнуляя секунды
// Время, уже стоящее на границе (с точностью до минуты), не сдвигается
func RoundToNextQuarterHour(t time.Time) time.Time {
	truncated := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())

	rem := t.Minute() % quarterHour
	if rem == 0 {
		return truncated
	}
	return truncated.Add(time.Duration(quarterHour-rem) * time.Minute)
}

// StartOfDay возвращает полночь дня t в его локации
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что два момента относятся к одному календарному дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// lastDayOfMonth time.Date нормализует месяц за пределами 1..12, день 0 - последний день предыдущего месяца
func lastDayOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
}

func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())

	day := t.Day()
	if last := lastDayOfMonth(firstOfTarget.Year(), firstOfTarget.Month(), t.Location()).Day(); day > last {
		day = last
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
