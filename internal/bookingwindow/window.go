package bookingwindow

import (
	"time"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
)

// Window рассчитанное окно бронирования на момент Now
type Window struct {
	Now             time.Time
	Latest          time.Time
	Earliest        time.Time
	EarliestRounded time.Time
	FurthestPreview Preview
	ClosestPreview  Preview
}

// Compute считает обе границы и превью за один вызов
func Compute(rules *domain.ItemBookingRules, now time.Time) (*Window, error) {
	if rules == nil {
		return nil, domain.ErrInvalidRule
	}

	latest, err := LatestBooking(rules.Furthest, now)
	if err != nil {
		return nil, err
	}

	earliest, err := EarliestBooking(rules.Closest, now)
	if err != nil {
		return nil, err
	}

	furthestPreview, err := FurthestPreview(latest, rules.Furthest)
	if err != nil {
		return nil, err
	}

	closestPreview, err := ClosestPreview(earliest, rules.Closest, now)
	if err != nil {
		return nil, err
	}

	return &Window{
		Now:             now,
		Latest:          latest,
		Earliest:        earliest,
		EarliestRounded: RoundToNextQuarterHour(earliest),
		FurthestPreview: furthestPreview,
		ClosestPreview:  closestPreview,
	}, nil
}

// LatestDay последний календарный день, на который открыто бронирование (00:00)
func (w *Window) LatestDay() time.Time {
	return StartOfDay(w.Latest)
}
