package get_booking_window

import (
	"time"

	"github.com/m04kA/SMC-BookingWindowService/internal/bookingwindow"
	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	getBookingWindow "github.com/m04kA/SMC-BookingWindowService/internal/usecase/get_booking_window"
)

// BookingWindowResponse HTTP response model
type BookingWindowResponse struct {
	ItemID          int64        `json:"itemId"`
	RulesLevel      string       `json:"rulesLevel"`
	Furthest        FurthestRule `json:"furthest"`
	Closest         ClosestRule  `json:"closest"`
	Now             string       `json:"now"`
	Latest          string       `json:"latest"`
	LatestDay       string       `json:"latestDay"` // "2025-10-15"
	Earliest        string       `json:"earliest"`
	EarliestRounded string       `json:"earliestRounded"`
	FurthestPreview Preview      `json:"furthestPreview"`
	ClosestPreview  Preview      `json:"closestPreview"`
}

// FurthestRule правило самой поздней даты
type FurthestRule struct {
	Mode   string  `json:"mode"`
	Number int     `json:"number"`
	Unit   *string `json:"unit,omitempty"`
}

// ClosestRule правило самого раннего момента
type ClosestRule struct {
	Mode          string `json:"mode"`
	TimeIncrement *int   `json:"timeIncrement,omitempty"`
	Days          *int   `json:"days,omitempty"`
}

// Preview текст превью целиком и по сегментам для выделения в UI
type Preview struct {
	Text     string                  `json:"text"`
	Segments []bookingwindow.Segment `json:"segments"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookingWindow.Response) *BookingWindowResponse {
	furthest := domain.FurthestDataFromRule(resp.Furthest)
	closest := domain.ClosestDataFromRule(resp.Closest)

	out := &BookingWindowResponse{
		ItemID:     resp.ItemID,
		RulesLevel: resp.RulesLevel,
		Furthest: FurthestRule{
			Mode:   string(furthest.Mode),
			Number: furthest.Number,
		},
		Closest: ClosestRule{
			Mode:          string(closest.Mode),
			TimeIncrement: closest.TimeIncrement,
			Days:          closest.Days,
		},
		Now:             resp.Now.Format(time.RFC3339),
		Latest:          resp.Latest.Format(time.RFC3339),
		LatestDay:       resp.LatestDay.Format(domain.DateFormat),
		Earliest:        resp.Earliest.Format(time.RFC3339),
		EarliestRounded: resp.EarliestRounded.Format(time.RFC3339),
		FurthestPreview: toPreview(resp.FurthestPreview),
		ClosestPreview:  toPreview(resp.ClosestPreview),
	}
	if furthest.Unit != nil {
		unit := string(*furthest.Unit)
		out.Furthest.Unit = &unit
	}

	return out
}

func toPreview(p bookingwindow.Preview) Preview {
	return Preview{Text: p.PlainText(), Segments: p.Segments}
}
