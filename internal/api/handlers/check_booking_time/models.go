package check_booking_time

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	checkBookingTime "github.com/m04kA/SMC-BookingWindowService/internal/usecase/check_booking_time"
	"github.com/m04kA/SMC-BookingWindowService/pkg/types"
)

// CheckBookingTimeResponse HTTP response model
type CheckBookingTimeResponse struct {
	ItemID          int64  `json:"itemId"`
	Allowed         bool   `json:"allowed"`
	RequestedAt     string `json:"requestedAt"`
	EarliestAllowed string `json:"earliestAllowed"`
	LatestDay       string `json:"latestDay"`
	RulesLevel      string `json:"rulesLevel"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkBookingTime.Response) *CheckBookingTimeResponse {
	return &CheckBookingTimeResponse{
		ItemID:          resp.ItemID,
		Allowed:         true,
		RequestedAt:     resp.RequestedAt.Format(time.RFC3339),
		EarliestAllowed: resp.EarliestAllowed.Format(time.RFC3339),
		LatestDay:       resp.LatestDay.Format(domain.DateFormat),
		RulesLevel:      resp.RulesLevel,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(itemID int64, dateStr, timeStr string) (*checkBookingTime.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, err
	}

	return &checkBookingTime.Request{
		ItemID:    itemID,
		Date:      date,
		StartTime: startTime,
	}, nil
}
