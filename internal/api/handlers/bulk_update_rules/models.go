package bulk_update_rules

import (
	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules/models"
)

// BulkUpdateRulesRequest HTTP request model
type BulkUpdateRulesRequest struct {
	MenuItemIDs []int64      `json:"menuItemIds"`
	Furthest    FurthestRule `json:"furthest"`
	Closest     ClosestRule  `json:"closest"`
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

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *BulkUpdateRulesRequest) ToServiceRequest(userID int64) *models.BulkUpdateRequest {
	return &models.BulkUpdateRequest{
		UserID:      userID,
		MenuItemIDs: r.MenuItemIDs,
		Rules: models.RulesInput{
			FurthestMode:         r.Furthest.Mode,
			FurthestNumber:       r.Furthest.Number,
			FurthestUnit:         r.Furthest.Unit,
			ClosestMode:          r.Closest.Mode,
			ClosestTimeIncrement: r.Closest.TimeIncrement,
			ClosestDays:          r.Closest.Days,
		},
	}
}
