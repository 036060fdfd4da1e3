package update_item_rules

import (
	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules/models"
)

// UpdateRulesRequest HTTP request model
type UpdateRulesRequest struct {
	Furthest FurthestRule `json:"furthest"`
	Closest  ClosestRule  `json:"closest"`
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

// ToRulesInput конвертирует HTTP request в поля правил сервиса
func (r *UpdateRulesRequest) ToRulesInput() models.RulesInput {
	return models.RulesInput{
		FurthestMode:         r.Furthest.Mode,
		FurthestNumber:       r.Furthest.Number,
		FurthestUnit:         r.Furthest.Unit,
		ClosestMode:          r.Closest.Mode,
		ClosestTimeIncrement: r.Closest.TimeIncrement,
		ClosestDays:          r.Closest.Days,
	}
}

// ToServiceRequest собирает запрос сервиса; menuItemID = nil для правил ресторана
func (r *UpdateRulesRequest) ToServiceRequest(userID int64, menuItemID *int64) *models.UpsertRulesRequest {
	return &models.UpsertRulesRequest{
		UserID:     userID,
		MenuItemID: menuItemID,
		Rules:      r.ToRulesInput(),
	}
}
