package models

import (
	"time"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
)

// Request модели

// RulesInput плоские поля обоих правил, как их присылает форма редактирования
type RulesInput struct {
	FurthestMode         string  `json:"furthestMode"`                   // daily | monthly
	FurthestNumber       int     `json:"furthestNumber"`                 // >= 1
	FurthestUnit         *string `json:"furthestUnit,omitempty"`         // days | months, только для daily
	ClosestMode          string  `json:"closestMode"`                    // same-day | advance
	ClosestTimeIncrement *int    `json:"closestTimeIncrement,omitempty"` // минуты, только для same-day
	ClosestDays          *int    `json:"closestDays,omitempty"`          // дни, только для advance
}

// UpsertRulesRequest запрос на создание или замену правил
type UpsertRulesRequest struct {
	UserID     int64      `json:"userId"`
	MenuItemID *int64     `json:"menuItemId,omitempty"` // nil = правила ресторана по умолчанию
	Rules      RulesInput `json:"rules"`
}

// BulkUpdateRequest запрос на применение одних правил к нескольким позициям
type BulkUpdateRequest struct {
	UserID      int64      `json:"userId"`
	MenuItemIDs []int64    `json:"menuItemIds"`
	Rules       RulesInput `json:"rules"`
}

// DeleteRulesRequest запрос на удаление правил
type DeleteRulesRequest struct {
	UserID     int64  `json:"userId"`
	MenuItemID *int64 `json:"menuItemId,omitempty"`
}

// Response модели

// FurthestRuleResponse правило самого дальнего бронирования
type FurthestRuleResponse struct {
	Mode   string  `json:"mode"`
	Number int     `json:"number"`
	Unit   *string `json:"unit,omitempty"`
}

// ClosestRuleResponse правило самого ближнего бронирования
type ClosestRuleResponse struct {
	Mode          string `json:"mode"`
	TimeIncrement *int   `json:"timeIncrement,omitempty"`
	Days          *int   `json:"days,omitempty"`
}

// RulesResponse ответ с правилами окна бронирования
type RulesResponse struct {
	ID         int64                `json:"id"` // 0 = встроенные правила, не из БД
	MenuItemID *int64               `json:"menuItemId,omitempty"`
	Level      string               `json:"level"` // item | restaurant | built-in
	Furthest   FurthestRuleResponse `json:"furthest"`
	Closest    ClosestRuleResponse  `json:"closest"`
	CreatedAt  *time.Time           `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time           `json:"updatedAt,omitempty"`
}

// RulesListResponse ответ со списком правил
type RulesListResponse struct {
	Rules []RulesResponse `json:"rules"`
}

// BulkUpdateResponse ответ на массовое обновление
type BulkUpdateResponse struct {
	Updated []RulesResponse `json:"updated"`
}

// Методы конвертации

// ToDomainRules собирает типизированные правила из плоских полей
func (in RulesInput) ToDomainRules() (domain.FurthestBookingRule, domain.ClosestBookingRule, error) {
	furthestData := domain.FurthestRuleData{
		Mode:   domain.FurthestMode(in.FurthestMode),
		Number: in.FurthestNumber,
	}
	if in.FurthestUnit != nil {
		unit := domain.WindowUnit(*in.FurthestUnit)
		furthestData.Unit = &unit
	}

	furthest, err := furthestData.ToRule()
	if err != nil {
		return nil, nil, err
	}

	closest, err := domain.ClosestRuleData{
		Mode:          domain.ClosestMode(in.ClosestMode),
		TimeIncrement: in.ClosestTimeIncrement,
		Days:          in.ClosestDays,
	}.ToRule()
	if err != nil {
		return nil, nil, err
	}

	return furthest, closest, nil
}

// FromDomainRules конвертирует domain модель в DTO
func FromDomainRules(r *domain.ItemBookingRules) *RulesResponse {
	if r == nil {
		return nil
	}

	furthest := domain.FurthestDataFromRule(r.Furthest)
	closest := domain.ClosestDataFromRule(r.Closest)

	resp := &RulesResponse{
		ID:         r.ID,
		MenuItemID: r.MenuItemID,
		Level:      r.Level(),
		Furthest: FurthestRuleResponse{
			Mode:   string(furthest.Mode),
			Number: furthest.Number,
		},
		Closest: ClosestRuleResponse{
			Mode:          string(closest.Mode),
			TimeIncrement: closest.TimeIncrement,
			Days:          closest.Days,
		},
	}
	if furthest.Unit != nil {
		unit := string(*furthest.Unit)
		resp.Furthest.Unit = &unit
	}
	if !r.IsBuiltIn() {
		createdAt, updatedAt := r.CreatedAt, r.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// FromDomainRulesList конвертирует список domain моделей в DTO
func FromDomainRulesList(list []*domain.ItemBookingRules) []RulesResponse {
	resp := make([]RulesResponse, 0, len(list))
	for _, r := range list {
		if item := FromDomainRules(r); item != nil {
			resp = append(resp, *item)
		}
	}
	return resp
}
