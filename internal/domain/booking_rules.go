package domain

import "time"

// ItemBookingRules правила окна бронирования для позиции меню
// Поддерживает иерархию:
// 1. Правила конкретной позиции (menu_item_id)
// 2. Правила ресторана по умолчанию (menu_item_id = NULL)
// 3. Встроенные значения по умолчанию (DefaultBookingRules)
type ItemBookingRules struct {
	ID         int64
	MenuItemID *int64 // NULL = правила ресторана по умолчанию
	Furthest   FurthestBookingRule
	Closest    ClosestBookingRule
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsRestaurantDefault returns true if these rules apply to all items without own rules
func (r *ItemBookingRules) IsRestaurantDefault() bool {
	return r.MenuItemID == nil
}

// IsBuiltIn returns true if the rules were not loaded from storage
func (r *ItemBookingRules) IsBuiltIn() bool {
	return r.ID == 0
}

// Validate проверяет оба правила
func (r *ItemBookingRules) Validate() error {
	if r.Furthest == nil || r.Closest == nil {
		return ErrInvalidRule
	}
	if err := r.Furthest.Validate(); err != nil {
		return err
	}
	return r.Closest.Validate()
}

// DefaultBookingRules встроенные правила, если в БД ничего не настроено
func DefaultBookingRules() *ItemBookingRules {
	return &ItemBookingRules{
		Furthest: RollingWindow{Number: DefaultFurthestDays, Unit: UnitDays},
		Closest:  SameDayNotice{TimeIncrement: DefaultClosestNoticeMinutes},
	}
}

// Level уровень иерархии, с которого пришли правила
func (r *ItemBookingRules) Level() string {
	switch {
	case r.IsBuiltIn():
		return RulesLevelBuiltIn
	case r.IsRestaurantDefault():
		return RulesLevelRestaurant
	default:
		return RulesLevelItem
	}
}
