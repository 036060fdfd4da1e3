package domain

import "fmt"

// FurthestMode режим расчёта самой поздней даты бронирования
type FurthestMode string

const (
	// FurthestModeDaily скользящее окно: сдвигается на 1 день каждую полночь
	FurthestModeDaily FurthestMode = "daily"
	// FurthestModeMonthly пакетное открытие: месяц открывается целиком 1-го числа
	FurthestModeMonthly FurthestMode = "monthly"
)

// WindowUnit единица длины скользящего окна
type WindowUnit string

const (
	UnitDays   WindowUnit = "days"
	UnitMonths WindowUnit = "months"
)

// ClosestMode режим расчёта минимального времени до бронирования
type ClosestMode string

const (
	// ClosestModeSameDay бронирование в тот же день с отступом в минутах
	ClosestModeSameDay ClosestMode = "same-day"
	// ClosestModeAdvance бронирование минимум за N дней
	ClosestModeAdvance ClosestMode = "advance"
)

// FurthestBookingRule правило "самого дальнего" бронирования
// Реализации: RollingWindow, MonthlyRelease
type FurthestBookingRule interface {
	Mode() FurthestMode
	Validate() error
	furthestRule()
}

// ClosestBookingRule правило "самого ближнего" бронирования
// Реализации: SameDayNotice, AdvanceNotice
type ClosestBookingRule interface {
	Mode() ClosestMode
	Validate() error
	closestRule()
}

// RollingWindow бронирование на Number дней/месяцев вперёд
type RollingWindow struct {
	Number int
	Unit   WindowUnit
}

// NewRollingWindow создает правило скользящего окна
func NewRollingWindow(number int, unit WindowUnit) (RollingWindow, error) {
	rule := RollingWindow{Number: number, Unit: unit}
	if err := rule.Validate(); err != nil {
		return RollingWindow{}, err
	}
	return rule, nil
}

func (r RollingWindow) Mode() FurthestMode { return FurthestModeDaily }

func (r RollingWindow) Validate() error {
	if r.Number < 1 {
		return fmt.Errorf("%w: furthest number must be at least 1, got %d", ErrInvalidRule, r.Number)
	}
	if r.Unit != UnitDays && r.Unit != UnitMonths {
		return fmt.Errorf("%w: unknown window unit %q", ErrInvalidRule, r.Unit)
	}
	return nil
}

func (RollingWindow) furthestRule() {}

// MonthlyRelease бронирование до конца месяца, отстоящего на Number месяцев
type MonthlyRelease struct {
	Number int
}

// NewMonthlyRelease создает правило пакетного открытия месяцев
func NewMonthlyRelease(number int) (MonthlyRelease, error) {
	rule := MonthlyRelease{Number: number}
	if err := rule.Validate(); err != nil {
		return MonthlyRelease{}, err
	}
	return rule, nil
}

func (r MonthlyRelease) Mode() FurthestMode { return FurthestModeMonthly }

func (r MonthlyRelease) Validate() error {
	if r.Number < 1 {
		return fmt.Errorf("%w: furthest number must be at least 1, got %d", ErrInvalidRule, r.Number)
	}
	return nil
}

func (MonthlyRelease) furthestRule() {}

// SameDayNotice бронирование не раньше чем через TimeIncrement минут
type SameDayNotice struct {
	TimeIncrement int
}

// NewSameDayNotice создает правило бронирования в тот же день
func NewSameDayNotice(timeIncrement int) (SameDayNotice, error) {
	rule := SameDayNotice{TimeIncrement: timeIncrement}
	if err := rule.Validate(); err != nil {
		return SameDayNotice{}, err
	}
	return rule, nil
}

func (r SameDayNotice) Mode() ClosestMode { return ClosestModeSameDay }

func (r SameDayNotice) Validate() error {
	if r.TimeIncrement < 1 {
		return fmt.Errorf("%w: time increment must be at least 1 minute, got %d", ErrInvalidRule, r.TimeIncrement)
	}
	return nil
}

func (SameDayNotice) closestRule() {}

// AdvanceNotice бронирование минимум за Days дней
type AdvanceNotice struct {
	Days int
}

// NewAdvanceNotice создает правило бронирования заранее
func NewAdvanceNotice(days int) (AdvanceNotice, error) {
	rule := AdvanceNotice{Days: days}
	if err := rule.Validate(); err != nil {
		return AdvanceNotice{}, err
	}
	return rule, nil
}

func (r AdvanceNotice) Mode() ClosestMode { return ClosestModeAdvance }

func (r AdvanceNotice) Validate() error {
	if r.Days < 1 {
		return fmt.Errorf("%w: advance days must be at least 1, got %d", ErrInvalidRule, r.Days)
	}
	return nil
}

func (AdvanceNotice) closestRule() {}

// FurthestRuleData плоское представление FurthestBookingRule (БД, JSON)
// Unit используется только в режиме daily
type FurthestRuleData struct {
	Mode   FurthestMode
	Number int
	Unit   *WindowUnit
}

// ToRule собирает типизированное правило из плоских полей
func (d FurthestRuleData) ToRule() (FurthestBookingRule, error) {
	switch d.Mode {
	case FurthestModeDaily:
		if d.Unit == nil {
			return nil, fmt.Errorf("%w: unit is required for %s mode", ErrInvalidRule, d.Mode)
		}
		return NewRollingWindow(d.Number, *d.Unit)
	case FurthestModeMonthly:
		return NewMonthlyRelease(d.Number)
	default:
		return nil, fmt.Errorf("%w: unknown furthest mode %q", ErrInvalidRule, d.Mode)
	}
}

// FurthestDataFromRule раскладывает правило в плоские поля
func FurthestDataFromRule(rule FurthestBookingRule) FurthestRuleData {
	switch r := rule.(type) {
	case RollingWindow:
		unit := r.Unit
		return FurthestRuleData{Mode: FurthestModeDaily, Number: r.Number, Unit: &unit}
	case MonthlyRelease:
		return FurthestRuleData{Mode: FurthestModeMonthly, Number: r.Number}
	default:
		return FurthestRuleData{}
	}
}

// ClosestRuleData плоское представление ClosestBookingRule (БД, JSON)
// TimeIncrement используется в режиме same-day, Days - в режиме advance
type ClosestRuleData struct {
	Mode          ClosestMode
	TimeIncrement *int
	Days          *int
}

// ToRule собирает типизированное правило из плоских полей
func (d ClosestRuleData) ToRule() (ClosestBookingRule, error) {
	switch d.Mode {
	case ClosestModeSameDay:
		if d.TimeIncrement == nil {
			return nil, fmt.Errorf("%w: timeIncrement is required for %s mode", ErrInvalidRule, d.Mode)
		}
		return NewSameDayNotice(*d.TimeIncrement)
	case ClosestModeAdvance:
		if d.Days == nil {
			return nil, fmt.Errorf("%w: days is required for %s mode", ErrInvalidRule, d.Mode)
		}
		return NewAdvanceNotice(*d.Days)
	default:
		return nil, fmt.Errorf("%w: unknown closest mode %q", ErrInvalidRule, d.Mode)
	}
}

// ClosestDataFromRule раскладывает правило в плоские поля
func ClosestDataFromRule(rule ClosestBookingRule) ClosestRuleData {
	switch r := rule.(type) {
	case SameDayNotice:
		minutes := r.TimeIncrement
		return ClosestRuleData{Mode: ClosestModeSameDay, TimeIncrement: &minutes}
	case AdvanceNotice:
		days := r.Days
		return ClosestRuleData{Mode: ClosestModeAdvance, Days: &days}
	default:
		return ClosestRuleData{}
	}
}
