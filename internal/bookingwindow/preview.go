package bookingwindow

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	"github.com/m04kA/SMC-BookingWindowService/pkg/types"
)

const (
	monthDayLayout        = "January 2"
	weekdayMonthDayLayout = "Monday, January 2"
)

// Segment фрагмент текста превью; Emphasized - выделяемое значение (дата, время)
// Разметку выделения строит UI
type Segment struct {
	Text       string `json:"text"`
	Emphasized bool   `json:"emphasized"`
}

// Preview человекочитаемое описание границы окна бронирования
type Preview struct {
	Segments []Segment `json:"segments"`
}

// PlainText склеивает сегменты без разметки
func (p Preview) PlainText() string {
	var sb strings.Builder
	for _, s := range p.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// EmphasizedValues возвращает выделенные значения по порядку
func (p Preview) EmphasizedValues() []string {
	values := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		if s.Emphasized {
			values = append(values, s.Text)
		}
	}
	return values
}

func plain(text string) Segment {
	return Segment{Text: text}
}

func emphasized(text string) Segment {
	return Segment{Text: text, Emphasized: true}
}

// FurthestPreview описывает самую позднюю дату бронирования
//
// В режиме monthly дата открытия - 1-е число месяца latest, а не следующего месяца:
// так текст выглядел всегда, поведение закреплено тестом
func FurthestPreview(latest time.Time, rule domain.FurthestBookingRule) (Preview, error) {
	if rule == nil {
		return Preview{}, fmt.Errorf("%w: furthest rule is required", domain.ErrInvalidRule)
	}
	if err := rule.Validate(); err != nil {
		return Preview{}, err
	}

	switch rule.(type) {
	case domain.RollingWindow:
		return Preview{Segments: []Segment{
			plain("Furthest booking right now would be "),
			emphasized(latest.Format(monthDayLayout)),
			plain(". The booking window advances by 1 day each day at midnight."),
		}}, nil
	case domain.MonthlyRelease:
		firstOfLatestMonth := time.Date(latest.Year(), latest.Month(), 1, 0, 0, 0, 0, latest.Location())
		nextMonth := firstOfLatestMonth.AddDate(0, 1, 0)
		return Preview{Segments: []Segment{
			plain("Furthest booking right now would be "),
			emphasized(latest.Format(monthDayLayout)),
			plain(". "),
			emphasized(nextMonth.Month().String()),
			plain(" will become available on "),
			emphasized(firstOfLatestMonth.Format(monthDayLayout)),
			plain(" at midnight."),
		}}, nil
	default:
		return Preview{}, fmt.Errorf("%w: unsupported furthest rule %T", domain.ErrInvalidRule, rule)
	}
}

// ClosestPreview описывает самый ранний момент бронирования
// earliest предварительно округляется до четверти часа; now нужен, чтобы отличить "сегодня"
func ClosestPreview(earliest time.Time, rule domain.ClosestBookingRule, now time.Time) (Preview, error) {
	if rule == nil {
		return Preview{}, fmt.Errorf("%w: closest rule is required", domain.ErrInvalidRule)
	}
	if err := rule.Validate(); err != nil {
		return Preview{}, err
	}

	rounded := RoundToNextQuarterHour(earliest)
	clock := types.NewTimeString(rounded).String()

	switch rule.(type) {
	case domain.SameDayNotice:
		if IsSameDay(rounded, now) {
			return Preview{Segments: []Segment{
				plain("Earliest booking right now would be at "),
				emphasized(clock),
				plain("."),
			}}, nil
		}
		return Preview{Segments: []Segment{
			plain("Earliest booking right now would be "),
			emphasized(rounded.Weekday().String() + ", " + clock),
			plain("."),
		}}, nil
	case domain.AdvanceNotice:
		return Preview{Segments: []Segment{
			plain("Earliest booking right now would be "),
			emphasized(rounded.Format(weekdayMonthDayLayout)),
			plain("."),
		}}, nil
	default:
		return Preview{}, fmt.Errorf("%w: unsupported closest rule %T", domain.ErrInvalidRule, rule)
	}
}
