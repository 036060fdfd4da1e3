package rules

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	"github.com/m04kA/SMC-BookingWindowService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BookingWindowService/pkg/ptr"
)

// fakeRow отдаёт заранее заданные значения в порядке selectColumns
type fakeRow struct {
	values []interface{}
	err    error
}

func (f *fakeRow) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	if len(dest) != len(f.values) {
		return fmt.Errorf("expected %d destinations, got %d", len(f.values), len(dest))
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *int64:
			*target = f.values[i].(int64)
		case *int:
			*target = f.values[i].(int)
		case *string:
			*target = f.values[i].(string)
		case *sql.NullInt64:
			*target = f.values[i].(sql.NullInt64)
		case *sql.NullString:
			*target = f.values[i].(sql.NullString)
		case *sql.NullTime:
			*target = f.values[i].(sql.NullTime)
		default:
			return fmt.Errorf("unsupported destination %T", d)
		}
	}
	return nil
}

func TestScanRules_ItemLevel(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	row := &fakeRow{values: []interface{}{
		int64(7),
		sql.NullInt64{Int64: 42, Valid: true},
		"daily",
		2,
		sql.NullString{String: "months", Valid: true},
		"same-day",
		sql.NullInt64{Int64: 90, Valid: true},
		sql.NullInt64{},
		sql.NullTime{Time: created, Valid: true},
		sql.NullTime{Time: created, Valid: true},
	}}

	rules, err := scanRules(row)

	require.NoError(t, err)
	assert.Equal(t, int64(7), rules.ID)
	require.NotNil(t, rules.MenuItemID)
	assert.Equal(t, int64(42), *rules.MenuItemID)
	assert.Equal(t, domain.RollingWindow{Number: 2, Unit: domain.UnitMonths}, rules.Furthest)
	assert.Equal(t, domain.SameDayNotice{TimeIncrement: 90}, rules.Closest)
	assert.Equal(t, created, rules.CreatedAt)
}

func TestScanRules_RestaurantDefault(t *testing.T) {
	row := &fakeRow{values: []interface{}{
		int64(1),
		sql.NullInt64{},
		"monthly",
		1,
		sql.NullString{},
		"advance",
		sql.NullInt64{},
		sql.NullInt64{Int64: 2, Valid: true},
		sql.NullTime{},
		sql.NullTime{},
	}}

	rules, err := scanRules(row)

	require.NoError(t, err)
	assert.True(t, rules.IsRestaurantDefault())
	assert.Equal(t, domain.MonthlyRelease{Number: 1}, rules.Furthest)
	assert.Equal(t, domain.AdvanceNotice{Days: 2}, rules.Closest)
}

func TestScanRules_Corrupted(t *testing.T) {
	row := &fakeRow{values: []interface{}{
		int64(3),
		sql.NullInt64{},
		"daily",
		5,
		sql.NullString{},
		"advance",
		sql.NullInt64{},
		sql.NullInt64{Int64: 1, Valid: true},
		sql.NullTime{},
		sql.NullTime{},
	}}

	_, err := scanRules(row)

	assert.ErrorIs(t, err, ErrCorruptedRules)
	assert.ErrorIs(t, wrapScanErr("GetByMenuItem", err), ErrCorruptedRules)
}

func TestWrapScanErr(t *testing.T) {
	assert.Equal(t, ErrRulesNotFound, wrapScanErr("GetByMenuItem", sql.ErrNoRows))
	assert.ErrorIs(t, wrapScanErr("GetByMenuItem", errors.New("conn reset")), ErrScanRow)
}

func TestToRow(t *testing.T) {
	row := toRow(&domain.ItemBookingRules{
		Furthest: domain.RollingWindow{Number: 14, Unit: domain.UnitDays},
		Closest:  domain.AdvanceNotice{Days: 1},
	})

	assert.Equal(t, "daily", row.furthestMode)
	assert.Equal(t, 14, row.furthestNumber)
	require.NotNil(t, row.furthestUnit)
	assert.Equal(t, "days", *row.furthestUnit)
	assert.Equal(t, "advance", row.closestMode)
	assert.Nil(t, row.closestTimeIncrement)
	require.NotNil(t, row.closestDays)
	assert.Equal(t, 1, *row.closestDays)

	monthly := toRow(&domain.ItemBookingRules{
		Furthest: domain.MonthlyRelease{Number: 3},
		Closest:  domain.SameDayNotice{TimeIncrement: 30},
	})
	assert.Nil(t, monthly.furthestUnit)
	assert.Nil(t, monthly.closestDays)
}

func TestMenuItemCondition(t *testing.T) {
	query, args, err := psqlbuilder.Select("id").From(tableName).Where(menuItemCondition(nil)).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM menu_item_booking_rules WHERE menu_item_id IS NULL", query)
	assert.Empty(t, args)

	query, args, err = psqlbuilder.Select("id").From(tableName).Where(menuItemCondition(ptr.Ptr(int64(5)))).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM menu_item_booking_rules WHERE menu_item_id = $1", query)
	assert.Equal(t, []interface{}{int64(5)}, args)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("other")))
}
