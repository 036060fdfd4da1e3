package rules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	"github.com/m04kA/SMC-BookingWindowService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingWindowService/pkg/psqlbuilder"
)

const (
	tableName = "menu_item_booking_rules"

	// pgUniqueViolation код ошибки PostgreSQL unique_violation
	pgUniqueViolation = "23505"
)

var selectColumns = []string{
	"id",
	"menu_item_id",
	"furthest_mode",
	"furthest_number",
	"furthest_unit",
	"closest_mode",
	"closest_time_increment",
	"closest_days",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил окна бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает правила для позиции меню (или правила по умолчанию, если MenuItemID = nil)
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, rules *domain.ItemBookingRules) (*domain.ItemBookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := toRow(rules)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"menu_item_id",
			"furthest_mode",
			"furthest_number",
			"furthest_unit",
			"closest_mode",
			"closest_time_increment",
			"closest_days",
		).
		Values(
			rules.MenuItemID,
			row.furthestMode,
			row.furthestNumber,
			row.furthestUnit,
			row.closestMode,
			row.closestTimeIncrement,
			row.closestDays,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rules.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateRules
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rules.CreatedAt = createdAt.Time
	rules.UpdatedAt = updatedAt.Time

	return rules, nil
}

// GetByMenuItem получает правила ровно этого уровня:
// menuItemID != nil - правила позиции, menuItemID == nil - правила ресторана по умолчанию
func (r *Repository) GetByMenuItem(ctx context.Context, menuItemID *int64) (*domain.ItemBookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(menuItemCondition(menuItemID)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMenuItem - build select query: %v", ErrBuildQuery, err)
	}

	rules, err := scanRules(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, wrapScanErr("GetByMenuItem", err)
	}

	return rules, nil
}

// GetWithHierarchy получает правила с учетом иерархии:
// 1. Правила конкретной позиции меню
// 2. Правила ресторана по умолчанию
//
// Если правил нет ни на одном уровне, возвращает ErrRulesNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, menuItemID int64) (*domain.ItemBookingRules, error) {
	rules, err := r.GetByMenuItem(ctx, &menuItemID)
	if err == nil {
		return rules, nil
	}
	if !errors.Is(err, ErrRulesNotFound) {
		return nil, fmt.Errorf("GetWithHierarchy - level 1 (item): %w", err)
	}

	rules, err = r.GetByMenuItem(ctx, nil)
	if err == nil {
		return rules, nil
	}
	if !errors.Is(err, ErrRulesNotFound) {
		return nil, fmt.Errorf("GetWithHierarchy - level 2 (restaurant): %w", err)
	}

	return nil, ErrRulesNotFound
}

// List получает все сохранённые правила, правила по умолчанию первыми
func (r *Repository) List(ctx context.Context) ([]*domain.ItemBookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		OrderBy("menu_item_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ItemBookingRules, 0)

	for rows.Next() {
		rules, err := scanRules(rows)
		if err != nil {
			return nil, wrapScanErr("List", err)
		}
		result = append(result, rules)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Update обновляет оба правила записи
func (r *Repository) Update(ctx context.Context, id int64, rules *domain.ItemBookingRules) (*domain.ItemBookingRules, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := toRow(rules)

	query, args, err := psqlbuilder.Update(tableName).
		Set("furthest_mode", row.furthestMode).
		Set("furthest_number", row.furthestNumber).
		Set("furthest_unit", row.furthestUnit).
		Set("closest_mode", row.closestMode).
		Set("closest_time_increment", row.closestTimeIncrement).
		Set("closest_days", row.closestDays).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING menu_item_id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var menuItemID sql.NullInt64
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&menuItemID, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrRulesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rules.ID = id
	rules.MenuItemID = nullableInt64(menuItemID)
	rules.CreatedAt = createdAt.Time
	rules.UpdatedAt = updatedAt.Time

	return rules, nil
}

// DeleteByMenuItem удаляет правила уровня menuItemID (nil - правила по умолчанию)
func (r *Repository) DeleteByMenuItem(ctx context.Context, menuItemID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(menuItemCondition(menuItemID)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByMenuItem - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByMenuItem - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByMenuItem - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRulesNotFound
	}

	return nil
}

// Helper methods

// rulesRow плоское представление правил для записи в БД
type rulesRow struct {
	furthestMode         string
	furthestNumber       int
	furthestUnit         *string
	closestMode          string
	closestTimeIncrement *int
	closestDays          *int
}

func toRow(rules *domain.ItemBookingRules) rulesRow {
	furthest := domain.FurthestDataFromRule(rules.Furthest)
	closest := domain.ClosestDataFromRule(rules.Closest)

	row := rulesRow{
		furthestMode:         string(furthest.Mode),
		furthestNumber:       furthest.Number,
		closestMode:          string(closest.Mode),
		closestTimeIncrement: closest.TimeIncrement,
		closestDays:          closest.Days,
	}
	if furthest.Unit != nil {
		unit := string(*furthest.Unit)
		row.furthestUnit = &unit
	}
	return row
}

func scanRules(scanner rowScanner) (*domain.ItemBookingRules, error) {
	var (
		rules                domain.ItemBookingRules
		menuItemID           sql.NullInt64
		furthestMode         string
		furthestNumber       int
		furthestUnit         sql.NullString
		closestMode          string
		closestTimeIncrement sql.NullInt64
		closestDays          sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := scanner.Scan(
		&rules.ID,
		&menuItemID,
		&furthestMode,
		&furthestNumber,
		&furthestUnit,
		&closestMode,
		&closestTimeIncrement,
		&closestDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	furthestData := domain.FurthestRuleData{
		Mode:   domain.FurthestMode(furthestMode),
		Number: furthestNumber,
	}
	if furthestUnit.Valid {
		unit := domain.WindowUnit(furthestUnit.String)
		furthestData.Unit = &unit
	}

	furthest, err := furthestData.ToRule()
	if err != nil {
		return nil, fmt.Errorf("%w: id=%d: %v", ErrCorruptedRules, rules.ID, err)
	}

	closest, err := domain.ClosestRuleData{
		Mode:          domain.ClosestMode(closestMode),
		TimeIncrement: nullableInt(closestTimeIncrement),
		Days:          nullableInt(closestDays),
	}.ToRule()
	if err != nil {
		return nil, fmt.Errorf("%w: id=%d: %v", ErrCorruptedRules, rules.ID, err)
	}

	rules.MenuItemID = nullableInt64(menuItemID)
	rules.Furthest = furthest
	rules.Closest = closest
	rules.CreatedAt = createdAt.Time
	rules.UpdatedAt = updatedAt.Time

	return &rules, nil
}

func wrapScanErr(op string, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrRulesNotFound
	case errors.Is(err, ErrCorruptedRules):
		return err
	default:
		return fmt.Errorf("%w: %s - scan rules: %v", ErrScanRow, op, err)
	}
}

func menuItemCondition(menuItemID *int64) squirrel.Eq {
	if menuItemID == nil {
		return squirrel.Eq{"menu_item_id": nil}
	}
	return squirrel.Eq{"menu_item_id": *menuItemID}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
