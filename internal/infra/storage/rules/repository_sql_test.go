package rules

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	"github.com/m04kA/SMC-BookingWindowService/pkg/ptr"
)

const (
	selectSQL = "SELECT id, menu_item_id, furthest_mode, furthest_number, furthest_unit, closest_mode, " +
		"closest_time_increment, closest_days, created_at, updated_at FROM menu_item_booking_rules"

	insertSQL = "INSERT INTO menu_item_booking_rules (menu_item_id,furthest_mode,furthest_number,furthest_unit," +
		"closest_mode,closest_time_increment,closest_days) VALUES ($1,$2,$3,$4,$5,$6,$7) " +
		"RETURNING id, created_at, updated_at"

	updateSQL = "UPDATE menu_item_booking_rules SET furthest_mode = $1, furthest_number = $2, furthest_unit = $3, " +
		"closest_mode = $4, closest_time_increment = $5, closest_days = $6 WHERE id = $7 " +
		"RETURNING menu_item_id, created_at, updated_at"
)

var stamp = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func exactSQL(query string) string {
	return "^" + regexp.QuoteMeta(query) + "$"
}

func setupMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func rulesRows() *sqlmock.Rows {
	return sqlmock.NewRows(selectColumns)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := setupMockRepository(t)

	mock.ExpectQuery(exactSQL(insertSQL)).
		WithArgs(int64(42), "daily", 2, "days", "same-day", 30, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), stamp, stamp))

	rules := &domain.ItemBookingRules{
		MenuItemID: ptr.Ptr(int64(42)),
		Furthest:   domain.RollingWindow{Number: 2, Unit: domain.UnitDays},
		Closest:    domain.SameDayNotice{TimeIncrement: 30},
	}

	created, err := repo.Create(context.Background(), rules)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, stamp, created.CreatedAt)
	assert.Equal(t, stamp, created.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DefaultRules(t *testing.T) {
	repo, mock := setupMockRepository(t)

	mock.ExpectQuery(exactSQL(insertSQL)).
		WithArgs(nil, "monthly", 1, nil, "advance", nil, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), stamp, stamp))

	_, err := repo.Create(context.Background(), &domain.ItemBookingRules{
		Furthest: domain.MonthlyRelease{Number: 1},
		Closest:  domain.AdvanceNotice{Days: 3},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "unique violation", dbErr: &pq.Error{Code: "23505"}, wantErr: ErrDuplicateRules},
		{name: "other pq error", dbErr: &pq.Error{Code: "23502"}, wantErr: ErrExecQuery},
		{name: "connection error", dbErr: errors.New("connection reset"), wantErr: ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupMockRepository(t)
			mock.ExpectQuery(exactSQL(insertSQL)).WillReturnError(tt.dbErr)

			_, err := repo.Create(context.Background(), &domain.ItemBookingRules{
				MenuItemID: ptr.Ptr(int64(42)),
				Furthest:   domain.MonthlyRelease{Number: 1},
				Closest:    domain.AdvanceNotice{Days: 1},
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetByMenuItem(t *testing.T) {
	t.Run("item level", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(exactSQL(selectSQL + " WHERE menu_item_id = $1")).
			WithArgs(int64(42)).
			WillReturnRows(rulesRows().AddRow(int64(7), int64(42), "daily", 10, "days", "same-day", 45, nil, stamp, stamp))

		rules, err := repo.GetByMenuItem(context.Background(), ptr.Ptr(int64(42)))
		require.NoError(t, err)
		assert.Equal(t, int64(7), rules.ID)
		assert.Equal(t, ptr.Ptr(int64(42)), rules.MenuItemID)
		assert.Equal(t, domain.RollingWindow{Number: 10, Unit: domain.UnitDays}, rules.Furthest)
		assert.Equal(t, domain.SameDayNotice{TimeIncrement: 45}, rules.Closest)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("default level uses IS NULL", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(exactSQL(selectSQL + " WHERE menu_item_id IS NULL")).
			WillReturnRows(rulesRows().AddRow(int64(1), nil, "monthly", 2, nil, "advance", nil, 1, stamp, stamp))

		rules, err := repo.GetByMenuItem(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, rules.MenuItemID)
		assert.Equal(t, domain.MonthlyRelease{Number: 2}, rules.Furthest)
		assert.Equal(t, domain.AdvanceNotice{Days: 1}, rules.Closest)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(exactSQL(selectSQL + " WHERE menu_item_id = $1")).
			WithArgs(int64(42)).
			WillReturnRows(rulesRows())

		_, err := repo.GetByMenuItem(context.Background(), ptr.Ptr(int64(42)))
		assert.ErrorIs(t, err, ErrRulesNotFound)
	})

	t.Run("corrupted row", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(exactSQL(selectSQL + " WHERE menu_item_id = $1")).
			WithArgs(int64(42)).
			WillReturnRows(rulesRows().AddRow(int64(7), int64(42), "daily", 10, nil, "same-day", 45, nil, stamp, stamp))

		_, err := repo.GetByMenuItem(context.Background(), ptr.Ptr(int64(42)))
		assert.ErrorIs(t, err, ErrCorruptedRules)
	})
}

func TestRepository_GetWithHierarchy(t *testing.T) {
	itemQuery := exactSQL(selectSQL + " WHERE menu_item_id = $1")
	defaultQuery := exactSQL(selectSQL + " WHERE menu_item_id IS NULL")

	t.Run("item rules win", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(itemQuery).
			WithArgs(int64(42)).
			WillReturnRows(rulesRows().AddRow(int64(7), int64(42), "monthly", 1, nil, "advance", nil, 2, stamp, stamp))

		rules, err := repo.GetWithHierarchy(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(7), rules.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls through to default", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(itemQuery).WithArgs(int64(42)).WillReturnRows(rulesRows())
		mock.ExpectQuery(defaultQuery).
			WillReturnRows(rulesRows().AddRow(int64(1), nil, "monthly", 3, nil, "same-day", 60, nil, stamp, stamp))

		rules, err := repo.GetWithHierarchy(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rules.ID)
		assert.Nil(t, rules.MenuItemID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing on any level", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(itemQuery).WithArgs(int64(42)).WillReturnRows(rulesRows())
		mock.ExpectQuery(defaultQuery).WillReturnRows(rulesRows())

		_, err := repo.GetWithHierarchy(context.Background(), 42)
		assert.ErrorIs(t, err, ErrRulesNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("item level failure stops lookup", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(itemQuery).WithArgs(int64(42)).WillReturnError(errors.New("connection reset"))

		_, err := repo.GetWithHierarchy(context.Background(), 42)
		assert.ErrorIs(t, err, ErrScanRow)
		assert.NotErrorIs(t, err, ErrRulesNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_List(t *testing.T) {
	repo, mock := setupMockRepository(t)

	mock.ExpectQuery(exactSQL(selectSQL + " ORDER BY menu_item_id ASC NULLS FIRST")).
		WillReturnRows(rulesRows().
			AddRow(int64(1), nil, "monthly", 1, nil, "advance", nil, 1, stamp, stamp).
			AddRow(int64(5), int64(3), "daily", 2, "months", "same-day", 15, nil, stamp, stamp).
			AddRow(int64(4), int64(9), "monthly", 2, nil, "advance", nil, 7, stamp, stamp))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Nil(t, list[0].MenuItemID)
	assert.Equal(t, ptr.Ptr(int64(3)), list[1].MenuItemID)
	assert.Equal(t, domain.RollingWindow{Number: 2, Unit: domain.UnitMonths}, list[1].Furthest)
	assert.Equal(t, ptr.Ptr(int64(9)), list[2].MenuItemID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_Errors(t *testing.T) {
	t.Run("query error", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(exactSQL(selectSQL + " ORDER BY menu_item_id ASC NULLS FIRST")).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.List(context.Background())
		assert.ErrorIs(t, err, ErrExecQuery)
	})

	t.Run("rows error", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(exactSQL(selectSQL + " ORDER BY menu_item_id ASC NULLS FIRST")).
			WillReturnRows(rulesRows().
				AddRow(int64(1), nil, "monthly", 1, nil, "advance", nil, 1, stamp, stamp).
				RowError(0, errors.New("broken row")))

		_, err := repo.List(context.Background())
		assert.ErrorIs(t, err, ErrScanRow)
	})
}

func TestRepository_Update(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(exactSQL(updateSQL)).
			WithArgs("monthly", 2, nil, "advance", nil, 5, int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "created_at", "updated_at"}).AddRow(int64(42), stamp, stamp))

		rules, err := repo.Update(context.Background(), 7, &domain.ItemBookingRules{
			Furthest: domain.MonthlyRelease{Number: 2},
			Closest:  domain.AdvanceNotice{Days: 5},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), rules.ID)
		assert.Equal(t, ptr.Ptr(int64(42)), rules.MenuItemID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows", func(t *testing.T) {
		repo, mock := setupMockRepository(t)
		mock.ExpectQuery(exactSQL(updateSQL)).
			WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "created_at", "updated_at"}))

		_, err := repo.Update(context.Background(), 7, &domain.ItemBookingRules{
			Furthest: domain.MonthlyRelease{Number: 2},
			Closest:  domain.AdvanceNotice{Days: 5},
		})
		assert.ErrorIs(t, err, ErrRulesNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_DeleteByMenuItem(t *testing.T) {
	tests := []struct {
		name       string
		menuItemID *int64
		query      string
		args       []driver.Value
		affected   int64
		execErr    error
		wantErr    error
	}{
		{
			name:       "item rules deleted",
			menuItemID: ptr.Ptr(int64(42)),
			query:      "DELETE FROM menu_item_booking_rules WHERE menu_item_id = $1",
			args:       []driver.Value{int64(42)},
			affected:   1,
		},
		{
			name:     "default rules deleted",
			query:    "DELETE FROM menu_item_booking_rules WHERE menu_item_id IS NULL",
			affected: 1,
		},
		{
			name:       "nothing deleted",
			menuItemID: ptr.Ptr(int64(42)),
			query:      "DELETE FROM menu_item_booking_rules WHERE menu_item_id = $1",
			args:       []driver.Value{int64(42)},
			affected:   0,
			wantErr:    ErrRulesNotFound,
		},
		{
			name:       "exec error",
			menuItemID: ptr.Ptr(int64(42)),
			query:      "DELETE FROM menu_item_booking_rules WHERE menu_item_id = $1",
			args:       []driver.Value{int64(42)},
			execErr:    sql.ErrConnDone,
			wantErr:    ErrExecQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupMockRepository(t)

			exp := mock.ExpectExec(exactSQL(tt.query))
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := repo.DeleteByMenuItem(context.Background(), tt.menuItemID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
