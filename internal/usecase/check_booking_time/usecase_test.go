package check_booking_time

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWindowService/internal/bookingwindow"
	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	"github.com/m04kA/SMC-BookingWindowService/internal/usecase/get_booking_window"
	"github.com/m04kA/SMC-BookingWindowService/pkg/logger"
	"github.com/m04kA/SMC-BookingWindowService/pkg/types"
)

type MockWindowGetter struct {
	mock.Mock
}

func (m *MockWindowGetter) Execute(ctx context.Context, req *get_booking_window.Request) (*get_booking_window.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*get_booking_window.Response), args.Error(1)
}

var moscow = time.FixedZone("MSK", 3*60*60)

// windowFor считает окно так же, как get_booking_window
func windowFor(t *testing.T, rules *domain.ItemBookingRules, now time.Time) *get_booking_window.Response {
	t.Helper()
	w, err := bookingwindow.Compute(rules, now)
	require.NoError(t, err)
	return &get_booking_window.Response{
		ItemID:          1,
		RulesLevel:      rules.Level(),
		Furthest:        rules.Furthest,
		Closest:         rules.Closest,
		Now:             w.Now,
		Latest:          w.Latest,
		LatestDay:       w.LatestDay(),
		Earliest:        w.Earliest,
		EarliestRounded: w.EarliestRounded,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExecute_SameDayRules(t *testing.T) {
	// 10:07 + 60 минут = 11:07, округляется до 11:15
	now := time.Date(2024, 1, 15, 10, 7, 0, 0, moscow)
	rules := &domain.ItemBookingRules{
		ID:       1,
		Furthest: domain.RollingWindow{Number: 7, Unit: domain.UnitDays},
		Closest:  domain.SameDayNotice{TimeIncrement: 60},
	}

	tests := []struct {
		name      string
		date      time.Time
		startTime string
		wantErr   error
	}{
		{name: "exactly rounded earliest", date: day(2024, 1, 15), startTime: "11:15"},
		{name: "between raw and rounded earliest", date: day(2024, 1, 15), startTime: "11:10", wantErr: ErrTooEarly},
		{name: "in the past", date: day(2024, 1, 14), startTime: "20:00", wantErr: ErrTooEarly},
		{name: "late evening of last day", date: day(2024, 1, 22), startTime: "23:45"},
		{name: "day after last day", date: day(2024, 1, 23), startTime: "00:00", wantErr: ErrTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := new(MockWindowGetter)
			getter.On("Execute", mock.Anything, &get_booking_window.Request{ItemID: 1}).
				Return(windowFor(t, rules, now), nil)
			uc := NewUseCase(getter, logger.NewNop())

			resp, err := uc.Execute(context.Background(), &Request{
				ItemID:    1,
				Date:      tt.date,
				StartTime: types.TimeString(tt.startTime),
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, moscow, resp.RequestedAt.Location())
			assert.Equal(t, time.Date(2024, 1, 15, 11, 15, 0, 0, moscow), resp.EarliestAllowed)
			assert.Equal(t, domain.RulesLevelRestaurant, resp.RulesLevel)
		})
	}
}

func TestExecute_AdvanceRulesOpenWholeDay(t *testing.T) {
	now := time.Date(2024, 1, 15, 18, 40, 0, 0, time.UTC)
	rules := &domain.ItemBookingRules{
		Furthest: domain.MonthlyRelease{Number: 1},
		Closest:  domain.AdvanceNotice{Days: 2},
	}
	getter := new(MockWindowGetter)
	getter.On("Execute", mock.Anything, mock.Anything).Return(windowFor(t, rules, now), nil)
	uc := NewUseCase(getter, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{ItemID: 1, Date: day(2024, 1, 17), StartTime: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), resp.EarliestAllowed)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), resp.LatestDay)

	_, err = uc.Execute(context.Background(), &Request{ItemID: 1, Date: day(2024, 1, 16), StartTime: "23:45"})
	assert.ErrorIs(t, err, ErrTooEarly)

	_, err = uc.Execute(context.Background(), &Request{ItemID: 1, Date: day(2024, 2, 29), StartTime: "22:00"})
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{ItemID: 1, Date: day(2024, 3, 1), StartTime: "12:00"})
	assert.ErrorIs(t, err, ErrTooFarInFuture)
}

func TestExecute_AdvanceRulesNearMidnight(t *testing.T) {
	rules := &domain.ItemBookingRules{
		Furthest: domain.MonthlyRelease{Number: 1},
		Closest:  domain.AdvanceNotice{Days: 1},
	}

	for _, minute := range []int{40, 50, 59} {
		now := time.Date(2024, 6, 1, 23, minute, 0, 0, moscow)
		getter := new(MockWindowGetter)
		getter.On("Execute", mock.Anything, mock.Anything).Return(windowFor(t, rules, now), nil)
		uc := NewUseCase(getter, logger.NewNop())

		resp, err := uc.Execute(context.Background(), &Request{ItemID: 1, Date: day(2024, 6, 2), StartTime: "12:00"})
		require.NoError(t, err, "now=%s", now.Format(time.RFC3339))
		assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, moscow), resp.EarliestAllowed)

		_, err = uc.Execute(context.Background(), &Request{ItemID: 1, Date: day(2024, 6, 1), StartTime: "23:59"})
		assert.ErrorIs(t, err, ErrTooEarly)
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(new(MockWindowGetter), logger.NewNop())

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "no item", req: &Request{Date: day(2024, 1, 1), StartTime: "10:00"}},
		{name: "no date", req: &Request{ItemID: 1, StartTime: "10:00"}},
		{name: "no time", req: &Request{ItemID: 1, Date: day(2024, 1, 1)}},
		{name: "bad time", req: &Request{ItemID: 1, Date: day(2024, 1, 1), StartTime: "25:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_TranslatesWindowErrors(t *testing.T) {
	tests := []struct {
		windowErr error
		wantErr   error
	}{
		{windowErr: get_booking_window.ErrMenuItemNotFound, wantErr: ErrMenuItemNotFound},
		{windowErr: get_booking_window.ErrMenuItemNotBookable, wantErr: ErrMenuItemNotBookable},
		{windowErr: get_booking_window.ErrInternal, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.windowErr.Error(), func(t *testing.T) {
			getter := new(MockWindowGetter)
			getter.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.windowErr)
			uc := NewUseCase(getter, logger.NewNop())

			_, err := uc.Execute(context.Background(), &Request{ItemID: 1, Date: day(2024, 1, 1), StartTime: "10:00"})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
