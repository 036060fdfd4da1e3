package get_booking_window

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWindowService/internal/bookingwindow"
	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-BookingWindowService/internal/infra/storage/rules"
	menuClient "github.com/m04kA/SMC-BookingWindowService/internal/integrations/menuservice"
)

// UseCase use case для расчёта окна бронирования позиции меню
type UseCase struct {
	rulesRepo    RulesRepository
	menuClient   MenuServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rulesRepo RulesRepository,
	menuClient MenuServiceClient,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		rulesRepo:    rulesRepo,
		menuClient:   menuClient,
		timeProvider: &RealTimeProvider{Location: location},
		logger:       logger,
	}
}

// Execute выполняет use case получения окна бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ItemID <= 0 {
		return nil, fmt.Errorf("%w: itemID must be positive", ErrInvalidInput)
	}

	// 1. Проверяем позицию в каталоге меню
	item, err := uc.menuClient.GetMenuItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, menuClient.ErrMenuItemNotFound) {
			uc.logger.Warn("GetBookingWindow: menu item id=%d not found", req.ItemID)
			return nil, ErrMenuItemNotFound
		}
		uc.logger.Error("GetBookingWindow: failed to get menu item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get menu item: %v", ErrInternal, err)
	}
	if !item.IsActive || !item.IsBookable {
		uc.logger.Warn("GetBookingWindow: menu item id=%d is not bookable", req.ItemID)
		return nil, ErrMenuItemNotBookable
	}

	// 2. Правила с учётом иерархии
	rules, err := uc.rulesRepo.GetWithHierarchy(ctx, req.ItemID)
	if err != nil {
		if !errors.Is(err, rulesRepo.ErrRulesNotFound) {
			uc.logger.Error("GetBookingWindow: failed to get rules for item=%d: %v", req.ItemID, err)
			return nil, fmt.Errorf("%w: failed to get rules: %v", ErrInternal, err)
		}
		rules = domain.DefaultBookingRules()
	}

	// 3. Расчёт окна
	now := uc.timeProvider.Now()
	window, err := bookingwindow.Compute(rules, now)
	if err != nil {
		uc.logger.Error("GetBookingWindow: failed to compute window for item=%d (rules id=%d): %v",
			req.ItemID, rules.ID, err)
		return nil, fmt.Errorf("%w: failed to compute window: %v", ErrInternal, err)
	}

	uc.logger.Info("GetBookingWindow: item=%d, level=%s, earliest=%s, latest=%s",
		req.ItemID, rules.Level(), window.EarliestRounded.Format(time.RFC3339), window.Latest.Format(domain.DateFormat))

	return &Response{
		ItemID:          req.ItemID,
		RulesLevel:      rules.Level(),
		Furthest:        rules.Furthest,
		Closest:         rules.Closest,
		Now:             window.Now,
		Latest:          window.Latest,
		LatestDay:       window.LatestDay(),
		Earliest:        window.Earliest,
		EarliestRounded: window.EarliestRounded,
		FurthestPreview: window.FurthestPreview,
		ClosestPreview:  window.ClosestPreview,
	}, nil
}
