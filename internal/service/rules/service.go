package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	rulesRepo "github.com/m04kA/SMC-BookingWindowService/internal/infra/storage/rules"
	menuClient "github.com/m04kA/SMC-BookingWindowService/internal/integrations/menuservice"
	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules/models"
	"github.com/m04kA/SMC-BookingWindowService/pkg/txmanager"
)

// Service сервис для работы с правилами окна бронирования
type Service struct {
	rulesRepo  RulesRepository
	menuClient MenuServiceClient
	txManager  TxManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(
	rulesRepo RulesRepository,
	menuClient MenuServiceClient,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		rulesRepo:  rulesRepo,
		menuClient: menuClient,
		txManager:  txManager,
		logger:     logger,
	}
}

// Upsert создает или заменяет правила позиции меню (или правила ресторана, если MenuItemID = nil)
// Для позиции проверяет, что она существует в MenuService и доступна для бронирования
func (s *Service) Upsert(ctx context.Context, req *models.UpsertRulesRequest) (*models.RulesResponse, error) {
	s.logger.Info("Upsert: saving rules for item=%s by user=%d", itemLabel(req.MenuItemID), req.UserID)

	// 1. Валидируем входные данные
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	furthest, closest, err := s.buildRules(req.Rules)
	if err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем позицию меню
	if req.MenuItemID != nil {
		if err := s.checkMenuItem(ctx, *req.MenuItemID); err != nil {
			s.logger.Warn("Upsert: menu item=%d check failed: %v", *req.MenuItemID, err)
			return nil, err
		}
	}

	// 3. Сохраняем
	var saved *domain.ItemBookingRules
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		saved, err = s.save(ctx, req.MenuItemID, furthest, closest)
		return err
	})
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			s.logger.Warn("Upsert: concurrent update of rules for item=%s: %v", itemLabel(req.MenuItemID), err)
			return nil, ErrRulesConflict
		}
		s.logger.Error("Upsert: failed to save rules for item=%s: %v", itemLabel(req.MenuItemID), err)
		return nil, err
	}

	s.logger.Info("Upsert: successfully saved rules id=%d for item=%s", saved.ID, itemLabel(req.MenuItemID))
	return models.FromDomainRules(saved), nil
}

// Get получает правила ровно указанного уровня (позиция или ресторан по умолчанию)
func (s *Service) Get(ctx context.Context, menuItemID *int64) (*models.RulesResponse, error) {
	s.logger.Info("Get: fetching rules for item=%s", itemLabel(menuItemID))

	rules, err := s.rulesRepo.GetByMenuItem(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, rulesRepo.ErrRulesNotFound) {
			s.logger.Warn("Get: rules for item=%s not found", itemLabel(menuItemID))
			return nil, ErrRulesNotFound
		}
		s.logger.Error("Get: repository error for item=%s: %v", itemLabel(menuItemID), err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(rules), nil
}

// GetEffective получает действующие правила позиции с учетом иерархии
// Приоритет: позиция > ресторан по умолчанию > встроенные значения
func (s *Service) GetEffective(ctx context.Context, menuItemID int64) (*models.RulesResponse, error) {
	s.logger.Info("GetEffective: fetching rules for item=%d", menuItemID)

	rules, err := s.rulesRepo.GetWithHierarchy(ctx, menuItemID)
	if err != nil && !errors.Is(err, rulesRepo.ErrRulesNotFound) {
		s.logger.Error("GetEffective: repository error for item=%d: %v", menuItemID, err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}
	if rules == nil {
		rules = domain.DefaultBookingRules()
	}

	resp := models.FromDomainRules(rules)
	s.logger.Info("GetEffective: item=%d uses %s rules", menuItemID, resp.Level)
	return resp, nil
}

// List получает все сохранённые правила
func (s *Service) List(ctx context.Context) (*models.RulesListResponse, error) {
	s.logger.Info("List: fetching all rules")

	list, err := s.rulesRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d rules", len(list))
	return &models.RulesListResponse{Rules: models.FromDomainRulesList(list)}, nil
}

// Delete удаляет правила уровня (после этого действуют правила уровнем выше)
func (s *Service) Delete(ctx context.Context, req *models.DeleteRulesRequest) error {
	s.logger.Info("Delete: deleting rules for item=%s by user=%d", itemLabel(req.MenuItemID), req.UserID)

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if err := s.rulesRepo.DeleteByMenuItem(ctx, req.MenuItemID); err != nil {
		if errors.Is(err, rulesRepo.ErrRulesNotFound) {
			s.logger.Warn("Delete: rules for item=%s not found", itemLabel(req.MenuItemID))
			return ErrRulesNotFound
		}
		s.logger.Error("Delete: repository error for item=%s: %v", itemLabel(req.MenuItemID), err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted rules for item=%s", itemLabel(req.MenuItemID))
	return nil
}

// BulkUpdate применяет одни и те же правила к нескольким позициям меню
// Все позиции обновляются в одной транзакции: либо все, либо ни одной
func (s *Service) BulkUpdate(ctx context.Context, req *models.BulkUpdateRequest) (*models.BulkUpdateResponse, error) {
	s.logger.Info("BulkUpdate: saving rules for %d items by user=%d", len(req.MenuItemIDs), req.UserID)

	// 1. Валидируем входные данные
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	itemIDs, err := uniqueItemIDs(req.MenuItemIDs)
	if err != nil {
		s.logger.Warn("BulkUpdate: validation failed: %v", err)
		return nil, err
	}
	furthest, closest, err := s.buildRules(req.Rules)
	if err != nil {
		s.logger.Warn("BulkUpdate: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем все позиции до начала транзакции
	for _, itemID := range itemIDs {
		if err := s.checkMenuItem(ctx, itemID); err != nil {
			s.logger.Warn("BulkUpdate: menu item=%d check failed: %v", itemID, err)
			return nil, fmt.Errorf("item %d: %w", itemID, err)
		}
	}

	// 3. Сохраняем все правила в одной транзакции
	updated := make([]*domain.ItemBookingRules, 0, len(itemIDs))
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		updated = updated[:0]
		for _, itemID := range itemIDs {
			id := itemID
			saved, err := s.save(ctx, &id, furthest, closest)
			if err != nil {
				return fmt.Errorf("item %d: %w", itemID, err)
			}
			updated = append(updated, saved)
		}
		return nil
	})
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			s.logger.Warn("BulkUpdate: concurrent update of rules: %v", err)
			return nil, ErrRulesConflict
		}
		s.logger.Error("BulkUpdate: transaction failed: %v", err)
		return nil, err
	}

	s.logger.Info("BulkUpdate: successfully saved rules for %d items", len(updated))
	return &models.BulkUpdateResponse{Updated: models.FromDomainRulesList(updated)}, nil
}

// Вспомогательные методы

// save создает правила уровня или обновляет существующие
func (s *Service) save(
	ctx context.Context,
	menuItemID *int64,
	furthest domain.FurthestBookingRule,
	closest domain.ClosestBookingRule,
) (*domain.ItemBookingRules, error) {
	rules := &domain.ItemBookingRules{
		MenuItemID: menuItemID,
		Furthest:   furthest,
		Closest:    closest,
	}

	existing, err := s.rulesRepo.GetByMenuItem(ctx, menuItemID)
	if err != nil && !errors.Is(err, rulesRepo.ErrRulesNotFound) {
		return nil, fmt.Errorf("%w: failed to check existing rules: %v", ErrInternal, err)
	}

	if existing == nil {
		created, err := s.rulesRepo.Create(ctx, rules)
		if err != nil {
			if errors.Is(err, rulesRepo.ErrDuplicateRules) {
				return nil, ErrRulesConflict
			}
			return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		return created, nil
	}

	updated, err := s.rulesRepo.Update(ctx, existing.ID, rules)
	if err != nil {
		if errors.Is(err, rulesRepo.ErrRulesNotFound) {
			return nil, ErrRulesConflict
		}
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	return updated, nil
}

// buildRules собирает правила и проверяет бизнес-ограничения
func (s *Service) buildRules(in models.RulesInput) (domain.FurthestBookingRule, domain.ClosestBookingRule, error) {
	furthest, closest, err := in.ToDomainRules()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := validateLimits(furthest, closest); err != nil {
		return nil, nil, err
	}

	return furthest, closest, nil
}

// checkMenuItem проверяет, что позиция существует, активна и доступна для бронирования
func (s *Service) checkMenuItem(ctx context.Context, itemID int64) error {
	if itemID <= 0 {
		return fmt.Errorf("%w: menuItemID must be positive", ErrInvalidInput)
	}

	item, err := s.menuClient.GetMenuItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, menuClient.ErrMenuItemNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("%w: failed to get menu item: %v", ErrInternal, err)
	}

	if !item.IsActive || !item.IsBookable {
		return ErrMenuItemNotBookable
	}

	return nil
}

// validateLimits проверяет верхние границы правил
func validateLimits(furthest domain.FurthestBookingRule, closest domain.ClosestBookingRule) error {
	switch r := furthest.(type) {
	case domain.RollingWindow:
		if r.Unit == domain.UnitDays && r.Number > domain.MaxFurthestDays {
			return fmt.Errorf("%w: furthestNumber must be between 1 and %d days", ErrInvalidInput, domain.MaxFurthestDays)
		}
		if r.Unit == domain.UnitMonths && r.Number > domain.MaxFurthestMonths {
			return fmt.Errorf("%w: furthestNumber must be between 1 and %d months", ErrInvalidInput, domain.MaxFurthestMonths)
		}
	case domain.MonthlyRelease:
		if r.Number > domain.MaxFurthestMonths {
			return fmt.Errorf("%w: furthestNumber must be between 1 and %d months", ErrInvalidInput, domain.MaxFurthestMonths)
		}
	}

	switch r := closest.(type) {
	case domain.SameDayNotice:
		if r.TimeIncrement > domain.MaxTimeIncrementMinutes {
			return fmt.Errorf("%w: closestTimeIncrement must be between 1 and %d minutes",
				ErrInvalidInput, domain.MaxTimeIncrementMinutes)
		}
	case domain.AdvanceNotice:
		if r.Days > domain.MaxAdvanceDays {
			return fmt.Errorf("%w: closestDays must be between 1 and %d", ErrInvalidInput, domain.MaxAdvanceDays)
		}
	}

	return nil
}

// uniqueItemIDs убирает дубликаты, сохраняя порядок
func uniqueItemIDs(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: menuItemIds must not be empty", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	if len(result) > domain.MaxBulkUpdateItems {
		return nil, fmt.Errorf("%w: at most %d items can be updated at once", ErrInvalidInput, domain.MaxBulkUpdateItems)
	}

	return result, nil
}

// itemLabel строковое представление позиции для логов
func itemLabel(menuItemID *int64) string {
	if menuItemID == nil {
		return "default"
	}
	return fmt.Sprintf("%d", *menuItemID)
}
