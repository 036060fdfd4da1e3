package rules

import (
	"context"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	"github.com/m04kA/SMC-BookingWindowService/internal/integrations/menuservice"
)

// RulesRepository интерфейс репозитория правил окна бронирования
type RulesRepository interface {
	Create(ctx context.Context, rules *domain.ItemBookingRules) (*domain.ItemBookingRules, error)
	GetByMenuItem(ctx context.Context, menuItemID *int64) (*domain.ItemBookingRules, error)
	GetWithHierarchy(ctx context.Context, menuItemID int64) (*domain.ItemBookingRules, error)
	List(ctx context.Context) ([]*domain.ItemBookingRules, error)
	Update(ctx context.Context, id int64, rules *domain.ItemBookingRules) (*domain.ItemBookingRules, error)
	DeleteByMenuItem(ctx context.Context, menuItemID *int64) error
}

// MenuServiceClient интерфейс клиента для MenuService
type MenuServiceClient interface {
	GetMenuItem(ctx context.Context, itemID int64) (*menuservice.MenuItem, error)
}

// TxManager выполняет функцию в транзакции
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
