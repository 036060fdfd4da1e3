package get_booking_window

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWindowService/internal/domain"
	"github.com/m04kA/SMC-BookingWindowService/internal/integrations/menuservice"
)

// RulesRepository интерфейс репозитория правил бронирования
type RulesRepository interface {
	// GetWithHierarchy получает правила позиции, а при их отсутствии - правила ресторана
	GetWithHierarchy(ctx context.Context, menuItemID int64) (*domain.ItemBookingRules, error)
}

// MenuServiceClient интерфейс клиента для MenuService
type MenuServiceClient interface {
	GetMenuItem(ctx context.Context, itemID int64) (*menuservice.MenuItem, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени в часовом поясе ресторана
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
