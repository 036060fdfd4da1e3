package get_item_rules

import (
	"context"

	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules/models"
)

type RulesService interface {
	Get(ctx context.Context, menuItemID *int64) (*models.RulesResponse, error)
	GetEffective(ctx context.Context, menuItemID int64) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
