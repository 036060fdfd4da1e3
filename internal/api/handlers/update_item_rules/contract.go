package update_item_rules

import (
	"context"

	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules/models"
)

type RulesService interface {
	Upsert(ctx context.Context, req *models.UpsertRulesRequest) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
