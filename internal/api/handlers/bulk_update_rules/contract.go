package bulk_update_rules

import (
	"context"

	"github.com/m04kA/SMC-BookingWindowService/internal/service/rules/models"
)

type RulesService interface {
	BulkUpdate(ctx context.Context, req *models.BulkUpdateRequest) (*models.BulkUpdateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
