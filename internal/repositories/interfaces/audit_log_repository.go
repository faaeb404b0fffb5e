package interfaces

import (
	"context"

	"transandino/internal/models"
	"transandino/internal/utils"
)

type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, resource, resourceID string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
}
