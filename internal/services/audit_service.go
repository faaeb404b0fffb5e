package services

import (
	"context"
	"time"

	"transandino/internal/models"
	"transandino/internal/repositories/interfaces"
	"transandino/internal/utils"
	"transandino/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditService interface {
	// Record persists one audit entry. Failures are logged and swallowed;
	// audit must never fail the operation it describes.
	Record(ctx context.Context, entry *models.AuditLog)
	List(ctx context.Context, resource, resourceID string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error)
}

type auditService struct {
	auditRepo interfaces.AuditLogRepository
	logger    *logger.Logger
}

func NewAuditService(auditRepo interfaces.AuditLogRepository, logger *logger.Logger) AuditService {
	return &auditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (s *auditService) Record(ctx context.Context, entry *models.AuditLog) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.RequestID == "" {
		if rid, ok := ctx.Value("request_id").(string); ok {
			entry.RequestID = rid
		}
	}
	if entry.UserID == nil {
		if uid, ok := ctx.Value("user_id").(primitive.ObjectID); ok {
			entry.UserID = &uid
		}
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]interface{}{
			"action":      entry.Action,
			"resource":    entry.Resource,
			"resource_id": entry.ResourceID,
		}).Error("failed to write audit entry")
	}
}

func (s *auditService) List(ctx context.Context, resource, resourceID string, params *utils.PaginationParams) ([]*models.AuditLog, int64, error) {
	return s.auditRepo.List(ctx, resource, resourceID, params)
}
