package handlers

import (
	"transandino/internal/services"
	"transandino/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService services.AuditService
}

func NewAuditHandler(auditService services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListAuditLogs returns the audit trail, optionally filtered by resource
// and resource_id query parameters.
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	resource := c.Query("resource")
	resourceID := c.Query("resource_id")

	entries, total, err := h.auditService.List(c.Request.Context(), resource, resourceID, params)
	if err != nil {
		respondServiceError(c, err, "audit log")
		return
	}

	utils.SuccessResponseWithMeta(c, "Audit logs retrieved successfully", entries, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
