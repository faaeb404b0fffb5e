package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditAction string

const (
	AuditActionAssignDriver      AuditAction = "assign_driver"
	AuditActionAssignSemitrailer AuditAction = "assign_semitrailer"
	AuditActionTripTransition    AuditAction = "trip_transition"
	AuditActionStatusOverride    AuditAction = "status_override"
	AuditActionTripCancel        AuditAction = "trip_cancel"
	AuditActionTripDelete        AuditAction = "trip_delete"
)

// AuditLog records who changed what on the fleet. Written fire-and-forget;
// the engine never depends on it for correctness.
type AuditLog struct {
	ID         primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	UserID     *primitive.ObjectID    `json:"user_id" bson:"user_id"`
	Action     AuditAction            `json:"action" bson:"action" validate:"required"`
	Resource   string                 `json:"resource" bson:"resource" validate:"required"`
	ResourceID string                 `json:"resource_id" bson:"resource_id"`
	OldValues  map[string]interface{} `json:"old_values" bson:"old_values"`
	NewValues  map[string]interface{} `json:"new_values" bson:"new_values"`
	RequestID  string                 `json:"request_id" bson:"request_id"`
	CreatedAt  time.Time              `json:"created_at" bson:"created_at"`
}
