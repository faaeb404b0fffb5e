package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SemitrailerStatus string

const (
	SemitrailerStatusActivo        SemitrailerStatus = "activo"
	SemitrailerStatusInactivo      SemitrailerStatus = "inactivo"
	SemitrailerStatusMantenimiento SemitrailerStatus = "mantenimiento"
)

// Semitrailer is towed equipment. AssignedVehicleID is the back-reference to
// the tractor currently pulling it, at most one at a time.
type Semitrailer struct {
	ID                primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Plate             string              `json:"plate" bson:"plate" validate:"required"`
	Type              string              `json:"type" bson:"type"`
	Capacity          float64             `json:"capacity" bson:"capacity"`
	Status            SemitrailerStatus   `json:"status" bson:"status" default:"activo"`
	AssignedVehicleID *primitive.ObjectID `json:"assigned_vehicle_id" bson:"assigned_vehicle_id"`
	Notes             string              `json:"notes" bson:"notes"`
	CreatedAt         time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at" bson:"updated_at"`
}

func (s *Semitrailer) IsActive() bool {
	return s.Status == SemitrailerStatusActivo
}
