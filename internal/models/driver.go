package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverStatus string

const (
	DriverStatusActivo     DriverStatus = "activo"
	DriverStatusInactivo   DriverStatus = "inactivo"
	DriverStatusSuspendido DriverStatus = "suspendido"
)

// Driver is a fleet directory record. CurrentVehicleID is a back-reference
// kept in sync by the assignment coordinator; no other component writes it.
type Driver struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	FirstName        string              `json:"first_name" bson:"first_name" validate:"required"`
	LastName         string              `json:"last_name" bson:"last_name" validate:"required"`
	RUT              string              `json:"rut" bson:"rut" validate:"required"`
	Phone            string              `json:"phone" bson:"phone"`
	Email            string              `json:"email" bson:"email"`
	LicenseNumber    string              `json:"license_number" bson:"license_number" validate:"required"`
	LicenseClass     string              `json:"license_class" bson:"license_class"`
	LicenseExpiry    time.Time           `json:"license_expiry" bson:"license_expiry"`
	Status           DriverStatus        `json:"status" bson:"status" default:"activo"`
	CurrentVehicleID *primitive.ObjectID `json:"current_vehicle_id" bson:"current_vehicle_id"`
	Notes            string              `json:"notes" bson:"notes"`
	CreatedAt        time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" bson:"updated_at"`
}

func (d *Driver) IsActive() bool {
	return d.Status == DriverStatusActivo
}

func (d *Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}
