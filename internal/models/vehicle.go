package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleStatus string
type DocumentAlertLevel string

const (
	VehicleStatusActivo        VehicleStatus = "activo"
	VehicleStatusInactivo      VehicleStatus = "inactivo"
	VehicleStatusMantenimiento VehicleStatus = "mantenimiento"
	VehicleStatusEnReparacion  VehicleStatus = "en_reparacion"
	VehicleStatusDadoDeBaja    VehicleStatus = "dado_de_baja"

	DocumentAlertOK       DocumentAlertLevel = "vigente"
	DocumentAlertExpiring DocumentAlertLevel = "por_vencer"
	DocumentAlertExpired  DocumentAlertLevel = "vencido"
)

// DocumentExpiryWarning is how close to expiry a vehicle document has to be
// before the directory screens flag it.
const DocumentExpiryWarning = 30 * 24 * time.Hour

// Vehicle is a tractor unit. DriverID and SemitrailerID are the assignment
// pointers the coordinator arbitrates; each holds at most one counterpart.
type Vehicle struct {
	ID                        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Plate                     string              `json:"plate" bson:"plate" validate:"required"`
	Make                      string              `json:"make" bson:"make" validate:"required"`
	Model                     string              `json:"model" bson:"model" validate:"required"`
	Year                      int                 `json:"year" bson:"year"`
	Status                    VehicleStatus       `json:"status" bson:"status" default:"activo"`
	DriverID                  *primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	SemitrailerID             *primitive.ObjectID `json:"semitrailer_id" bson:"semitrailer_id"`
	TechnicalInspectionExpiry time.Time           `json:"technical_inspection_expiry" bson:"technical_inspection_expiry"`
	CirculationPermitExpiry   time.Time           `json:"circulation_permit_expiry" bson:"circulation_permit_expiry"`
	InsuranceExpiry           time.Time           `json:"insurance_expiry" bson:"insurance_expiry"`
	Mileage                   int64               `json:"mileage" bson:"mileage"`
	Notes                     string              `json:"notes" bson:"notes"`
	CreatedAt                 time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt                 time.Time           `json:"updated_at" bson:"updated_at"`
}

// DocumentAlerts carries the derived expiry flags. Computed on read, never
// stored.
type DocumentAlerts struct {
	TechnicalInspection DocumentAlertLevel `json:"technical_inspection"`
	CirculationPermit   DocumentAlertLevel `json:"circulation_permit"`
	Insurance           DocumentAlertLevel `json:"insurance"`
}

func alertLevel(expiry time.Time, now time.Time) DocumentAlertLevel {
	switch {
	case !expiry.After(now):
		return DocumentAlertExpired
	case expiry.Before(now.Add(DocumentExpiryWarning)):
		return DocumentAlertExpiring
	default:
		return DocumentAlertOK
	}
}

// Alerts derives the document-expiry flags for this vehicle at the given
// instant.
func (v *Vehicle) Alerts(now time.Time) DocumentAlerts {
	return DocumentAlerts{
		TechnicalInspection: alertLevel(v.TechnicalInspectionExpiry, now),
		CirculationPermit:   alertLevel(v.CirculationPermitExpiry, now),
		Insurance:           alertLevel(v.InsuranceExpiry, now),
	}
}

func (v *Vehicle) IsActive() bool {
	return v.Status == VehicleStatusActivo
}
