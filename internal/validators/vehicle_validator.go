package validators

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleCreateRequest struct {
	Plate                     string    `json:"plate" validate:"required,plate"`
	Make                      string    `json:"make" validate:"required,max=60"`
	Model                     string    `json:"model" validate:"required,max=60"`
	Year                      int       `json:"year" validate:"omitempty,min=1980,max=2100"`
	Status                    string    `json:"status" validate:"omitempty,oneof=activo inactivo mantenimiento en_reparacion dado_de_baja"`
	TechnicalInspectionExpiry time.Time `json:"technical_inspection_expiry" validate:"omitempty"`
	CirculationPermitExpiry   time.Time `json:"circulation_permit_expiry" validate:"omitempty"`
	InsuranceExpiry           time.Time `json:"insurance_expiry" validate:"omitempty"`
	Mileage                   int64     `json:"mileage" validate:"omitempty,min=0"`
	Notes                     string    `json:"notes" validate:"omitempty,max=1000"`
}

type VehicleUpdateRequest struct {
	Make                      *string    `json:"make" validate:"omitempty,max=60"`
	Model                     *string    `json:"model" validate:"omitempty,max=60"`
	Year                      *int       `json:"year" validate:"omitempty,min=1980,max=2100"`
	Status                    *string    `json:"status" validate:"omitempty,oneof=activo inactivo mantenimiento en_reparacion dado_de_baja"`
	TechnicalInspectionExpiry *time.Time `json:"technical_inspection_expiry" validate:"omitempty"`
	CirculationPermitExpiry   *time.Time `json:"circulation_permit_expiry" validate:"omitempty"`
	InsuranceExpiry           *time.Time `json:"insurance_expiry" validate:"omitempty"`
	Mileage                   *int64     `json:"mileage" validate:"omitempty,min=0"`
	Notes                     *string    `json:"notes" validate:"omitempty,max=1000"`
}

type VehicleAssignDriverRequest struct {
	DriverID *primitive.ObjectID `json:"driver_id" validate:"omitempty,object_id"`
}

type VehicleAssignSemitrailerRequest struct {
	SemitrailerID *primitive.ObjectID `json:"semitrailer_id" validate:"omitempty,object_id"`
}

func ValidateVehicleCreate(req *VehicleCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateVehicleUpdate(req *VehicleUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}
