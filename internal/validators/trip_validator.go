package validators

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Type    string `json:"type" validate:"required,oneof=puerto aduana cliente deposito"`
	Address string `json:"address" validate:"omitempty,max=255"`
	City    string `json:"city" validate:"required,max=100"`
	Country string `json:"country" validate:"required,max=100"`
}

type TripCreateRequest struct {
	Direction          string              `json:"direction" validate:"required,oneof=ida vuelta"`
	Priority           string              `json:"priority" validate:"omitempty,oneof=baja media alta urgente"`
	ClientID           *primitive.ObjectID `json:"client_id" validate:"omitempty,object_id"`
	ContainerNumber    string              `json:"container_number" validate:"omitempty,max=20"`
	Origin             LocationRequest     `json:"origin" validate:"required"`
	Destination        LocationRequest     `json:"destination" validate:"required"`
	ScheduledDeparture time.Time           `json:"scheduled_departure" validate:"required"`
	ScheduledArrival   time.Time           `json:"scheduled_arrival" validate:"required"`
}

type TripAssignDriverRequest struct {
	DriverID *primitive.ObjectID `json:"driver_id" validate:"omitempty,object_id"`
}

type StageUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=pendiente completada cancelada"`
}

type IncidentReportRequest struct {
	Description string `json:"description" validate:"required,min=3,max=2000"`
	PhotoRef    string `json:"photo_ref" validate:"omitempty,max=255"`
	ReportedBy  string `json:"reported_by" validate:"omitempty,max=120"`
}

type IncidentResolveRequest struct {
	ResolutionNotes string `json:"resolution_notes" validate:"omitempty,max=2000"`
}

type IncidentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=reportado en_atencion escalado"`
}

type TripCancelRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type TripOverrideRequest struct {
	Status string `json:"status" validate:"required,oneof=planificado en_ruta incidente realizado cancelado"`
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

func ValidateTripCreate(req *TripCreateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if isSameLocation(req.Origin, req.Destination) {
		errors = append(errors, ValidationError{
			Field:   "destination",
			Message: "Origin and destination must be different",
		})
	}

	if !req.ScheduledArrival.After(req.ScheduledDeparture) {
		errors = append(errors, ValidationError{
			Field:   "scheduled_arrival",
			Message: "Scheduled arrival must be after scheduled departure",
		})
	}

	return errors
}

// The location identity is its upsert key: name+city+country, compared
// case-insensitively.
func isSameLocation(a, b LocationRequest) bool {
	return strings.EqualFold(a.Name, b.Name) &&
		strings.EqualFold(a.City, b.City) &&
		strings.EqualFold(a.Country, b.Country)
}

func ValidateStageUpdate(req *StageUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateIncidentReport(req *IncidentReportRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateTripCancel(req *TripCancelRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateTripOverride(req *TripOverrideRequest) ValidationErrors {
	return ValidateStruct(req)
}
