package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripStatus string
type TripDirection string
type TripPriority string
type StageStatus string
type StageType string

const (
	TripStatusPlanificado TripStatus = "planificado"
	TripStatusEnRuta      TripStatus = "en_ruta"
	TripStatusIncidente   TripStatus = "incidente"
	TripStatusRealizado   TripStatus = "realizado"
	TripStatusCancelado   TripStatus = "cancelado"

	TripDirectionIda    TripDirection = "ida"
	TripDirectionVuelta TripDirection = "vuelta"

	TripPriorityBaja    TripPriority = "baja"
	TripPriorityMedia   TripPriority = "media"
	TripPriorityAlta    TripPriority = "alta"
	TripPriorityUrgente TripPriority = "urgente"

	StageStatusPendiente  StageStatus = "pendiente"
	StageStatusCompletada StageStatus = "completada"
	StageStatusCancelada  StageStatus = "cancelada"
)

// Stage types, shared between the ida and vuelta templates.
const (
	StageRetiroContenedor     StageType = "retiro_contenedor"
	StageCargaDeposito        StageType = "carga_deposito"
	StageAduanaSalida         StageType = "aduana_salida"
	StageAduanaEntrada        StageType = "aduana_entrada"
	StageEntregaCliente       StageType = "entrega_cliente"
	StageDevolucionContenedor StageType = "devolucion_contenedor"
	StageEntregaPuerto        StageType = "entrega_puerto"
)

// Stage is one checkpoint of a trip's plan. The set is generated once at
// trip creation and only ever transitioned afterwards.
type Stage struct {
	ID          primitive.ObjectID `json:"id" bson:"id"`
	Type        StageType          `json:"type" bson:"type"`
	Name        string             `json:"name" bson:"name"`
	Order       int                `json:"order" bson:"order"`
	Location    LocationRef        `json:"location" bson:"location"`
	Status      StageStatus        `json:"status" bson:"status"`
	CompletedAt *time.Time         `json:"completed_at" bson:"completed_at"`
}

// Trip is the central entity. Stages and incidents are embedded so that a
// stage or incident mutation and the derived status change commit as one
// document write.
type Trip struct {
	ID                 primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Folio              string              `json:"folio" bson:"folio"`
	Direction          TripDirection       `json:"direction" bson:"direction" validate:"required"`
	Status             TripStatus          `json:"status" bson:"status" default:"planificado"`
	Priority           TripPriority        `json:"priority" bson:"priority" default:"media"`
	Origin             LocationRef         `json:"origin" bson:"origin"`
	Destination        LocationRef         `json:"destination" bson:"destination"`
	ClientID           *primitive.ObjectID `json:"client_id" bson:"client_id"`
	DriverID           *primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	VehicleID          *primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id"`
	SemitrailerID      *primitive.ObjectID `json:"semitrailer_id" bson:"semitrailer_id"`
	ContainerNumber    string              `json:"container_number" bson:"container_number"`
	ScheduledDeparture time.Time           `json:"scheduled_departure" bson:"scheduled_departure"`
	ScheduledArrival   time.Time           `json:"scheduled_arrival" bson:"scheduled_arrival"`
	ActualDeparture    *time.Time          `json:"actual_departure" bson:"actual_departure"`
	ActualArrival      *time.Time          `json:"actual_arrival" bson:"actual_arrival"`
	Stages             []Stage             `json:"stages" bson:"stages"`
	Incidents          []Incident          `json:"incidents" bson:"incidents"`
	CancelReason       string              `json:"cancel_reason" bson:"cancel_reason"`
	Version            int64               `json:"version" bson:"version"`
	CreatedAt          time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" bson:"updated_at"`
}

// ActiveTripStatuses are the states in which a trip holds its resources busy.
var ActiveTripStatuses = []TripStatus{
	TripStatusPlanificado,
	TripStatusEnRuta,
	TripStatusIncidente,
}

func (s TripStatus) IsTerminal() bool {
	return s == TripStatusRealizado || s == TripStatusCancelado
}

func (t *Trip) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// AllStagesCompleted reports whether every stage of the plan is completada.
func (t *Trip) AllStagesCompleted() bool {
	if len(t.Stages) == 0 {
		return false
	}
	for _, s := range t.Stages {
		if s.Status != StageStatusCompletada {
			return false
		}
	}
	return true
}

// FirstStageCompleted reports whether the template's first stage is done.
func (t *Trip) FirstStageCompleted() bool {
	return len(t.Stages) > 0 && t.Stages[0].Status == StageStatusCompletada
}

// OpenIncidentCount counts incidents not yet resolved.
func (t *Trip) OpenIncidentCount() int {
	n := 0
	for _, in := range t.Incidents {
		if in.IsOpen() {
			n++
		}
	}
	return n
}

func (t *Trip) StageByID(id primitive.ObjectID) *Stage {
	for i := range t.Stages {
		if t.Stages[i].ID == id {
			return &t.Stages[i]
		}
	}
	return nil
}

func (t *Trip) IncidentByID(id primitive.ObjectID) *Incident {
	for i := range t.Incidents {
		if t.Incidents[i].ID == id {
			return &t.Incidents[i]
		}
	}
	return nil
}
