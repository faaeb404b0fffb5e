package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IncidentStatus string

const (
	IncidentStatusReportado  IncidentStatus = "reportado"
	IncidentStatusEnAtencion IncidentStatus = "en_atencion"
	IncidentStatusResuelto   IncidentStatus = "resuelto"
	IncidentStatusEscalado   IncidentStatus = "escalado"
)

// Incident is a fault reported while a trip is active. Embedded in the trip
// document; PhotoRef is an opaque reference into whatever the documents
// service stores.
type Incident struct {
	ID              primitive.ObjectID `json:"id" bson:"id"`
	Status          IncidentStatus     `json:"status" bson:"status"`
	Description     string             `json:"description" bson:"description"`
	PhotoRef        string             `json:"photo_ref" bson:"photo_ref"`
	ReportedBy      string             `json:"reported_by" bson:"reported_by"`
	ReportedAt      time.Time          `json:"reported_at" bson:"reported_at"`
	ResolutionNotes string             `json:"resolution_notes" bson:"resolution_notes"`
	ResolvedAt      *time.Time         `json:"resolved_at" bson:"resolved_at"`
}

// IsOpen reports whether the incident still suspends trip progression.
// Escalated incidents remain open until someone resolves them.
func (i *Incident) IsOpen() bool {
	return i.Status != IncidentStatusResuelto
}
