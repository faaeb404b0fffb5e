package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationType string

const (
	LocationTypePuerto   LocationType = "puerto"
	LocationTypeAduana   LocationType = "aduana"
	LocationTypeCliente  LocationType = "cliente"
	LocationTypeDeposito LocationType = "deposito"
)

// Location is a named operational point (port, customs post, client site or
// container depot). Uniqueness is by name+city+country so trip creation can
// upsert idempotently.
type Location struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Type      LocationType       `json:"type" bson:"type" validate:"required"`
	Address   string             `json:"address" bson:"address"`
	City      string             `json:"city" bson:"city" validate:"required"`
	Country   string             `json:"country" bson:"country" validate:"required"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// LocationRef is the denormalized location snapshot embedded in trips and
// stages so list screens render without extra lookups.
type LocationRef struct {
	ID      primitive.ObjectID `json:"id" bson:"id"`
	Name    string             `json:"name" bson:"name"`
	City    string             `json:"city" bson:"city"`
	Country string             `json:"country" bson:"country"`
}

func (l *Location) Ref() LocationRef {
	return LocationRef{ID: l.ID, Name: l.Name, City: l.City, Country: l.Country}
}
