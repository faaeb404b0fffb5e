package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Client struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	RUT         string             `json:"rut" bson:"rut"`
	ContactName string             `json:"contact_name" bson:"contact_name"`
	Phone       string             `json:"phone" bson:"phone"`
	Email       string             `json:"email" bson:"email"`
	Address     string             `json:"address" bson:"address"`
	City        string             `json:"city" bson:"city"`
	Country     string             `json:"country" bson:"country"`
	Active      bool               `json:"active" bson:"active" default:"true"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
