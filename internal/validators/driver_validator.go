package validators

import (
	"time"
)

type DriverCreateRequest struct {
	FirstName     string    `json:"first_name" validate:"required,min=2,max=100"`
	LastName      string    `json:"last_name" validate:"required,min=2,max=100"`
	RUT           string    `json:"rut" validate:"required,rut"`
	Phone         string    `json:"phone" validate:"omitempty,max=20"`
	Email         string    `json:"email" validate:"omitempty,email"`
	LicenseNumber string    `json:"license_number" validate:"required,max=30"`
	LicenseClass  string    `json:"license_class" validate:"omitempty,max=10"`
	LicenseExpiry time.Time `json:"license_expiry" validate:"omitempty"`
	Status        string    `json:"status" validate:"omitempty,oneof=activo inactivo suspendido"`
	Notes         string    `json:"notes" validate:"omitempty,max=1000"`
}

type DriverUpdateRequest struct {
	FirstName     *string    `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName      *string    `json:"last_name" validate:"omitempty,min=2,max=100"`
	Phone         *string    `json:"phone" validate:"omitempty,max=20"`
	Email         *string    `json:"email" validate:"omitempty,email"`
	LicenseNumber *string    `json:"license_number" validate:"omitempty,max=30"`
	LicenseClass  *string    `json:"license_class" validate:"omitempty,max=10"`
	LicenseExpiry *time.Time `json:"license_expiry" validate:"omitempty"`
	Status        *string    `json:"status" validate:"omitempty,oneof=activo inactivo suspendido"`
	Notes         *string    `json:"notes" validate:"omitempty,max=1000"`
}

func ValidateDriverCreate(req *DriverCreateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if !req.LicenseExpiry.IsZero() && req.LicenseExpiry.Before(time.Now()) {
		errors = append(errors, ValidationError{
			Field:   "license_expiry",
			Message: "License is already expired",
		})
	}

	return errors
}

func ValidateDriverUpdate(req *DriverUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}
