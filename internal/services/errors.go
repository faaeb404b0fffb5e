package services

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Engine error taxonomy. Handlers map these to HTTP codes; none are retried
// inside the engine. ErrResourceConflict is the only one a caller should
// retry, after re-reading state.
var (
	ErrInvalidDirection  = errors.New("unrecognized trip direction")
	ErrDriverNotActive   = errors.New("driver is not active")
	ErrResourceConflict  = errors.New("resource changed concurrently")
	ErrInvalidTransition = errors.New("operation not allowed in current trip state")
	ErrTripTerminal      = errors.New("trip is in a terminal state")
)

// LocationResolutionError wraps a failure to resolve or create one of the
// locations a stage plan needs. No stages are committed when it is returned.
type LocationResolutionError struct {
	Name  string
	Cause error
}

func (e *LocationResolutionError) Error() string {
	return fmt.Sprintf("could not resolve location %q: %v", e.Name, e.Cause)
}

func (e *LocationResolutionError) Unwrap() error { return e.Cause }

// DriverAlreadyAssignedError reports which vehicle currently holds the
// driver, so the caller can present an actionable message.
type DriverAlreadyAssignedError struct {
	DriverID       primitive.ObjectID
	OtherVehicleID primitive.ObjectID
}

func (e *DriverAlreadyAssignedError) Error() string {
	return fmt.Sprintf("driver %s is already assigned to vehicle %s", e.DriverID.Hex(), e.OtherVehicleID.Hex())
}

type SemitrailerAlreadyAssignedError struct {
	SemitrailerID  primitive.ObjectID
	OtherVehicleID primitive.ObjectID
}

func (e *SemitrailerAlreadyAssignedError) Error() string {
	return fmt.Sprintf("semitrailer %s is already assigned to vehicle %s", e.SemitrailerID.Hex(), e.OtherVehicleID.Hex())
}

// ResourceBusyError reports that a driver or vehicle is held by another
// non-terminal trip.
type ResourceBusyError struct {
	Resource   string
	ResourceID primitive.ObjectID
	TripID     primitive.ObjectID
}

func (e *ResourceBusyError) Error() string {
	return fmt.Sprintf("%s %s is referenced by an active trip", e.Resource, e.ResourceID.Hex())
}

// ValidationError carries per-field messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
