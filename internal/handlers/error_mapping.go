package handlers

import (
	"errors"
	"net/http"

	"transandino/internal/repositories/interfaces"
	"transandino/internal/services"
	"transandino/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondServiceError maps the engine error taxonomy onto HTTP. Anything not
// in the taxonomy is a 500; the handlers never leak raw storage errors.
func respondServiceError(c *gin.Context, err error, resource string) {
	var validationErr *services.ValidationError
	var locationErr *services.LocationResolutionError
	var driverAssigned *services.DriverAlreadyAssignedError
	var semitrailerAssigned *services.SemitrailerAlreadyAssignedError
	var busyErr *services.ResourceBusyError

	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		utils.NotFoundResponse(c, resource)

	case errors.As(err, &validationErr):
		details := make(map[string]string, len(validationErr.Fields))
		for field, message := range validationErr.Fields {
			details[field] = message
		}
		utils.ValidationErrorResponse(c, details)

	case errors.Is(err, services.ErrInvalidDirection):
		utils.BadRequestResponse(c, "Unrecognized trip direction")

	case errors.As(err, &locationErr):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "LOCATION_RESOLUTION_FAILED", locationErr.Error())

	case errors.Is(err, services.ErrDriverNotActive):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "DRIVER_NOT_ACTIVE", "Driver is not active")

	case errors.As(err, &driverAssigned):
		utils.ConflictResponse(c, driverAssigned.Error())

	case errors.As(err, &semitrailerAssigned):
		utils.ConflictResponse(c, semitrailerAssigned.Error())

	case errors.As(err, &busyErr):
		utils.ConflictResponse(c, busyErr.Error())

	case errors.Is(err, services.ErrResourceConflict):
		utils.ConflictResponse(c, "Resource changed concurrently, retry the operation")

	case errors.Is(err, services.ErrInvalidTransition):
		utils.ConflictResponse(c, "Operation not allowed in current trip state")

	case errors.Is(err, services.ErrTripTerminal):
		utils.ConflictResponse(c, "Trip is in a terminal state")

	case errors.Is(err, interfaces.ErrDuplicate):
		utils.ConflictResponse(c, "A record with the same unique value already exists")

	default:
		utils.InternalServerErrorResponse(c)
	}
}

// parseIDParam reads a path parameter as an ObjectID, responding 400 itself
// when the value is malformed.
func parseIDParam(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+param)
		return primitive.NilObjectID, false
	}
	return id, true
}
