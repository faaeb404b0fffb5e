package interfaces

import (
	"context"
	"time"

	"transandino/internal/models"
	"transandino/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripFilter composes the list-screen predicates. Nil/empty fields are
// ignored.
type TripFilter struct {
	Statuses   []models.TripStatus
	Direction  *models.TripDirection
	Priority   *models.TripPriority
	ClientID   *primitive.ObjectID
	DriverID   *primitive.ObjectID
	VehicleID  *primitive.ObjectID
	LocationID *primitive.ObjectID
	From       *time.Time
	To         *time.Time
}

type TripRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, trip *models.Trip) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error)
	GetByFolio(ctx context.Context, folio string) (*models.Trip, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Replace commits the whole trip document conditionally on the version
	// the caller read. ErrConflict means another writer committed first; the
	// caller re-reads and re-derives. Bumps Version and UpdatedAt on success.
	Replace(ctx context.Context, trip *models.Trip) error

	// Search and filtering
	List(ctx context.Context, filter *TripFilter, params *utils.PaginationParams) ([]*models.Trip, int64, error)

	// Busy checks. A resource is busy while any non-terminal trip other than
	// exclude references it.
	CountActiveByDriver(ctx context.Context, driverID primitive.ObjectID, exclude *primitive.ObjectID) (int64, error)
	CountActiveByVehicle(ctx context.Context, vehicleID primitive.ObjectID, exclude *primitive.ObjectID) (int64, error)
}
