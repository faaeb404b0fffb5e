package interfaces

import (
	"context"

	"transandino/internal/models"
	"transandino/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Search and filtering
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)
	GetByStatus(ctx context.Context, status models.VehicleStatus, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)

	// Directory lookups. At most one vehicle holds a given driver or
	// semitrailer at any instant; these return ErrNotFound when none does.
	GetByDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Vehicle, error)
	GetBySemitrailer(ctx context.Context, semitrailerID primitive.ObjectID) (*models.Vehicle, error)

	// Assignment writes. Conditional on the current holder: the write applies
	// only if the vehicle's pointer still equals expected, otherwise
	// ErrConflict. A unique partial index backs the exclusivity, so a racing
	// writer that slips past the check surfaces as ErrDuplicate.
	SetDriver(ctx context.Context, vehicleID primitive.ObjectID, driverID, expected *primitive.ObjectID) error
	SetSemitrailer(ctx context.Context, vehicleID primitive.ObjectID, semitrailerID, expected *primitive.ObjectID) error
}
