package interfaces

import (
	"context"

	"transandino/internal/models"
	"transandino/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DriverRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	GetByRUT(ctx context.Context, rut string) (*models.Driver, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Search and filtering
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Driver, int64, error)
	GetByStatus(ctx context.Context, status models.DriverStatus, params *utils.PaginationParams) ([]*models.Driver, int64, error)

	// Assignment back-reference. Only the assignment coordinator calls this.
	SetCurrentVehicle(ctx context.Context, driverID primitive.ObjectID, vehicleID *primitive.ObjectID) error
}
