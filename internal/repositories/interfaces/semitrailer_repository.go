package interfaces

import (
	"context"

	"transandino/internal/models"
	"transandino/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SemitrailerRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, semitrailer *models.Semitrailer) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Semitrailer, error)
	GetByPlate(ctx context.Context, plate string) (*models.Semitrailer, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Search and filtering
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Semitrailer, int64, error)
	GetByStatus(ctx context.Context, status models.SemitrailerStatus, params *utils.PaginationParams) ([]*models.Semitrailer, int64, error)

	// Assignment back-reference. Only the assignment coordinator calls this.
	SetAssignedVehicle(ctx context.Context, semitrailerID primitive.ObjectID, vehicleID *primitive.ObjectID) error
}
