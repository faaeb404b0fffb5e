package interfaces

import (
	"context"

	"transandino/internal/models"
	"transandino/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LocationRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Location, int64, error)

	// Upsert finds or creates the location keyed by name+city+country.
	// Idempotent: repeated calls with the same key return the same record.
	Upsert(ctx context.Context, location *models.Location) (*models.Location, error)
}
