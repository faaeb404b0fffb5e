package interfaces

import (
	"context"

	"transandino/internal/models"
	"transandino/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Client, int64, error)
}
