package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transandino/internal/models"
	"transandino/internal/repositories/interfaces"
	"transandino/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type semitrailerRepository struct {
	collection *mongo.Collection
}

func NewSemitrailerRepository(db *mongo.Database) interfaces.SemitrailerRepository {
	return &semitrailerRepository{
		collection: db.Collection(utils.CollectionSemitrailers),
	}
}

func (r *semitrailerRepository) Create(ctx context.Context, semitrailer *models.Semitrailer) error {
	semitrailer.ID = primitive.NewObjectID()
	semitrailer.CreatedAt = time.Now()
	semitrailer.UpdatedAt = semitrailer.CreatedAt

	if _, err := r.collection.InsertOne(ctx, semitrailer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("semitrailer with plate %s: %w", semitrailer.Plate, interfaces.ErrDuplicate)
		}
		return fmt.Errorf("failed to create semitrailer: %w", err)
	}
	return nil
}

func (r *semitrailerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Semitrailer, error) {
	var semitrailer models.Semitrailer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&semitrailer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("semitrailer %s: %w", id.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get semitrailer: %w", err)
	}
	return &semitrailer, nil
}

func (r *semitrailerRepository) GetByPlate(ctx context.Context, plate string) (*models.Semitrailer, error) {
	var semitrailer models.Semitrailer
	err := r.collection.FindOne(ctx, bson.M{"plate": plate}).Decode(&semitrailer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("semitrailer plate %s: %w", plate, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get semitrailer by plate: %w", err)
	}
	return &semitrailer, nil
}

func (r *semitrailerRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update semitrailer: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("semitrailer %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	return nil
}

func (r *semitrailerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete semitrailer: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("semitrailer %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	return nil
}

func (r *semitrailerRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Semitrailer, int64, error) {
	filter := params.GetSearchFilter([]string{"plate", "type"})
	return r.find(ctx, filter, params)
}

func (r *semitrailerRepository) GetByStatus(ctx context.Context, status models.SemitrailerStatus, params *utils.PaginationParams) ([]*models.Semitrailer, int64, error) {
	return r.find(ctx, bson.M{"status": status}, params)
}

func (r *semitrailerRepository) SetAssignedVehicle(ctx context.Context, semitrailerID primitive.ObjectID, vehicleID *primitive.ObjectID) error {
	updates := bson.M{
		"assigned_vehicle_id": vehicleID,
		"updated_at":          time.Now(),
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": semitrailerID}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to set semitrailer vehicle: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("semitrailer %s: %w", semitrailerID.Hex(), interfaces.ErrNotFound)
	}
	return nil
}

func (r *semitrailerRepository) find(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Semitrailer, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count semitrailers: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list semitrailers: %w", err)
	}
	defer cursor.Close(ctx)

	var semitrailers []*models.Semitrailer
	if err := cursor.All(ctx, &semitrailers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode semitrailers: %w", err)
	}
	return semitrailers, total, nil
}
