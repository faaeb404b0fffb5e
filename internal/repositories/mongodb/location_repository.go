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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type locationRepository struct {
	collection *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) interfaces.LocationRepository {
	return &locationRepository{
		collection: db.Collection(utils.CollectionLocations),
	}
}

func (r *locationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Location, error) {
	var location models.Location
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&location)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("location %s: %w", id.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return &location, nil
}

func (r *locationRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Location, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "city", "country"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count locations: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list locations: %w", err)
	}
	defer cursor.Close(ctx)

	var locations []*models.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, 0, fmt.Errorf("failed to decode locations: %w", err)
	}
	return locations, total, nil
}

// Upsert finds or creates a location by its name+city+country key in a single
// round trip. The unique index on the key makes concurrent upserts for the
// same place converge on one document.
func (r *locationRepository) Upsert(ctx context.Context, location *models.Location) (*models.Location, error) {
	now := time.Now()
	filter := bson.M{
		"name":    location.Name,
		"city":    location.City,
		"country": location.Country,
	}
	update := bson.M{
		"$set": bson.M{
			"type":       location.Type,
			"address":    location.Address,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"name":       location.Name,
			"city":       location.City,
			"country":    location.Country,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result models.Location
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to upsert location %s: %w", location.Name, err)
	}
	return &result, nil
}
