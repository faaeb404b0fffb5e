package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"transandino/internal/models"
	"transandino/internal/repositories/interfaces"
	"transandino/internal/utils"
	"transandino/pkg/cache"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type tripRepository struct {
	collection *mongo.Collection
	cache      *cache.RedisCache
}

// NewTripRepository returns the Mongo-backed trip store. cache may be nil;
// caching is an optimization for the list/detail screens, never a source of
// truth for the engine.
func NewTripRepository(db *mongo.Database, cache *cache.RedisCache) interfaces.TripRepository {
	return &tripRepository{
		collection: db.Collection(utils.CollectionTrips),
		cache:      cache,
	}
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	trip.ID = primitive.NewObjectID()
	trip.Version = 1
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = trip.CreatedAt

	if _, err := r.collection.InsertOne(ctx, trip); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("trip folio %s: %w", trip.Folio, interfaces.ErrDuplicate)
		}
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	if trip := r.fromCache(ctx, id); trip != nil {
		return trip, nil
	}

	var trip models.Trip
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("trip %s: %w", id.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	if !trip.IsTerminal() {
		r.toCache(ctx, &trip)
	}
	return &trip, nil
}

func (r *tripRepository) GetByFolio(ctx context.Context, folio string) (*models.Trip, error) {
	var trip models.Trip
	err := r.collection.FindOne(ctx, bson.M{"folio": folio}).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("trip folio %s: %w", folio, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get trip by folio: %w", err)
	}
	return &trip, nil
}

func (r *tripRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("trip %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	r.invalidate(ctx, id)
	return nil
}

// Replace is the engine's single write path for trip mutations. The version
// filter makes the read-derive-write cycle a compare-and-swap: stages,
// incidents and derived status all land in the one document write, or none
// of them do.
func (r *tripRepository) Replace(ctx context.Context, trip *models.Trip) error {
	filter := bson.M{"_id": trip.ID, "version": trip.Version}

	trip.Version++
	trip.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, filter, trip)
	if err != nil {
		trip.Version--
		return fmt.Errorf("failed to replace trip: %w", err)
	}
	if result.MatchedCount == 0 {
		trip.Version--
		// Distinguish a stale version from a deleted trip.
		if count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": trip.ID}); countErr == nil && count == 0 {
			return fmt.Errorf("trip %s: %w", trip.ID.Hex(), interfaces.ErrNotFound)
		}
		return fmt.Errorf("trip %s version %d superseded: %w", trip.ID.Hex(), trip.Version, interfaces.ErrConflict)
	}

	r.invalidate(ctx, trip.ID)
	return nil
}

func (r *tripRepository) List(ctx context.Context, filter *interfaces.TripFilter, params *utils.PaginationParams) ([]*models.Trip, int64, error) {
	query := buildTripFilter(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	defer cursor.Close(ctx)

	var trips []*models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, 0, fmt.Errorf("failed to decode trips: %w", err)
	}
	return trips, total, nil
}

func (r *tripRepository) CountActiveByDriver(ctx context.Context, driverID primitive.ObjectID, exclude *primitive.ObjectID) (int64, error) {
	return r.countActive(ctx, "driver_id", driverID, exclude)
}

func (r *tripRepository) CountActiveByVehicle(ctx context.Context, vehicleID primitive.ObjectID, exclude *primitive.ObjectID) (int64, error) {
	return r.countActive(ctx, "vehicle_id", vehicleID, exclude)
}

func (r *tripRepository) countActive(ctx context.Context, field string, id primitive.ObjectID, exclude *primitive.ObjectID) (int64, error) {
	query := bson.M{
		field:    id,
		"status": bson.M{"$in": models.ActiveTripStatuses},
	}
	if exclude != nil {
		query["_id"] = bson.M{"$ne": *exclude}
	}

	count, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count active trips by %s: %w", field, err)
	}
	return count, nil
}

func buildTripFilter(filter *interfaces.TripFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}

	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	if filter.Direction != nil {
		query["direction"] = *filter.Direction
	}
	if filter.Priority != nil {
		query["priority"] = *filter.Priority
	}
	if filter.ClientID != nil {
		query["client_id"] = *filter.ClientID
	}
	if filter.DriverID != nil {
		query["driver_id"] = *filter.DriverID
	}
	if filter.VehicleID != nil {
		query["vehicle_id"] = *filter.VehicleID
	}
	if filter.LocationID != nil {
		query["$or"] = []bson.M{
			{"origin.id": *filter.LocationID},
			{"destination.id": *filter.LocationID},
		}
	}
	if filter.From != nil || filter.To != nil {
		dateRange := bson.M{}
		if filter.From != nil {
			dateRange["$gte"] = *filter.From
		}
		if filter.To != nil {
			dateRange["$lte"] = *filter.To
		}
		query["scheduled_departure"] = dateRange
	}
	return query
}

func (r *tripRepository) fromCache(ctx context.Context, id primitive.ObjectID) *models.Trip {
	if r.cache == nil {
		return nil
	}
	var trip models.Trip
	if err := r.cache.Get(ctx, utils.CacheKeyTrip+id.Hex(), &trip); err != nil {
		return nil
	}
	return &trip
}

func (r *tripRepository) toCache(ctx context.Context, trip *models.Trip) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Set(ctx, utils.CacheKeyTrip+trip.ID.Hex(), trip, utils.CacheTTLTrip)
}

func (r *tripRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, utils.CacheKeyTrip+id.Hex())
}
