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

type vehicleRepository struct {
	collection *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection(utils.CollectionVehicles),
	}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.ID = primitive.NewObjectID()
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = vehicle.CreatedAt

	if _, err := r.collection.InsertOne(ctx, vehicle); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("vehicle with plate %s: %w", vehicle.Plate, interfaces.ErrDuplicate)
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("vehicle %s: %w", id.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &vehicle, nil
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"plate": plate}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("vehicle plate %s: %w", plate, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle by plate: %w", err)
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("vehicle %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	filter := params.GetSearchFilter([]string{"plate", "make", "model"})
	return r.find(ctx, filter, params)
}

func (r *vehicleRepository) GetByStatus(ctx context.Context, status models.VehicleStatus, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	return r.find(ctx, bson.M{"status": status}, params)
}

func (r *vehicleRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"driver_id": driverID}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("no vehicle holds driver %s: %w", driverID.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle by driver: %w", err)
	}
	return &vehicle, nil
}

func (r *vehicleRepository) GetBySemitrailer(ctx context.Context, semitrailerID primitive.ObjectID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"semitrailer_id": semitrailerID}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("no vehicle holds semitrailer %s: %w", semitrailerID.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle by semitrailer: %w", err)
	}
	return &vehicle, nil
}

// SetDriver is the critical-section write for driver assignment. The filter
// pins the currently stored pointer, so of two racing writers only the first
// matches; the partial unique index on driver_id catches a first-insert race
// across two different vehicles.
func (r *vehicleRepository) SetDriver(ctx context.Context, vehicleID primitive.ObjectID, driverID, expected *primitive.ObjectID) error {
	return r.setPointer(ctx, vehicleID, "driver_id", driverID, expected)
}

func (r *vehicleRepository) SetSemitrailer(ctx context.Context, vehicleID primitive.ObjectID, semitrailerID, expected *primitive.ObjectID) error {
	return r.setPointer(ctx, vehicleID, "semitrailer_id", semitrailerID, expected)
}

func (r *vehicleRepository) setPointer(ctx context.Context, vehicleID primitive.ObjectID, field string, value, expected *primitive.ObjectID) error {
	filter := bson.M{"_id": vehicleID, field: expected}
	updates := bson.M{"$set": bson.M{field: value, "updated_at": time.Now()}}

	result, err := r.collection.UpdateOne(ctx, filter, updates)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s already held: %w", field, interfaces.ErrDuplicate)
		}
		return fmt.Errorf("failed to set vehicle %s: %w", field, err)
	}
	if result.MatchedCount == 0 {
		// Either the vehicle is gone or the pointer moved under us.
		if _, getErr := r.GetByID(ctx, vehicleID); getErr != nil {
			return getErr
		}
		return fmt.Errorf("vehicle %s %s changed concurrently: %w", vehicleID.Hex(), field, interfaces.ErrConflict)
	}
	return nil
}

func (r *vehicleRepository) find(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []*models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, 0, fmt.Errorf("failed to decode vehicles: %w", err)
	}
	return vehicles, total, nil
}
