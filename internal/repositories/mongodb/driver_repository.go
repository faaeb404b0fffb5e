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

type driverRepository struct {
	collection *mongo.Collection
}

func NewDriverRepository(db *mongo.Database) interfaces.DriverRepository {
	return &driverRepository{
		collection: db.Collection(utils.CollectionDrivers),
	}
}

func (r *driverRepository) Create(ctx context.Context, driver *models.Driver) error {
	driver.ID = primitive.NewObjectID()
	driver.CreatedAt = time.Now()
	driver.UpdatedAt = driver.CreatedAt

	if _, err := r.collection.InsertOne(ctx, driver); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("driver with rut %s: %w", driver.RUT, interfaces.ErrDuplicate)
		}
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

func (r *driverRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	var driver models.Driver
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&driver)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("driver %s: %w", id.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return &driver, nil
}

func (r *driverRepository) GetByRUT(ctx context.Context, rut string) (*models.Driver, error) {
	var driver models.Driver
	err := r.collection.FindOne(ctx, bson.M{"rut": rut}).Decode(&driver)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("driver rut %s: %w", rut, interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get driver by rut: %w", err)
	}
	return &driver, nil
}

func (r *driverRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("driver %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("driver %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	return nil
}

func (r *driverRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	filter := params.GetSearchFilter([]string{"first_name", "last_name", "rut", "license_number"})
	return r.find(ctx, filter, params)
}

func (r *driverRepository) GetByStatus(ctx context.Context, status models.DriverStatus, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	return r.find(ctx, bson.M{"status": status}, params)
}

func (r *driverRepository) SetCurrentVehicle(ctx context.Context, driverID primitive.ObjectID, vehicleID *primitive.ObjectID) error {
	updates := bson.M{
		"current_vehicle_id": vehicleID,
		"updated_at":         time.Now(),
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": driverID}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to set driver vehicle: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("driver %s: %w", driverID.Hex(), interfaces.ErrNotFound)
	}
	return nil
}

func (r *driverRepository) find(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count drivers: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer cursor.Close(ctx)

	var drivers []*models.Driver
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode drivers: %w", err)
	}
	return drivers, total, nil
}
