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

type clientRepository struct {
	collection *mongo.Collection
}

func NewClientRepository(db *mongo.Database) interfaces.ClientRepository {
	return &clientRepository{
		collection: db.Collection(utils.CollectionClients),
	}
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	client.ID = primitive.NewObjectID()
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt

	if _, err := r.collection.InsertOne(ctx, client); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("client %s: %w", client.Name, interfaces.ErrDuplicate)
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	var client models.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("client %s: %w", id.Hex(), interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func (r *clientRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("client %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("client %s: %w", id.Hex(), interfaces.ErrNotFound)
	}
	return nil
}

func (r *clientRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Client, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "rut", "city"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []*models.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, 0, fmt.Errorf("failed to decode clients: %w", err)
	}
	return clients, total, nil
}
