package services

import (
	"context"
	"time"

	"transandino/internal/models"
	"transandino/internal/repositories/interfaces"
	"transandino/internal/utils"
	"transandino/internal/validators"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClientService interface {
	CreateClient(ctx context.Context, req *validators.ClientCreateRequest) (*models.Client, error)
	GetClient(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
	UpdateClient(ctx context.Context, id primitive.ObjectID, req *validators.ClientUpdateRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, id primitive.ObjectID) error
	ListClients(ctx context.Context, params *utils.PaginationParams) ([]*models.Client, int64, error)
}

type clientService struct {
	clientRepo interfaces.ClientRepository
}

func NewClientService(clientRepo interfaces.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) CreateClient(ctx context.Context, req *validators.ClientCreateRequest) (*models.Client, error) {
	now := time.Now()
	client := &models.Client{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		RUT:         req.RUT,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetClient(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) UpdateClient(ctx context.Context, id primitive.ObjectID, req *validators.ClientUpdateRequest) (*models.Client, error) {
	updates := map[string]interface{}{}
	setString(updates, "name", req.Name)
	setString(updates, "contact_name", req.ContactName)
	setString(updates, "phone", req.Phone)
	setString(updates, "email", req.Email)
	setString(updates, "address", req.Address)
	setString(updates, "city", req.City)
	setString(updates, "country", req.Country)
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := s.clientRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) DeleteClient(ctx context.Context, id primitive.ObjectID) error {
	return s.clientRepo.Delete(ctx, id)
}

func (s *clientService) ListClients(ctx context.Context, params *utils.PaginationParams) ([]*models.Client, int64, error) {
	return s.clientRepo.List(ctx, params)
}
