package services

import (
	"context"
	"errors"
	"time"

	"transandino/internal/models"
	"transandino/internal/repositories/interfaces"
	"transandino/internal/utils"
	"transandino/internal/validators"
	"transandino/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FleetService owns the directory: drivers, vehicles and semitrailers.
// Assignment pointers are the coordinator's business; this service only
// reads them.
type FleetService interface {
	CreateDriver(ctx context.Context, req *validators.DriverCreateRequest) (*models.Driver, error)
	GetDriver(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	UpdateDriver(ctx context.Context, id primitive.ObjectID, req *validators.DriverUpdateRequest) (*models.Driver, error)
	DeleteDriver(ctx context.Context, id primitive.ObjectID) error
	ListDrivers(ctx context.Context, status *models.DriverStatus, params *utils.PaginationParams) ([]*models.Driver, int64, error)

	CreateVehicle(ctx context.Context, req *validators.VehicleCreateRequest) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id primitive.ObjectID, req *validators.VehicleUpdateRequest) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id primitive.ObjectID) error
	ListVehicles(ctx context.Context, status *models.VehicleStatus, params *utils.PaginationParams) ([]*models.Vehicle, int64, error)

	CreateSemitrailer(ctx context.Context, req *validators.SemitrailerCreateRequest) (*models.Semitrailer, error)
	GetSemitrailer(ctx context.Context, id primitive.ObjectID) (*models.Semitrailer, error)
	UpdateSemitrailer(ctx context.Context, id primitive.ObjectID, req *validators.SemitrailerUpdateRequest) (*models.Semitrailer, error)
	DeleteSemitrailer(ctx context.Context, id primitive.ObjectID) error
	ListSemitrailers(ctx context.Context, status *models.SemitrailerStatus, params *utils.PaginationParams) ([]*models.Semitrailer, int64, error)
}

type fleetService struct {
	driverRepo        interfaces.DriverRepository
	vehicleRepo       interfaces.VehicleRepository
	semitrailerRepo   interfaces.SemitrailerRepository
	assignmentService AssignmentService
	logger            *logger.Logger
}

func NewFleetService(
	driverRepo interfaces.DriverRepository,
	vehicleRepo interfaces.VehicleRepository,
	semitrailerRepo interfaces.SemitrailerRepository,
	assignmentService AssignmentService,
	logger *logger.Logger,
) FleetService {
	return &fleetService{
		driverRepo:        driverRepo,
		vehicleRepo:       vehicleRepo,
		semitrailerRepo:   semitrailerRepo,
		assignmentService: assignmentService,
		logger:            logger,
	}
}

func (s *fleetService) CreateDriver(ctx context.Context, req *validators.DriverCreateRequest) (*models.Driver, error) {
	status := models.DriverStatus(req.Status)
	if status == "" {
		status = models.DriverStatusActivo
	}

	now := time.Now()
	driver := &models.Driver{
		ID:            primitive.NewObjectID(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		RUT:           req.RUT,
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		LicenseClass:  req.LicenseClass,
		LicenseExpiry: req.LicenseExpiry,
		Status:        status,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}

	s.logger.WithField("driver_id", driver.ID.Hex()).Info("driver created")
	return driver, nil
}

func (s *fleetService) GetDriver(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	return s.driverRepo.GetByID(ctx, id)
}

func (s *fleetService) UpdateDriver(ctx context.Context, id primitive.ObjectID, req *validators.DriverUpdateRequest) (*models.Driver, error) {
	updates := map[string]interface{}{}
	setString(updates, "first_name", req.FirstName)
	setString(updates, "last_name", req.LastName)
	setString(updates, "phone", req.Phone)
	setString(updates, "email", req.Email)
	setString(updates, "license_number", req.LicenseNumber)
	setString(updates, "license_class", req.LicenseClass)
	setString(updates, "notes", req.Notes)
	if req.LicenseExpiry != nil {
		updates["license_expiry"] = *req.LicenseExpiry
	}
	if req.Status != nil {
		status := models.DriverStatus(*req.Status)
		// Deactivation releases a standing vehicle binding first; an
		// inactive driver may not keep holding a vehicle.
		if status != models.DriverStatusActivo {
			if err := s.releaseDriverVehicle(ctx, id); err != nil {
				return nil, err
			}
		}
		updates["status"] = status
	}

	if len(updates) > 0 {
		if err := s.driverRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.driverRepo.GetByID(ctx, id)
}

func (s *fleetService) releaseDriverVehicle(ctx context.Context, driverID primitive.ObjectID) error {
	vehicle, err := s.vehicleRepo.GetByDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil
		}
		return err
	}
	_, err = s.assignmentService.AssignDriverToVehicle(ctx, vehicle.ID, nil)
	return err
}

// DeleteDriver refuses while the driver is referenced by an active trip.
// A standing vehicle binding is released first so the vehicle doesn't point
// at a ghost.
func (s *fleetService) DeleteDriver(ctx context.Context, id primitive.ObjectID) error {
	busy, err := s.assignmentService.DriverIsBusy(ctx, id, nil)
	if err != nil {
		return err
	}
	if busy {
		return &ResourceBusyError{Resource: "driver", ResourceID: id}
	}

	if err := s.releaseDriverVehicle(ctx, id); err != nil {
		return err
	}

	return s.driverRepo.Delete(ctx, id)
}

func (s *fleetService) ListDrivers(ctx context.Context, status *models.DriverStatus, params *utils.PaginationParams) ([]*models.Driver, int64, error) {
	if status != nil {
		return s.driverRepo.GetByStatus(ctx, *status, params)
	}
	return s.driverRepo.List(ctx, params)
}

func (s *fleetService) CreateVehicle(ctx context.Context, req *validators.VehicleCreateRequest) (*models.Vehicle, error) {
	status := models.VehicleStatus(req.Status)
	if status == "" {
		status = models.VehicleStatusActivo
	}

	now := time.Now()
	vehicle := &models.Vehicle{
		ID:                        primitive.NewObjectID(),
		Plate:                     req.Plate,
		Make:                      req.Make,
		Model:                     req.Model,
		Year:                      req.Year,
		Status:                    status,
		TechnicalInspectionExpiry: req.TechnicalInspectionExpiry,
		CirculationPermitExpiry:   req.CirculationPermitExpiry,
		InsuranceExpiry:           req.InsuranceExpiry,
		Mileage:                   req.Mileage,
		Notes:                     req.Notes,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.logger.WithField("vehicle_id", vehicle.ID.Hex()).Info("vehicle created")
	return vehicle, nil
}

func (s *fleetService) GetVehicle(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *fleetService) UpdateVehicle(ctx context.Context, id primitive.ObjectID, req *validators.VehicleUpdateRequest) (*models.Vehicle, error) {
	updates := map[string]interface{}{}
	setString(updates, "make", req.Make)
	setString(updates, "model", req.Model)
	setString(updates, "notes", req.Notes)
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Status != nil {
		updates["status"] = models.VehicleStatus(*req.Status)
	}
	if req.TechnicalInspectionExpiry != nil {
		updates["technical_inspection_expiry"] = *req.TechnicalInspectionExpiry
	}
	if req.CirculationPermitExpiry != nil {
		updates["circulation_permit_expiry"] = *req.CirculationPermitExpiry
	}
	if req.InsuranceExpiry != nil {
		updates["insurance_expiry"] = *req.InsuranceExpiry
	}
	if req.Mileage != nil {
		updates["mileage"] = *req.Mileage
	}

	if len(updates) > 0 {
		if err := s.vehicleRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.vehicleRepo.GetByID(ctx, id)
}

// DeleteVehicle refuses while the vehicle is referenced by an active trip,
// then releases both assignment pointers before removing the record.
func (s *fleetService) DeleteVehicle(ctx context.Context, id primitive.ObjectID) error {
	busy, err := s.assignmentService.VehicleIsBusy(ctx, id, nil)
	if err != nil {
		return err
	}
	if busy {
		return &ResourceBusyError{Resource: "vehicle", ResourceID: id}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle.DriverID != nil {
		if _, err := s.assignmentService.AssignDriverToVehicle(ctx, id, nil); err != nil {
			return err
		}
	}
	if vehicle.SemitrailerID != nil {
		if _, err := s.assignmentService.AssignSemitrailerToVehicle(ctx, id, nil); err != nil {
			return err
		}
	}

	return s.vehicleRepo.Delete(ctx, id)
}

func (s *fleetService) ListVehicles(ctx context.Context, status *models.VehicleStatus, params *utils.PaginationParams) ([]*models.Vehicle, int64, error) {
	if status != nil {
		return s.vehicleRepo.GetByStatus(ctx, *status, params)
	}
	return s.vehicleRepo.List(ctx, params)
}

func (s *fleetService) CreateSemitrailer(ctx context.Context, req *validators.SemitrailerCreateRequest) (*models.Semitrailer, error) {
	status := models.SemitrailerStatus(req.Status)
	if status == "" {
		status = models.SemitrailerStatusActivo
	}

	now := time.Now()
	semitrailer := &models.Semitrailer{
		ID:        primitive.NewObjectID(),
		Plate:     req.Plate,
		Type:      req.Type,
		Capacity:  req.Capacity,
		Status:    status,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.semitrailerRepo.Create(ctx, semitrailer); err != nil {
		return nil, err
	}

	return semitrailer, nil
}

func (s *fleetService) GetSemitrailer(ctx context.Context, id primitive.ObjectID) (*models.Semitrailer, error) {
	return s.semitrailerRepo.GetByID(ctx, id)
}

func (s *fleetService) UpdateSemitrailer(ctx context.Context, id primitive.ObjectID, req *validators.SemitrailerUpdateRequest) (*models.Semitrailer, error) {
	updates := map[string]interface{}{}
	setString(updates, "type", req.Type)
	setString(updates, "notes", req.Notes)
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Status != nil {
		updates["status"] = models.SemitrailerStatus(*req.Status)
	}

	if len(updates) > 0 {
		if err := s.semitrailerRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.semitrailerRepo.GetByID(ctx, id)
}

func (s *fleetService) DeleteSemitrailer(ctx context.Context, id primitive.ObjectID) error {
	vehicle, err := s.vehicleRepo.GetBySemitrailer(ctx, id)
	if err == nil {
		if _, err := s.assignmentService.AssignSemitrailerToVehicle(ctx, vehicle.ID, nil); err != nil {
			return err
		}
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return err
	}

	return s.semitrailerRepo.Delete(ctx, id)
}

func (s *fleetService) ListSemitrailers(ctx context.Context, status *models.SemitrailerStatus, params *utils.PaginationParams) ([]*models.Semitrailer, int64, error) {
	if status != nil {
		return s.semitrailerRepo.GetByStatus(ctx, *status, params)
	}
	return s.semitrailerRepo.List(ctx, params)
}

func setString(updates map[string]interface{}, key string, value *string) {
	if value != nil {
		updates[key] = *value
	}
}
