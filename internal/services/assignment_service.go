package services

import (
	"context"
	"errors"

	"transandino/internal/models"
	"transandino/internal/repositories/interfaces"
	"transandino/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CascadeResolution is what a driver brings along when assigned to a trip:
// the vehicle currently bound to the driver, and the semitrailer currently
// bound to that vehicle. Either may be absent.
type CascadeResolution struct {
	Driver      *models.Driver
	Vehicle     *models.Vehicle
	Semitrailer *models.Semitrailer
}

type AssignmentService interface {
	// AssignDriverToVehicle binds driverID to the vehicle, or clears the
	// binding when driverID is nil. The driver must be activo and not held
	// by another vehicle; when two coordinators race for the same driver the
	// first durable write wins and the loser gets a typed error.
	AssignDriverToVehicle(ctx context.Context, vehicleID primitive.ObjectID, driverID *primitive.ObjectID) (*models.Vehicle, error)

	// AssignSemitrailerToVehicle binds semitrailerID to the vehicle under
	// the same exclusivity rules.
	AssignSemitrailerToVehicle(ctx context.Context, vehicleID primitive.ObjectID, semitrailerID *primitive.ObjectID) (*models.Vehicle, error)

	// ResolveCascade walks driver -> vehicle -> semitrailer following the
	// bindings as they stand right now.
	ResolveCascade(ctx context.Context, driverID primitive.ObjectID) (*CascadeResolution, error)

	// Busy checks. A resource is busy while referenced by any non-terminal
	// trip other than exclude.
	DriverIsBusy(ctx context.Context, driverID primitive.ObjectID, exclude *primitive.ObjectID) (bool, error)
	VehicleIsBusy(ctx context.Context, vehicleID primitive.ObjectID, exclude *primitive.ObjectID) (bool, error)
}

type assignmentService struct {
	driverRepo      interfaces.DriverRepository
	vehicleRepo     interfaces.VehicleRepository
	semitrailerRepo interfaces.SemitrailerRepository
	tripRepo        interfaces.TripRepository
	auditService    AuditService
	logger          *logger.Logger
}

func NewAssignmentService(
	driverRepo interfaces.DriverRepository,
	vehicleRepo interfaces.VehicleRepository,
	semitrailerRepo interfaces.SemitrailerRepository,
	tripRepo interfaces.TripRepository,
	auditService AuditService,
	logger *logger.Logger,
) AssignmentService {
	return &assignmentService{
		driverRepo:      driverRepo,
		vehicleRepo:     vehicleRepo,
		semitrailerRepo: semitrailerRepo,
		tripRepo:        tripRepo,
		auditService:    auditService,
		logger:          logger,
	}
}

func (s *assignmentService) AssignDriverToVehicle(ctx context.Context, vehicleID primitive.ObjectID, driverID *primitive.ObjectID) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if driverID != nil {
		driver, err := s.driverRepo.GetByID(ctx, *driverID)
		if err != nil {
			return nil, err
		}
		if !driver.IsActive() {
			return nil, ErrDriverNotActive
		}

		holder, err := s.vehicleRepo.GetByDriver(ctx, *driverID)
		if err == nil && holder.ID != vehicleID {
			return nil, &DriverAlreadyAssignedError{DriverID: *driverID, OtherVehicleID: holder.ID}
		}
		if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			return nil, err
		}
	}

	expected := vehicle.DriverID
	if err := s.vehicleRepo.SetDriver(ctx, vehicleID, driverID, expected); err != nil {
		return nil, s.mapAssignmentWriteError(ctx, err, driverID, vehicleID, "driver")
	}

	// Back-references keep driver -> vehicle lookups O(1). They follow the
	// authoritative pointer on the vehicle and are only ever written here.
	if expected != nil {
		if err := s.driverRepo.SetCurrentVehicle(ctx, *expected, nil); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("failed to clear driver back-reference")
		}
	}
	if driverID != nil {
		if err := s.driverRepo.SetCurrentVehicle(ctx, *driverID, &vehicleID); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("failed to set driver back-reference")
		}
	}

	s.auditService.Record(ctx, &models.AuditLog{
		Action:     models.AuditActionAssignDriver,
		Resource:   "vehicle",
		ResourceID: vehicleID.Hex(),
		OldValues:  map[string]interface{}{"driver_id": hexOrNil(expected)},
		NewValues:  map[string]interface{}{"driver_id": hexOrNil(driverID)},
	})

	s.logger.LogAssignmentEvent("vehicle", vehicleID, "driver_assignment_changed", map[string]interface{}{
		"old_driver_id": hexOrNil(expected),
		"new_driver_id": hexOrNil(driverID),
	})

	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

func (s *assignmentService) AssignSemitrailerToVehicle(ctx context.Context, vehicleID primitive.ObjectID, semitrailerID *primitive.ObjectID) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if semitrailerID != nil {
		if _, err := s.semitrailerRepo.GetByID(ctx, *semitrailerID); err != nil {
			return nil, err
		}

		holder, err := s.vehicleRepo.GetBySemitrailer(ctx, *semitrailerID)
		if err == nil && holder.ID != vehicleID {
			return nil, &SemitrailerAlreadyAssignedError{SemitrailerID: *semitrailerID, OtherVehicleID: holder.ID}
		}
		if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			return nil, err
		}
	}

	expected := vehicle.SemitrailerID
	if err := s.vehicleRepo.SetSemitrailer(ctx, vehicleID, semitrailerID, expected); err != nil {
		return nil, s.mapAssignmentWriteError(ctx, err, semitrailerID, vehicleID, "semitrailer")
	}

	if expected != nil {
		if err := s.semitrailerRepo.SetAssignedVehicle(ctx, *expected, nil); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("failed to clear semitrailer back-reference")
		}
	}
	if semitrailerID != nil {
		if err := s.semitrailerRepo.SetAssignedVehicle(ctx, *semitrailerID, &vehicleID); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("failed to set semitrailer back-reference")
		}
	}

	s.auditService.Record(ctx, &models.AuditLog{
		Action:     models.AuditActionAssignSemitrailer,
		Resource:   "vehicle",
		ResourceID: vehicleID.Hex(),
		OldValues:  map[string]interface{}{"semitrailer_id": hexOrNil(expected)},
		NewValues:  map[string]interface{}{"semitrailer_id": hexOrNil(semitrailerID)},
	})

	s.logger.LogAssignmentEvent("vehicle", vehicleID, "semitrailer_assignment_changed", map[string]interface{}{
		"old_semitrailer_id": hexOrNil(expected),
		"new_semitrailer_id": hexOrNil(semitrailerID),
	})

	return s.vehicleRepo.GetByID(ctx, vehicleID)
}

// mapAssignmentWriteError turns repository conflict sentinels into the typed
// errors callers act on. ErrDuplicate means the unique index caught a racing
// writer after our pre-check passed; we re-read to name the winner.
func (s *assignmentService) mapAssignmentWriteError(ctx context.Context, err error, resourceID *primitive.ObjectID, vehicleID primitive.ObjectID, kind string) error {
	switch {
	case errors.Is(err, interfaces.ErrDuplicate):
		if resourceID != nil {
			if kind == "driver" {
				if holder, lookupErr := s.vehicleRepo.GetByDriver(ctx, *resourceID); lookupErr == nil && holder.ID != vehicleID {
					return &DriverAlreadyAssignedError{DriverID: *resourceID, OtherVehicleID: holder.ID}
				}
			} else {
				if holder, lookupErr := s.vehicleRepo.GetBySemitrailer(ctx, *resourceID); lookupErr == nil && holder.ID != vehicleID {
					return &SemitrailerAlreadyAssignedError{SemitrailerID: *resourceID, OtherVehicleID: holder.ID}
				}
			}
		}
		return ErrResourceConflict
	case errors.Is(err, interfaces.ErrConflict):
		return ErrResourceConflict
	default:
		return err
	}
}

func (s *assignmentService) ResolveCascade(ctx context.Context, driverID primitive.ObjectID) (*CascadeResolution, error) {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	resolution := &CascadeResolution{Driver: driver}

	vehicle, err := s.vehicleRepo.GetByDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return resolution, nil
		}
		return nil, err
	}
	// Only an activo vehicle cascades; one parked in mantenimiento or worse
	// stays out of the resolution, and its semitrailer with it.
	if !vehicle.IsActive() {
		return resolution, nil
	}
	resolution.Vehicle = vehicle

	if vehicle.SemitrailerID != nil {
		semitrailer, err := s.semitrailerRepo.GetByID(ctx, *vehicle.SemitrailerID)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return resolution, nil
			}
			return nil, err
		}
		if semitrailer.IsActive() {
			resolution.Semitrailer = semitrailer
		}
	}

	return resolution, nil
}

func (s *assignmentService) DriverIsBusy(ctx context.Context, driverID primitive.ObjectID, exclude *primitive.ObjectID) (bool, error) {
	count, err := s.tripRepo.CountActiveByDriver(ctx, driverID, exclude)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *assignmentService) VehicleIsBusy(ctx context.Context, vehicleID primitive.ObjectID, exclude *primitive.ObjectID) (bool, error) {
	count, err := s.tripRepo.CountActiveByVehicle(ctx, vehicleID, exclude)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func hexOrNil(id *primitive.ObjectID) interface{} {
	if id == nil {
		return nil
	}
	return id.Hex()
}
