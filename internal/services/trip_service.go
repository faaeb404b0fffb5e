package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"transandino/internal/models"
	"transandino/internal/repositories/interfaces"
	"transandino/internal/utils"
	"transandino/internal/validators"
	"transandino/pkg/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxReplaceAttempts bounds the optimistic-concurrency retry loop. Each
// attempt re-reads the document and re-derives, so losing a race is never
// lost work, just another round trip.
const maxReplaceAttempts = 3

type TripService interface {
	CreateTrip(ctx context.Context, req *validators.TripCreateRequest) (*models.Trip, error)
	GetTrip(ctx context.Context, tripID primitive.ObjectID) (*models.Trip, error)
	GetTripByFolio(ctx context.Context, folio string) (*models.Trip, error)
	ListTrips(ctx context.Context, filter *interfaces.TripFilter, params *utils.PaginationParams) ([]*models.Trip, int64, error)
	DeleteTrip(ctx context.Context, tripID primitive.ObjectID) error

	// AssignDriver binds a driver to the trip, cascading the driver's
	// current vehicle and that vehicle's semitrailer onto the trip. Passing
	// nil clears all three. Assignment marks departure: a planned trip with
	// a driver is en route.
	AssignDriver(ctx context.Context, tripID primitive.ObjectID, driverID *primitive.ObjectID) (*models.Trip, error)

	// SetStageState transitions one stage and re-derives the trip status in
	// the same write. Setting a stage to its current status is a no-op.
	SetStageState(ctx context.Context, tripID, stageID primitive.ObjectID, status models.StageStatus) (*models.Trip, error)

	// Incident lifecycle. Open incidents suspend the trip; resolving the
	// last one resumes it, or completes it when every stage is already done.
	ReportIncident(ctx context.Context, tripID primitive.ObjectID, req *validators.IncidentReportRequest) (*models.Trip, error)
	SetIncidentStatus(ctx context.Context, tripID, incidentID primitive.ObjectID, status models.IncidentStatus) (*models.Trip, error)
	ResolveIncident(ctx context.Context, tripID, incidentID primitive.ObjectID, notes string) (*models.Trip, error)

	CancelTrip(ctx context.Context, tripID primitive.ObjectID, reason string) (*models.Trip, error)

	// OverrideStatus sets the status directly, bypassing derivation. Audited
	// and restricted to administrators; the escape hatch for data repair.
	OverrideStatus(ctx context.Context, tripID primitive.ObjectID, status models.TripStatus, reason string) (*models.Trip, error)
}

type tripService struct {
	tripRepo          interfaces.TripRepository
	stageTemplates    StageTemplateService
	assignmentService AssignmentService
	auditService      AuditService
	logger            *logger.Logger
}

func NewTripService(
	tripRepo interfaces.TripRepository,
	stageTemplates StageTemplateService,
	assignmentService AssignmentService,
	auditService AuditService,
	logger *logger.Logger,
) TripService {
	return &tripService{
		tripRepo:          tripRepo,
		stageTemplates:    stageTemplates,
		assignmentService: assignmentService,
		auditService:      auditService,
		logger:            logger,
	}
}

func (s *tripService) CreateTrip(ctx context.Context, req *validators.TripCreateRequest) (*models.Trip, error) {
	direction := models.TripDirection(req.Direction)

	stages, origin, destination, err := s.stageTemplates.BuildPlan(ctx, direction,
		locationSpecFromRequest(req.Origin),
		locationSpecFromRequest(req.Destination),
	)
	if err != nil {
		return nil, err
	}

	priority := models.TripPriority(req.Priority)
	if priority == "" {
		priority = models.TripPriorityMedia
	}

	now := time.Now()
	trip := &models.Trip{
		ID:                 primitive.NewObjectID(),
		Folio:              generateFolio(),
		Direction:          direction,
		Status:             models.TripStatusPlanificado,
		Priority:           priority,
		Origin:             origin,
		Destination:        destination,
		ClientID:           req.ClientID,
		ContainerNumber:    req.ContainerNumber,
		ScheduledDeparture: req.ScheduledDeparture,
		ScheduledArrival:   req.ScheduledArrival,
		Stages:             stages,
		Incidents:          []models.Incident{},
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	s.logger.LogTripEvent(trip.ID, "trip_created", map[string]interface{}{
		"folio":     trip.Folio,
		"direction": trip.Direction,
		"stages":    len(trip.Stages),
	})

	return trip, nil
}

func (s *tripService) GetTrip(ctx context.Context, tripID primitive.ObjectID) (*models.Trip, error) {
	return s.tripRepo.GetByID(ctx, tripID)
}

func (s *tripService) GetTripByFolio(ctx context.Context, folio string) (*models.Trip, error) {
	return s.tripRepo.GetByFolio(ctx, folio)
}

func (s *tripService) ListTrips(ctx context.Context, filter *interfaces.TripFilter, params *utils.PaginationParams) ([]*models.Trip, int64, error) {
	return s.tripRepo.List(ctx, filter, params)
}

// DeleteTrip removes the trip document. Directory bindings are untouched:
// deleting a trip says nothing about which driver sits in which truck.
func (s *tripService) DeleteTrip(ctx context.Context, tripID primitive.ObjectID) error {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return err
	}

	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		return err
	}

	s.auditService.Record(ctx, &models.AuditLog{
		Action:     models.AuditActionTripDelete,
		Resource:   "trip",
		ResourceID: tripID.Hex(),
		OldValues:  map[string]interface{}{"folio": trip.Folio, "status": trip.Status},
	})

	return nil
}

func (s *tripService) AssignDriver(ctx context.Context, tripID primitive.ObjectID, driverID *primitive.ObjectID) (*models.Trip, error) {
	var cascade *CascadeResolution

	if driverID != nil {
		resolution, err := s.assignmentService.ResolveCascade(ctx, *driverID)
		if err != nil {
			return nil, err
		}
		if !resolution.Driver.IsActive() {
			return nil, ErrDriverNotActive
		}

		busy, err := s.assignmentService.DriverIsBusy(ctx, *driverID, &tripID)
		if err != nil {
			return nil, err
		}
		if busy {
			return nil, &ResourceBusyError{Resource: "driver", ResourceID: *driverID}
		}

		if resolution.Vehicle != nil {
			busy, err := s.assignmentService.VehicleIsBusy(ctx, resolution.Vehicle.ID, &tripID)
			if err != nil {
				return nil, err
			}
			if busy {
				return nil, &ResourceBusyError{Resource: "vehicle", ResourceID: resolution.Vehicle.ID}
			}
		}
		cascade = resolution
	}

	return s.mutate(ctx, tripID, models.AuditActionAssignDriver, func(trip *models.Trip) error {
		if trip.IsTerminal() {
			return ErrTripTerminal
		}

		trip.DriverID = driverID
		trip.VehicleID = nil
		trip.SemitrailerID = nil
		if cascade != nil {
			if cascade.Vehicle != nil {
				trip.VehicleID = &cascade.Vehicle.ID
			}
			if cascade.Semitrailer != nil {
				trip.SemitrailerID = &cascade.Semitrailer.ID
			}
		}

		if _, err := applyDerivedStatus(ctx, trip); err != nil {
			return err
		}
		stampLifecycleTimes(trip)
		return nil
	})
}

func (s *tripService) SetStageState(ctx context.Context, tripID, stageID primitive.ObjectID, status models.StageStatus) (*models.Trip, error) {
	return s.mutate(ctx, tripID, models.AuditActionTripTransition, func(trip *models.Trip) error {
		if trip.IsTerminal() {
			return ErrInvalidTransition
		}

		stage := trip.StageByID(stageID)
		if stage == nil {
			return interfaces.ErrNotFound
		}
		if stage.Status == status {
			return nil
		}

		stage.Status = status
		switch status {
		case models.StageStatusCompletada:
			now := time.Now()
			stage.CompletedAt = &now
		default:
			stage.CompletedAt = nil
		}

		if _, err := applyDerivedStatus(ctx, trip); err != nil {
			return err
		}
		stampLifecycleTimes(trip)
		return nil
	})
}

func (s *tripService) ReportIncident(ctx context.Context, tripID primitive.ObjectID, req *validators.IncidentReportRequest) (*models.Trip, error) {
	return s.mutate(ctx, tripID, models.AuditActionTripTransition, func(trip *models.Trip) error {
		if trip.IsTerminal() {
			return ErrTripTerminal
		}

		trip.Incidents = append(trip.Incidents, models.Incident{
			ID:          primitive.NewObjectID(),
			Status:      models.IncidentStatusReportado,
			Description: req.Description,
			PhotoRef:    req.PhotoRef,
			ReportedBy:  req.ReportedBy,
			ReportedAt:  time.Now(),
		})

		_, err := applyDerivedStatus(ctx, trip)
		return err
	})
}

func (s *tripService) SetIncidentStatus(ctx context.Context, tripID, incidentID primitive.ObjectID, status models.IncidentStatus) (*models.Trip, error) {
	if status == models.IncidentStatusResuelto {
		return s.ResolveIncident(ctx, tripID, incidentID, "")
	}

	return s.mutate(ctx, tripID, models.AuditActionTripTransition, func(trip *models.Trip) error {
		if trip.IsTerminal() {
			return ErrInvalidTransition
		}

		incident := trip.IncidentByID(incidentID)
		if incident == nil {
			return interfaces.ErrNotFound
		}
		incident.Status = status
		return nil
	})
}

func (s *tripService) ResolveIncident(ctx context.Context, tripID, incidentID primitive.ObjectID, notes string) (*models.Trip, error) {
	return s.mutate(ctx, tripID, models.AuditActionTripTransition, func(trip *models.Trip) error {
		if trip.IsTerminal() {
			return ErrInvalidTransition
		}

		incident := trip.IncidentByID(incidentID)
		if incident == nil {
			return interfaces.ErrNotFound
		}
		if incident.Status == models.IncidentStatusResuelto {
			return nil
		}

		now := time.Now()
		incident.Status = models.IncidentStatusResuelto
		incident.ResolvedAt = &now
		if notes != "" {
			incident.ResolutionNotes = notes
		}

		if _, err := applyDerivedStatus(ctx, trip); err != nil {
			return err
		}
		stampLifecycleTimes(trip)
		return nil
	})
}

func (s *tripService) CancelTrip(ctx context.Context, tripID primitive.ObjectID, reason string) (*models.Trip, error) {
	trip, err := s.mutate(ctx, tripID, models.AuditActionTripCancel, func(trip *models.Trip) error {
		if trip.Status == models.TripStatusCancelado {
			return nil
		}

		next, err := fireTransition(ctx, trip.Status, EventCancel)
		if err != nil {
			return err
		}
		trip.Status = next
		trip.CancelReason = reason

		// Open incidents don't outlive the trip.
		now := time.Now()
		for i := range trip.Incidents {
			if trip.Incidents[i].IsOpen() {
				trip.Incidents[i].Status = models.IncidentStatusResuelto
				trip.Incidents[i].ResolvedAt = &now
				if trip.Incidents[i].ResolutionNotes == "" {
					trip.Incidents[i].ResolutionNotes = "viaje cancelado"
				}
			}
		}
		for i := range trip.Stages {
			if trip.Stages[i].Status == models.StageStatusPendiente {
				trip.Stages[i].Status = models.StageStatusCancelada
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogTripEvent(tripID, "trip_cancelled", map[string]interface{}{"reason": reason})
	return trip, nil
}

func (s *tripService) OverrideStatus(ctx context.Context, tripID primitive.ObjectID, status models.TripStatus, reason string) (*models.Trip, error) {
	trip, err := s.mutate(ctx, tripID, models.AuditActionStatusOverride, func(trip *models.Trip) error {
		// Terminal states are immutable; the override is a correction tool
		// for planned and en-route trips, not a reopen mechanism.
		if trip.IsTerminal() {
			return ErrInvalidTransition
		}
		trip.Status = status
		stampLifecycleTimes(trip)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithTripID(tripID).WithFields(map[string]interface{}{
		"status": status,
		"reason": reason,
	}).Warn("trip status overridden")

	return trip, nil
}

// mutate is the single write path for existing trips: read, apply, replace,
// retry on version conflict. The audit entry records the status change when
// one happened.
func (s *tripService) mutate(ctx context.Context, tripID primitive.ObjectID, action models.AuditAction, apply func(*models.Trip) error) (*models.Trip, error) {
	for attempt := 0; attempt < maxReplaceAttempts; attempt++ {
		trip, err := s.tripRepo.GetByID(ctx, tripID)
		if err != nil {
			return nil, err
		}

		before := trip.Status
		if err := apply(trip); err != nil {
			return nil, err
		}

		err = s.tripRepo.Replace(ctx, trip)
		if err == nil {
			if trip.Status != before {
				s.auditService.Record(ctx, &models.AuditLog{
					Action:     action,
					Resource:   "trip",
					ResourceID: tripID.Hex(),
					OldValues:  map[string]interface{}{"status": before},
					NewValues:  map[string]interface{}{"status": trip.Status},
				})
				s.logger.LogTripEvent(tripID, "trip_status_changed", map[string]interface{}{
					"from": before,
					"to":   trip.Status,
				})
			}
			return trip, nil
		}
		if !errors.Is(err, interfaces.ErrConflict) {
			return nil, err
		}
	}
	return nil, ErrResourceConflict
}

// stampLifecycleTimes records actual departure and arrival the first time
// the trip reaches the corresponding status.
func stampLifecycleTimes(trip *models.Trip) {
	now := time.Now()
	switch trip.Status {
	case models.TripStatusEnRuta, models.TripStatusIncidente:
		if trip.ActualDeparture == nil {
			trip.ActualDeparture = &now
		}
	case models.TripStatusRealizado:
		if trip.ActualDeparture == nil {
			trip.ActualDeparture = &now
		}
		if trip.ActualArrival == nil {
			trip.ActualArrival = &now
		}
	}
}

func generateFolio() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("%s-%s", utils.FolioPrefix, suffix)
}

func locationSpecFromRequest(req validators.LocationRequest) LocationSpec {
	return LocationSpec{
		Name:    req.Name,
		Type:    models.LocationType(req.Type),
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
	}
}
