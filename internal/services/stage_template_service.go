package services

import (
	"context"

	"transandino/internal/models"
	"transandino/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationRole says whether a template step binds to the trip's origin or its
// destination. Each template entry carries the location type its step happens
// at and which endpoint it binds to.
type LocationRole string

const (
	RoleOrigin      LocationRole = "origin"
	RoleDestination LocationRole = "destination"
)

// StageTemplate is one step of a direction's fixed plan.
type StageTemplate struct {
	Type         models.StageType
	Name         string
	LocationType models.LocationType
	Role         LocationRole
}

// The two fixed plans. Ida moves a container from the origin port to the
// destination client; vuelta returns it from the origin depot to the
// destination port. Order is significant: the first entry is the stage whose
// completion marks departure.
var (
	idaTemplate = []StageTemplate{
		{Type: models.StageRetiroContenedor, Name: "Retiro de contenedor", LocationType: models.LocationTypePuerto, Role: RoleOrigin},
		{Type: models.StageAduanaSalida, Name: "Aduana de salida", LocationType: models.LocationTypeAduana, Role: RoleOrigin},
		{Type: models.StageAduanaEntrada, Name: "Aduana de entrada", LocationType: models.LocationTypeAduana, Role: RoleDestination},
		{Type: models.StageEntregaCliente, Name: "Entrega a cliente", LocationType: models.LocationTypeCliente, Role: RoleDestination},
		{Type: models.StageDevolucionContenedor, Name: "Devolución de contenedor", LocationType: models.LocationTypeDeposito, Role: RoleDestination},
	}

	vueltaTemplate = []StageTemplate{
		{Type: models.StageCargaDeposito, Name: "Carga en depósito", LocationType: models.LocationTypeDeposito, Role: RoleOrigin},
		{Type: models.StageAduanaSalida, Name: "Aduana de salida", LocationType: models.LocationTypeAduana, Role: RoleOrigin},
		{Type: models.StageAduanaEntrada, Name: "Aduana de entrada", LocationType: models.LocationTypeAduana, Role: RoleDestination},
		{Type: models.StageEntregaPuerto, Name: "Entrega en puerto", LocationType: models.LocationTypePuerto, Role: RoleDestination},
	}
)

// StagesFor returns the ordered stage template for a direction. Pure and
// deterministic; callers get a copy they may not mutate shared state through.
func StagesFor(direction models.TripDirection) ([]StageTemplate, error) {
	var tmpl []StageTemplate
	switch direction {
	case models.TripDirectionIda:
		tmpl = idaTemplate
	case models.TripDirectionVuelta:
		tmpl = vueltaTemplate
	default:
		return nil, ErrInvalidDirection
	}

	out := make([]StageTemplate, len(tmpl))
	copy(out, tmpl)
	return out, nil
}

// FirstStageType is the template step whose completion fires departure.
func FirstStageType(direction models.TripDirection) (models.StageType, error) {
	tmpl, err := StagesFor(direction)
	if err != nil {
		return "", err
	}
	return tmpl[0].Type, nil
}

// LocationSpec identifies an endpoint of a trip. Name+City+Country is the
// idempotent upsert key.
type LocationSpec struct {
	Name    string              `json:"name"`
	Type    models.LocationType `json:"type"`
	Address string              `json:"address"`
	City    string              `json:"city"`
	Country string              `json:"country"`
}

type StageTemplateService interface {
	StagesFor(direction models.TripDirection) ([]StageTemplate, error)
	// BuildPlan resolves the origin and destination (creating them if
	// needed) and instantiates the stage plan. Either every stage comes back
	// with a valid location reference, or nothing is persisted.
	BuildPlan(ctx context.Context, direction models.TripDirection, origin, destination LocationSpec) ([]models.Stage, models.LocationRef, models.LocationRef, error)
}

type stageTemplateService struct {
	locationRepo interfaces.LocationRepository
}

func NewStageTemplateService(locationRepo interfaces.LocationRepository) StageTemplateService {
	return &stageTemplateService{locationRepo: locationRepo}
}

func (s *stageTemplateService) StagesFor(direction models.TripDirection) ([]StageTemplate, error) {
	return StagesFor(direction)
}

func (s *stageTemplateService) BuildPlan(ctx context.Context, direction models.TripDirection, origin, destination LocationSpec) ([]models.Stage, models.LocationRef, models.LocationRef, error) {
	var none models.LocationRef

	tmpl, err := StagesFor(direction)
	if err != nil {
		return nil, none, none, err
	}

	originLoc, err := s.resolve(ctx, origin)
	if err != nil {
		return nil, none, none, err
	}
	destLoc, err := s.resolve(ctx, destination)
	if err != nil {
		return nil, none, none, err
	}

	stages := make([]models.Stage, 0, len(tmpl))
	for i, step := range tmpl {
		loc := originLoc.Ref()
		if step.Role == RoleDestination {
			loc = destLoc.Ref()
		}
		stages = append(stages, models.Stage{
			ID:       primitive.NewObjectID(),
			Type:     step.Type,
			Name:     step.Name,
			Order:    i,
			Location: loc,
			Status:   models.StageStatusPendiente,
		})
	}
	return stages, originLoc.Ref(), destLoc.Ref(), nil
}

func (s *stageTemplateService) resolve(ctx context.Context, spec LocationSpec) (*models.Location, error) {
	loc, err := s.locationRepo.Upsert(ctx, &models.Location{
		Name:    spec.Name,
		Type:    spec.Type,
		Address: spec.Address,
		City:    spec.City,
		Country: spec.Country,
	})
	if err != nil {
		return nil, &LocationResolutionError{Name: spec.Name, Cause: err}
	}
	return loc, nil
}
