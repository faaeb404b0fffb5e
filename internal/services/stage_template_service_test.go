package services

import (
	"context"
	"errors"
	"testing"

	"transandino/internal/models"
)

func TestStagesForIda(t *testing.T) {
	stages, err := StagesFor(models.TripDirectionIda)
	if err != nil {
		t.Fatalf("StagesFor(ida) returned error: %v", err)
	}

	want := []models.StageType{
		models.StageRetiroContenedor,
		models.StageAduanaSalida,
		models.StageAduanaEntrada,
		models.StageEntregaCliente,
		models.StageDevolucionContenedor,
	}
	if len(stages) != len(want) {
		t.Fatalf("ida template has %d stages, want %d", len(stages), len(want))
	}
	for i, typ := range want {
		if stages[i].Type != typ {
			t.Errorf("ida stage %d = %s, want %s", i, stages[i].Type, typ)
		}
	}
}

func TestStagesForVuelta(t *testing.T) {
	stages, err := StagesFor(models.TripDirectionVuelta)
	if err != nil {
		t.Fatalf("StagesFor(vuelta) returned error: %v", err)
	}

	want := []models.StageType{
		models.StageCargaDeposito,
		models.StageAduanaSalida,
		models.StageAduanaEntrada,
		models.StageEntregaPuerto,
	}
	if len(stages) != len(want) {
		t.Fatalf("vuelta template has %d stages, want %d", len(stages), len(want))
	}
	for i, typ := range want {
		if stages[i].Type != typ {
			t.Errorf("vuelta stage %d = %s, want %s", i, stages[i].Type, typ)
		}
	}
}

func TestStagesForUnknownDirection(t *testing.T) {
	if _, err := StagesFor("circular"); !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestStagesForIsDeterministic(t *testing.T) {
	a, _ := StagesFor(models.TripDirectionIda)
	b, _ := StagesFor(models.TripDirectionIda)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("template differs between calls at %d: %+v vs %+v", i, a[i], b[i])
		}
	}

	// Mutating the returned slice must not leak into later calls.
	a[0].Name = "mutated"
	c, _ := StagesFor(models.TripDirectionIda)
	if c[0].Name == "mutated" {
		t.Fatal("template slice shared with caller")
	}
}

func TestBuildPlanResolvesLocations(t *testing.T) {
	locationRepo := newFakeLocationRepo()
	svc := NewStageTemplateService(locationRepo)

	origin := LocationSpec{Name: "Puerto Valparaíso", Type: models.LocationTypePuerto, City: "Valparaíso", Country: "Chile"}
	destination := LocationSpec{Name: "Cliente Mendoza", Type: models.LocationTypeCliente, City: "Mendoza", Country: "Argentina"}

	stages, originRef, destRef, err := svc.BuildPlan(context.Background(), models.TripDirectionIda, origin, destination)
	if err != nil {
		t.Fatalf("BuildPlan returned error: %v", err)
	}

	if len(stages) != 5 {
		t.Fatalf("got %d stages, want 5", len(stages))
	}
	for i, stage := range stages {
		if stage.Order != i {
			t.Errorf("stage %d order = %d", i, stage.Order)
		}
		if stage.Status != models.StageStatusPendiente {
			t.Errorf("stage %d status = %s, want pendiente", i, stage.Status)
		}
		if stage.ID.IsZero() {
			t.Errorf("stage %d has zero ID", i)
		}
		if stage.Location.ID.IsZero() {
			t.Errorf("stage %d has unresolved location", i)
		}
	}

	// First two steps bind to the origin, the rest to the destination.
	if stages[0].Location.ID != originRef.ID || stages[1].Location.ID != originRef.ID {
		t.Error("origin-side stages not bound to origin location")
	}
	for _, stage := range stages[2:] {
		if stage.Location.ID != destRef.ID {
			t.Errorf("stage %s not bound to destination", stage.Type)
		}
	}
}

func TestBuildPlanIsIdempotentOnLocations(t *testing.T) {
	locationRepo := newFakeLocationRepo()
	svc := NewStageTemplateService(locationRepo)

	origin := LocationSpec{Name: "Puerto Valparaíso", Type: models.LocationTypePuerto, City: "Valparaíso", Country: "Chile"}
	destination := LocationSpec{Name: "Depósito Mendoza", Type: models.LocationTypeDeposito, City: "Mendoza", Country: "Argentina"}

	_, firstOrigin, _, err := svc.BuildPlan(context.Background(), models.TripDirectionIda, origin, destination)
	if err != nil {
		t.Fatalf("first BuildPlan: %v", err)
	}
	_, secondOrigin, _, err := svc.BuildPlan(context.Background(), models.TripDirectionIda, origin, destination)
	if err != nil {
		t.Fatalf("second BuildPlan: %v", err)
	}

	if firstOrigin.ID != secondOrigin.ID {
		t.Errorf("origin re-created: %s vs %s", firstOrigin.ID.Hex(), secondOrigin.ID.Hex())
	}
	if len(locationRepo.locations) != 2 {
		t.Errorf("expected 2 locations, got %d", len(locationRepo.locations))
	}
}

func TestBuildPlanWrapsResolutionFailure(t *testing.T) {
	locationRepo := newFakeLocationRepo()
	locationRepo.upsertErr = errors.New("connection reset")
	svc := NewStageTemplateService(locationRepo)

	origin := LocationSpec{Name: "Puerto Valparaíso", Type: models.LocationTypePuerto, City: "Valparaíso", Country: "Chile"}
	destination := LocationSpec{Name: "Cliente Mendoza", Type: models.LocationTypeCliente, City: "Mendoza", Country: "Argentina"}

	_, _, _, err := svc.BuildPlan(context.Background(), models.TripDirectionIda, origin, destination)

	var resolutionErr *LocationResolutionError
	if !errors.As(err, &resolutionErr) {
		t.Fatalf("expected LocationResolutionError, got %v", err)
	}
	if resolutionErr.Name != "Puerto Valparaíso" {
		t.Errorf("error names %q", resolutionErr.Name)
	}
}
