package services

import (
	"context"
	"errors"
	"testing"

	"transandino/internal/models"
)

func TestAssignDriverToVehicle(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	vehicle := f.addVehicle()

	updated, err := f.assignment.AssignDriverToVehicle(context.Background(), vehicle.ID, &driver.ID)
	if err != nil {
		t.Fatalf("AssignDriverToVehicle: %v", err)
	}
	if updated.DriverID == nil || *updated.DriverID != driver.ID {
		t.Fatal("vehicle does not hold the driver")
	}

	stored, _ := f.driverRepo.GetByID(context.Background(), driver.ID)
	if stored.CurrentVehicleID == nil || *stored.CurrentVehicleID != vehicle.ID {
		t.Error("driver back-reference not synced")
	}
}

func TestAssignInactiveDriverRejected(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusSuspendido)
	vehicle := f.addVehicle()

	_, err := f.assignment.AssignDriverToVehicle(context.Background(), vehicle.ID, &driver.ID)
	if !errors.Is(err, ErrDriverNotActive) {
		t.Fatalf("expected ErrDriverNotActive, got %v", err)
	}
}

func TestDriverExclusivityAcrossVehicles(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	first := f.addVehicle()
	second := f.addVehicle()

	if _, err := f.assignment.AssignDriverToVehicle(context.Background(), first.ID, &driver.ID); err != nil {
		t.Fatalf("first assignment: %v", err)
	}

	_, err := f.assignment.AssignDriverToVehicle(context.Background(), second.ID, &driver.ID)
	var assigned *DriverAlreadyAssignedError
	if !errors.As(err, &assigned) {
		t.Fatalf("expected DriverAlreadyAssignedError, got %v", err)
	}
	if assigned.OtherVehicleID != first.ID {
		t.Errorf("error names vehicle %s, want %s", assigned.OtherVehicleID.Hex(), first.ID.Hex())
	}
}

func TestReassignDriverAfterUnassign(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	first := f.addVehicle()
	second := f.addVehicle()

	if _, err := f.assignment.AssignDriverToVehicle(context.Background(), first.ID, &driver.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := f.assignment.AssignDriverToVehicle(context.Background(), first.ID, nil); err != nil {
		t.Fatalf("unassign: %v", err)
	}

	stored, _ := f.driverRepo.GetByID(context.Background(), driver.ID)
	if stored.CurrentVehicleID != nil {
		t.Error("back-reference not cleared on unassign")
	}

	if _, err := f.assignment.AssignDriverToVehicle(context.Background(), second.ID, &driver.ID); err != nil {
		t.Fatalf("reassign to second vehicle: %v", err)
	}
}

func TestSemitrailerExclusivityAcrossVehicles(t *testing.T) {
	f := newEngineFixture()
	semitrailer := f.addSemitrailer()
	first := f.addVehicle()
	second := f.addVehicle()

	if _, err := f.assignment.AssignSemitrailerToVehicle(context.Background(), first.ID, &semitrailer.ID); err != nil {
		t.Fatalf("first assignment: %v", err)
	}

	_, err := f.assignment.AssignSemitrailerToVehicle(context.Background(), second.ID, &semitrailer.ID)
	var assigned *SemitrailerAlreadyAssignedError
	if !errors.As(err, &assigned) {
		t.Fatalf("expected SemitrailerAlreadyAssignedError, got %v", err)
	}

	stored, _ := f.semitrailerRepo.GetByID(context.Background(), semitrailer.ID)
	if stored.AssignedVehicleID == nil || *stored.AssignedVehicleID != first.ID {
		t.Error("semitrailer back-reference should still point at the first vehicle")
	}
}

func TestAssignmentWritesAudit(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	vehicle := f.addVehicle()

	if _, err := f.assignment.AssignDriverToVehicle(context.Background(), vehicle.ID, &driver.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	actions := f.auditRepo.actions()
	if len(actions) != 1 || actions[0] != models.AuditActionAssignDriver {
		t.Fatalf("audit actions = %v", actions)
	}
}

func TestResolveCascade(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	vehicle := f.addVehicle()
	semitrailer := f.addSemitrailer()

	if _, err := f.assignment.AssignDriverToVehicle(context.Background(), vehicle.ID, &driver.ID); err != nil {
		t.Fatalf("assign driver: %v", err)
	}
	if _, err := f.assignment.AssignSemitrailerToVehicle(context.Background(), vehicle.ID, &semitrailer.ID); err != nil {
		t.Fatalf("assign semitrailer: %v", err)
	}

	resolution, err := f.assignment.ResolveCascade(context.Background(), driver.ID)
	if err != nil {
		t.Fatalf("ResolveCascade: %v", err)
	}
	if resolution.Vehicle == nil || resolution.Vehicle.ID != vehicle.ID {
		t.Error("cascade misses the vehicle")
	}
	if resolution.Semitrailer == nil || resolution.Semitrailer.ID != semitrailer.ID {
		t.Error("cascade misses the semitrailer")
	}
}

func TestResolveCascadeSkipsInactiveVehicle(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	vehicle := f.addVehicle()
	semitrailer := f.addSemitrailer()
	ctx := context.Background()

	if _, err := f.assignment.AssignDriverToVehicle(ctx, vehicle.ID, &driver.ID); err != nil {
		t.Fatalf("assign driver: %v", err)
	}
	if _, err := f.assignment.AssignSemitrailerToVehicle(ctx, vehicle.ID, &semitrailer.ID); err != nil {
		t.Fatalf("assign semitrailer: %v", err)
	}

	parked, err := f.vehicleRepo.GetByID(ctx, vehicle.ID)
	if err != nil {
		t.Fatalf("GetByID vehicle: %v", err)
	}
	parked.Status = models.VehicleStatusMantenimiento
	f.vehicleRepo.put(parked)

	resolution, err := f.assignment.ResolveCascade(ctx, driver.ID)
	if err != nil {
		t.Fatalf("ResolveCascade: %v", err)
	}
	if resolution.Vehicle != nil {
		t.Errorf("cascade returned a vehicle in %s", resolution.Vehicle.Status)
	}
	if resolution.Semitrailer != nil {
		t.Error("semitrailer cascaded through an inactive vehicle")
	}
}

func TestResolveCascadeSkipsInactiveSemitrailer(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	vehicle := f.addVehicle()
	semitrailer := f.addSemitrailer()
	ctx := context.Background()

	if _, err := f.assignment.AssignDriverToVehicle(ctx, vehicle.ID, &driver.ID); err != nil {
		t.Fatalf("assign driver: %v", err)
	}
	if _, err := f.assignment.AssignSemitrailerToVehicle(ctx, vehicle.ID, &semitrailer.ID); err != nil {
		t.Fatalf("assign semitrailer: %v", err)
	}

	stored, err := f.semitrailerRepo.GetByID(ctx, semitrailer.ID)
	if err != nil {
		t.Fatalf("GetByID semitrailer: %v", err)
	}
	stored.Status = models.SemitrailerStatusMantenimiento
	f.semitrailerRepo.put(stored)

	resolution, err := f.assignment.ResolveCascade(ctx, driver.ID)
	if err != nil {
		t.Fatalf("ResolveCascade: %v", err)
	}
	if resolution.Vehicle == nil {
		t.Fatal("active vehicle missing from cascade")
	}
	if resolution.Semitrailer != nil {
		t.Error("cascade returned a semitrailer in mantenimiento")
	}
}

func TestResolveCascadeDriverWithoutVehicle(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)

	resolution, err := f.assignment.ResolveCascade(context.Background(), driver.ID)
	if err != nil {
		t.Fatalf("ResolveCascade: %v", err)
	}
	if resolution.Vehicle != nil || resolution.Semitrailer != nil {
		t.Error("cascade invented resources for an unassigned driver")
	}
}

func TestBusyChecksFollowTripLifecycle(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	vehicle := f.addVehicle()

	// No trips: not busy.
	busy, err := f.assignment.DriverIsBusy(context.Background(), driver.ID, nil)
	if err != nil || busy {
		t.Fatalf("busy=%v err=%v, want free", busy, err)
	}

	trip := seedTrip(f, models.TripDirectionIda)
	trip.DriverID = &driver.ID
	trip.VehicleID = &vehicle.ID
	trip.Status = models.TripStatusEnRuta
	f.tripRepo.trips[trip.ID] = copyTrip(trip)

	busy, _ = f.assignment.DriverIsBusy(context.Background(), driver.ID, nil)
	if !busy {
		t.Error("driver on an active trip should be busy")
	}
	busy, _ = f.assignment.VehicleIsBusy(context.Background(), vehicle.ID, nil)
	if !busy {
		t.Error("vehicle on an active trip should be busy")
	}

	// The holding trip itself is excluded.
	busy, _ = f.assignment.DriverIsBusy(context.Background(), driver.ID, &trip.ID)
	if busy {
		t.Error("exclusion of the holding trip ignored")
	}

	// Terminal trips release the resources.
	trip.Status = models.TripStatusRealizado
	f.tripRepo.trips[trip.ID] = copyTrip(trip)
	busy, _ = f.assignment.DriverIsBusy(context.Background(), driver.ID, nil)
	if busy {
		t.Error("driver on a completed trip should be free")
	}
}
