package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"transandino/internal/models"
	"transandino/internal/repositories/interfaces"
	"transandino/internal/validators"
)

func TestCreateDriverDefaultsToActive(t *testing.T) {
	f := newEngineFixture()

	driver, err := f.fleet.CreateDriver(context.Background(), &validators.DriverCreateRequest{
		FirstName:     "Rosa",
		LastName:      "Contreras",
		RUT:           "9.876.543-2",
		LicenseNumber: "B-998",
		LicenseExpiry: time.Now().Add(365 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateDriver: %v", err)
	}
	if driver.Status != models.DriverStatusActivo {
		t.Errorf("status = %s, want activo", driver.Status)
	}
}

func TestDeactivateDriverReleasesVehicleBinding(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	vehicle := f.addVehicle()
	ctx := context.Background()

	if _, err := f.assignment.AssignDriverToVehicle(ctx, vehicle.ID, &driver.ID); err != nil {
		t.Fatalf("bind: %v", err)
	}

	suspended := string(models.DriverStatusSuspendido)
	updated, err := f.fleet.UpdateDriver(ctx, driver.ID, &validators.DriverUpdateRequest{Status: &suspended})
	if err != nil {
		t.Fatalf("UpdateDriver: %v", err)
	}
	if updated.Status != models.DriverStatusSuspendido {
		t.Errorf("status = %s, want suspendido", updated.Status)
	}

	stored, err := f.vehicleRepo.GetByID(ctx, vehicle.ID)
	if err != nil {
		t.Fatalf("GetByID vehicle: %v", err)
	}
	if stored.DriverID != nil {
		t.Error("suspended driver still holds the vehicle")
	}
}

func TestDeleteDriverReleasesVehicleBinding(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	vehicle := f.addVehicle()
	ctx := context.Background()

	if _, err := f.assignment.AssignDriverToVehicle(ctx, vehicle.ID, &driver.ID); err != nil {
		t.Fatalf("bind: %v", err)
	}

	if err := f.fleet.DeleteDriver(ctx, driver.ID); err != nil {
		t.Fatalf("DeleteDriver: %v", err)
	}

	if _, err := f.driverRepo.GetByID(ctx, driver.ID); !errors.Is(err, interfaces.ErrNotFound) {
		t.Fatalf("driver still readable: %v", err)
	}
	stored, err := f.vehicleRepo.GetByID(ctx, vehicle.ID)
	if err != nil {
		t.Fatalf("GetByID vehicle: %v", err)
	}
	if stored.DriverID != nil {
		t.Error("vehicle still points at the deleted driver")
	}
}

func TestDeleteDriverBusyOnTrip(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	ctx := context.Background()

	trip := seedTrip(f, models.TripDirectionIda)
	if _, err := f.trips.AssignDriver(ctx, trip.ID, &driver.ID); err != nil {
		t.Fatalf("assign to trip: %v", err)
	}

	err := f.fleet.DeleteDriver(ctx, driver.ID)
	var busyErr *ResourceBusyError
	if !errors.As(err, &busyErr) {
		t.Fatalf("expected ResourceBusyError, got %v", err)
	}

	// Cancelling the trip frees the driver.
	if _, err := f.trips.CancelTrip(ctx, trip.ID, "cliente desistió"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := f.fleet.DeleteDriver(ctx, driver.ID); err != nil {
		t.Fatalf("DeleteDriver after cancel: %v", err)
	}
}

func TestDeleteVehicleReleasesBothPointers(t *testing.T) {
	f := newEngineFixture()
	driver := f.addDriver(models.DriverStatusActivo)
	vehicle := f.addVehicle()
	semitrailer := f.addSemitrailer()
	ctx := context.Background()

	if _, err := f.assignment.AssignDriverToVehicle(ctx, vehicle.ID, &driver.ID); err != nil {
		t.Fatalf("bind driver: %v", err)
	}
	if _, err := f.assignment.AssignSemitrailerToVehicle(ctx, vehicle.ID, &semitrailer.ID); err != nil {
		t.Fatalf("bind semitrailer: %v", err)
	}

	if err := f.fleet.DeleteVehicle(ctx, vehicle.ID); err != nil {
		t.Fatalf("DeleteVehicle: %v", err)
	}

	// Driver and semitrailer survive the vehicle and are assignable again.
	other := f.addVehicle()
	if _, err := f.assignment.AssignDriverToVehicle(ctx, other.ID, &driver.ID); err != nil {
		t.Fatalf("driver not released: %v", err)
	}
	if _, err := f.assignment.AssignSemitrailerToVehicle(ctx, other.ID, &semitrailer.ID); err != nil {
		t.Fatalf("semitrailer not released: %v", err)
	}
}

func TestDeleteSemitrailerReleasesHolder(t *testing.T) {
	f := newEngineFixture()
	vehicle := f.addVehicle()
	semitrailer := f.addSemitrailer()
	ctx := context.Background()

	if _, err := f.assignment.AssignSemitrailerToVehicle(ctx, vehicle.ID, &semitrailer.ID); err != nil {
		t.Fatalf("bind: %v", err)
	}

	if err := f.fleet.DeleteSemitrailer(ctx, semitrailer.ID); err != nil {
		t.Fatalf("DeleteSemitrailer: %v", err)
	}

	stored, err := f.vehicleRepo.GetByID(ctx, vehicle.ID)
	if err != nil {
		t.Fatalf("GetByID vehicle: %v", err)
	}
	if stored.SemitrailerID != nil {
		t.Error("vehicle still points at the deleted semitrailer")
	}
}
