package validators

import (
	"testing"
	"time"
)

func validTripCreate() *TripCreateRequest {
	return &TripCreateRequest{
		Direction: "ida",
		Origin: LocationRequest{
			Name: "Puerto San Antonio", Type: "puerto", City: "San Antonio", Country: "Chile",
		},
		Destination: LocationRequest{
			Name: "Depósito Godoy Cruz", Type: "deposito", City: "Mendoza", Country: "Argentina",
		},
		ScheduledDeparture: time.Now().Add(24 * time.Hour),
		ScheduledArrival:   time.Now().Add(48 * time.Hour),
	}
}

func TestValidateTripCreate(t *testing.T) {
	if errs := ValidateTripCreate(validTripCreate()); len(errs) != 0 {
		t.Fatalf("valid request rejected: %v", errs)
	}
}

func TestValidateTripCreateBadDirection(t *testing.T) {
	req := validTripCreate()
	req.Direction = "circular"

	errs := ValidateTripCreate(req)
	if !hasFieldError(errs, "Direction") {
		t.Errorf("direction error missing, got %v", errs)
	}
}

func TestValidateTripCreateSameEndpoints(t *testing.T) {
	req := validTripCreate()
	// Identity is name+city+country, compared case-insensitively.
	req.Destination = LocationRequest{
		Name: "PUERTO SAN ANTONIO", Type: "cliente", City: "san antonio", Country: "CHILE",
	}

	errs := ValidateTripCreate(req)
	if !hasFieldError(errs, "destination") {
		t.Errorf("same-endpoint error missing, got %v", errs)
	}
}

func TestValidateTripCreateArrivalBeforeDeparture(t *testing.T) {
	req := validTripCreate()
	req.ScheduledArrival = req.ScheduledDeparture.Add(-time.Hour)

	errs := ValidateTripCreate(req)
	if !hasFieldError(errs, "scheduled_arrival") {
		t.Errorf("arrival-order error missing, got %v", errs)
	}
}

func TestValidateIncidentReport(t *testing.T) {
	if errs := ValidateIncidentReport(&IncidentReportRequest{Description: "Corte de ruta"}); len(errs) != 0 {
		t.Errorf("valid report rejected: %v", errs)
	}
	if errs := ValidateIncidentReport(&IncidentReportRequest{}); len(errs) == 0 {
		t.Error("empty description accepted")
	}
}

func TestValidateTripOverride(t *testing.T) {
	if errs := ValidateTripOverride(&TripOverrideRequest{Status: "realizado", Reason: "cierre manual"}); len(errs) != 0 {
		t.Errorf("valid override rejected: %v", errs)
	}
	if errs := ValidateTripOverride(&TripOverrideRequest{Status: "perdido", Reason: "x12"}); len(errs) == 0 {
		t.Error("unknown status accepted")
	}
}

func hasFieldError(errs ValidationErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
