package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"transandino/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func derivationTrip(status models.TripStatus) *models.Trip {
	return &models.Trip{
		ID:     primitive.NewObjectID(),
		Status: status,
		Stages: []models.Stage{
			{ID: primitive.NewObjectID(), Order: 1, Status: models.StageStatusPendiente},
			{ID: primitive.NewObjectID(), Order: 2, Status: models.StageStatusPendiente},
		},
	}
}

func TestDeriveStatus(t *testing.T) {
	now := time.Now()
	driverID := primitive.NewObjectID()

	t.Run("blank plan stays planned", func(t *testing.T) {
		trip := derivationTrip(models.TripStatusPlanificado)
		if got := DeriveStatus(trip); got != models.TripStatusPlanificado {
			t.Errorf("got %s", got)
		}
	})

	t.Run("driver assignment departs", func(t *testing.T) {
		trip := derivationTrip(models.TripStatusPlanificado)
		trip.DriverID = &driverID
		if got := DeriveStatus(trip); got != models.TripStatusEnRuta {
			t.Errorf("got %s", got)
		}
	})

	t.Run("first stage completion departs", func(t *testing.T) {
		trip := derivationTrip(models.TripStatusPlanificado)
		trip.Stages[0].Status = models.StageStatusCompletada
		if got := DeriveStatus(trip); got != models.TripStatusEnRuta {
			t.Errorf("got %s", got)
		}
	})

	t.Run("all stages complete finishes", func(t *testing.T) {
		trip := derivationTrip(models.TripStatusEnRuta)
		for i := range trip.Stages {
			trip.Stages[i].Status = models.StageStatusCompletada
		}
		if got := DeriveStatus(trip); got != models.TripStatusRealizado {
			t.Errorf("got %s", got)
		}
	})

	t.Run("completion dominates open incidents", func(t *testing.T) {
		trip := derivationTrip(models.TripStatusIncidente)
		for i := range trip.Stages {
			trip.Stages[i].Status = models.StageStatusCompletada
		}
		trip.Incidents = []models.Incident{{
			ID: primitive.NewObjectID(), Status: models.IncidentStatusReportado, ReportedAt: now,
		}}
		if got := DeriveStatus(trip); got != models.TripStatusRealizado {
			t.Errorf("got %s", got)
		}
	})

	t.Run("open incident suspends an unfinished trip", func(t *testing.T) {
		trip := derivationTrip(models.TripStatusEnRuta)
		trip.Stages[0].Status = models.StageStatusCompletada
		trip.Incidents = []models.Incident{{
			ID: primitive.NewObjectID(), Status: models.IncidentStatusReportado, ReportedAt: now,
		}}
		if got := DeriveStatus(trip); got != models.TripStatusIncidente {
			t.Errorf("got %s", got)
		}
	})

	t.Run("resolved incidents do not suspend", func(t *testing.T) {
		trip := derivationTrip(models.TripStatusIncidente)
		trip.DriverID = &driverID
		trip.Incidents = []models.Incident{{
			ID: primitive.NewObjectID(), Status: models.IncidentStatusResuelto, ReportedAt: now, ResolvedAt: &now,
		}}
		if got := DeriveStatus(trip); got != models.TripStatusEnRuta {
			t.Errorf("got %s", got)
		}
	})

	t.Run("terminal states are sticky", func(t *testing.T) {
		for _, status := range []models.TripStatus{models.TripStatusRealizado, models.TripStatusCancelado} {
			trip := derivationTrip(status)
			trip.Incidents = []models.Incident{{
				ID: primitive.NewObjectID(), Status: models.IncidentStatusReportado, ReportedAt: now,
			}}
			if got := DeriveStatus(trip); got != status {
				t.Errorf("from %s got %s", status, got)
			}
		}
	})
}

func TestFireTransition(t *testing.T) {
	ctx := context.Background()

	legal := []struct {
		from  models.TripStatus
		event string
		to    models.TripStatus
	}{
		{models.TripStatusPlanificado, EventDepart, models.TripStatusEnRuta},
		{models.TripStatusPlanificado, EventReportIncident, models.TripStatusIncidente},
		{models.TripStatusEnRuta, EventReportIncident, models.TripStatusIncidente},
		{models.TripStatusIncidente, EventResolveIncident, models.TripStatusEnRuta},
		{models.TripStatusEnRuta, EventComplete, models.TripStatusRealizado},
		{models.TripStatusIncidente, EventComplete, models.TripStatusRealizado},
		{models.TripStatusEnRuta, EventReturnToPlan, models.TripStatusPlanificado},
		{models.TripStatusPlanificado, EventCancel, models.TripStatusCancelado},
		{models.TripStatusEnRuta, EventCancel, models.TripStatusCancelado},
		{models.TripStatusIncidente, EventCancel, models.TripStatusCancelado},
	}
	for _, tt := range legal {
		got, err := fireTransition(ctx, tt.from, tt.event)
		if err != nil {
			t.Errorf("%s from %s: %v", tt.event, tt.from, err)
			continue
		}
		if got != tt.to {
			t.Errorf("%s from %s = %s, want %s", tt.event, tt.from, got, tt.to)
		}
	}

	illegal := []struct {
		from  models.TripStatus
		event string
	}{
		{models.TripStatusPlanificado, EventComplete},
		{models.TripStatusRealizado, EventCancel},
		{models.TripStatusCancelado, EventDepart},
		{models.TripStatusIncidente, EventDepart},
	}
	for _, tt := range illegal {
		if _, err := fireTransition(ctx, tt.from, tt.event); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s from %s: expected ErrInvalidTransition, got %v", tt.event, tt.from, err)
		}
	}
}
