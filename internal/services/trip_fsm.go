package services

import (
	"context"
	"errors"

	"transandino/internal/models"

	"github.com/looplab/fsm"
)

// Lifecycle events. Each maps one derivation outcome onto the status graph;
// the fsm layer rejects combinations the graph does not allow.
const (
	EventDepart          = "depart"
	EventReportIncident  = "report_incident"
	EventResolveIncident = "resolve_incident"
	EventComplete        = "complete"
	EventCancel          = "cancel"
	EventReturnToPlan    = "return_to_plan"
)

func tripEvents() []fsm.EventDesc {
	return []fsm.EventDesc{
		{
			Name: EventDepart,
			Src:  []string{string(models.TripStatusPlanificado)},
			Dst:  string(models.TripStatusEnRuta),
		},
		{
			Name: EventReportIncident,
			Src:  []string{string(models.TripStatusEnRuta), string(models.TripStatusPlanificado)},
			Dst:  string(models.TripStatusIncidente),
		},
		{
			Name: EventResolveIncident,
			Src:  []string{string(models.TripStatusIncidente)},
			Dst:  string(models.TripStatusEnRuta),
		},
		{
			Name: EventComplete,
			Src:  []string{string(models.TripStatusEnRuta), string(models.TripStatusIncidente)},
			Dst:  string(models.TripStatusRealizado),
		},
		{
			// Unassigning the driver before any stage completed walks the
			// departure back.
			Name: EventReturnToPlan,
			Src:  []string{string(models.TripStatusEnRuta)},
			Dst:  string(models.TripStatusPlanificado),
		},
		{
			Name: EventCancel,
			Src: []string{
				string(models.TripStatusPlanificado),
				string(models.TripStatusEnRuta),
				string(models.TripStatusIncidente),
			},
			Dst: string(models.TripStatusCancelado),
		},
	}
}

func newTripFSM(current models.TripStatus) *fsm.FSM {
	return fsm.NewFSM(string(current), tripEvents(), fsm.Callbacks{})
}

// fireTransition validates that event is legal from the trip's current
// status and returns the resulting status. A NoTransitionError (same-state
// event) is not a failure; everything else maps to ErrInvalidTransition.
func fireTransition(ctx context.Context, current models.TripStatus, event string) (models.TripStatus, error) {
	machine := newTripFSM(current)
	if err := machine.Event(ctx, event); err != nil {
		if !isRealFSMError(err) {
			return models.TripStatus(machine.Current()), nil
		}
		return current, ErrInvalidTransition
	}
	return models.TripStatus(machine.Current()), nil
}

func isRealFSMError(err error) bool {
	var noTransition fsm.NoTransitionError
	var canceled fsm.CanceledError
	if errors.As(err, &noTransition) || errors.As(err, &canceled) {
		return false
	}
	return err != nil
}

// DeriveStatus recomputes a trip's status from its full embedded state. It is
// the single source of truth: mutation paths never set Status directly, they
// mutate stages or incidents and re-derive. Terminal states are sticky and
// only the cancel and override paths may leave or enter them.
func DeriveStatus(trip *models.Trip) models.TripStatus {
	if trip.Status.IsTerminal() {
		return trip.Status
	}
	// Completion dominates: once every stage is done the trip is realizado,
	// open incidents notwithstanding.
	if trip.AllStagesCompleted() {
		return models.TripStatusRealizado
	}
	if trip.OpenIncidentCount() > 0 {
		return models.TripStatusIncidente
	}
	if trip.DriverID != nil || trip.FirstStageCompleted() {
		return models.TripStatusEnRuta
	}
	return models.TripStatusPlanificado
}

// eventFor names the transition from one status to another, or "" when the
// statuses are equal (no event needed).
func eventFor(from, to models.TripStatus) (string, error) {
	if from == to {
		return "", nil
	}
	switch to {
	case models.TripStatusPlanificado:
		return EventReturnToPlan, nil
	case models.TripStatusEnRuta:
		if from == models.TripStatusIncidente {
			return EventResolveIncident, nil
		}
		return EventDepart, nil
	case models.TripStatusIncidente:
		return EventReportIncident, nil
	case models.TripStatusRealizado:
		return EventComplete, nil
	case models.TripStatusCancelado:
		return EventCancel, nil
	}
	return "", ErrInvalidTransition
}

// applyDerivedStatus runs the derivation and, when the status must change,
// validates the change against the lifecycle graph before committing it onto
// the trip.
func applyDerivedStatus(ctx context.Context, trip *models.Trip) (changed bool, err error) {
	target := DeriveStatus(trip)
	if target == trip.Status {
		return false, nil
	}
	event, err := eventFor(trip.Status, target)
	if err != nil {
		return false, err
	}
	next, err := fireTransition(ctx, trip.Status, event)
	if err != nil {
		return false, err
	}
	trip.Status = next
	return true, nil
}
