package handlers

import (
	"time"

	"transandino/internal/models"
	"transandino/internal/repositories/interfaces"
	"transandino/internal/services"
	"transandino/internal/utils"
	"transandino/internal/validators"
	"transandino/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripHandler struct {
	tripService services.TripService
	wsHandler   *websocket.Handler
}

func NewTripHandler(tripService services.TripService, wsHandler *websocket.Handler) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		wsHandler:   wsHandler,
	}
}

func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req validators.TripCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateTripCreate(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "trip")
		return
	}

	h.wsHandler.SendTripUpdate(trip.ID, "trip_created", map[string]interface{}{
		"folio":  trip.Folio,
		"status": trip.Status,
	})

	utils.CreatedResponse(c, "Trip created successfully", trip)
}

func (h *TripHandler) GetTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "trip")
		return
	}

	utils.SuccessResponse(c, "Trip retrieved successfully", trip)
}

func (h *TripHandler) GetTripByFolio(c *gin.Context) {
	folio := c.Param("folio")
	if folio == "" {
		utils.BadRequestResponse(c, "Folio required")
		return
	}

	trip, err := h.tripService.GetTripByFolio(c.Request.Context(), folio)
	if err != nil {
		respondServiceError(c, err, "trip")
		return
	}

	utils.SuccessResponse(c, "Trip retrieved successfully", trip)
}

func (h *TripHandler) ListTrips(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := tripFilterFromQuery(c)

	trips, total, err := h.tripService.ListTrips(c.Request.Context(), filter, params)
	if err != nil {
		respondServiceError(c, err, "trip")
		return
	}

	utils.SuccessResponseWithMeta(c, "Trips retrieved successfully", trips, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *TripHandler) DeleteTrip(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tripService.DeleteTrip(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "trip")
		return
	}

	utils.SuccessResponse(c, "Trip deleted successfully", nil)
}

// AssignDriver binds or clears the trip's driver, cascading the driver's
// vehicle and semitrailer.
func (h *TripHandler) AssignDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.TripAssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	trip, err := h.tripService.AssignDriver(c.Request.Context(), id, req.DriverID)
	if err != nil {
		respondServiceError(c, err, "trip")
		return
	}

	h.wsHandler.SendTripUpdate(trip.ID, "driver_assigned", map[string]interface{}{
		"driver_id": req.DriverID,
		"status":    trip.Status,
	})

	utils.SuccessResponse(c, "Driver assignment updated successfully", trip)
}

func (h *TripHandler) UpdateStage(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stageID, ok := parseIDParam(c, "stageID")
	if !ok {
		return
	}

	var req validators.StageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStageUpdate(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	trip, err := h.tripService.SetStageState(c.Request.Context(), tripID, stageID, models.StageStatus(req.Status))
	if err != nil {
		respondServiceError(c, err, "trip")
		return
	}

	h.wsHandler.SendTripUpdate(trip.ID, "stage_updated", map[string]interface{}{
		"stage_id": stageID.Hex(),
		"status":   trip.Status,
	})

	utils.SuccessResponse(c, "Stage updated successfully", trip)
}

func (h *TripHandler) ReportIncident(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.IncidentReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateIncidentReport(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	trip, err := h.tripService.ReportIncident(c.Request.Context(), tripID, &req)
	if err != nil {
		respondServiceError(c, err, "trip")
		return
	}

	h.wsHandler.SendTripUpdate(trip.ID, "incident_reported", map[string]interface{}{
		"status":         trip.Status,
		"open_incidents": trip.OpenIncidentCount(),
	})

	utils.CreatedResponse(c, "Incident reported successfully", trip)
}

func (h *TripHandler) UpdateIncidentStatus(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	incidentID, ok := parseIDParam(c, "incidentID")
	if !ok {
		return
	}

	var req validators.IncidentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	trip, err := h.tripService.SetIncidentStatus(c.Request.Context(), tripID, incidentID, models.IncidentStatus(req.Status))
	if err != nil {
		respondServiceError(c, err, "incident")
		return
	}

	utils.SuccessResponse(c, "Incident updated successfully", trip)
}

func (h *TripHandler) ResolveIncident(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	incidentID, ok := parseIDParam(c, "incidentID")
	if !ok {
		return
	}

	var req validators.IncidentResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	trip, err := h.tripService.ResolveIncident(c.Request.Context(), tripID, incidentID, req.ResolutionNotes)
	if err != nil {
		respondServiceError(c, err, "incident")
		return
	}

	h.wsHandler.SendTripUpdate(trip.ID, "incident_resolved", map[string]interface{}{
		"status":         trip.Status,
		"open_incidents": trip.OpenIncidentCount(),
	})

	utils.SuccessResponse(c, "Incident resolved successfully", trip)
}

func (h *TripHandler) CancelTrip(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.TripCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateTripCancel(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	trip, err := h.tripService.CancelTrip(c.Request.Context(), tripID, req.Reason)
	if err != nil {
		respondServiceError(c, err, "trip")
		return
	}

	h.wsHandler.SendTripUpdate(trip.ID, "trip_cancelled", map[string]interface{}{
		"reason": req.Reason,
	})

	utils.SuccessResponse(c, "Trip cancelled successfully", trip)
}

// OverrideStatus is the audited administrative escape hatch around the
// derived lifecycle.
func (h *TripHandler) OverrideStatus(c *gin.Context) {
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.TripOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateTripOverride(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	trip, err := h.tripService.OverrideStatus(c.Request.Context(), tripID, models.TripStatus(req.Status), req.Reason)
	if err != nil {
		respondServiceError(c, err, "trip")
		return
	}

	h.wsHandler.SendTripUpdate(trip.ID, "status_overridden", map[string]interface{}{
		"status": trip.Status,
	})

	utils.SuccessResponse(c, "Trip status overridden successfully", trip)
}

func tripFilterFromQuery(c *gin.Context) *interfaces.TripFilter {
	filter := &interfaces.TripFilter{}

	if raw := c.Query("status"); raw != "" {
		filter.Statuses = []models.TripStatus{models.TripStatus(raw)}
	}
	if raw := c.Query("direction"); raw != "" {
		d := models.TripDirection(raw)
		filter.Direction = &d
	}
	if raw := c.Query("priority"); raw != "" {
		p := models.TripPriority(raw)
		filter.Priority = &p
	}
	if id, err := primitive.ObjectIDFromHex(c.Query("client_id")); err == nil {
		filter.ClientID = &id
	}
	if id, err := primitive.ObjectIDFromHex(c.Query("driver_id")); err == nil {
		filter.DriverID = &id
	}
	if id, err := primitive.ObjectIDFromHex(c.Query("vehicle_id")); err == nil {
		filter.VehicleID = &id
	}
	if id, err := primitive.ObjectIDFromHex(c.Query("location_id")); err == nil {
		filter.LocationID = &id
	}
	if t, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &t
	}
	if t, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &t
	}

	return filter
}
