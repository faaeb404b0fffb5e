package handlers

import (
	"time"

	"transandino/internal/models"
	"transandino/internal/services"
	"transandino/internal/utils"
	"transandino/internal/validators"
	"transandino/pkg/websocket"

	"github.com/gin-gonic/gin"
)

type FleetHandler struct {
	fleetService      services.FleetService
	assignmentService services.AssignmentService
	wsHandler         *websocket.Handler
}

func NewFleetHandler(
	fleetService services.FleetService,
	assignmentService services.AssignmentService,
	wsHandler *websocket.Handler,
) *FleetHandler {
	return &FleetHandler{
		fleetService:      fleetService,
		assignmentService: assignmentService,
		wsHandler:         wsHandler,
	}
}

// vehicleResponse decorates a vehicle with its derived document alerts.
type vehicleResponse struct {
	*models.Vehicle
	DocumentAlerts models.DocumentAlerts `json:"document_alerts"`
}

func toVehicleResponse(v *models.Vehicle) vehicleResponse {
	return vehicleResponse{Vehicle: v, DocumentAlerts: v.Alerts(time.Now())}
}

// --- Drivers ---

func (h *FleetHandler) CreateDriver(c *gin.Context) {
	var req validators.DriverCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateDriverCreate(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	driver, err := h.fleetService.CreateDriver(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "driver")
		return
	}

	utils.CreatedResponse(c, "Driver created successfully", driver)
}

func (h *FleetHandler) GetDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	driver, err := h.fleetService.GetDriver(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "driver")
		return
	}

	utils.SuccessResponse(c, "Driver retrieved successfully", driver)
}

func (h *FleetHandler) UpdateDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.DriverUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateDriverUpdate(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	driver, err := h.fleetService.UpdateDriver(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "driver")
		return
	}

	utils.SuccessResponse(c, "Driver updated successfully", driver)
}

func (h *FleetHandler) DeleteDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.fleetService.DeleteDriver(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "driver")
		return
	}

	utils.SuccessResponse(c, "Driver deleted successfully", nil)
}

func (h *FleetHandler) ListDrivers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.DriverStatus
	if raw := c.Query("status"); raw != "" {
		s := models.DriverStatus(raw)
		status = &s
	}

	drivers, total, err := h.fleetService.ListDrivers(c.Request.Context(), status, params)
	if err != nil {
		respondServiceError(c, err, "driver")
		return
	}

	utils.SuccessResponseWithMeta(c, "Drivers retrieved successfully", drivers, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetDriverCascade reports what the driver would bring to a trip: the
// vehicle currently bound to them and that vehicle's semitrailer.
func (h *FleetHandler) GetDriverCascade(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resolution, err := h.assignmentService.ResolveCascade(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "driver")
		return
	}

	utils.SuccessResponse(c, "Cascade resolved successfully", resolution)
}

func (h *FleetHandler) GetDriverBusy(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	busy, err := h.assignmentService.DriverIsBusy(c.Request.Context(), id, nil)
	if err != nil {
		respondServiceError(c, err, "driver")
		return
	}

	utils.SuccessResponse(c, "Busy state retrieved successfully", gin.H{"busy": busy})
}

// --- Vehicles ---

func (h *FleetHandler) CreateVehicle(c *gin.Context) {
	var req validators.VehicleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateVehicleCreate(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	vehicle, err := h.fleetService.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "vehicle")
		return
	}

	utils.CreatedResponse(c, "Vehicle created successfully", toVehicleResponse(vehicle))
}

func (h *FleetHandler) GetVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.fleetService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "vehicle")
		return
	}

	utils.SuccessResponse(c, "Vehicle retrieved successfully", toVehicleResponse(vehicle))
}

func (h *FleetHandler) UpdateVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.VehicleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateVehicleUpdate(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	vehicle, err := h.fleetService.UpdateVehicle(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "vehicle")
		return
	}

	utils.SuccessResponse(c, "Vehicle updated successfully", toVehicleResponse(vehicle))
}

func (h *FleetHandler) DeleteVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.fleetService.DeleteVehicle(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "vehicle")
		return
	}

	utils.SuccessResponse(c, "Vehicle deleted successfully", nil)
}

func (h *FleetHandler) ListVehicles(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.VehicleStatus
	if raw := c.Query("status"); raw != "" {
		s := models.VehicleStatus(raw)
		status = &s
	}

	vehicles, total, err := h.fleetService.ListVehicles(c.Request.Context(), status, params)
	if err != nil {
		respondServiceError(c, err, "vehicle")
		return
	}

	responses := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, toVehicleResponse(v))
	}

	utils.SuccessResponseWithMeta(c, "Vehicles retrieved successfully", responses, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// AssignVehicleDriver sets or clears the driver bound to a vehicle.
func (h *FleetHandler) AssignVehicleDriver(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.VehicleAssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	vehicle, err := h.assignmentService.AssignDriverToVehicle(c.Request.Context(), id, req.DriverID)
	if err != nil {
		respondServiceError(c, err, "vehicle")
		return
	}

	h.wsHandler.SendFleetUpdate("driver_assignment", map[string]interface{}{
		"vehicle_id": vehicle.ID.Hex(),
		"driver_id":  req.DriverID,
	})

	utils.SuccessResponse(c, "Driver assignment updated successfully", toVehicleResponse(vehicle))
}

// AssignVehicleSemitrailer sets or clears the semitrailer bound to a vehicle.
func (h *FleetHandler) AssignVehicleSemitrailer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.VehicleAssignSemitrailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	vehicle, err := h.assignmentService.AssignSemitrailerToVehicle(c.Request.Context(), id, req.SemitrailerID)
	if err != nil {
		respondServiceError(c, err, "vehicle")
		return
	}

	h.wsHandler.SendFleetUpdate("semitrailer_assignment", map[string]interface{}{
		"vehicle_id":     vehicle.ID.Hex(),
		"semitrailer_id": req.SemitrailerID,
	})

	utils.SuccessResponse(c, "Semitrailer assignment updated successfully", toVehicleResponse(vehicle))
}

func (h *FleetHandler) GetVehicleBusy(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	busy, err := h.assignmentService.VehicleIsBusy(c.Request.Context(), id, nil)
	if err != nil {
		respondServiceError(c, err, "vehicle")
		return
	}

	utils.SuccessResponse(c, "Busy state retrieved successfully", gin.H{"busy": busy})
}

// --- Semitrailers ---

func (h *FleetHandler) CreateSemitrailer(c *gin.Context) {
	var req validators.SemitrailerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateSemitrailerCreate(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	semitrailer, err := h.fleetService.CreateSemitrailer(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "semitrailer")
		return
	}

	utils.CreatedResponse(c, "Semitrailer created successfully", semitrailer)
}

func (h *FleetHandler) GetSemitrailer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	semitrailer, err := h.fleetService.GetSemitrailer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "semitrailer")
		return
	}

	utils.SuccessResponse(c, "Semitrailer retrieved successfully", semitrailer)
}

func (h *FleetHandler) UpdateSemitrailer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.SemitrailerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateSemitrailerUpdate(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	semitrailer, err := h.fleetService.UpdateSemitrailer(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "semitrailer")
		return
	}

	utils.SuccessResponse(c, "Semitrailer updated successfully", semitrailer)
}

func (h *FleetHandler) DeleteSemitrailer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.fleetService.DeleteSemitrailer(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "semitrailer")
		return
	}

	utils.SuccessResponse(c, "Semitrailer deleted successfully", nil)
}

func (h *FleetHandler) ListSemitrailers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.SemitrailerStatus
	if raw := c.Query("status"); raw != "" {
		s := models.SemitrailerStatus(raw)
		status = &s
	}

	semitrailers, total, err := h.fleetService.ListSemitrailers(c.Request.Context(), status, params)
	if err != nil {
		respondServiceError(c, err, "semitrailer")
		return
	}

	utils.SuccessResponseWithMeta(c, "Semitrailers retrieved successfully", semitrailers, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
