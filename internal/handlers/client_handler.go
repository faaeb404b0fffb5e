package handlers

import (
	"transandino/internal/services"
	"transandino/internal/utils"
	"transandino/internal/validators"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService services.ClientService
}

func NewClientHandler(clientService services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req validators.ClientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateClientCreate(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "client")
		return
	}

	utils.CreatedResponse(c, "Client created successfully", client)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "client")
		return
	}

	utils.SuccessResponse(c, "Client retrieved successfully", client)
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req validators.ClientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateClientUpdate(&req); len(errs) > 0 {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "client")
		return
	}

	utils.SuccessResponse(c, "Client updated successfully", client)
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "client")
		return
	}

	utils.SuccessResponse(c, "Client deleted successfully", nil)
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	clients, total, err := h.clientService.ListClients(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "client")
		return
	}

	utils.SuccessResponseWithMeta(c, "Clients retrieved successfully", clients, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
