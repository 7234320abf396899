package handler

import (
	"net/http"

	"github.com/fazli/printshop-api/internal/application/service"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/request"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/response"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// RemainingHandler handles balance note HTTP requests
type RemainingHandler struct {
	remainingService *service.RemainingService
}

// NewRemainingHandler creates a new balance note handler
func NewRemainingHandler(remainingService *service.RemainingService) *RemainingHandler {
	return &RemainingHandler{remainingService: remainingService}
}

// List handles listing balance notes
func (h *RemainingHandler) List(c *gin.Context) {
	var filter request.RemainingFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}
	result, err := h.remainingService.ListRecords(c.Request.Context(), params, filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Records retrieved successfully", result)
}

// Get handles getting a single balance note
func (h *RemainingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "record")
	if !ok {
		return
	}

	record, err := h.remainingService.GetRecord(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Record retrieved successfully", record)
}

// Create handles creating a balance note
func (h *RemainingHandler) Create(c *gin.Context) {
	var req request.RemainingRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.remainingService.CreateRecord(c.Request.Context(), remainingInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Record created successfully", record)
}

// Update handles updating a balance note
func (h *RemainingHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "record")
	if !ok {
		return
	}

	var req request.RemainingRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.remainingService.UpdateRecord(c.Request.Context(), id, remainingInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Record updated successfully", record)
}

// Delete handles deleting a balance note
func (h *RemainingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "record")
	if !ok {
		return
	}

	if err := h.remainingService.DeleteRecord(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func remainingInput(req *request.RemainingRequest) *service.RemainingInput {
	return &service.RemainingInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Amount:        req.Amount.Ptr(),
		AdvanceAmount: req.AdvanceAmount.Ptr(),
		Note:          req.Note,
	}
}
