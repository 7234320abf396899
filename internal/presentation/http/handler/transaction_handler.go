package handler

import (
	"net/http"

	"github.com/fazli/printshop-api/internal/application/service"
	"github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/request"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/response"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles cash entry HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List handles listing transactions
func (h *TransactionHandler) List(c *gin.Context) {
	var filter request.TransactionFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	var errs fieldErrors
	params := &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Type:       errs.transactionType("type", &filter.Type),
		Search:     filter.Search,
		ManualOnly: filter.Manual,
	}
	if err := errs.err(); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Transactions retrieved successfully", result)
}

// Get handles getting a single transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "transaction")
	if !ok {
		return
	}

	tx, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", tx)
}

// Create handles recording a manual cash entry
func (h *TransactionHandler) Create(c *gin.Context) {
	input, ok := transactionInput(c)
	if !ok {
		return
	}

	tx, err := h.transactionService.CreateTransaction(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction created successfully", tx)
}

// Update handles updating a manual cash entry
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "transaction")
	if !ok {
		return
	}

	input, ok := transactionInput(c)
	if !ok {
		return
	}

	tx, err := h.transactionService.UpdateTransaction(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction updated successfully", tx)
}

// Delete handles deleting a manual cash entry
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "transaction")
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Reconcile handles rebuilding the order mirrors
func (h *TransactionHandler) Reconcile(c *gin.Context) {
	report, err := h.transactionService.Reconcile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reconciliation completed", report)
}

func transactionInput(c *gin.Context) (*service.TransactionInput, bool) {
	var req request.TransactionRequest
	if !bindJSON(c, &req) {
		return nil, false
	}

	var errs fieldErrors
	input := &service.TransactionInput{
		Name:          req.Name,
		Buy:           req.Buy,
		Amount:        req.Amount.Ptr(),
		AdvanceAmount: req.AdvanceAmount.Ptr(),
		Type:          errs.transactionType("type", req.Type),
		Status:        errs.transactionStatus("status", req.Status),
		Owner:         req.Owner,
		Date:          errs.date("date", req.Date),
	}
	if err := errs.err(); err != nil {
		response.Error(c, err)
		return nil, false
	}
	return input, true
}
