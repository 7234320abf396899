package handler

import (
	"github.com/fazli/printshop-api/internal/application/service"
	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/request"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/response"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// LedgerHandler handles ledger HTTP requests
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// List handles listing ledger entries with the totals of the whole filtered set
func (h *LedgerHandler) List(c *gin.Context) {
	var query request.LedgerFilterRequest
	if !bindQuery(c, &query) {
		return
	}

	filter, ok := ledgerFilter(c, query.Person, query.Type, query.From, query.To)
	if !ok {
		return
	}

	page, err := h.ledgerService.ListEntries(c.Request.Context(), filter, &pagination.PaginationParams{
		Page:    query.Page,
		PerPage: query.PerPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger entries retrieved successfully", page)
}

// Get handles getting a single ledger entry
func (h *LedgerHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "ledger entry")
	if !ok {
		return
	}

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger entry retrieved successfully", entry)
}

// Create handles creating a ledger entry
func (h *LedgerHandler) Create(c *gin.Context) {
	input, ok := ledgerInput(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ledger entry created successfully", entry)
}

// Update handles updating a ledger entry
func (h *LedgerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "ledger entry")
	if !ok {
		return
	}

	input, ok := ledgerInput(c)
	if !ok {
		return
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger entry updated successfully", entry)
}

// Delete handles deleting a ledger entry
func (h *LedgerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "ledger entry")
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func ledgerInput(c *gin.Context) (*service.LedgerInput, bool) {
	var req request.LedgerRequest
	if !bindJSON(c, &req) {
		return nil, false
	}

	var errs fieldErrors
	input := &service.LedgerInput{
		Type:        errs.ledgerType("type", req.Type),
		Amount:      req.Amount.Ptr(),
		Person:      req.Person,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	}
	if err := errs.err(); err != nil {
		response.Error(c, err)
		return nil, false
	}
	return input, true
}

func ledgerFilter(c *gin.Context, person, ledgerType, from, to string) (accounting.LedgerFilter, bool) {
	var errs fieldErrors
	filter := accounting.LedgerFilter{
		Person: person,
		Type:   errs.ledgerType("type", &ledgerType),
		From:   errs.isoDate("from", from),
		To:     errs.isoDate("to", to),
	}
	if err := errs.err(); err != nil {
		response.Error(c, err)
		return filter, false
	}
	return filter, true
}
