package handler

import (
	"fmt"
	"net/http"

	"github.com/fazli/printshop-api/internal/application/service"
	"github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/request"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/response"
	"github.com/fazli/printshop-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles order-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	printerService *service.PrinterService
}

// NewProductHandler creates a new order handler
func NewProductHandler(productService *service.ProductService, printerService *service.PrinterService) *ProductHandler {
	return &ProductHandler{productService: productService, printerService: printerService}
}

// List handles listing orders
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	var errs fieldErrors
	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:        filter.Search,
		PaymentStatus: errs.paymentStatus("payment_status", filter.PaymentStatus),
		Owner:         filter.Owner,
	}
	if filter.WorkStatus != "" {
		params.WorkStatus = errs.workStatus("work_status", &filter.WorkStatus)
	}
	if err := errs.err(); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Products retrieved successfully", result)
}

// Create handles creating an order
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	var errs fieldErrors
	input := &service.CreateProductInput{
		Name:            req.Name,
		Phone:           req.Phone,
		Buy:             buyItems(req.Buy),
		Amount:          req.Amount.Ptr(),
		AdvanceAmount:   req.AdvanceAmount.Ptr(),
		PartialPayments: errs.payments(req.PartialPayments),
		WorkStatus:      errs.workStatus("workStatus", req.WorkStatus),
		Date:            errs.date("date", req.Date),
	}
	if err := errs.err(); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single order
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating an order
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	var errs fieldErrors
	input := &service.UpdateProductInput{
		ID:              id,
		Name:            req.Name,
		Phone:           req.Phone,
		Buy:             buyItems(req.Buy),
		Amount:          req.Amount.Ptr(),
		AdvanceAmount:   req.AdvanceAmount.Ptr(),
		PartialPayments: errs.payments(req.PartialPayments),
		WorkStatus:      errs.workStatus("workStatus", req.WorkStatus),
		Date:            errs.date("date", req.Date),
	}
	if err := errs.err(); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting an order
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// SetWorkStatus sets the work status from {status}, or toggles it when the body is empty.
func (h *ProductHandler) SetWorkStatus(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	var req request.WorkStatusRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	var errs fieldErrors
	status := errs.workStatus("status", req.Status)
	if err := errs.err(); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.SetWorkStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work status updated successfully", product)
}

// AddPayment handles appending an installment
func (h *ProductHandler) AddPayment(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	var errs fieldErrors
	date := errs.date("date", req.Date)
	if err := errs.err(); err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.AddPayment(c.Request.Context(), id, service.PaymentInput{
		Amount: req.Amount.Value,
		Date:   date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", product)
}

// MarkPaid handles settling the remaining balance
func (h *ProductHandler) MarkPaid(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.productService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product marked as paid", product)
}

// UndoPayment handles dropping every installment
func (h *ProductHandler) UndoPayment(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	product, err := h.productService.UndoPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments cleared successfully", product)
}

// PrintReceipt prints the order receipt. A printer failure still returns the receipt.
func (h *ProductHandler) PrintReceipt(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintProductReceipt(c.Request.Context(), id)
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}

// buyItems converts requested line items. A nil list stays nil so updates keep the stored items.
func buyItems(in request.BuyList) []service.BuyItemInput {
	if in == nil {
		return nil
	}
	out := make([]service.BuyItemInput, 0, len(in))
	for _, item := range in {
		out = append(out, service.BuyItemInput{
			Category:  item.Category,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice.Value,
		})
	}
	return out
}

func (f *fieldErrors) payments(in []request.PaymentRequest) []service.PaymentInput {
	if in == nil {
		return nil
	}
	out := make([]service.PaymentInput, 0, len(in))
	for i, p := range in {
		out = append(out, service.PaymentInput{
			Amount: p.Amount.Value,
			Date:   f.date(fmt.Sprintf("partialPayments[%d].date", i), p.Date),
		})
	}
	return out
}
