package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fazli/printshop-api/internal/domain/entity"
	"github.com/fazli/printshop-api/internal/domain/repository"
	"github.com/fazli/printshop-api/pkg/apperror"
	"github.com/fazli/printshop-api/pkg/money"
	"github.com/fazli/printshop-api/pkg/printer"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const receiptDateLayout = "2006-01-02 15:04"

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	productRepo repository.ProductRepository
	header      entity.ReceiptHeader
	printerType string
	width       int
	log         *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	productRepo repository.ProductRepository,
	header entity.ReceiptHeader,
	printerType string,
	width int,
	log *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		productRepo: productRepo,
		header:      header,
		printerType: printerType,
		width:       width,
		log:         log.Named("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// TestPrint sends a test page to the printer.
// The receipt is returned even when printing fails so callers can show it.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:   s.header,
		OrderNo:  "TEST-001",
		Date:     "Test Date",
		Customer: "Printer Test",
		Items: []entity.ReceiptItem{
			{Category: "Card Printing", Qty: 100, UnitPrice: 5, Total: 500},
			{Category: "Banner Printing", Qty: 1, UnitPrice: 1500, Total: 1500},
		},
		Amount:        2000,
		Advance:       500,
		Payments:      []entity.ReceiptPayment{{Date: "Test Date", Amount: 500}},
		Remaining:     1000,
		PaymentStatus: "partial",
		WorkStatus:    "pending",
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintProductReceipt builds the receipt of an order and prints it.
func (s *PrinterService) PrintProductReceipt(ctx context.Context, productID uuid.UUID) (*entity.Receipt, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	receipt := BuildReceipt(product, s.header)

	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		s.log.Warn("receipt print failed", zap.String("product_id", productID.String()), zap.Error(err))
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// BuildReceipt composes the printable view of an order.
func BuildReceipt(p *entity.Product, header entity.ReceiptHeader) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:        header,
		OrderNo:       strings.ToUpper(p.ID.String()[:8]),
		Date:          p.Date.Format(receiptDateLayout),
		Customer:      p.Name,
		Phone:         p.Phone,
		Amount:        money.Float(p.Amount),
		Advance:       money.Float(p.AdvanceAmount),
		Remaining:     money.Float(p.RemainingAmount),
		PaymentStatus: p.PaymentStatus.String(),
		WorkStatus:    p.WorkStatus.String(),
	}

	for _, item := range p.Buy {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Category:  item.Category,
			Qty:       item.Qty,
			UnitPrice: money.Float(item.UnitPrice),
			Total:     money.Float(item.Total),
		})
	}
	for _, pp := range p.PartialPayments {
		receipt.Payments = append(receipt.Payments, entity.ReceiptPayment{
			Date:   pp.Date.Format(receiptDateLayout),
			Amount: money.Float(pp.Amount),
		})
	}
	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	amt := func(v float64) string { return fmt.Sprintf("%.2f", v) }
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.SizeDouble).
		Line(r.Header.ShopName).
		Size(printer.SizeNormal).
		Bold(false)
	for _, line := range []string{r.Header.Address, r.Header.Phone} {
		if line != "" {
			doc.Line(line)
		}
	}

	doc.Align(printer.AlignLeft).
		Rule('-').
		KeyValue("Order:", r.OrderNo).
		KeyValue("Date:", r.Date).
		KeyValue("Customer:", r.Customer)
	if r.Phone != "" {
		doc.KeyValue("Phone:", r.Phone)
	}
	doc.Rule('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Qty, item.Category, amt(item.Total))
		if item.Qty > 1 {
			doc.Linef("  @ %s each", amt(item.UnitPrice))
		}
	}
	if len(r.Items) > 0 {
		doc.Rule('-')
	}

	doc.Bold(true).KeyValue("TOTAL:", amt(r.Amount)).Bold(false)
	if r.Advance > 0 {
		doc.KeyValue("Advance:", amt(r.Advance))
	}
	for _, p := range r.Payments {
		doc.KeyValue("Paid "+p.Date+":", amt(p.Amount))
	}
	doc.Bold(true).KeyValue("Remaining:", amt(r.Remaining)).Bold(false).
		KeyValue("Status:", strings.ToUpper(r.PaymentStatus)).
		Rule('-')

	doc.Align(printer.AlignCenter).
		Blank(1).
		Line("Thank you for your business!").
		Align(printer.AlignLeft).
		Blank(4).
		Cut(true)

	return doc.Bytes()
}
