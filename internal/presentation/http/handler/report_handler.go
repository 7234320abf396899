package handler

import (
	"fmt"
	"time"

	"github.com/fazli/printshop-api/internal/application/service"
	"github.com/fazli/printshop-api/internal/infrastructure/export"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/request"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ReportHandler serves spreadsheet exports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard exports the filtered feed and its summary
func (h *ReportHandler) Dashboard(c *gin.Context) {
	filter, ok := feedFilter(c)
	if !ok {
		return
	}

	buf, err := h.reportService.DashboardWorkbook(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, reportName("dashboard"), export.ContentType, buf.Bytes())
}

// Ledger exports the filtered ledger
func (h *ReportHandler) Ledger(c *gin.Context) {
	var query request.LedgerFilterRequest
	if !bindQuery(c, &query) {
		return
	}
	filter, ok := ledgerFilter(c, query.Person, query.Type, query.From, query.To)
	if !ok {
		return
	}

	buf, err := h.reportService.LedgerWorkbook(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, reportName("ledger"), export.ContentType, buf.Bytes())
}

func reportName(kind string) string {
	return fmt.Sprintf("%s-%s.xlsx", kind, time.Now().Format("20060102"))
}
