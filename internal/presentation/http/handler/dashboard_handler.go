package handler

import (
	"github.com/fazli/printshop-api/internal/application/service"
	"github.com/fazli/printshop-api/internal/domain/accounting"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/request"
	"github.com/fazli/printshop-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles the merged feed with its summary
func (h *DashboardHandler) Get(c *gin.Context) {
	filter, ok := feedFilter(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", dashboard)
}

func feedFilter(c *gin.Context) (accounting.FeedFilter, bool) {
	var query request.FeedFilterRequest
	if !bindQuery(c, &query) {
		return accounting.FeedFilter{}, false
	}

	var errs fieldErrors
	filter := accounting.FeedFilter{
		Type:   errs.transactionType("type", &query.Type),
		Person: query.Person,
		Owner:  query.Owner,
		From:   errs.isoDate("from", query.From),
		To:     errs.isoDate("to", query.To),
	}
	if err := errs.err(); err != nil {
		response.Error(c, err)
		return filter, false
	}
	return filter, true
}
