package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/service"
)

// DashboardHandler 看板处理器
type DashboardHandler struct {
	svc *service.DashboardService
}

// NewDashboardHandler 创建看板处理器
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats 门户总览统计
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.GetPortalStats(c.Request.Context())
	if err != nil {
		InternalError(c, "get stats failed: "+err.Error())
		return
	}
	Success(c, stats)
}

// FinanceSummary 预算汇总
// GET /api/v1/dashboard/finance-summary
func (h *DashboardHandler) FinanceSummary(c *gin.Context) {
	summary, err := h.svc.GetFinanceSummary(c.Request.Context())
	if err != nil {
		InternalError(c, "get finance summary failed: "+err.Error())
		return
	}
	Success(c, summary)
}

// Map 地图点位
// GET /api/v1/dashboard/map
func (h *DashboardHandler) Map(c *gin.Context) {
	points, err := h.svc.GetMapData(c.Request.Context())
	if err != nil {
		InternalError(c, "get map data failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": points})
}

// Activity 最近动态
// GET /api/v1/dashboard/activity
func (h *DashboardHandler) Activity(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	items, err := h.svc.GetRecentActivity(c.Request.Context(), days, limit)
	if err != nil {
		InternalError(c, "get activity failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}
