package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/service"
)

// CatalogHandler 目录处理器
type CatalogHandler struct {
	svc *service.CatalogService
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Sectors 板块列表
// GET /api/v1/sectors
func (h *CatalogHandler) Sectors(c *gin.Context) {
	sectors, err := h.svc.ListSectors(c.Request.Context())
	if err != nil {
		InternalError(c, "list sectors failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": sectors})
}

// Districts 行政区列表
// GET /api/v1/districts
func (h *CatalogHandler) Districts(c *gin.Context) {
	districts, err := h.svc.ListDistricts(c.Request.Context())
	if err != nil {
		InternalError(c, "list districts failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": districts})
}

// Contractors 承建商列表
// GET /api/v1/contractors
func (h *CatalogHandler) Contractors(c *gin.Context) {
	contractors, err := h.svc.ListContractors(c.Request.Context())
	if err != nil {
		InternalError(c, "list contractors failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": contractors})
}

// CreateContractor 创建承建商
// POST /api/v1/contractors
func (h *CatalogHandler) CreateContractor(c *gin.Context) {
	var req service.CreateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	contractor, err := h.svc.CreateContractor(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, contractor)
}
