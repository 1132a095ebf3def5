package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/repository"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/service"
)

// ProcurementHandler 采购处理器
type ProcurementHandler struct {
	svc *service.ProcurementService
}

// NewProcurementHandler 创建采购处理器
func NewProcurementHandler(svc *service.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{svc: svc}
}

// List 采购记录列表
// GET /api/v1/procurements
func (h *ProcurementHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	procurements, total, err := h.svc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		InternalError(c, "list procurements failed: "+err.Error())
		return
	}

	Success(c, ListResponse{
		Items: procurements,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// ListByProject 项目采购记录
// GET /api/v1/projects/:id/procurements
func (h *ProcurementHandler) ListByProject(c *gin.Context) {
	procurements, err := h.svc.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "project not found")
			return
		}
		InternalError(c, "list procurements failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": procurements})
}

// Create 创建采购记录
// POST /api/v1/procurements
func (h *ProcurementHandler) Create(c *gin.Context) {
	var req service.CreateProcurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	proc, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, proc)
}
