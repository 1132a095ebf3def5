package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/repository"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/service"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	svc       *service.ProjectService
	exportSvc *service.ExportService
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(svc *service.ProjectService, exportSvc *service.ExportService) *ProjectHandler {
	return &ProjectHandler{svc: svc, exportSvc: exportSvc}
}

// asOf 解析as_of查询参数作为指标计算基准日，缺省取当天
func asOf(c *gin.Context) time.Time {
	if v := c.Query("as_of"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	}
	return time.Now()
}

func projectFilters(c *gin.Context) map[string]interface{} {
	return map[string]interface{}{
		"sector_id":     c.Query("sector_id"),
		"district_id":   c.Query("district_id"),
		"contractor_id": c.Query("contractor_id"),
		"status":        c.Query("status"),
		"keyword":       c.Query("keyword"),
		"sort":          c.Query("sort"),
	}
}

// List 项目列表
// GET /api/v1/projects
func (h *ProjectHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	projects, total, err := h.svc.List(c.Request.Context(), page, pageSize, projectFilters(c), asOf(c))
	if err != nil {
		InternalError(c, "list projects failed: "+err.Error())
		return
	}

	Success(c, ListResponse{
		Items: projects,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// Get 项目详情
// GET /api/v1/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("id"), asOf(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "project not found")
			return
		}
		InternalError(c, "get project failed: "+err.Error())
		return
	}
	Success(c, detail)
}

// Create 创建项目
// POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	project, err := h.svc.Create(c.Request.Context(), &req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, project)
}

// Update 更新项目
// PUT /api/v1/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	project, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "project not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}

	Success(c, project)
}

// Delete 删除项目
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "project not found")
			return
		}
		InternalError(c, "delete project failed: "+err.Error())
		return
	}
	Success(c, nil)
}

// RecordKPI 录入KPI
// POST /api/v1/projects/:id/kpi
func (h *ProjectHandler) RecordKPI(c *gin.Context) {
	var req service.RecordKPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	project, err := h.svc.RecordKPI(c.Request.Context(), c.Param("id"), &req, GetUserID(c), asOf(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "project not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}

	Success(c, project)
}

// KPIHistory KPI历史
// GET /api/v1/projects/:id/kpi-history
func (h *ProjectHandler) KPIHistory(c *gin.Context) {
	history, err := h.svc.KPIHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "project not found")
			return
		}
		InternalError(c, "get kpi history failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": history})
}

// Recompute 重算单个项目状态
// POST /api/v1/projects/:id/recompute
func (h *ProjectHandler) Recompute(c *gin.Context) {
	project, err := h.svc.RecomputeStatus(c.Request.Context(), c.Param("id"), asOf(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "project not found")
			return
		}
		InternalError(c, "recompute status failed: "+err.Error())
		return
	}
	Success(c, project)
}

// RecomputeAll 重算全部未完成项目状态
// POST /api/v1/projects/recompute
func (h *ProjectHandler) RecomputeAll(c *gin.Context) {
	changed, err := h.svc.RecomputeAll(c.Request.Context(), asOf(c))
	if err != nil {
		InternalError(c, "recompute statuses failed: "+err.Error())
		return
	}
	Success(c, gin.H{"changed": changed})
}

// ExportCSV 导出CSV
// GET /api/v1/projects/export/csv
func (h *ProjectHandler) ExportCSV(c *gin.Context) {
	data, filename, err := h.exportSvc.ExportCSV(c.Request.Context(), projectFilters(c), asOf(c))
	if err != nil {
		InternalError(c, "export failed: "+err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportXLSX 导出xlsx
// GET /api/v1/projects/export/xlsx
func (h *ProjectHandler) ExportXLSX(c *gin.Context) {
	f, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), projectFilters(c), asOf(c))
	if err != nil {
		InternalError(c, "export failed: "+err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write export failed: "+err.Error())
	}
}
