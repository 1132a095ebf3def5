package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/repository"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/service"
)

// FeedbackHandler 公众反馈处理器
type FeedbackHandler struct {
	svc *service.FeedbackService
}

// NewFeedbackHandler 创建反馈处理器
func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// Submit 提交反馈
// POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req service.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	fb, err := h.svc.Submit(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			TooManyRequests(c, err.Error())
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "project not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}

	Created(c, fb)
}

// ListByProject 项目公开反馈
// GET /api/v1/projects/:id/feedback
func (h *FeedbackHandler) ListByProject(c *gin.Context) {
	items, err := h.svc.ListPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "project not found")
			return
		}
		InternalError(c, "list feedback failed: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

type verifyFeedbackRequest struct {
	IsPublic *bool `json:"is_public" binding:"required"`
}

// Verify 核实反馈
// POST /api/v1/feedback/:id/verify
func (h *FeedbackHandler) Verify(c *gin.Context) {
	var req verifyFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	fb, err := h.svc.Verify(c.Request.Context(), c.Param("id"), *req.IsPublic)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "feedback not found")
			return
		}
		InternalError(c, "verify feedback failed: "+err.Error())
		return
	}

	Success(c, fb)
}
