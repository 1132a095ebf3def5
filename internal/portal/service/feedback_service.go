package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/samidhothar/SafeProvinceMonitor/internal/config"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/repository"
)

// ErrRateLimited 反馈提交超过限流阈值
var ErrRateLimited = errors.New("too many submissions, try again later")

// FeedbackService 公众反馈服务
type FeedbackService struct {
	feedbackRepo *repository.FeedbackRepository
	projectRepo  *repository.ProjectRepository
	rdb          *redis.Client
	cfg          *config.Config
}

// NewFeedbackService 创建反馈服务
func NewFeedbackService(
	feedbackRepo *repository.FeedbackRepository,
	projectRepo *repository.ProjectRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		projectRepo:  projectRepo,
		rdb:          rdb,
		cfg:          cfg,
	}
}

// SubmitFeedbackRequest 提交反馈请求
type SubmitFeedbackRequest struct {
	ProjectID    string `json:"project_id" binding:"required"`
	CitizenName  string `json:"citizen_name" binding:"required,max=200"`
	CitizenEmail string `json:"citizen_email" binding:"omitempty,email"`
	CitizenPhone string `json:"citizen_phone"`
	Rating       int    `json:"rating" binding:"required"`
	Comment      string `json:"comment" binding:"required"`
}

// Submit 提交公众反馈。按来源IP每小时限流，新反馈默认公开、未核实。
func (s *FeedbackService) Submit(ctx context.Context, req *SubmitFeedbackRequest, ipAddress, userAgent string) (*entity.Feedback, error) {
	if req.Rating < entity.FeedbackRatingMin || req.Rating > entity.FeedbackRatingMax {
		return nil, fmt.Errorf("rating must be between %d and %d", entity.FeedbackRatingMin, entity.FeedbackRatingMax)
	}
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	if err := s.checkRateLimit(ctx, ipAddress); err != nil {
		return nil, err
	}

	fb := &entity.Feedback{
		ID:           uuid.New().String()[:32],
		ProjectID:    req.ProjectID,
		CitizenName:  req.CitizenName,
		CitizenEmail: req.CitizenEmail,
		CitizenPhone: req.CitizenPhone,
		Rating:       req.Rating,
		Comment:      req.Comment,
		IsPublic:     true,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		CreatedAt:    time.Now(),
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return fb, nil
}

// checkRateLimit 基于Redis计数器的IP限流，窗口一小时
func (s *FeedbackService) checkRateLimit(ctx context.Context, ipAddress string) error {
	if s.rdb == nil || ipAddress == "" {
		return nil
	}
	key := "feedback:ratelimit:" + ipAddress
	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return nil // Redis不可用时放行
	}
	if count == 1 {
		s.rdb.Expire(ctx, key, time.Hour)
	}
	if count > int64(s.cfg.Feedback.RateLimitPerHour) {
		return ErrRateLimited
	}
	return nil
}

// ListPublic 获取项目的公开反馈
func (s *FeedbackService) ListPublic(ctx context.Context, projectID string) ([]entity.Feedback, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListPublicByProject(ctx, projectID)
}

// Verify 核实反馈并设置可见性
func (s *FeedbackService) Verify(ctx context.Context, id string, isPublic bool) (*entity.Feedback, error) {
	fb, err := s.feedbackRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fb.IsVerified = true
	fb.IsPublic = isPublic
	if err := s.feedbackRepo.Update(ctx, fb); err != nil {
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	return fb, nil
}
