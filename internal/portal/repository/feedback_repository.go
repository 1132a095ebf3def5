package repository

import (
	"context"
	"errors"
	"time"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"gorm.io/gorm"
)

// FeedbackRepository 公众反馈仓库
type FeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository 创建公众反馈仓库
func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// FindByID 根据ID查找反馈
func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*entity.Feedback, error) {
	var fb entity.Feedback
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&fb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fb, nil
}

// Create 创建反馈
func (r *FeedbackRepository) Create(ctx context.Context, fb *entity.Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

// Update 更新反馈
func (r *FeedbackRepository) Update(ctx context.Context, fb *entity.Feedback) error {
	return r.db.WithContext(ctx).Save(fb).Error
}

// ListPublicByProject 获取项目的公开反馈
func (r *FeedbackRepository) ListPublicByProject(ctx context.Context, projectID string) ([]entity.Feedback, error) {
	var feedback []entity.Feedback
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND is_public = ?", projectID, true).
		Order("created_at DESC").
		Find(&feedback).Error
	return feedback, err
}

// ListRecentPublic 获取某时间之后的公开反馈
func (r *FeedbackRepository) ListRecentPublic(ctx context.Context, since time.Time, limit int) ([]entity.Feedback, error) {
	var feedback []entity.Feedback
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("created_at >= ? AND is_public = ?", since, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&feedback).Error
	return feedback, err
}
