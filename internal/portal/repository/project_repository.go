package repository

import (
	"context"
	"errors"
	"time"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"gorm.io/gorm"
)

// ProjectRepository 项目仓库
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository 创建项目仓库
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindByID 根据ID查找项目
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Preload("Sector").
		Preload("District").
		Preload("Contractor").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// Create 创建项目
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update 更新项目
func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete 软删除项目
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Project{}).Error
}

// List 分页获取项目列表
func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Project, int64, error) {
	var projects []entity.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Project{})
	query = applyProjectFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if sort, ok := filters["sort"].(string); ok {
		switch sort {
		case "start_date":
			order = "start_date ASC"
		case "progress":
			order = "progress_percent DESC"
		}
	}

	err := query.
		Preload("Sector").
		Preload("District").
		Preload("Contractor").
		Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&projects).Error

	return projects, total, err
}

// ListFiltered 获取过滤后的全部项目（导出用，不分页）
func (r *ProjectRepository) ListFiltered(ctx context.Context, filters map[string]interface{}) ([]entity.Project, error) {
	var projects []entity.Project
	query := r.db.WithContext(ctx).Model(&entity.Project{})
	query = applyProjectFilters(query, filters)
	err := query.
		Preload("Sector").
		Preload("District").
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// ListAll 获取全部项目快照（统计用）
func (r *ProjectRepository) ListAll(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).Find(&projects).Error
	return projects, err
}

// ListActive 获取未完成的项目（状态重算用）
func (r *ProjectRepository) ListActive(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Where("status <> ?", entity.ProjectStatusComplete).
		Find(&projects).Error
	return projects, err
}

// ListWithLocation 获取带坐标的项目（地图用）
func (r *ProjectRepository) ListWithLocation(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Preload("Sector").
		Preload("District").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&projects).Error
	return projects, err
}

// ListCreatedSince 获取某时间之后创建的项目
func (r *ProjectRepository) ListCreatedSince(ctx context.Context, since time.Time, limit int) ([]entity.Project, error) {
	var projects []entity.Project
	err := r.db.WithContext(ctx).
		Preload("Sector").
		Preload("District").
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

func applyProjectFilters(query *gorm.DB, filters map[string]interface{}) *gorm.DB {
	if sectorID, ok := filters["sector_id"].(string); ok && sectorID != "" {
		query = query.Where("sector_id = ?", sectorID)
	}
	if districtID, ok := filters["district_id"].(string); ok && districtID != "" {
		query = query.Where("district_id = ?", districtID)
	}
	if contractorID, ok := filters["contractor_id"].(string); ok && contractorID != "" {
		query = query.Where("contractor_id = ?", contractorID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	return query
}
