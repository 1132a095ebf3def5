package repository

import (
	"context"
	"errors"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"gorm.io/gorm"
)

// ProcurementRepository 采购记录仓库
type ProcurementRepository struct {
	db *gorm.DB
}

// NewProcurementRepository 创建采购记录仓库
func NewProcurementRepository(db *gorm.DB) *ProcurementRepository {
	return &ProcurementRepository{db: db}
}

// FindByID 根据ID查找采购记录
func (r *ProcurementRepository) FindByID(ctx context.Context, id string) (*entity.Procurement, error) {
	var proc entity.Procurement
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Contractor").
		Where("id = ?", id).
		First(&proc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &proc, nil
}

// Create 创建采购记录
func (r *ProcurementRepository) Create(ctx context.Context, proc *entity.Procurement) error {
	return r.db.WithContext(ctx).Create(proc).Error
}

// Update 更新采购记录
func (r *ProcurementRepository) Update(ctx context.Context, proc *entity.Procurement) error {
	return r.db.WithContext(ctx).Save(proc).Error
}

// List 分页获取采购记录，按授标日期倒序
func (r *ProcurementRepository) List(ctx context.Context, page, pageSize int) ([]entity.Procurement, int64, error) {
	var procs []entity.Procurement
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Procurement{}).Where("is_active = ?", true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Project").
		Preload("Contractor").
		Order("award_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&procs).Error

	return procs, total, err
}

// ListByProject 获取项目的采购记录
func (r *ProcurementRepository) ListByProject(ctx context.Context, projectID string) ([]entity.Procurement, error) {
	var procs []entity.Procurement
	err := r.db.WithContext(ctx).
		Preload("Contractor").
		Where("project_id = ?", projectID).
		Order("award_date DESC").
		Find(&procs).Error
	return procs, err
}
