package repository

import (
	"context"
	"errors"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"gorm.io/gorm"
)

// ContractorRepository 承建商仓库
type ContractorRepository struct {
	db *gorm.DB
}

// NewContractorRepository 创建承建商仓库
func NewContractorRepository(db *gorm.DB) *ContractorRepository {
	return &ContractorRepository{db: db}
}

// FindByID 根据ID查找承建商
func (r *ContractorRepository) FindByID(ctx context.Context, id string) (*entity.Contractor, error) {
	var contractor entity.Contractor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&contractor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &contractor, nil
}

// Create 创建承建商
func (r *ContractorRepository) Create(ctx context.Context, contractor *entity.Contractor) error {
	return r.db.WithContext(ctx).Create(contractor).Error
}

// Update 更新承建商
func (r *ContractorRepository) Update(ctx context.Context, contractor *entity.Contractor) error {
	return r.db.WithContext(ctx).Save(contractor).Error
}

// ListActive 获取在册承建商，按评分排序
func (r *ContractorRepository) ListActive(ctx context.Context) ([]entity.Contractor, error) {
	var contractors []entity.Contractor
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("rating DESC, name ASC").
		Find(&contractors).Error
	return contractors, err
}
