package repository

import (
	"context"
	"errors"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"gorm.io/gorm"
)

// SectorRepository 板块仓库
type SectorRepository struct {
	db *gorm.DB
}

// NewSectorRepository 创建板块仓库
func NewSectorRepository(db *gorm.DB) *SectorRepository {
	return &SectorRepository{db: db}
}

// FindByID 根据ID查找板块
func (r *SectorRepository) FindByID(ctx context.Context, id string) (*entity.Sector, error) {
	var sector entity.Sector
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sector).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sector, nil
}

// Create 创建板块
func (r *SectorRepository) Create(ctx context.Context, sector *entity.Sector) error {
	return r.db.WithContext(ctx).Create(sector).Error
}

// ListAll 获取全部板块，按名称排序
func (r *SectorRepository) ListAll(ctx context.Context) ([]entity.Sector, error) {
	var sectors []entity.Sector
	err := r.db.WithContext(ctx).Order("name ASC").Find(&sectors).Error
	return sectors, err
}

// ListWithProjects 获取全部板块及其项目，空板块也在列表中
func (r *SectorRepository) ListWithProjects(ctx context.Context) ([]entity.Sector, error) {
	var sectors []entity.Sector
	err := r.db.WithContext(ctx).
		Preload("Projects").
		Order("name ASC").
		Find(&sectors).Error
	return sectors, err
}

// DistrictRepository 行政区仓库
type DistrictRepository struct {
	db *gorm.DB
}

// NewDistrictRepository 创建行政区仓库
func NewDistrictRepository(db *gorm.DB) *DistrictRepository {
	return &DistrictRepository{db: db}
}

// FindByID 根据ID查找行政区
func (r *DistrictRepository) FindByID(ctx context.Context, id string) (*entity.District, error) {
	var district entity.District
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&district).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &district, nil
}

// Create 创建行政区
func (r *DistrictRepository) Create(ctx context.Context, district *entity.District) error {
	return r.db.WithContext(ctx).Create(district).Error
}

// ListAll 获取全部行政区，按名称排序
func (r *DistrictRepository) ListAll(ctx context.Context) ([]entity.District, error) {
	var districts []entity.District
	err := r.db.WithContext(ctx).Order("name ASC").Find(&districts).Error
	return districts, err
}

// ListWithProjects 获取全部行政区及其项目，空行政区也在列表中
func (r *DistrictRepository) ListWithProjects(ctx context.Context) ([]entity.District, error) {
	var districts []entity.District
	err := r.db.WithContext(ctx).
		Preload("Projects").
		Order("name ASC").
		Find(&districts).Error
	return districts, err
}
