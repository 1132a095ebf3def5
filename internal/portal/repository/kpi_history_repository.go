package repository

import (
	"context"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KPIHistoryRepository KPI历史仓库
type KPIHistoryRepository struct {
	db *gorm.DB
}

// NewKPIHistoryRepository 创建KPI历史仓库
func NewKPIHistoryRepository(db *gorm.DB) *KPIHistoryRepository {
	return &KPIHistoryRepository{db: db}
}

// Record 记录KPI快照。同一项目同一天再次记录时覆盖原值，
// 保证 (project, date) 唯一。
func (r *KPIHistoryRepository) Record(ctx context.Context, snapshot *entity.KPIHistory) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"kpi_achieved", "notes", "recorded_by"}),
		}).
		Create(snapshot).Error
}

// ListByProject 获取项目KPI历史，按日期升序（图表用）
func (r *KPIHistoryRepository) ListByProject(ctx context.Context, projectID string) ([]entity.KPIHistory, error) {
	var history []entity.KPIHistory
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("date ASC").
		Find(&history).Error
	return history, err
}
