package entity

import "time"

// Sector 行业板块实体
type Sector struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Name        string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Icon        string    `json:"icon" gorm:"size:50;default:📊"`
	Color       string    `json:"color" gorm:"size:7;default:#007bff"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联
	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:SectorID"`
}

func (Sector) TableName() string {
	return "sectors"
}
