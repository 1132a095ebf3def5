package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// District 行政区实体
type District struct {
	ID         string           `json:"id" gorm:"primaryKey;size:32"`
	Name       string           `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Latitude   *decimal.Decimal `json:"latitude" gorm:"type:decimal(10,7)"`
	Longitude  *decimal.Decimal `json:"longitude" gorm:"type:decimal(10,7)"`
	Population *int64           `json:"population"`
	AreaSqKm   *decimal.Decimal `json:"area_sq_km" gorm:"type:decimal(10,2)"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	// 关联
	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:DistrictID"`
}

func (District) TableName() string {
	return "districts"
}
