package entity

import "time"

// Feedback 公众反馈实体
type Feedback struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID    string    `json:"project_id" gorm:"size:32;not null;index:idx_feedback_project_rating"`
	CitizenName  string    `json:"citizen_name" gorm:"size:200;not null"`
	CitizenEmail string    `json:"citizen_email" gorm:"size:254"`
	CitizenPhone string    `json:"citizen_phone" gorm:"size:20"`
	Rating       int       `json:"rating" gorm:"not null;index:idx_feedback_project_rating"`
	Comment      string    `json:"comment" gorm:"type:text;not null"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false;index:idx_feedback_visibility"`
	IsPublic     bool      `json:"is_public" gorm:"default:true;index:idx_feedback_visibility"`
	IPAddress    string    `json:"-" gorm:"size:45"`
	UserAgent    string    `json:"-" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`

	// 关联
	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// 反馈评分范围
const (
	FeedbackRatingMin = 1
	FeedbackRatingMax = 5
)
