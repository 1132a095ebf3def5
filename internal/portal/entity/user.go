package entity

import "time"

// User 用户实体
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Username     string     `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Name         string     `json:"name" gorm:"size:128;not null"`
	Email        string     `json:"email" gorm:"size:254;not null;uniqueIndex"`
	Phone        string     `json:"phone" gorm:"size:20"`
	PasswordHash string     `json:"-" gorm:"size:128;not null"`
	Role         string     `json:"role" gorm:"size:20;not null;default:PUBLIC"`
	Department   string     `json:"department" gorm:"size:100"`
	District     string     `json:"district" gorm:"size:100"`
	IsVerified   bool       `json:"is_verified" gorm:"default:false"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Role 角色枚举
const (
	RoleAdmin           = "ADMIN"
	RoleDeptHead        = "DEPT_HEAD"
	RoleDistrictOfficer = "DISTRICT_OFFICER"
	RolePublic          = "PUBLIC"
)

// Capabilities 角色能力集，每个请求评估一次
type Capabilities struct {
	CanEditProjects      bool `json:"can_edit_projects"`
	CanViewFinancialData bool `json:"can_view_financial_data"`
	CanVerifyFeedback    bool `json:"can_verify_feedback"`
	CanManageUsers       bool `json:"can_manage_users"`
}

// roleCapabilities 角色到能力集的映射表
var roleCapabilities = map[string]Capabilities{
	RoleAdmin: {
		CanEditProjects:      true,
		CanViewFinancialData: true,
		CanVerifyFeedback:    true,
		CanManageUsers:       true,
	},
	RoleDeptHead: {
		CanEditProjects:      true,
		CanViewFinancialData: true,
		CanVerifyFeedback:    true,
	},
	RoleDistrictOfficer: {
		CanEditProjects: true,
	},
	RolePublic: {},
}

// CapabilitiesForRole 返回角色对应的能力集，未知角色按PUBLIC处理
func CapabilitiesForRole(role string) Capabilities {
	if caps, ok := roleCapabilities[role]; ok {
		return caps
	}
	return roleCapabilities[RolePublic]
}

// ValidRole reports whether role is a known role code.
func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}
