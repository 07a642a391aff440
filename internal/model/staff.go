package model

import "time"

// ── 角色常量 ──
//
// 外勤角色（enumerator / data_entry_clerk / supervisor）进入生产力视图；
// super_admin 与 government_official 仅作为查看方，不产生生产力指标。

const (
	RoleEnumerator         = "enumerator"
	RoleDataEntryClerk     = "data_entry_clerk"
	RoleSupervisor         = "supervisor"
	RoleSuperAdmin         = "super_admin"
	RoleGovernmentOfficial = "government_official"
)

// ── 账号状态常量 ──

const (
	StatusActive   = "active"
	StatusVerified = "verified"
	StatusInactive = "inactive"
)

// FieldRoles 计入生产力统计的外勤角色集合
var FieldRoles = []string{RoleEnumerator, RoleDataEntryClerk, RoleSupervisor}

// Staff 员工表 — 对应 users
type Staff struct {
	UserID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	FullName     string     `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Email        string     `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string     `gorm:"type:varchar(30);not null"                      json:"role"`
	Status       string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	LgaID        *string    `gorm:"type:uuid"                                      json:"lga_id,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	BaseModel

	// 关联
	Lga *Lga `gorm:"foreignKey:LgaID;references:LgaID" json:"lga,omitempty"`
}

// TableName 指定表名
func (Staff) TableName() string { return "users" }

// IsFieldRole 判断是否为外勤角色
func (s *Staff) IsFieldRole() bool {
	return s.Role == RoleEnumerator || s.Role == RoleDataEntryClerk || s.Role == RoleSupervisor
}

// IsSupervisor 判断是否为督导员
func (s *Staff) IsSupervisor() bool { return s.Role == RoleSupervisor }
