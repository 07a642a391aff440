package model

import "time"

// TeamAssignment 团队分配边表 — 对应 team_assignments
// 每个外勤人员同一时刻至多一条有效分配（unassigned_at IS NULL）
type TeamAssignment struct {
	AssignmentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	EnumeratorID string     `gorm:"type:uuid;not null;index"                       json:"enumerator_id"`
	SupervisorID string     `gorm:"type:uuid;not null;index"                       json:"supervisor_id"`
	AssignedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"assigned_at"`
	UnassignedAt *time.Time `json:"unassigned_at,omitempty"`
	AuditedModel
}

// TableName 指定表名
func (TeamAssignment) TableName() string { return "team_assignments" }
