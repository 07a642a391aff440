package model

import "time"

// Submission 外勤数据提交表 — 对应 submissions
// 生产力引擎只读取 submitter_id + submitted_at，表单内容由采集模块维护
type Submission struct {
	SubmissionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	SubmitterID  string    `gorm:"type:uuid;not null;index"                       json:"submitter_id"`
	LgaID        *string   `gorm:"type:uuid"                                      json:"lga_id,omitempty"`
	SubmittedAt  time.Time `gorm:"not null;index"                                 json:"submitted_at"`
	BaseModel
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }
