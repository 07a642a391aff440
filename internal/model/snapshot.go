package model

// DailySnapshot 每日生产力快照表 — 对应 daily_productivity_snapshots
//
// 由快照任务在每日 23:59 WAT 写入；引擎的周/月统计全部基于快照聚合，
// 只有"今日"计数来自 submissions 表的实时查询。
// (user_id, date) 唯一，重复执行时覆盖更新（幂等）。
type DailySnapshot struct {
	SnapshotID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"          json:"snapshot_id"`
	UserID          string  `gorm:"type:uuid;not null;uniqueIndex:uniq_snapshot_user_date"  json:"user_id"`
	LgaID           *string `gorm:"type:uuid"                                               json:"lga_id,omitempty"`
	Role            string  `gorm:"type:varchar(30);not null"                               json:"role"`
	Date            string  `gorm:"type:date;not null;uniqueIndex:uniq_snapshot_user_date"  json:"date"`
	SubmissionCount int     `gorm:"not null;default:0"                                      json:"submission_count"`
	ApprovedCount   int     `gorm:"not null;default:0"                                      json:"approved_count"`
	RejectedCount   int     `gorm:"not null;default:0"                                      json:"rejected_count"`
	BaseModel
}

// TableName 指定表名
func (DailySnapshot) TableName() string { return "daily_productivity_snapshots" }
