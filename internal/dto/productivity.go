package dto

// ── 生产力模块请求 ──

// TeamProductivityRequest 团队生产力查询参数
// GET /api/v1/productivity/team
type TeamProductivityRequest struct {
	Period    string `form:"period"     binding:"omitempty,oneof=today week month"`
	Status    string `form:"status"     binding:"omitempty,oneof=all complete on_track behind inactive"`
	Search    string `form:"search"     binding:"omitempty,max=100"`
	SortBy    string `form:"sort_by"    binding:"omitempty,oneof=full_name today_count target percent status week_count month_count rej_rate last_active_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	PaginationRequest
}

// CrossLgaStaffRequest 全员生产力查询参数（跨 LGA，super_admin）
// GET /api/v1/productivity/staff
type CrossLgaStaffRequest struct {
	Period       string   `form:"period"        binding:"omitempty,oneof=today week month"`
	LgaIDs       []string `form:"lga_ids"       binding:"omitempty,dive,uuid"`
	RoleID       string   `form:"role_id"       binding:"omitempty,oneof=all enumerator data_entry_clerk supervisor"`
	SupervisorID string   `form:"supervisor_id" binding:"omitempty,uuid"`
	Status       string   `form:"status"        binding:"omitempty,oneof=all complete on_track behind inactive"`
	Search       string   `form:"search"        binding:"omitempty,max=100"`
	SortBy       string   `form:"sort_by"       binding:"omitempty,oneof=full_name lga_name today_count target percent status week_count month_count rej_rate last_active_at"`
	SortOrder    string   `form:"sort_order"    binding:"omitempty,oneof=asc desc"`
	PaginationRequest
}

// LgaComparisonRequest LGA 对比查询参数（super_admin）
// GET /api/v1/productivity/lgas
type LgaComparisonRequest struct {
	LgaIDs        []string `form:"lga_ids"        binding:"omitempty,dive,uuid"`
	StaffingModel string   `form:"staffing_model" binding:"omitempty,oneof=all full lean no_supervisor"`
	SortBy        string   `form:"sort_by"        binding:"omitempty,oneof=lga_name today_total percent enumerator_count rej_rate"`
	SortOrder     string   `form:"sort_order"     binding:"omitempty,oneof=asc desc"`
}

// LgaSummaryRequest LGA 聚合概览查询参数（government_official / super_admin）
// GET /api/v1/productivity/lga-summary
type LgaSummaryRequest struct {
	LgaID     string `form:"lga_id"     binding:"omitempty,uuid"`
	SortBy    string `form:"sort_by"    binding:"omitempty,oneof=lga_name today_total percent active_staff completion_rate"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

// ── 生产力模块响应 ──

// StaffProductivityRow 单个员工的生产力行（团队视图）
type StaffProductivityRow struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	TodayCount    int     `json:"today_count"`
	Target        int     `json:"target"`
	Percent       int     `json:"percent"`
	Status        string  `json:"status"`
	Trend         string  `json:"trend"`
	WeekCount     int     `json:"week_count"`
	WeekTarget    int     `json:"week_target"`
	MonthCount    int     `json:"month_count"`
	MonthTarget   int     `json:"month_target"`
	ApprovedCount int     `json:"approved_count"`
	RejectedCount int     `json:"rejected_count"`
	RejRate       int     `json:"rej_rate"`
	DaysActive    string  `json:"days_active"`
	LastActiveAt  *string `json:"last_active_at"`
}

// CrossLgaStaffRow 全员视图行：在 StaffProductivityRow 之上附加角色与归属信息
type CrossLgaStaffRow struct {
	StaffProductivityRow
	Role           string  `json:"role"`
	LgaID          string  `json:"lga_id"`
	LgaName        string  `json:"lga_name"`
	SupervisorName *string `json:"supervisor_name"`
}

// ProductivitySummary 跨行汇总（基于过滤后、分页前的全集）
type ProductivitySummary struct {
	TotalSubmissions int `json:"total_submissions"`
	AvgPerDay        int `json:"avg_per_day"`
	TotalTarget      int `json:"total_target"`
	OverallPercent   int `json:"overall_percent"`
	CompletedCount   int `json:"completed_count"`
	BehindCount      int `json:"behind_count"`
	InactiveCount    int `json:"inactive_count"`
}

// CrossLgaSummary 全员视图汇总：附加无督导 LGA 计数
type CrossLgaSummary struct {
	ProductivitySummary
	SupervisorlessLgaCount int `json:"supervisorless_lga_count"`
}

// TeamProductivityResponse 团队生产力结果封套
type TeamProductivityResponse struct {
	Rows       []StaffProductivityRow `json:"rows"`
	TotalItems int                    `json:"total_items"`
	Summary    ProductivitySummary    `json:"summary"`
}

// CrossLgaStaffResponse 全员生产力结果封套
type CrossLgaStaffResponse struct {
	Rows       []CrossLgaStaffRow `json:"rows"`
	TotalItems int                `json:"total_items"`
	Summary    CrossLgaSummary    `json:"summary"`
}

// Performer LGA 明细视图中的最佳/最低产出者
type Performer struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LgaComparisonRow LGA 对比行（含具名个人字段）
type LgaComparisonRow struct {
	LgaID            string     `json:"lga_id"`
	LgaName          string     `json:"lga_name"`
	StaffingModel    string     `json:"staffing_model"`
	HasSupervisor    bool       `json:"has_supervisor"`
	EnumeratorCount  int        `json:"enumerator_count"`
	SupervisorName   *string    `json:"supervisor_name"`
	TodayTotal       int        `json:"today_total"`
	LgaTarget        int        `json:"lga_target"`
	Percent          int        `json:"percent"`
	AvgPerEnumerator float64    `json:"avg_per_enumerator"`
	BestPerformer    *Performer `json:"best_performer"`
	LowestPerformer  *Performer `json:"lowest_performer"`
	RejRate          int        `json:"rej_rate"`
	Trend            string     `json:"trend"`
}

// LgaComparisonSummary LGA 对比汇总
type LgaComparisonSummary struct {
	TotalLgas           int `json:"total_lgas"`
	TotalSubmissions    int `json:"total_submissions"`
	OverallPercent      int `json:"overall_percent"`
	SupervisorlessCount int `json:"supervisorless_count"`
}

// LgaComparisonResponse LGA 对比结果封套
type LgaComparisonResponse struct {
	Rows       []LgaComparisonRow   `json:"rows"`
	TotalItems int                  `json:"total_items"`
	Summary    LgaComparisonSummary `json:"summary"`
}

// LgaSummaryRow LGA 聚合概览行（隐私要求：不含任何具名个人字段）
type LgaSummaryRow struct {
	LgaID          string  `json:"lga_id"`
	LgaName        string  `json:"lga_name"`
	ActiveStaff    int     `json:"active_staff"`
	TodayTotal     int     `json:"today_total"`
	DailyTarget    int     `json:"daily_target"`
	Percent        int     `json:"percent"`
	WeekTotal      int     `json:"week_total"`
	WeekAvgPerDay  float64 `json:"week_avg_per_day"`
	MonthTotal     int     `json:"month_total"`
	CompletionRate int     `json:"completion_rate"`
	Trend          string  `json:"trend"`
}

// LgaSummaryTotals LGA 聚合概览汇总
type LgaSummaryTotals struct {
	TotalLgas             int `json:"total_lgas"`
	TotalActiveStaff      int `json:"total_active_staff"`
	OverallCompletionRate int `json:"overall_completion_rate"`
	TotalSubmissionsToday int `json:"total_submissions_today"`
	SupervisorlessCount   int `json:"supervisorless_count"`
}

// LgaSummaryResponse LGA 聚合概览结果封套
type LgaSummaryResponse struct {
	Rows       []LgaSummaryRow  `json:"rows"`
	TotalItems int              `json:"total_items"`
	Summary    LgaSummaryTotals `json:"summary"`
}
