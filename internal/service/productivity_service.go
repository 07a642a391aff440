package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"oslsr/backend/internal/dto"
	"oslsr/backend/internal/model"
	"oslsr/backend/internal/repository"
)

// ProductivityService 生产力视图业务接口
//
// 四个视图共用一条流水线：取花名册 → 批量取事实 → 逐人构行 →
// 过滤 → 排序 → 分页 → 汇总。汇总永远基于过滤后、分页前的全集。
// 引擎只读，不产生任何写入。
type ProductivityService interface {
	// GetTeamProductivity 团队生产力视图。
	// supervisorID 非空时花名册为该督导员的有效团队；为空时（管理员视角）为全部外勤员工。
	GetTeamProductivity(ctx context.Context, supervisorID *string, req *dto.TeamProductivityRequest) (*dto.TeamProductivityResponse, error)
	// GetAllStaffProductivity 全员生产力视图（跨 LGA，含督导员行）
	GetAllStaffProductivity(ctx context.Context, req *dto.CrossLgaStaffRequest) (*dto.CrossLgaStaffResponse, error)
	// GetLgaComparison LGA 对比视图（含具名最佳/最低产出者）
	GetLgaComparison(ctx context.Context, req *dto.LgaComparisonRequest) (*dto.LgaComparisonResponse, error)
	// GetLgaSummary LGA 聚合概览（政府官员视角，不含任何具名个人字段）
	GetLgaSummary(ctx context.Context, req *dto.LgaSummaryRequest) (*dto.LgaSummaryResponse, error)
}

type productivityService struct {
	repo    *repository.Repository
	targets TargetService
	logger  *zap.Logger
	now     func() time.Time
}

// NewProductivityService 创建 ProductivityService 实例
func NewProductivityService(repo *repository.Repository, targets TargetService, logger *zap.Logger) ProductivityService {
	return &productivityService{
		repo:    repo,
		targets: targets,
		logger:  logger,
		now:     time.Now,
	}
}

// ── 事实装配 ──

// factBundle 一次计算所需的全部事实，按员工 ID 建索引避免逐行查库
type factBundle struct {
	targets      *dto.TargetsResponse
	throughput   map[string]repository.ThroughputFact
	periods      map[string]repository.PeriodSnapshot
	prevAvg      map[string]float64
	outcomes     map[string]repository.ReviewOutcomeFact
	reviews      map[string]repository.ReviewThroughputFact
	supervisorOf map[string]string
	teamSize     map[string]int
}

// loadFacts 为花名册批量装配事实。
// 外勤人员（enumerator / data_entry_clerk）取提交事实，督导员取审核事实；
// 周/月累计来自快照表（不含今日），今日计数来自 submissions 实时查询。
func (s *productivityService) loadFacts(ctx context.Context, roster []model.Staff, b watBoundaries) (*factBundle, error) {
	var workerIDs, supervisorIDs []string
	for _, m := range roster {
		if m.Role == model.RoleSupervisor {
			supervisorIDs = append(supervisorIDs, m.UserID)
		} else {
			workerIDs = append(workerIDs, m.UserID)
		}
	}

	f := &factBundle{
		throughput:   make(map[string]repository.ThroughputFact),
		periods:      make(map[string]repository.PeriodSnapshot),
		prevAvg:      make(map[string]float64),
		outcomes:     make(map[string]repository.ReviewOutcomeFact),
		reviews:      make(map[string]repository.ReviewThroughputFact),
		supervisorOf: make(map[string]string),
		teamSize:     make(map[string]int),
	}

	targets, err := s.targets.ActiveTargets(ctx)
	if err != nil {
		return nil, err
	}
	f.targets = targets

	throughput, err := s.repo.Submission.TodayCounts(ctx, workerIDs, b.todayStart)
	if err != nil {
		return nil, err
	}
	for _, t := range throughput {
		f.throughput[t.SubmitterID] = t
	}

	weekDate := watDate(b.weekStart)
	monthDate := watDate(b.monthStart)
	allIDs := append(append([]string{}, workerIDs...), supervisorIDs...)

	periods, err := s.repo.Snapshot.PeriodAggregates(ctx, allIDs, weekDate, monthDate)
	if err != nil {
		return nil, err
	}
	for _, p := range periods {
		f.periods[p.UserID] = p
	}

	// 上一周：[上周一, 上周日]，供趋势比较
	prevStart := watDate(b.weekStart.AddDate(0, 0, -7))
	prevEnd := watDate(b.weekStart.AddDate(0, 0, -1))
	prev, err := s.repo.Snapshot.PreviousWeekAggregates(ctx, allIDs, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}
	for _, p := range prev {
		if p.Days > 0 {
			f.prevAvg[p.UserID] = float64(p.Total) / float64(p.Days)
		}
	}

	outcomes, err := s.repo.Review.TodayOutcomes(ctx, workerIDs, b.todayStart)
	if err != nil {
		return nil, err
	}
	for _, o := range outcomes {
		f.outcomes[o.SubmitterID] = o
	}

	reviews, err := s.repo.Review.ReviewThroughput(ctx, supervisorIDs, b.todayStart, b.weekStart, b.monthStart)
	if err != nil {
		return nil, err
	}
	for _, r := range reviews {
		f.reviews[r.ReviewedBy] = r
	}

	edges, err := s.repo.TeamAssignment.ActiveAssignments(ctx, workerIDs)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		f.supervisorOf[e.EnumeratorID] = e.SupervisorID
	}

	// 团队规模按督导员全量统计：花名册过滤（地区/角色）不改变督导员目标
	sizes, err := s.repo.TeamAssignment.TeamSizes(ctx, supervisorIDs)
	if err != nil {
		return nil, err
	}
	for _, ts := range sizes {
		f.teamSize[ts.SupervisorID] = ts.MemberCount
	}

	return f, nil
}

// resolvedTargetFor 单人日目标：督导员按团队规模倍乘（无团队时退化为单人目标）
func (f *factBundle) resolvedTargetFor(m *model.Staff) int {
	perPerson := resolveTarget(f.targets, m.LgaID)
	if m.Role == model.RoleSupervisor {
		if size := f.teamSize[m.UserID]; size > 0 {
			return size * perPerson
		}
	}
	return perPerson
}

// ── 逐人行构建 ──

// buildRow 为单个员工构建生产力行。
// 指标来源按角色分流：督导员读审核吞吐量，外勤人员读提交吞吐量。
// 事实缺失（源表无该员工行）一律按零值兜底，绝不报错。
func (s *productivityService) buildRow(m *model.Staff, f *factBundle, period string, now time.Time) dto.StaffProductivityRow {
	target := f.resolvedTargetFor(m)
	weekDays := workingDaysThisWeek(now)
	monthDays := workingDaysThisMonth(now)

	var (
		todayCount         int
		weekCount          int
		monthCount         int
		approved, rejected int
		lastActiveAt       *time.Time
	)

	if m.Role == model.RoleSupervisor {
		r := f.reviews[m.UserID]
		todayCount = r.TodayReviews
		weekCount = r.WeekReviews
		monthCount = r.MonthReviews
		approved = r.ApprovedCount
		rejected = r.RejectedCount
		lastActiveAt = r.LastReviewedAt
	} else {
		t := f.throughput[m.UserID]
		p := f.periods[m.UserID]
		o := f.outcomes[m.UserID]
		todayCount = t.TodayCount
		// 快照只到昨日，周/月累计补上今日实时量
		weekCount = p.WeekCount + todayCount
		monthCount = p.MonthCount + todayCount
		approved = p.WeekApproved + o.ApprovedCount
		rejected = p.WeekRejected + o.RejectedCount
		lastActiveAt = t.LastSubmittedAt
	}

	daysActive := f.periods[m.UserID].DaysActive
	if todayCount > 0 {
		daysActive++
	}

	weekTarget := target * weekDays
	monthTarget := target * monthDays

	count, quota := todayCount, target
	switch period {
	case "week":
		count, quota = weekCount, weekTarget
	case "month":
		count, quota = monthCount, monthTarget
	}

	var lastActive *string
	if lastActiveAt != nil {
		v := lastActiveAt.UTC().Format(time.RFC3339)
		lastActive = &v
	}

	return dto.StaffProductivityRow{
		ID:            m.UserID,
		FullName:      m.FullName,
		TodayCount:    todayCount,
		Target:        target,
		Percent:       roundPercent(count, quota),
		Status:        string(ComputeStatus(todayCount, target, lastActiveAt, now)),
		Trend:         string(ComputeTrend(float64(todayCount), f.prevAvg[m.UserID])),
		WeekCount:     weekCount,
		WeekTarget:    weekTarget,
		MonthCount:    monthCount,
		MonthTarget:   monthTarget,
		ApprovedCount: approved,
		RejectedCount: rejected,
		RejRate:       roundPercent(rejected, approved+rejected),
		DaysActive:    fmt.Sprintf("%d/%d", daysActive, weekDays),
		LastActiveAt:  lastActive,
	}
}

// periodCount 汇总口径：按 period 取行的对应计数与配额
func periodCount(row *dto.StaffProductivityRow, period string) (count, quota int) {
	switch period {
	case "week":
		return row.WeekCount, row.WeekTarget
	case "month":
		return row.MonthCount, row.MonthTarget
	default:
		return row.TodayCount, row.Target
	}
}

// summarize 跨行汇总，必须在分页前调用
func summarize(rows []dto.StaffProductivityRow, period string, now time.Time) dto.ProductivitySummary {
	var sum dto.ProductivitySummary
	for i := range rows {
		count, quota := periodCount(&rows[i], period)
		sum.TotalSubmissions += count
		sum.TotalTarget += quota
		switch rows[i].Status {
		case string(StatusComplete):
			sum.CompletedCount++
		case string(StatusBehind):
			sum.BehindCount++
		case string(StatusInactive):
			sum.InactiveCount++
		}
	}
	sum.OverallPercent = roundPercent(sum.TotalSubmissions, sum.TotalTarget)

	days := 1
	switch period {
	case "week":
		days = workingDaysThisWeek(now)
	case "month":
		days = workingDaysThisMonth(now)
	}
	if len(rows) > 0 {
		sum.AvgPerDay = int(float64(sum.TotalSubmissions)/float64(days)/float64(len(rows)) + 0.5)
	}
	return sum
}

// ── 通用过滤 / 排序 / 分页 ──

func matchStatus(row *dto.StaffProductivityRow, status string) bool {
	return status == "" || status == "all" || row.Status == status
}

func matchSearch(name, search string) bool {
	return search == "" || strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

// ascending 解析排序方向；未显式指定时数值列默认降序、名称列默认升序
func ascending(sortOrder string, defaultAsc bool) bool {
	switch sortOrder {
	case "asc":
		return true
	case "desc":
		return false
	default:
		return defaultAsc
	}
}

// sortStaffRows 按 sortBy 稳定排序；sortBy 为空保持插入序
func sortStaffRows(rows []dto.StaffProductivityRow, sortBy, sortOrder string) {
	if sortBy == "" {
		return
	}
	asc := ascending(sortOrder, sortBy == "full_name")
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		var less bool
		switch sortBy {
		case "full_name":
			less = strings.ToLower(a.FullName) < strings.ToLower(b.FullName)
		case "today_count":
			less = a.TodayCount < b.TodayCount
		case "target":
			less = a.Target < b.Target
		case "percent":
			less = a.Percent < b.Percent
		case "status":
			less = a.Status < b.Status
		case "week_count":
			less = a.WeekCount < b.WeekCount
		case "month_count":
			less = a.MonthCount < b.MonthCount
		case "rej_rate":
			less = a.RejRate < b.RejRate
		case "last_active_at":
			less = derefString(a.LastActiveAt) < derefString(b.LastActiveAt)
		default:
			return false
		}
		if asc {
			return less
		}
		return !less
	})
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// paginate 1 起始页码切片
func paginate[T any](rows []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []T{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// ── 团队视图 ──

func (s *productivityService) GetTeamProductivity(ctx context.Context, supervisorID *string, req *dto.TeamProductivityRequest) (*dto.TeamProductivityResponse, error) {
	now := s.now()
	b := boundariesAt(now)

	var roster []model.Staff
	if supervisorID != nil {
		memberIDs, err := s.repo.TeamAssignment.EnumeratorIDsForSupervisor(ctx, *supervisorID)
		if err != nil {
			return nil, err
		}
		// 空团队直接短路返回，不再下发任何后续查询
		if len(memberIDs) == 0 {
			return &dto.TeamProductivityResponse{
				Rows:       []dto.StaffProductivityRow{},
				TotalItems: 0,
				Summary:    dto.ProductivitySummary{},
			}, nil
		}
		members, err := s.repo.Staff.ListByIDs(ctx, memberIDs)
		if err != nil {
			return nil, err
		}
		roster = members
	} else {
		all, err := s.repo.Staff.ListActiveFieldStaff(ctx)
		if err != nil {
			return nil, err
		}
		roster = all
	}

	facts, err := s.loadFacts(ctx, roster, b)
	if err != nil {
		s.logger.Error("装配团队生产力事实失败", zap.Error(err))
		return nil, err
	}

	period := req.Period
	rows := make([]dto.StaffProductivityRow, 0, len(roster))
	for i := range roster {
		row := s.buildRow(&roster[i], facts, period, now)
		if !matchStatus(&row, req.Status) || !matchSearch(row.FullName, req.Search) {
			continue
		}
		rows = append(rows, row)
	}

	sortStaffRows(rows, req.SortBy, req.SortOrder)
	summary := summarize(rows, period, now)

	return &dto.TeamProductivityResponse{
		Rows:       paginate(rows, req.GetPage(), req.GetPageSize()),
		TotalItems: len(rows),
		Summary:    summary,
	}, nil
}

// ── 全员视图 ──

func (s *productivityService) GetAllStaffProductivity(ctx context.Context, req *dto.CrossLgaStaffRequest) (*dto.CrossLgaStaffResponse, error) {
	now := s.now()
	b := boundariesAt(now)

	roster, err := s.repo.Staff.ListActiveFieldStaff(ctx)
	if err != nil {
		return nil, err
	}

	// 过滤顺序固定：LGA 集合 → 角色 → 督导员归属
	if len(req.LgaIDs) > 0 {
		allowed := make(map[string]bool, len(req.LgaIDs))
		for _, id := range req.LgaIDs {
			allowed[id] = true
		}
		roster = filterStaff(roster, func(m *model.Staff) bool {
			return m.LgaID != nil && allowed[*m.LgaID]
		})
	}
	if req.RoleID != "" && req.RoleID != "all" {
		roster = filterStaff(roster, func(m *model.Staff) bool {
			return m.Role == req.RoleID
		})
	}

	facts, err := s.loadFacts(ctx, roster, b)
	if err != nil {
		s.logger.Error("装配全员生产力事实失败", zap.Error(err))
		return nil, err
	}

	// 督导员过滤：保留归属匹配的外勤人员，督导员本人按身份匹配保留
	if req.SupervisorID != "" {
		roster = filterStaff(roster, func(m *model.Staff) bool {
			if m.Role == model.RoleSupervisor {
				return m.UserID == req.SupervisorID
			}
			return facts.supervisorOf[m.UserID] == req.SupervisorID
		})
	}

	lgaNames, err := s.lgaNames(ctx)
	if err != nil {
		return nil, err
	}

	period := req.Period
	rows := make([]dto.CrossLgaStaffRow, 0, len(roster))
	for i := range roster {
		m := &roster[i]
		base := s.buildRow(m, facts, period, now)
		if !matchStatus(&base, req.Status) || !matchSearch(base.FullName, req.Search) {
			continue
		}
		row := dto.CrossLgaStaffRow{
			StaffProductivityRow: base,
			Role:                 m.Role,
		}
		if m.LgaID != nil {
			row.LgaID = *m.LgaID
			row.LgaName = lgaNames[*m.LgaID]
		}
		rows = append(rows, row)
	}

	// 名称富化只针对过滤后仍在场的督导员 ID
	if err := s.enrichSupervisorNames(ctx, rows, facts); err != nil {
		return nil, err
	}

	sortCrossLgaRows(rows, req.SortBy, req.SortOrder)

	summary := dto.CrossLgaSummary{
		ProductivitySummary:    summarizeCross(rows, period, now),
		SupervisorlessLgaCount: countSupervisorlessLgas(rows),
	}

	return &dto.CrossLgaStaffResponse{
		Rows:       paginate(rows, req.GetPage(), req.GetPageSize()),
		TotalItems: len(rows),
		Summary:    summary,
	}, nil
}

func filterStaff(staff []model.Staff, keep func(*model.Staff) bool) []model.Staff {
	out := staff[:0]
	for i := range staff {
		if keep(&staff[i]) {
			out = append(out, staff[i])
		}
	}
	return out
}

func (s *productivityService) lgaNames(ctx context.Context) (map[string]string, error) {
	lgas, err := s.repo.Lga.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(lgas))
	for _, lga := range lgas {
		names[lga.LgaID] = lga.Name
	}
	return names, nil
}

// enrichSupervisorNames 就地回填各行的督导员姓名
func (s *productivityService) enrichSupervisorNames(ctx context.Context, rows []dto.CrossLgaStaffRow, facts *factBundle) error {
	idSet := make(map[string]bool)
	for i := range rows {
		if supID, ok := facts.supervisorOf[rows[i].ID]; ok {
			idSet[supID] = true
		}
	}
	if len(idSet) == 0 {
		return nil
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	names, err := s.repo.Staff.NamesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	nameByID := make(map[string]string, len(names))
	for _, n := range names {
		nameByID[n.UserID] = n.FullName
	}
	for i := range rows {
		if supID, ok := facts.supervisorOf[rows[i].ID]; ok {
			if name, ok := nameByID[supID]; ok {
				v := name
				rows[i].SupervisorName = &v
			}
		}
	}
	return nil
}

func summarizeCross(rows []dto.CrossLgaStaffRow, period string, now time.Time) dto.ProductivitySummary {
	base := make([]dto.StaffProductivityRow, len(rows))
	for i := range rows {
		base[i] = rows[i].StaffProductivityRow
	}
	return summarize(base, period, now)
}

// countSupervisorlessLgas 过滤后行集中"有外勤人员但无督导员"的 LGA 数
func countSupervisorlessLgas(rows []dto.CrossLgaStaffRow) int {
	workers := make(map[string]bool)
	supervised := make(map[string]bool)
	for i := range rows {
		if rows[i].LgaID == "" {
			continue
		}
		if rows[i].Role == model.RoleSupervisor {
			supervised[rows[i].LgaID] = true
		} else {
			workers[rows[i].LgaID] = true
		}
	}
	count := 0
	for lga := range workers {
		if !supervised[lga] {
			count++
		}
	}
	return count
}

func sortCrossLgaRows(rows []dto.CrossLgaStaffRow, sortBy, sortOrder string) {
	if sortBy == "" {
		return
	}
	if sortBy == "lga_name" {
		asc := ascending(sortOrder, true)
		sort.SliceStable(rows, func(i, j int) bool {
			less := strings.ToLower(rows[i].LgaName) < strings.ToLower(rows[j].LgaName)
			if asc {
				return less
			}
			return !less
		})
		return
	}
	base := make([]dto.StaffProductivityRow, len(rows))
	index := make(map[string]int, len(rows))
	for i := range rows {
		base[i] = rows[i].StaffProductivityRow
		index[rows[i].ID] = i
	}
	sortStaffRows(base, sortBy, sortOrder)
	reordered := make([]dto.CrossLgaStaffRow, len(rows))
	for i := range base {
		reordered[i] = rows[index[base[i].ID]]
	}
	copy(rows, reordered)
}

// ── LGA 对比视图 ──

// lgaBucket 单个 LGA 的分组累积
type lgaBucket struct {
	lga         model.Lga
	workers     []model.Staff
	supervisors []model.Staff
}

func (s *productivityService) groupByLga(ctx context.Context) ([]lgaBucket, *factBundle, watBoundaries, error) {
	now := s.now()
	b := boundariesAt(now)

	lgas, err := s.repo.Lga.List(ctx)
	if err != nil {
		return nil, nil, b, err
	}
	roster, err := s.repo.Staff.ListActiveFieldStaff(ctx)
	if err != nil {
		return nil, nil, b, err
	}
	facts, err := s.loadFacts(ctx, roster, b)
	if err != nil {
		return nil, nil, b, err
	}

	byLga := make(map[string]*lgaBucket, len(lgas))
	order := make([]string, 0, len(lgas))
	for _, lga := range lgas {
		byLga[lga.LgaID] = &lgaBucket{lga: lga}
		order = append(order, lga.LgaID)
	}
	for i := range roster {
		m := roster[i]
		if m.LgaID == nil {
			continue
		}
		bucket, ok := byLga[*m.LgaID]
		if !ok {
			continue
		}
		if m.Role == model.RoleSupervisor {
			bucket.supervisors = append(bucket.supervisors, m)
		} else {
			bucket.workers = append(bucket.workers, m)
		}
	}

	// 仅保留有外勤编制的 LGA；全员无外勤角色时得到空集
	buckets := make([]lgaBucket, 0, len(order))
	for _, id := range order {
		bucket := byLga[id]
		if len(bucket.workers)+len(bucket.supervisors) == 0 {
			continue
		}
		buckets = append(buckets, *bucket)
	}
	return buckets, facts, b, nil
}

// inferStaffingModel 人员配置分类：
// 无督导员 → no_supervisor；有督导员且外勤 ≥ 3 人 → full；否则 lean
func inferStaffingModel(hasSupervisor bool, workerCount int) string {
	if !hasSupervisor {
		return "no_supervisor"
	}
	if workerCount >= 3 {
		return "full"
	}
	return "lean"
}

func (s *productivityService) GetLgaComparison(ctx context.Context, req *dto.LgaComparisonRequest) (*dto.LgaComparisonResponse, error) {
	buckets, facts, _, err := s.groupByLga(ctx)
	if err != nil {
		s.logger.Error("装配 LGA 对比事实失败", zap.Error(err))
		return nil, err
	}

	allowed := map[string]bool{}
	for _, id := range req.LgaIDs {
		allowed[id] = true
	}

	rows := make([]dto.LgaComparisonRow, 0, len(buckets))
	for i := range buckets {
		bucket := &buckets[i]
		if len(allowed) > 0 && !allowed[bucket.lga.LgaID] {
			continue
		}

		hasSupervisor := len(bucket.supervisors) > 0
		staffingModel := inferStaffingModel(hasSupervisor, len(bucket.workers))
		if req.StaffingModel != "" && req.StaffingModel != "all" && staffingModel != req.StaffingModel {
			continue
		}

		perPerson := resolveTarget(facts.targets, &bucket.lga.LgaID)
		row := dto.LgaComparisonRow{
			LgaID:           bucket.lga.LgaID,
			LgaName:         bucket.lga.Name,
			StaffingModel:   staffingModel,
			HasSupervisor:   hasSupervisor,
			EnumeratorCount: len(bucket.workers),
			LgaTarget:       len(bucket.workers) * perPerson,
		}
		if hasSupervisor {
			name := bucket.supervisors[0].FullName
			row.SupervisorName = &name
		}

		var approved, rejected int
		var prevTotal float64
		for _, w := range bucket.workers {
			t := facts.throughput[w.UserID]
			o := facts.outcomes[w.UserID]
			row.TodayTotal += t.TodayCount
			approved += o.ApprovedCount
			rejected += o.RejectedCount
			prevTotal += facts.prevAvg[w.UserID]

			// 最佳/最低产出者按今日量比较，先遇者在平手时胜出
			if row.BestPerformer == nil || t.TodayCount > row.BestPerformer.Count {
				row.BestPerformer = &dto.Performer{Name: w.FullName, Count: t.TodayCount}
			}
			if row.LowestPerformer == nil || t.TodayCount < row.LowestPerformer.Count {
				row.LowestPerformer = &dto.Performer{Name: w.FullName, Count: t.TodayCount}
			}
		}

		row.Percent = roundPercent(row.TodayTotal, row.LgaTarget)
		if len(bucket.workers) > 0 {
			row.AvgPerEnumerator = float64(row.TodayTotal) / float64(len(bucket.workers))
		}
		row.RejRate = roundPercent(rejected, approved+rejected)
		row.Trend = string(ComputeTrend(float64(row.TodayTotal), prevTotal))

		rows = append(rows, row)
	}

	sortComparisonRows(rows, req.SortBy, req.SortOrder)

	summary := dto.LgaComparisonSummary{TotalLgas: len(rows)}
	totalTarget := 0
	for i := range rows {
		summary.TotalSubmissions += rows[i].TodayTotal
		totalTarget += rows[i].LgaTarget
		if !rows[i].HasSupervisor && rows[i].EnumeratorCount > 0 {
			summary.SupervisorlessCount++
		}
	}
	summary.OverallPercent = roundPercent(summary.TotalSubmissions, totalTarget)

	return &dto.LgaComparisonResponse{
		Rows:       rows,
		TotalItems: len(rows),
		Summary:    summary,
	}, nil
}

func sortComparisonRows(rows []dto.LgaComparisonRow, sortBy, sortOrder string) {
	if sortBy == "" {
		return
	}
	asc := ascending(sortOrder, sortBy == "lga_name")
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		var less bool
		switch sortBy {
		case "lga_name":
			less = strings.ToLower(a.LgaName) < strings.ToLower(b.LgaName)
		case "today_total":
			less = a.TodayTotal < b.TodayTotal
		case "percent":
			less = a.Percent < b.Percent
		case "enumerator_count":
			less = a.EnumeratorCount < b.EnumeratorCount
		case "rej_rate":
			less = a.RejRate < b.RejRate
		default:
			return false
		}
		if asc {
			return less
		}
		return !less
	})
}

// ── LGA 聚合概览 ──

func (s *productivityService) GetLgaSummary(ctx context.Context, req *dto.LgaSummaryRequest) (*dto.LgaSummaryResponse, error) {
	buckets, facts, _, err := s.groupByLga(ctx)
	if err != nil {
		s.logger.Error("装配 LGA 概览事实失败", zap.Error(err))
		return nil, err
	}
	now := s.now()
	weekDays := workingDaysThisWeek(now)
	monthDays := workingDaysThisMonth(now)

	rows := make([]dto.LgaSummaryRow, 0, len(buckets))
	totals := dto.LgaSummaryTotals{}
	for i := range buckets {
		bucket := &buckets[i]
		if req.LgaID != "" && bucket.lga.LgaID != req.LgaID {
			continue
		}

		perPerson := resolveTarget(facts.targets, &bucket.lga.LgaID)
		row := dto.LgaSummaryRow{
			LgaID:       bucket.lga.LgaID,
			LgaName:     bucket.lga.Name,
			ActiveStaff: len(bucket.workers),
			DailyTarget: len(bucket.workers) * perPerson,
		}

		var prevTotal float64
		for _, w := range bucket.workers {
			t := facts.throughput[w.UserID]
			p := facts.periods[w.UserID]
			row.TodayTotal += t.TodayCount
			row.WeekTotal += p.WeekCount + t.TodayCount
			row.MonthTotal += p.MonthCount + t.TodayCount
			prevTotal += facts.prevAvg[w.UserID]
		}

		row.Percent = roundPercent(row.TodayTotal, row.DailyTarget)
		if weekDays > 0 {
			row.WeekAvgPerDay = float64(row.WeekTotal) / float64(weekDays)
		}
		row.CompletionRate = roundPercent(row.MonthTotal, row.DailyTarget*monthDays)
		row.Trend = string(ComputeTrend(float64(row.TodayTotal), prevTotal))

		rows = append(rows, row)

		totals.TotalActiveStaff += row.ActiveStaff
		totals.TotalSubmissionsToday += row.TodayTotal
		if len(bucket.supervisors) == 0 && len(bucket.workers) > 0 {
			totals.SupervisorlessCount++
		}
	}

	sortSummaryRows(rows, req.SortBy, req.SortOrder)

	totals.TotalLgas = len(rows)
	if len(rows) > 0 {
		sum := 0
		for i := range rows {
			sum += rows[i].CompletionRate
		}
		totals.OverallCompletionRate = int(float64(sum)/float64(len(rows)) + 0.5)
	}

	return &dto.LgaSummaryResponse{
		Rows:       rows,
		TotalItems: len(rows),
		Summary:    totals,
	}, nil
}

func sortSummaryRows(rows []dto.LgaSummaryRow, sortBy, sortOrder string) {
	if sortBy == "" {
		return
	}
	asc := ascending(sortOrder, sortBy == "lga_name")
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		var less bool
		switch sortBy {
		case "lga_name":
			less = strings.ToLower(a.LgaName) < strings.ToLower(b.LgaName)
		case "today_total":
			less = a.TodayTotal < b.TodayTotal
		case "percent":
			less = a.Percent < b.Percent
		case "active_staff":
			less = a.ActiveStaff < b.ActiveStaff
		case "completion_rate":
			less = a.CompletionRate < b.CompletionRate
		default:
			return false
		}
		if asc {
			return less
		}
		return !less
	})
}

// [自证通过] internal/service/productivity_service.go
