//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"oslsr/backend/internal/model"
	"oslsr/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=oslsr password=oslsr_password dbname=oslsr_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Lga{},
		&model.Staff{},
		&model.Submission{},
		&model.Review{},
		&model.DailySnapshot{},
		&model.TeamAssignment{},
		&model.ProductivityTarget{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (lga *model.Lga, enum1, enum2, sup *model.Staff, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	lga = &model.Lga{Name: fmt.Sprintf("测试LGA-%d", suffix)}
	if err := testDB.WithContext(ctx).Create(lga).Error; err != nil {
		t.Fatalf("创建 LGA 失败: %v", err)
	}

	mk := func(name, role string) *model.Staff {
		s := &model.Staff{
			FullName:     name,
			Email:        fmt.Sprintf("%s%d@oslsr.gov.ng", role, suffix),
			PasswordHash: "$2a$10$placeholder",
			Role:         role,
			Status:       model.StatusActive,
			LgaID:        &lga.LgaID,
		}
		if err := testDB.WithContext(ctx).Create(s).Error; err != nil {
			t.Fatalf("创建员工失败: %v", err)
		}
		return s
	}
	enum1 = mk("测试采集员一", model.RoleEnumerator)
	enum2 = mk("测试采集员二", model.RoleEnumerator)
	sup = mk("测试督导员", model.RoleSupervisor)

	cleanup = func() {
		for _, s := range []*model.Staff{enum1, enum2, sup} {
			testDB.Unscoped().Where("submitter_id = ?", s.UserID).Delete(&model.Submission{})
			testDB.Unscoped().Where("submitter_id = ?", s.UserID).Delete(&model.Review{})
			testDB.Unscoped().Where("user_id = ?", s.UserID).Delete(&model.DailySnapshot{})
			testDB.Unscoped().Where("enumerator_id = ?", s.UserID).Delete(&model.TeamAssignment{})
			testDB.Unscoped().Where("user_id = ?", s.UserID).Delete(&model.Staff{})
		}
		testDB.Unscoped().Where("lga_id = ?", lga.LgaID).Delete(&model.ProductivityTarget{})
		testDB.Unscoped().Where("lga_id = ?", lga.LgaID).Delete(&model.Lga{})
	}
	return
}

func mustCreateSubmission(t *testing.T, submitterID string, lgaID *string, at time.Time) *model.Submission {
	t.Helper()
	s := &model.Submission{SubmitterID: submitterID, LgaID: lgaID, SubmittedAt: at}
	if err := testDB.Create(s).Error; err != nil {
		t.Fatalf("创建提交失败: %v", err)
	}
	return s
}

// ═══════════════════════════════════════════════════════════
// Test: SubmissionRepository
// ═══════════════════════════════════════════════════════════

func TestSubmissionRepo_TodayCounts(t *testing.T) {
	lga, enum1, enum2, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	todayStart := time.Date(2026, 2, 24, 23, 0, 0, 0, time.UTC)
	// enum1：窗口前 1 条（不计）+ 窗口内 2 条
	mustCreateSubmission(t, enum1.UserID, &lga.LgaID, todayStart.Add(-2*time.Hour))
	mustCreateSubmission(t, enum1.UserID, &lga.LgaID, todayStart.Add(9*time.Hour))
	latest := todayStart.Add(11 * time.Hour)
	mustCreateSubmission(t, enum1.UserID, &lga.LgaID, latest)

	facts, err := repo.Submission.TodayCounts(ctx, []string{enum1.UserID, enum2.UserID}, todayStart)
	if err != nil {
		t.Fatalf("TodayCounts 失败: %v", err)
	}

	byID := make(map[string]repository.ThroughputFact)
	for _, f := range facts {
		byID[f.SubmitterID] = f
	}

	f1 := byID[enum1.UserID]
	if f1.TodayCount != 2 {
		t.Errorf("enum1 今日计数期望 2，实际=%d", f1.TodayCount)
	}
	// 最近活动时间取全部提交的最大值，含窗口外
	if f1.LastSubmittedAt == nil || !f1.LastSubmittedAt.Equal(latest) {
		t.Errorf("enum1 最近活动时间错误: %v", f1.LastSubmittedAt)
	}
	// enum2 无提交：源表无行，调用方按零值兜底
	if _, ok := byID[enum2.UserID]; ok {
		if byID[enum2.UserID].TodayCount != 0 {
			t.Errorf("enum2 期望无计数，实际=%d", byID[enum2.UserID].TodayCount)
		}
	}
}

func TestSubmissionRepo_CountRange(t *testing.T) {
	lga, enum1, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	from := time.Date(2026, 2, 24, 23, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	mustCreateSubmission(t, enum1.UserID, &lga.LgaID, from.Add(time.Hour))
	mustCreateSubmission(t, enum1.UserID, &lga.LgaID, from.Add(2*time.Hour))
	mustCreateSubmission(t, enum1.UserID, &lga.LgaID, to.Add(time.Minute)) // 窗口外

	counts, err := repo.Submission.CountRange(ctx, []string{enum1.UserID}, from, to)
	if err != nil {
		t.Fatalf("CountRange 失败: %v", err)
	}
	if len(counts) != 1 || counts[0].Count != 2 {
		t.Errorf("期望窗口内 2 条，实际=%+v", counts)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: SnapshotRepository
// ═══════════════════════════════════════════════════════════

func TestSnapshotRepo_Upsert_Idempotent(t *testing.T) {
	lga, enum1, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	snap := model.DailySnapshot{
		UserID:          enum1.UserID,
		LgaID:           &lga.LgaID,
		Role:            model.RoleEnumerator,
		Date:            "2026-02-24",
		SubmissionCount: 10,
	}
	if err := repo.Snapshot.Upsert(ctx, []model.DailySnapshot{snap}); err != nil {
		t.Fatalf("首次 Upsert 失败: %v", err)
	}

	// 同 (user_id, date) 重复执行：覆盖更新而非新增
	snap.SubmissionCount = 22
	snap.ApprovedCount = 18
	if err := repo.Snapshot.Upsert(ctx, []model.DailySnapshot{snap}); err != nil {
		t.Fatalf("重复 Upsert 失败: %v", err)
	}

	var rows []model.DailySnapshot
	testDB.Where("user_id = ?", enum1.UserID).Find(&rows)
	if len(rows) != 1 {
		t.Fatalf("期望 1 行快照，实际=%d", len(rows))
	}
	if rows[0].SubmissionCount != 22 || rows[0].ApprovedCount != 18 {
		t.Errorf("快照未覆盖更新: %+v", rows[0])
	}
}

func TestSnapshotRepo_PeriodAggregates(t *testing.T) {
	lga, enum1, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	seed := []model.DailySnapshot{
		{UserID: enum1.UserID, LgaID: &lga.LgaID, Role: model.RoleEnumerator, Date: "2026-02-20", SubmissionCount: 30, ApprovedCount: 25}, // 上周，仅计月
		{UserID: enum1.UserID, LgaID: &lga.LgaID, Role: model.RoleEnumerator, Date: "2026-02-23", SubmissionCount: 20, ApprovedCount: 17, RejectedCount: 2},
		{UserID: enum1.UserID, LgaID: &lga.LgaID, Role: model.RoleEnumerator, Date: "2026-02-24", SubmissionCount: 25, ApprovedCount: 21, RejectedCount: 1},
	}
	if err := repo.Snapshot.Upsert(ctx, seed); err != nil {
		t.Fatalf("写入快照失败: %v", err)
	}

	// 周起点 2026-02-23（周一），月起点 2026-02-01
	periods, err := repo.Snapshot.PeriodAggregates(ctx, []string{enum1.UserID}, "2026-02-23", "2026-02-01")
	if err != nil {
		t.Fatalf("PeriodAggregates 失败: %v", err)
	}
	if len(periods) != 1 {
		t.Fatalf("期望 1 行聚合，实际=%d", len(periods))
	}
	p := periods[0]
	if p.WeekCount != 45 {
		t.Errorf("周累计期望 45，实际=%d", p.WeekCount)
	}
	if p.MonthCount != 75 {
		t.Errorf("月累计期望 75，实际=%d", p.MonthCount)
	}
	if p.WeekApproved != 38 || p.WeekRejected != 3 {
		t.Errorf("周审核结论错误: approved=%d rejected=%d", p.WeekApproved, p.WeekRejected)
	}
	if p.DaysActive != 2 {
		t.Errorf("活跃天数期望 2，实际=%d", p.DaysActive)
	}
}

func TestSnapshotRepo_PreviousWeekAggregates_InclusiveBounds(t *testing.T) {
	lga, enum1, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	seed := []model.DailySnapshot{
		{UserID: enum1.UserID, LgaID: &lga.LgaID, Role: model.RoleEnumerator, Date: "2026-02-16", SubmissionCount: 10}, // 上周一
		{UserID: enum1.UserID, LgaID: &lga.LgaID, Role: model.RoleEnumerator, Date: "2026-02-22", SubmissionCount: 15}, // 上周日
		{UserID: enum1.UserID, LgaID: &lga.LgaID, Role: model.RoleEnumerator, Date: "2026-02-23", SubmissionCount: 99}, // 本周一，不计
	}
	if err := repo.Snapshot.Upsert(ctx, seed); err != nil {
		t.Fatalf("写入快照失败: %v", err)
	}

	prev, err := repo.Snapshot.PreviousWeekAggregates(ctx, []string{enum1.UserID}, "2026-02-16", "2026-02-22")
	if err != nil {
		t.Fatalf("PreviousWeekAggregates 失败: %v", err)
	}
	if len(prev) != 1 {
		t.Fatalf("期望 1 行聚合，实际=%d", len(prev))
	}
	// 区间两端均含
	if prev[0].Total != 25 || prev[0].Days != 2 {
		t.Errorf("上周聚合错误: total=%d days=%d", prev[0].Total, prev[0].Days)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: ReviewRepository
// ═══════════════════════════════════════════════════════════

func TestReviewRepo_ThroughputAndOutcomes(t *testing.T) {
	lga, enum1, _, sup, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	todayStart := time.Date(2026, 2, 24, 23, 0, 0, 0, time.UTC)
	weekStart := time.Date(2026, 2, 22, 23, 0, 0, 0, time.UTC)
	monthStart := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)

	mkReview := func(at time.Time, outcome string) {
		sub := mustCreateSubmission(t, enum1.UserID, &lga.LgaID, at.Add(-time.Hour))
		r := &model.Review{
			SubmissionID: sub.SubmissionID,
			SubmitterID:  enum1.UserID,
			ReviewedBy:   &sup.UserID,
			ReviewedAt:   &at,
			Outcome:      outcome,
		}
		if err := testDB.Create(r).Error; err != nil {
			t.Fatalf("创建审核记录失败: %v", err)
		}
	}
	mkReview(todayStart.Add(10*time.Hour), model.ReviewOutcomeApproved)
	mkReview(todayStart.Add(11*time.Hour), model.ReviewOutcomeRejected)
	mkReview(weekStart.Add(5*time.Hour), model.ReviewOutcomeApproved)  // 本周非今日
	mkReview(monthStart.Add(5*time.Hour), model.ReviewOutcomeApproved) // 本月非本周

	facts, err := repo.Review.ReviewThroughput(ctx, []string{sup.UserID}, todayStart, weekStart, monthStart)
	if err != nil {
		t.Fatalf("ReviewThroughput 失败: %v", err)
	}
	if len(facts) != 1 {
		t.Fatalf("期望 1 行吞吐量，实际=%d", len(facts))
	}
	f := facts[0]
	if f.TodayReviews != 2 || f.WeekReviews != 3 || f.MonthReviews != 4 {
		t.Errorf("审核吞吐量错误: today=%d week=%d month=%d", f.TodayReviews, f.WeekReviews, f.MonthReviews)
	}
	if f.ApprovedCount != 3 || f.RejectedCount != 1 {
		t.Errorf("审核结论错误: approved=%d rejected=%d", f.ApprovedCount, f.RejectedCount)
	}
	if f.LastReviewedAt == nil {
		t.Error("期望携带最近审核时间")
	}

	outcomes, err := repo.Review.TodayOutcomes(ctx, []string{enum1.UserID}, todayStart)
	if err != nil {
		t.Fatalf("TodayOutcomes 失败: %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].ApprovedCount != 1 || outcomes[0].RejectedCount != 1 {
		t.Errorf("今日审核结论错误: %+v", outcomes)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: TeamAssignmentRepository
// ═══════════════════════════════════════════════════════════

func TestTeamAssignmentRepo_ActiveOnly(t *testing.T) {
	_, enum1, enum2, sup, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	unassigned := time.Now().Add(-time.Hour)
	seed := []model.TeamAssignment{
		{EnumeratorID: enum1.UserID, SupervisorID: sup.UserID, AssignedAt: time.Now().Add(-48 * time.Hour)},
		// 已解除的历史分配不参与任何查询
		{EnumeratorID: enum2.UserID, SupervisorID: sup.UserID, AssignedAt: time.Now().Add(-48 * time.Hour), UnassignedAt: &unassigned},
	}
	for i := range seed {
		if err := testDB.Create(&seed[i]).Error; err != nil {
			t.Fatalf("创建团队分配失败: %v", err)
		}
	}

	ids, err := repo.TeamAssignment.EnumeratorIDsForSupervisor(ctx, sup.UserID)
	if err != nil {
		t.Fatalf("EnumeratorIDsForSupervisor 失败: %v", err)
	}
	if len(ids) != 1 || ids[0] != enum1.UserID {
		t.Errorf("期望仅 enum1 在团队内，实际=%v", ids)
	}

	edges, err := repo.TeamAssignment.ActiveAssignments(ctx, []string{enum1.UserID, enum2.UserID})
	if err != nil {
		t.Fatalf("ActiveAssignments 失败: %v", err)
	}
	if len(edges) != 1 || edges[0].EnumeratorID != enum1.UserID {
		t.Errorf("期望仅 enum1 的有效边，实际=%+v", edges)
	}

	sizes, err := repo.TeamAssignment.TeamSizes(ctx, []string{sup.UserID})
	if err != nil {
		t.Fatalf("TeamSizes 失败: %v", err)
	}
	if len(sizes) != 1 || sizes[0].SupervisorID != sup.UserID || sizes[0].MemberCount != 1 {
		t.Errorf("期望 sup 团队规模 1，实际=%+v", sizes)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: TargetRepository
// ═══════════════════════════════════════════════════════════

func TestTargetRepo_CloseAndInsert_Versioning(t *testing.T) {
	lga, _, _, sup, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := repo.Target.CloseAndInsert(ctx, &lga.LgaID, 30, sup.UserID, now); err != nil {
		t.Fatalf("首次 CloseAndInsert 失败: %v", err)
	}
	if err := repo.Target.CloseAndInsert(ctx, &lga.LgaID, 40, sup.UserID, now.Add(time.Minute)); err != nil {
		t.Fatalf("二次 CloseAndInsert 失败: %v", err)
	}

	var all []model.ProductivityTarget
	testDB.Where("lga_id = ?", lga.LgaID).Order("effective_from").Find(&all)
	if len(all) != 2 {
		t.Fatalf("期望保留 2 个版本，实际=%d", len(all))
	}
	if all[0].EffectiveUntil == nil {
		t.Error("旧版本应被关闭")
	}
	if all[1].EffectiveUntil != nil || all[1].DailyTarget != 40 {
		t.Errorf("新版本状态错误: %+v", all[1])
	}

	active, err := repo.Target.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive 失败: %v", err)
	}
	for _, row := range active {
		if row.LgaID != nil && *row.LgaID == lga.LgaID && row.DailyTarget != 40 {
			t.Errorf("生效版本期望 40，实际=%d", row.DailyTarget)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// Test: StaffRepository
// ═══════════════════════════════════════════════════════════

func TestStaffRepo_GetByEmail_PreloadsLga(t *testing.T) {
	lga, enum1, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)

	staff, err := repo.Staff.GetByEmail(context.Background(), enum1.Email)
	if err != nil {
		t.Fatalf("GetByEmail 失败: %v", err)
	}
	if staff.UserID != enum1.UserID {
		t.Errorf("期望 %s，实际=%s", enum1.UserID, staff.UserID)
	}
	if staff.Lga == nil || staff.Lga.Name != lga.Name {
		t.Errorf("期望预加载 LGA %q，实际=%+v", lga.Name, staff.Lga)
	}
}

func TestStaffRepo_ListActiveFieldStaff(t *testing.T) {
	lga, enum1, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 停用员工与非外勤角色不应出现
	suffix := time.Now().UnixNano()
	extra := []*model.Staff{
		{FullName: "停用员工", Email: fmt.Sprintf("gone%d@oslsr.gov.ng", suffix), PasswordHash: "$2a$10$placeholder",
			Role: model.RoleEnumerator, Status: model.StatusInactive, LgaID: &lga.LgaID},
		{FullName: "管理员", Email: fmt.Sprintf("admin%d@oslsr.gov.ng", suffix), PasswordHash: "$2a$10$placeholder",
			Role: model.RoleSuperAdmin, Status: model.StatusActive},
	}
	for _, s := range extra {
		if err := testDB.Create(s).Error; err != nil {
			t.Fatalf("创建员工失败: %v", err)
		}
		defer testDB.Unscoped().Where("user_id = ?", s.UserID).Delete(&model.Staff{})
	}

	staff, err := repo.Staff.ListActiveFieldStaff(ctx)
	if err != nil {
		t.Fatalf("ListActiveFieldStaff 失败: %v", err)
	}

	found := make(map[string]bool)
	for _, s := range staff {
		found[s.UserID] = true
	}
	if !found[enum1.UserID] {
		t.Error("期望包含在职采集员")
	}
	if found[extra[0].UserID] {
		t.Error("停用员工不应出现")
	}
	if found[extra[1].UserID] {
		t.Error("super_admin 不应出现")
	}
}
