package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"oslsr/backend/internal/model"
	"oslsr/backend/internal/repository"
)

// ── Mock StaffRepository ──

type mockStaffRepo struct {
	staff []model.Staff
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{}
}

func (m *mockStaffRepo) GetByID(_ context.Context, id string) (*model.Staff, error) {
	for i := range m.staff {
		if m.staff[i].UserID == id {
			return &m.staff[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) GetByEmail(_ context.Context, email string) (*model.Staff, error) {
	for i := range m.staff {
		if m.staff[i].Email == email {
			return &m.staff[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) ListActiveFieldStaff(_ context.Context) ([]model.Staff, error) {
	var result []model.Staff
	for _, s := range m.staff {
		if (s.Status == model.StatusActive || s.Status == model.StatusVerified) && s.IsFieldRole() {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockStaffRepo) ListByIDs(_ context.Context, ids []string) ([]model.Staff, error) {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var result []model.Staff
	for _, s := range m.staff {
		if idSet[s.UserID] {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockStaffRepo) NamesByIDs(_ context.Context, ids []string) ([]repository.StaffName, error) {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var result []repository.StaffName
	for _, s := range m.staff {
		if idSet[s.UserID] {
			result = append(result, repository.StaffName{UserID: s.UserID, FullName: s.FullName})
		}
	}
	return result, nil
}

func (m *mockStaffRepo) UpdateLastLogin(_ context.Context, id string) error {
	for i := range m.staff {
		if m.staff[i].UserID == id {
			now := time.Now()
			m.staff[i].LastLoginAt = &now
		}
	}
	return nil
}

// ── Mock LgaRepository ──

type mockLgaRepo struct {
	lgas []model.Lga
}

func newMockLgaRepo() *mockLgaRepo {
	return &mockLgaRepo{}
}

func (m *mockLgaRepo) List(_ context.Context) ([]model.Lga, error) {
	return append([]model.Lga{}, m.lgas...), nil
}

func (m *mockLgaRepo) GetByID(_ context.Context, id string) (*model.Lga, error) {
	for i := range m.lgas {
		if m.lgas[i].LgaID == id {
			return &m.lgas[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock SubmissionRepository ──

// mockSubmissionRepo 按用户存放预聚合事实；todayCalls 用于断言空团队短路
type mockSubmissionRepo struct {
	facts      map[string]repository.ThroughputFact
	ranges     map[string]int
	todayCalls int
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{
		facts:  make(map[string]repository.ThroughputFact),
		ranges: make(map[string]int),
	}
}

func (m *mockSubmissionRepo) TodayCounts(_ context.Context, staffIDs []string, _ time.Time) ([]repository.ThroughputFact, error) {
	m.todayCalls++
	var result []repository.ThroughputFact
	for _, id := range staffIDs {
		if f, ok := m.facts[id]; ok {
			result = append(result, f)
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) CountRange(_ context.Context, staffIDs []string, _, _ time.Time) ([]repository.SubmissionCount, error) {
	var result []repository.SubmissionCount
	for _, id := range staffIDs {
		if n, ok := m.ranges[id]; ok {
			result = append(result, repository.SubmissionCount{SubmitterID: id, Count: n})
		}
	}
	return result, nil
}

// ── Mock SnapshotRepository ──

type mockSnapshotRepo struct {
	periods  map[string]repository.PeriodSnapshot
	previous map[string]repository.PreviousPeriodSnapshot
	upserted []model.DailySnapshot
}

func newMockSnapshotRepo() *mockSnapshotRepo {
	return &mockSnapshotRepo{
		periods:  make(map[string]repository.PeriodSnapshot),
		previous: make(map[string]repository.PreviousPeriodSnapshot),
	}
}

func (m *mockSnapshotRepo) PeriodAggregates(_ context.Context, staffIDs []string, _, _ string) ([]repository.PeriodSnapshot, error) {
	var result []repository.PeriodSnapshot
	for _, id := range staffIDs {
		if p, ok := m.periods[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockSnapshotRepo) PreviousWeekAggregates(_ context.Context, staffIDs []string, _, _ string) ([]repository.PreviousPeriodSnapshot, error) {
	var result []repository.PreviousPeriodSnapshot
	for _, id := range staffIDs {
		if p, ok := m.previous[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockSnapshotRepo) Upsert(_ context.Context, snapshots []model.DailySnapshot) error {
	m.upserted = append(m.upserted, snapshots...)
	return nil
}

// ── Mock ReviewRepository ──

type mockReviewRepo struct {
	outcomes   map[string]repository.ReviewOutcomeFact
	throughput map[string]repository.ReviewThroughputFact
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{
		outcomes:   make(map[string]repository.ReviewOutcomeFact),
		throughput: make(map[string]repository.ReviewThroughputFact),
	}
}

func (m *mockReviewRepo) TodayOutcomes(_ context.Context, submitterIDs []string, _ time.Time) ([]repository.ReviewOutcomeFact, error) {
	var result []repository.ReviewOutcomeFact
	for _, id := range submitterIDs {
		if o, ok := m.outcomes[id]; ok {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *mockReviewRepo) OutcomesRange(_ context.Context, submitterIDs []string, _, _ time.Time) ([]repository.ReviewOutcomeFact, error) {
	return m.TodayOutcomes(context.Background(), submitterIDs, time.Time{})
}

func (m *mockReviewRepo) ReviewThroughput(_ context.Context, supervisorIDs []string, _, _, _ time.Time) ([]repository.ReviewThroughputFact, error) {
	var result []repository.ReviewThroughputFact
	for _, id := range supervisorIDs {
		if r, ok := m.throughput[id]; ok {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── Mock TeamAssignmentRepository ──

type mockTeamAssignmentRepo struct {
	edges []repository.AssignmentEdge
}

func newMockTeamAssignmentRepo() *mockTeamAssignmentRepo {
	return &mockTeamAssignmentRepo{}
}

func (m *mockTeamAssignmentRepo) EnumeratorIDsForSupervisor(_ context.Context, supervisorID string) ([]string, error) {
	var ids []string
	for _, e := range m.edges {
		if e.SupervisorID == supervisorID {
			ids = append(ids, e.EnumeratorID)
		}
	}
	return ids, nil
}

func (m *mockTeamAssignmentRepo) ActiveAssignments(_ context.Context, enumeratorIDs []string) ([]repository.AssignmentEdge, error) {
	idSet := make(map[string]bool, len(enumeratorIDs))
	for _, id := range enumeratorIDs {
		idSet[id] = true
	}
	var result []repository.AssignmentEdge
	for _, e := range m.edges {
		if idSet[e.EnumeratorID] {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockTeamAssignmentRepo) TeamSizes(_ context.Context, supervisorIDs []string) ([]repository.TeamSizeFact, error) {
	counts := make(map[string]int)
	for _, e := range m.edges {
		counts[e.SupervisorID]++
	}
	var result []repository.TeamSizeFact
	for _, id := range supervisorIDs {
		if n, ok := counts[id]; ok {
			result = append(result, repository.TeamSizeFact{SupervisorID: id, MemberCount: n})
		}
	}
	return result, nil
}

// ── Mock TargetRepository ──

type mockTargetRepo struct {
	targets []model.ProductivityTarget
}

func newMockTargetRepo() *mockTargetRepo {
	return &mockTargetRepo{}
}

func (m *mockTargetRepo) ListActive(_ context.Context) ([]model.ProductivityTarget, error) {
	var result []model.ProductivityTarget
	for _, t := range m.targets {
		if t.EffectiveUntil == nil {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockTargetRepo) CloseAndInsert(_ context.Context, lgaID *string, dailyTarget int, adminID string, now time.Time) error {
	for i := range m.targets {
		t := &m.targets[i]
		if t.EffectiveUntil != nil {
			continue
		}
		if (lgaID == nil) == (t.LgaID == nil) && (lgaID == nil || *lgaID == *t.LgaID) {
			until := now
			t.EffectiveUntil = &until
		}
	}
	m.targets = append(m.targets, model.ProductivityTarget{
		LgaID:         lgaID,
		DailyTarget:   dailyTarget,
		EffectiveFrom: now,
		AuditedModel:  model.AuditedModel{CreatedBy: &adminID},
	})
	return nil
}

// ── 聚合构造 ──

type mockRepos struct {
	staff      *mockStaffRepo
	lga        *mockLgaRepo
	submission *mockSubmissionRepo
	snapshot   *mockSnapshotRepo
	review     *mockReviewRepo
	assignment *mockTeamAssignmentRepo
	target     *mockTargetRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		staff:      newMockStaffRepo(),
		lga:        newMockLgaRepo(),
		submission: newMockSubmissionRepo(),
		snapshot:   newMockSnapshotRepo(),
		review:     newMockReviewRepo(),
		assignment: newMockTeamAssignmentRepo(),
		target:     newMockTargetRepo(),
	}
	repo := &repository.Repository{
		Staff:          m.staff,
		Lga:            m.lga,
		Submission:     m.submission,
		Snapshot:       m.snapshot,
		Review:         m.review,
		TeamAssignment: m.assignment,
		Target:         m.target,
	}
	return repo, m
}
