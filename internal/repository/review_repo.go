package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"oslsr/backend/internal/model"
)

// ReviewOutcomeFact 按提交人聚合的审核通过/驳回计数
type ReviewOutcomeFact struct {
	SubmitterID   string
	ApprovedCount int
	RejectedCount int
}

// ReviewThroughputFact 督导员审核吞吐量（今日/本周/本月）
type ReviewThroughputFact struct {
	ReviewedBy     string
	TodayReviews   int
	WeekReviews    int
	MonthReviews   int
	ApprovedCount  int
	RejectedCount  int
	LastReviewedAt *time.Time
}

// ReviewRepository 审核记录数据访问接口（引擎只读）
type ReviewRepository interface {
	// TodayOutcomes 聚合今日提交对应的审核通过/驳回量（按提交人）
	TodayOutcomes(ctx context.Context, submitterIDs []string, todayStart time.Time) ([]ReviewOutcomeFact, error)
	// OutcomesRange 聚合 [from, to) 区间内提交对应的审核结论（快照任务使用）
	OutcomesRange(ctx context.Context, submitterIDs []string, from, to time.Time) ([]ReviewOutcomeFact, error)
	// ReviewThroughput 聚合督导员本月以来的审核吞吐量，按 today/week/month 三档分列
	ReviewThroughput(ctx context.Context, supervisorIDs []string, todayStart, weekStart, monthStart time.Time) ([]ReviewThroughputFact, error)
}

// reviewRepo ReviewRepository 的 GORM 实现
type reviewRepo struct {
	db *gorm.DB
}

// NewReviewRepo 创建 ReviewRepository 实例
func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) TodayOutcomes(ctx context.Context, submitterIDs []string, todayStart time.Time) ([]ReviewOutcomeFact, error) {
	if len(submitterIDs) == 0 {
		return nil, nil
	}
	var facts []ReviewOutcomeFact
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select(`submitter_id,
			COUNT(*) FILTER (WHERE outcome = ?) AS approved_count,
			COUNT(*) FILTER (WHERE outcome = ?) AS rejected_count`,
			model.ReviewOutcomeApproved, model.ReviewOutcomeRejected).
		Joins("JOIN submissions ON submissions.submission_id = submission_reviews.submission_id").
		Where("submission_reviews.submitter_id IN ?", submitterIDs).
		Where("submissions.submitted_at >= ?", todayStart).
		Group("submission_reviews.submitter_id").
		Scan(&facts).Error
	if err != nil {
		return nil, err
	}
	return facts, nil
}

func (r *reviewRepo) OutcomesRange(ctx context.Context, submitterIDs []string, from, to time.Time) ([]ReviewOutcomeFact, error) {
	if len(submitterIDs) == 0 {
		return nil, nil
	}
	var facts []ReviewOutcomeFact
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select(`submitter_id,
			COUNT(*) FILTER (WHERE outcome = ?) AS approved_count,
			COUNT(*) FILTER (WHERE outcome = ?) AS rejected_count`,
			model.ReviewOutcomeApproved, model.ReviewOutcomeRejected).
		Joins("JOIN submissions ON submissions.submission_id = submission_reviews.submission_id").
		Where("submission_reviews.submitter_id IN ?", submitterIDs).
		Where("submissions.submitted_at >= ? AND submissions.submitted_at < ?", from, to).
		Group("submission_reviews.submitter_id").
		Scan(&facts).Error
	if err != nil {
		return nil, err
	}
	return facts, nil
}

func (r *reviewRepo) ReviewThroughput(ctx context.Context, supervisorIDs []string, todayStart, weekStart, monthStart time.Time) ([]ReviewThroughputFact, error) {
	if len(supervisorIDs) == 0 {
		return nil, nil
	}
	var facts []ReviewThroughputFact
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select(`reviewed_by,
			COUNT(*) FILTER (WHERE reviewed_at >= ?) AS today_reviews,
			COUNT(*) FILTER (WHERE reviewed_at >= ?) AS week_reviews,
			COUNT(*) AS month_reviews,
			COUNT(*) FILTER (WHERE outcome = ?) AS approved_count,
			COUNT(*) FILTER (WHERE outcome = ?) AS rejected_count,
			MAX(reviewed_at) AS last_reviewed_at`,
			todayStart, weekStart,
			model.ReviewOutcomeApproved, model.ReviewOutcomeRejected).
		Where("reviewed_by IN ?", supervisorIDs).
		Where("reviewed_at >= ?", monthStart).
		Group("reviewed_by").
		Scan(&facts).Error
	if err != nil {
		return nil, err
	}
	return facts, nil
}
