package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"oslsr/backend/internal/dto"
	"oslsr/backend/internal/service"
	"oslsr/backend/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportStaffProductivity 导出全员生产力报表
// GET /api/v1/productivity/export?format=xlsx|csv
// 过滤参数与 GET /api/v1/productivity/staff 完全一致
func (h *ExportHandler) ExportStaffProductivity(c *gin.Context) {
	var req dto.CrossLgaStaffRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	buf, filename, err := h.exportSvc.ExportStaffProductivity(c.Request.Context(), &req, format)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	contentType := xlsxContentType
	if format == "csv" {
		contentType = csvContentType
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportBadFormat):
		response.BadRequest(c, 13001, "导出格式仅支持 xlsx 或 csv")
	case errors.Is(err, service.ErrExportNoRows):
		response.NotFound(c, 13002, "无可导出的生产力数据")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
