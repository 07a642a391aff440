package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"oslsr/backend/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoRows       = errors.New("无可导出的生产力数据")
	ErrExportBadFormat    = errors.New("导出格式仅支持 xlsx 或 csv")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// exportPageSize 导出一次性取全量行，不分页
const exportPageSize = 10000

// ExportService 生产力报表导出接口
//
// 设计说明：
//   - 导出基于全员视图的同一条聚合流水线，过滤参数与在线查询完全一致
//   - 输出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - xlsx 为默认格式；csv 供政府侧旧系统导入使用
type ExportService interface {
	// ExportStaffProductivity 导出全员生产力报表
	ExportStaffProductivity(ctx context.Context, req *dto.CrossLgaStaffRequest, format string) (*bytes.Buffer, string, error)
}

type exportService struct {
	productivity ProductivityService
	logger       *zap.Logger
	now          func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(productivity ProductivityService, logger *zap.Logger) ExportService {
	return &exportService{
		productivity: productivity,
		logger:       logger,
		now:          time.Now,
	}
}

var exportHeader = []string{
	"姓名", "角色", "LGA", "督导员",
	"今日提交", "日目标", "达成率(%)", "状态", "趋势",
	"本周累计", "本月累计", "通过数", "驳回数", "驳回率(%)", "最近活动",
}

func (s *exportService) ExportStaffProductivity(ctx context.Context, req *dto.CrossLgaStaffRequest, format string) (*bytes.Buffer, string, error) {
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		return nil, "", ErrExportBadFormat
	}

	// 全量取行：不分页，过滤与排序沿用在线查询语义
	full := *req
	full.Page = 1
	full.PageSize = exportPageSize
	result, err := s.productivity.GetAllStaffProductivity(ctx, &full)
	if err != nil {
		s.logger.Error("导出查询失败", zap.Error(err))
		return nil, "", err
	}
	if len(result.Rows) == 0 {
		return nil, "", ErrExportNoRows
	}

	date := watDate(s.now())
	if format == "csv" {
		buf, err := s.renderCSV(result.Rows)
		if err != nil {
			return nil, "", err
		}
		return buf, fmt.Sprintf("productivity_%s.csv", date), nil
	}

	buf, err := s.renderXLSX(result.Rows, date)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("productivity_%s.xlsx", date), nil
}

func rowCells(r *dto.CrossLgaStaffRow) []string {
	supervisor := "-"
	if r.SupervisorName != nil {
		supervisor = *r.SupervisorName
	}
	lastActive := "-"
	if r.LastActiveAt != nil {
		lastActive = *r.LastActiveAt
	}
	return []string{
		r.FullName, r.Role, r.LgaName, supervisor,
		strconv.Itoa(r.TodayCount), strconv.Itoa(r.Target),
		strconv.Itoa(r.Percent), r.Status, r.Trend,
		strconv.Itoa(r.WeekCount), strconv.Itoa(r.MonthCount),
		strconv.Itoa(r.ApprovedCount), strconv.Itoa(r.RejectedCount),
		strconv.Itoa(r.RejRate), lastActive,
	}
}

func (s *exportService) renderCSV(rows []dto.CrossLgaStaffRow) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, ErrExportGenerateFail
	}
	for i := range rows {
		if err := w.Write(rowCells(&rows[i])); err != nil {
			return nil, ErrExportGenerateFail
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("写入 CSV 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

func (s *exportService) renderXLSX(rows []dto.CrossLgaStaffRow, date string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "生产力报表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "D", 16)
	f.SetColWidth(sheetName, "O", "O", 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("全员生产力报表 — %s", date))
	f.MergeCell(sheetName, "A1", cell(colName(len(exportHeader)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range exportHeader {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(exportHeader)-1), 2), headerStyle)

	// 数据行
	for i := range rows {
		for j, v := range rowCells(&rows[i]) {
			f.SetCellValue(sheetName, cell(colName(j), 3+i), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
