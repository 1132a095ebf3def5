package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/metrics"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService 项目导出服务
type ExportService struct {
	projectRepo *repository.ProjectRepository
}

// NewExportService 创建导出服务
func NewExportService(projectRepo *repository.ProjectRepository) *ExportService {
	return &ExportService{projectRepo: projectRepo}
}

var projectExportHeaders = []string{
	"ID", "Name", "Sector", "District", "Status", "Progress %",
	"Budget Allocated", "Budget Spent", "Budget Utilization %",
	"KPI Target", "KPI Achieved", "KPI Achievement %",
	"Start Date", "End Date Planned", "Days Remaining",
}

func projectExportRow(p *entity.Project, today time.Time) []string {
	m := metrics.Compute(p, today)
	sector, district := "", ""
	if p.Sector != nil {
		sector = p.Sector.Name
	}
	if p.District != nil {
		district = p.District.Name
	}
	return []string{
		p.ID,
		p.Name,
		sector,
		district,
		p.Status,
		p.ProgressPercent.StringFixed(2),
		p.BudgetAllocated.StringFixed(2),
		p.BudgetSpent.StringFixed(2),
		m.BudgetUtilizationPercent.StringFixed(2),
		p.KPITarget.StringFixed(2),
		p.KPIAchieved.StringFixed(2),
		m.KPIAchievementPercent.StringFixed(2),
		p.StartDate.Format(dateLayout),
		p.PlannedEnd.Format(dateLayout),
		strconv.Itoa(m.DaysRemaining),
	}
}

// ExportCSV 导出项目为CSV
func (s *ExportService) ExportCSV(ctx context.Context, filters map[string]interface{}, today time.Time) ([]byte, string, error) {
	projects, err := s.projectRepo.ListFiltered(ctx, filters)
	if err != nil {
		return nil, "", fmt.Errorf("list projects: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(projectExportHeaders); err != nil {
		return nil, "", fmt.Errorf("write csv header: %w", err)
	}
	for i := range projects {
		if err := w.Write(projectExportRow(&projects[i], today)); err != nil {
			return nil, "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), "projects.csv", nil
}

// ExportXLSX 导出项目为xlsx
func (s *ExportService) ExportXLSX(ctx context.Context, filters map[string]interface{}, today time.Time) (*excelize.File, string, error) {
	projects, err := s.projectRepo.ListFiltered(ctx, filters)
	if err != nil {
		return nil, "", fmt.Errorf("list projects: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Projects"
	f.SetSheetName("Sheet1", sheet)

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	// 写入表头
	for i, h := range projectExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	// 写入数据行
	for rowIdx := range projects {
		row := rowIdx + 2
		for colIdx, value := range projectExportRow(&projects[rowIdx], today) {
			col, _ := excelize.ColumnNumberToName(colIdx + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), value)
		}
	}

	// 列宽
	colWidths := []float64{34, 40, 16, 16, 12, 10, 16, 16, 16, 12, 12, 16, 12, 14, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("projects_%s.xlsx", today.Format(dateLayout))
	return f, filename, nil
}
