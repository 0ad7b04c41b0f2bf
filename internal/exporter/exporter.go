package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/calculator"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

const (
	sheetSummary = "Summary"
	sheetDetail  = "Entries"
)

// Exporter 排放报告导出器
// 输出两个 Sheet：汇总（组织信息+各范围小计）与明细（逐条排放记录）
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export 导出快照为 Excel 工作簿
func (e *Exporter) Export(snapshot *model.Snapshot) (*excelize.File, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("快照为空")
	}

	summary, err := calculator.Summarize(snapshot.Entries)
	if err != nil {
		return nil, fmt.Errorf("汇总排放数据失败: %w", err)
	}

	f := excelize.NewFile()

	// 默认 Sheet 改名为汇总页
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetSummary); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("重命名汇总页失败: %w", err)
	}

	if err := e.fillSummarySheet(f, snapshot, summary); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillDetailSheet(f, snapshot); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteFile 导出并写入文件
func (e *Exporter) WriteFile(snapshot *model.Snapshot, path string) error {
	f, err := e.Export(snapshot)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("保存导出文件失败: %w", err)
	}
	return nil
}

func (e *Exporter) fillSummarySheet(f *excelize.File, snapshot *model.Snapshot, summary *model.EmissionsSummary) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("创建表头样式失败: %w", err)
	}

	rows := [][]any{
		{"GHG Emissions Report"},
		{},
		{"Organization", snapshot.OrganizationName},
		{"Report Year", snapshot.ReportYear},
		{"Time Period", snapshot.TimePeriod},
		{"Calculation Method", snapshot.CalculationMethod},
		{},
		{"Scope", "Emissions (kg CO2e)", "Share"},
	}

	for _, scope := range []model.Scope{model.Scope1, model.Scope2, model.Scope3} {
		share := ""
		if summary.PercentDefined {
			share = fmt.Sprintf("%.1f%%", summary.PercentByScope[scope]*100)
		}
		rows = append(rows, []any{scope.String(), summary.TotalByScope[scope], share})
	}
	rows = append(rows, []any{"Total", summary.GrandTotal, ""})

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetSummary, cell, v); err != nil {
				return fmt.Errorf("写入汇总页失败: %w", err)
			}
		}
	}

	// 标题与表头加粗
	if err := f.SetCellStyle(sheetSummary, "A1", "A1", headerStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A8", "C8", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetSummary, "A", "C", 24); err != nil {
		return err
	}

	return nil
}

func (e *Exporter) fillDetailSheet(f *excelize.File, snapshot *model.Snapshot) error {
	if _, err := f.NewSheet(sheetDetail); err != nil {
		return fmt.Errorf("创建明细页失败: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	headers := []any{"Scope", "Category", "Emissions (kg CO2e)"}
	for c, h := range headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetDetail, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetDetail, "A1", "C1", headerStyle); err != nil {
		return err
	}

	for i, entry := range snapshot.Entries {
		row := i + 2
		if err := f.SetCellValue(sheetDetail, fmt.Sprintf("A%d", row), entry.Scope.String()); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetDetail, fmt.Sprintf("B%d", row), entry.Category); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetDetail, fmt.Sprintf("C%d", row), entry.Amount); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetDetail, "A", "C", 24); err != nil {
		return err
	}
	return nil
}
