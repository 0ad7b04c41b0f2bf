package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/calculator"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// RowProblem 单行解析问题
// 解析不中断导入，问题行跳过并记录
type RowProblem struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"` // 1-based 行号
	Message string `json:"message"`
}

// ParseResult 导入解析结果
type ParseResult struct {
	SheetName string                `json:"sheetName"`
	Entries   []model.EmissionEntry `json:"entries"`
	RowCount  int                   `json:"rowCount"` // 成功解析的数据行数
	Problems  []RowProblem          `json:"problems"`
}

// Importer 活动数据 Excel 导入器
type Importer struct{}

// NewImporter 创建导入器
func NewImporter() *Importer {
	return &Importer{}
}

// ParseReader 从上传流解析工作簿
func (im *Importer) ParseReader(r io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 文件失败: %w", err)
	}
	defer f.Close()

	return im.ParseWorkbook(f)
}

// ParseFile 从文件路径解析工作簿
func (im *Importer) ParseFile(path string) (*ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 文件失败: %w", err)
	}
	defer f.Close()

	return im.ParseWorkbook(f)
}

// ParseWorkbook 解析工作簿
// 取第一个表头可识别的 Sheet；逐行解析活动数据并折算为排放记录
func (im *Importer) ParseWorkbook(f *excelize.File) (*ParseResult, error) {
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("读取 Sheet 失败: %w", err)
		}
		if len(rows) < 2 {
			continue
		}

		roles := RecognizeColumns(rows[0])
		if !HeaderUsable(roles) {
			continue
		}

		result := &ParseResult{SheetName: sheetName}
		for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
			im.parseRow(result, sheetName, rowIdx+1, rows[rowIdx], roles)
		}
		return result, nil
	}

	return nil, fmt.Errorf("未找到包含活动数据的 Sheet（需要活动与数量列）")
}

// parseRow 解析单行数据
// 带排放因子列的行按 数量×因子 直接得 kg CO2e（需同时有范围列）
// 否则按活动类型查因子表折算
func (im *Importer) parseRow(result *ParseResult, sheetName string, rowNum int, row []string, roles map[ColumnRole]int) {
	activityRaw := roleCell(row, roles, ColumnActivity)
	if strings.TrimSpace(activityRaw) == "" {
		return // 空行跳过
	}

	amount, err := parseAmount(roleCell(row, roles, ColumnAmount))
	if err != nil {
		result.Problems = append(result.Problems, RowProblem{
			Sheet: sheetName, Row: rowNum,
			Message: fmt.Sprintf("数量无法解析: %v", err),
		})
		return
	}
	if amount < 0 {
		result.Problems = append(result.Problems, RowProblem{
			Sheet: sheetName, Row: rowNum,
			Message: "数量不能为负数",
		})
		return
	}

	// 模式一：表内自带因子与范围
	factorIdx, hasFactor := roles[ColumnFactor]
	scopeIdx, hasScope := roles[ColumnScope]
	if hasFactor && hasScope {
		factorCell := cellAt(row, factorIdx)
		scopeCell := cellAt(row, scopeIdx)
		if strings.TrimSpace(factorCell) != "" && strings.TrimSpace(scopeCell) != "" {
			factor, err := parseAmount(factorCell)
			if err != nil {
				result.Problems = append(result.Problems, RowProblem{
					Sheet: sheetName, Row: rowNum,
					Message: fmt.Sprintf("排放因子无法解析: %v", err),
				})
				return
			}
			scope, err := parseScope(scopeCell)
			if err != nil {
				result.Problems = append(result.Problems, RowProblem{
					Sheet: sheetName, Row: rowNum,
					Message: err.Error(),
				})
				return
			}

			result.Entries = append(result.Entries, model.EmissionEntry{
				Scope:    scope,
				Category: ResolveActivity(activityRaw),
				Amount:   amount * factor,
			})
			result.RowCount++
			return
		}
	}

	// 模式二：按内置因子表折算
	activity := ResolveActivity(activityRaw)
	entries, err := calculator.ComputeEntries([]model.ActivityRecord{
		{Activity: activity, Amount: amount, Variant: roleCell(row, roles, ColumnVariant)},
	})
	if err != nil {
		result.Problems = append(result.Problems, RowProblem{
			Sheet: sheetName, Row: rowNum,
			Message: fmt.Sprintf("活动类型 %q 无法折算: %v", activityRaw, err),
		})
		return
	}
	if len(entries) > 0 {
		result.Entries = append(result.Entries, entries...)
		result.RowCount++
	}
}

// cellAt 取单元格内容，越界返回空串
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// roleCell 按列角色取单元格，角色未识别返回空串
func roleCell(row []string, roles map[ColumnRole]int, role ColumnRole) string {
	idx, ok := roles[role]
	if !ok {
		return ""
	}
	return cellAt(row, idx)
}

// parseAmount 解析数值单元格，容忍千分位逗号与空白
func parseAmount(cell string) (float64, error) {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if cell == "" {
		return 0, fmt.Errorf("单元格为空")
	}
	return strconv.ParseFloat(cell, 64)
}

// parseScope 解析范围单元格
// 支持 "Scope 1" / "scope1" / "1" 等写法
func parseScope(cell string) (model.Scope, error) {
	normalized := strings.ToLower(strings.TrimSpace(cell))
	normalized = strings.TrimPrefix(normalized, "scope")
	normalized = strings.TrimSpace(normalized)

	n, err := strconv.Atoi(normalized)
	if err != nil {
		return 0, fmt.Errorf("范围取值无法解析: %q", cell)
	}

	scope := model.Scope(n)
	if !scope.Valid() {
		return 0, fmt.Errorf("范围取值非法: %d（仅支持 1/2/3）", n)
	}
	return scope, nil
}
