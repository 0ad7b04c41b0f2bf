package calculator

import (
	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// Summarize 汇总排放记录
// 单次遍历累加各范围小计与总量，总量大于0时同步计算占比
// 纯函数：无副作用，相同输入必得相同输出
func Summarize(entries []model.EmissionEntry) (*model.EmissionsSummary, error) {
	summary := model.NewEmissionsSummary()

	for i, entry := range entries {
		if !entry.Scope.Valid() {
			return nil, &model.InvalidScopeError{Scope: entry.Scope, Index: i}
		}
		if entry.Amount < 0 {
			return nil, &model.InvalidAmountError{Amount: entry.Amount, Index: i}
		}

		summary.TotalByScope[entry.Scope] += entry.Amount
		summary.GrandTotal += entry.Amount
	}

	// 总量为0（无记录或全零）时占比无定义，调用方需先检查 PercentDefined
	if summary.GrandTotal > 0 {
		summary.PercentDefined = true
		summary.PercentByScope = make(map[model.Scope]float64, 3)
		for scope, total := range summary.TotalByScope {
			summary.PercentByScope[scope] = total / summary.GrandTotal
		}
	}

	return summary, nil
}

// SummarizeByCategory 按类别汇总排放量（用于报表与图表）
// 输入需先经 Summarize 校验；此处遇非法记录同样报错
func SummarizeByCategory(entries []model.EmissionEntry) (map[string]float64, error) {
	categories := make(map[string]float64)
	for i, entry := range entries {
		if !entry.Scope.Valid() {
			return nil, &model.InvalidScopeError{Scope: entry.Scope, Index: i}
		}
		if entry.Amount < 0 {
			return nil, &model.InvalidAmountError{Amount: entry.Amount, Index: i}
		}
		categories[entry.Category] += entry.Amount
	}
	return categories, nil
}
