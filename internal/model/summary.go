package model

// EmissionsSummary 排放汇总结果
// 派生数据，不落库；GrandTotal 恒等于输入记录排放量之和
type EmissionsSummary struct {
	TotalByScope   map[Scope]float64 `json:"totalByScope"`             // 各范围小计 kg CO2e
	GrandTotal     float64           `json:"grandTotal"`               // 总排放量 kg CO2e
	PercentByScope map[Scope]float64 `json:"percentByScope,omitempty"` // 各范围占比（0~1），总量为0时不输出
	PercentDefined bool              `json:"percentDefined"`           // 占比是否有定义（总量>0）
}

// NewEmissionsSummary 创建空汇总（三个范围桶置零）
func NewEmissionsSummary() *EmissionsSummary {
	return &EmissionsSummary{
		TotalByScope: map[Scope]float64{
			Scope1: 0,
			Scope2: 0,
			Scope3: 0,
		},
	}
}
