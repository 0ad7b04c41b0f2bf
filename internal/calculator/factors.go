package calculator

import (
	"fmt"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// Factor 排放因子定义
// 因子值为每活动单位的 tCO2e，折算为 kg CO2e 时乘以 1000
type Factor struct {
	Activity string             `json:"activity"` // 活动类型 key
	Scope    model.Scope        `json:"scope"`    // 所属范围
	Category string             `json:"category"` // 排放类别
	Unit     string             `json:"unit"`     // 活动量单位
	Value    float64            `json:"value"`    // tCO2e / 单位，细分项因子见 Variants
	Variants map[string]float64 `json:"variants,omitempty"`

	// 细分项缺省 key（电网区域、制冷剂型号未指定时使用）
	DefaultVariant string `json:"defaultVariant,omitempty"`
}

// factorCatalog 排放因子表
// 构建期固定，运行期只读；数值口径为 tCO2e/单位
var factorCatalog = []Factor{
	// 范围一
	{Activity: "natural_gas", Scope: model.Scope1, Category: "stationary_combustion", Unit: "m3", Value: 0.00205},
	{Activity: "diesel_stationary", Scope: model.Scope1, Category: "stationary_combustion", Unit: "L", Value: 0.00270},
	{Activity: "gasoline", Scope: model.Scope1, Category: "mobile_combustion", Unit: "L", Value: 0.00233},
	{Activity: "diesel_mobile", Scope: model.Scope1, Category: "mobile_combustion", Unit: "L", Value: 0.00267},
	{Activity: "refrigerant", Scope: model.Scope1, Category: "refrigerants", Unit: "kg",
		Variants: map[string]float64{
			"R-410A": 2.088,
			"R-134a": 1.43,
			"R-404A": 3.922,
			"R-32":   0.675,
			"Other":  1.5,
		},
		DefaultVariant: "Other",
	},

	// 范围二
	{Activity: "electricity", Scope: model.Scope2, Category: "electricity", Unit: "kWh",
		Variants: map[string]float64{
			"Northeast": 0.000221,
			"Southeast": 0.000389,
			"Midwest":   0.000452,
			"Southwest": 0.000386,
			"West":      0.000279,
			"Other":     0.000416, // 全国平均
		},
		DefaultVariant: "Other",
	},
	{Activity: "purchased_steam", Scope: model.Scope2, Category: "district_energy", Unit: "MJ", Value: 0.00009},
	{Activity: "purchased_heat", Scope: model.Scope2, Category: "district_energy", Unit: "MJ", Value: 0.00007},

	// 范围三
	{Activity: "air_travel_short", Scope: model.Scope3, Category: "business_travel", Unit: "pkm", Value: 0.000156},
	{Activity: "air_travel_long", Scope: model.Scope3, Category: "business_travel", Unit: "pkm", Value: 0.000139},
	{Activity: "hotel_stays", Scope: model.Scope3, Category: "business_travel", Unit: "room-night", Value: 0.0218},
	{Activity: "rental_car", Scope: model.Scope3, Category: "business_travel", Unit: "km", Value: 0.000175},
	{Activity: "car_commute", Scope: model.Scope3, Category: "employee_commuting", Unit: "pkm", Value: 0.000175},
	{Activity: "public_transit", Scope: model.Scope3, Category: "employee_commuting", Unit: "pkm", Value: 0.000067},
	{Activity: "landfill_waste", Scope: model.Scope3, Category: "waste", Unit: "kg", Value: 0.000458},
	{Activity: "recycled_waste", Scope: model.Scope3, Category: "waste", Unit: "kg", Value: 0.000021},
	{Activity: "paper_consumption", Scope: model.Scope3, Category: "purchased_goods", Unit: "kg", Value: 0.00139},
	{Activity: "water_consumption", Scope: model.Scope3, Category: "purchased_goods", Unit: "m3", Value: 0.000344},
}

// factorIndex 按活动类型索引因子表
var factorIndex = buildFactorIndex()

func buildFactorIndex() map[string]*Factor {
	index := make(map[string]*Factor, len(factorCatalog))
	for i := range factorCatalog {
		index[factorCatalog[i].Activity] = &factorCatalog[i]
	}
	return index
}

// Factors 获取因子表（声明顺序）
func Factors() []Factor {
	return factorCatalog
}

// LookupFactor 按活动类型查找因子
func LookupFactor(activity string) (*Factor, bool) {
	f, ok := factorIndex[activity]
	return f, ok
}

// UnknownActivityError 未知活动类型错误
type UnknownActivityError struct {
	Activity string
	Index    int
}

func (e *UnknownActivityError) Error() string {
	return fmt.Sprintf("记录 %d 的活动类型无法识别: %s", e.Index, e.Activity)
}

// factorFor 取细分项因子值（tCO2e/单位）
func (f *Factor) factorFor(variant string) float64 {
	if f.Variants == nil {
		return f.Value
	}
	if v, ok := f.Variants[variant]; ok {
		return v
	}
	return f.Variants[f.DefaultVariant]
}

// ComputeEntries 将活动数据折算为排放记录
// 活动量 × 因子 × 1000（tCO2e → kg CO2e）；活动量为0的记录跳过
func ComputeEntries(activities []model.ActivityRecord) ([]model.EmissionEntry, error) {
	entries := make([]model.EmissionEntry, 0, len(activities))

	for i, a := range activities {
		factor, ok := LookupFactor(a.Activity)
		if !ok {
			return nil, &UnknownActivityError{Activity: a.Activity, Index: i}
		}
		if a.Amount < 0 {
			return nil, &model.InvalidAmountError{Amount: a.Amount, Index: i}
		}
		if a.Amount == 0 {
			continue
		}

		entries = append(entries, model.EmissionEntry{
			Scope:    factor.Scope,
			Category: a.Activity,
			Amount:   a.Amount * factor.factorFor(a.Variant) * 1000,
		})
	}

	return entries, nil
}
