package model

import "fmt"

// Scope 温室气体核算范围（GHG Protocol）
// 1=直接排放 2=外购能源 3=价值链
type Scope int

const (
	Scope1 Scope = 1 // 范围一：直接排放
	Scope2 Scope = 2 // 范围二：外购电力/热力
	Scope3 Scope = 3 // 范围三：价值链间接排放
)

// Valid 判断范围取值是否合法
func (s Scope) Valid() bool {
	return s == Scope1 || s == Scope2 || s == Scope3
}

// String 范围显示名
func (s Scope) String() string {
	switch s {
	case Scope1:
		return "Scope 1"
	case Scope2:
		return "Scope 2"
	case Scope3:
		return "Scope 3"
	default:
		return fmt.Sprintf("Scope %d", int(s))
	}
}

// EmissionEntry 单条排放记录（kg CO2e）
// 记录一经生成不再修改，汇总时按输入顺序处理
type EmissionEntry struct {
	Scope    Scope   `json:"scope"`
	Category string  `json:"category"` // 排放类别，如 electricity、natural_gas
	Amount   float64 `json:"amount"`   // 排放量 kg CO2e，非负
}

// ActivityRecord 活动数据（尚未折算为排放量）
// 由导入层或前端表单提供，经排放因子折算后得到 EmissionEntry
type ActivityRecord struct {
	Activity string  `json:"activity"` // 活动类型，对应因子表的 key
	Amount   float64 `json:"amount"`   // 活动量，单位由因子表约定
	Variant  string  `json:"variant"`  // 细分项：电网区域 / 制冷剂型号，可为空
}

// InvalidScopeError 非法范围错误
// 发现非法范围立即返回，不做静默丢弃
type InvalidScopeError struct {
	Scope Scope
	Index int // 出错记录在输入序列中的下标
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("记录 %d 的范围取值非法: %d（仅支持 1/2/3）", e.Index, int(e.Scope))
}

// InvalidAmountError 非法排放量错误（负数）
type InvalidAmountError struct {
	Amount float64
	Index  int
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("记录 %d 的排放量不能为负数: %f", e.Index, e.Amount)
}
