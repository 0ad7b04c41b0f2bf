package importer

import (
	"regexp"
	"strings"
)

// ColumnRole 列角色
type ColumnRole string

const (
	ColumnDate     ColumnRole = "date"
	ColumnActivity ColumnRole = "activity"
	ColumnAmount   ColumnRole = "amount"
	ColumnUnit     ColumnRole = "unit"
	ColumnFactor   ColumnRole = "factor"
	ColumnScope    ColumnRole = "scope"
	ColumnVariant  ColumnRole = "variant"
	ColumnUnknown  ColumnRole = "unknown"
)

// 列名识别模式，自上而下优先匹配
var columnPatterns = []struct {
	role    ColumnRole
	pattern *regexp.Regexp
}{
	{ColumnScope, regexp.MustCompile(`(?i)scope|范围`)},
	{ColumnFactor, regexp.MustCompile(`(?i)factor|因子`)},
	{ColumnDate, regexp.MustCompile(`(?i)date|time|period|month|year|日期|时间`)},
	{ColumnUnit, regexp.MustCompile(`(?i)unit|measure|单位`)},
	{ColumnVariant, regexp.MustCompile(`(?i)region|grid|refrigerant type|variant|区域|型号`)},
	{ColumnActivity, regexp.MustCompile(`(?i)activity|category|type|class|source|活动|类别`)},
	{ColumnAmount, regexp.MustCompile(`(?i)amount|quantity|volume|weight|consumption|数量|用量`)},
}

// RecognizeColumns 识别表头各列角色
// 同一角色以首个匹配列为准，后续重复列忽略
func RecognizeColumns(headers []string) map[ColumnRole]int {
	roles := make(map[ColumnRole]int)

	for idx, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}

		for _, cp := range columnPatterns {
			if cp.pattern.MatchString(header) {
				if _, taken := roles[cp.role]; !taken {
					roles[cp.role] = idx
				}
				break
			}
		}
	}

	return roles
}

// HeaderUsable 判断表头是否可用于导入
// 至少需要活动列与数量列
func HeaderUsable(roles map[ColumnRole]int) bool {
	_, hasActivity := roles[ColumnActivity]
	_, hasAmount := roles[ColumnAmount]
	return hasActivity && hasAmount
}

// NormalizeActivity 将表格中的活动名称规范化为因子表 key
// "Natural Gas" → "natural_gas"
func NormalizeActivity(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", " ")
	fields := strings.Fields(name)
	return strings.Join(fields, "_")
}

// 常见活动别名映射到因子表 key
var activityAliases = map[string]string{
	"electricity_usage": "electricity",
	"power":             "electricity",
	"vehicle_fuel":      "gasoline",
	"petrol":            "gasoline",
	"diesel":            "diesel_mobile",
	"air_travel":        "air_travel_short",
	"flight":            "air_travel_short",
	"waste":             "landfill_waste",
	"water":             "water_consumption",
	"paper":             "paper_consumption",
	"steam":             "purchased_steam",
	"heat":              "purchased_heat",
	"heating":           "purchased_heat",
}

// ResolveActivity 规范化并解析活动别名
func ResolveActivity(name string) string {
	key := NormalizeActivity(name)
	if alias, ok := activityAliases[key]; ok {
		return alias
	}
	return key
}
