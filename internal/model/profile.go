package model

import "fmt"

// RevenueBand 年营收规模档位
type RevenueBand string

const (
	RevenueMicro  RevenueBand = "micro"  // 微型
	RevenueSmall  RevenueBand = "small"  // 小型
	RevenueMedium RevenueBand = "medium" // 中型
	RevenueLarge  RevenueBand = "large"  // 大型
)

// Valid 判断档位取值是否合法
func (b RevenueBand) Valid() bool {
	switch b {
	case RevenueMicro, RevenueSmall, RevenueMedium, RevenueLarge:
		return true
	}
	return false
}

// OrganizationProfile 组织画像（框架匹配的输入）
// 每次查询临时提供，不持久化；前四个字段必填
type OrganizationProfile struct {
	Sector       string      `json:"sector"`       // 行业
	RevenueBand  RevenueBand `json:"revenueBand"`  // 营收档位
	Listed       *bool       `json:"listed"`       // 是否上市（指针用于区分未填写）
	Jurisdiction string      `json:"jurisdiction"` // 主要经营地，如 EU

	// 以下为可选精确口径，用于 CSRD/GRI 的人数/营业额阈值判断
	Employees      int     `json:"employees,omitempty"`      // 员工数
	AnnualTurnover float64 `json:"annualTurnover,omitempty"` // 年营业额（欧元）
}

// Validate 校验画像完整性，缺失必填字段返回 IncompleteProfileError
func (p *OrganizationProfile) Validate() error {
	if p.Sector == "" {
		return &IncompleteProfileError{Field: "sector"}
	}
	if p.RevenueBand == "" {
		return &IncompleteProfileError{Field: "revenueBand"}
	}
	if !p.RevenueBand.Valid() {
		return fmt.Errorf("非法营收档位: %s", p.RevenueBand)
	}
	if p.Listed == nil {
		return &IncompleteProfileError{Field: "listed"}
	}
	if p.Jurisdiction == "" {
		return &IncompleteProfileError{Field: "jurisdiction"}
	}
	return nil
}

// IsListed 是否上市（画像未校验时按未上市处理）
func (p *OrganizationProfile) IsListed() bool {
	return p.Listed != nil && *p.Listed
}

// IncompleteProfileError 画像字段缺失错误
type IncompleteProfileError struct {
	Field string
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("组织画像缺少必填字段: %s", e.Field)
}
