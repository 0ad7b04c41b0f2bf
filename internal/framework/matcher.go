package framework

import (
	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// MatchedRule 单条匹配结果
type MatchedRule struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Basis     string `json:"basis"`
	Rationale string `json:"rationale"`
}

// Match 匹配适用框架，返回框架 ID 列表（目录声明顺序）
// 画像不完整返回 IncompleteProfileError；无匹配返回空列表而非错误
func Match(profile *model.OrganizationProfile) ([]string, error) {
	rules, err := MatchRules(profile)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// MatchRules 匹配适用框架并携带说明（用于 API 展示）
func MatchRules(profile *model.OrganizationProfile) ([]MatchedRule, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	matched := make([]MatchedRule, 0, len(catalog))
	for _, rule := range catalog {
		if rule.Applies(profile) {
			matched = append(matched, MatchedRule{
				ID:        rule.ID,
				Name:      rule.Name,
				Basis:     rule.Basis,
				Rationale: rule.Rationale,
			})
		}
	}
	return matched, nil
}
