package framework

import (
	"strings"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// Rule 框架适用性规则
// 谓词为组织画像上的纯布尔表达式，规则之间互不依赖
type Rule struct {
	ID        string                                  `json:"id"`
	Name      string                                  `json:"name"`
	Basis     string                                  `json:"basis"` // mandatory / recommended
	Rationale string                                  `json:"rationale"`
	Applies   func(p *model.OrganizationProfile) bool `json:"-"`
}

// 气候敏感行业（TCFD 推荐口径）
var climateSensitiveSectors = map[string]bool{
	"energy":                          true,
	"manufacturing":                   true,
	"transportation":                  true,
	"agriculture":                     true,
	"finance":                         true,
	"financial services":              true,
	"mining":                          true,
	"water & waste management":        true,
	"agriculture, forestry & fishing": true,
}

// SASB 优先覆盖的高排放行业
var sasbSectors = map[string]bool{
	"energy":    true,
	"oil":       true,
	"gas":       true,
	"utilities": true,
}

// 欧盟成员国及通称（用于 CSRD/VSME/SFDR 的辖区判断）
var euJurisdictions = map[string]bool{
	"eu": true, "european union": true,
	"austria": true, "belgium": true, "bulgaria": true, "croatia": true,
	"cyprus": true, "czechia": true, "denmark": true, "estonia": true,
	"finland": true, "france": true, "germany": true, "greece": true,
	"hungary": true, "ireland": true, "italy": true, "latvia": true,
	"lithuania": true, "luxembourg": true, "malta": true, "netherlands": true,
	"poland": true, "portugal": true, "romania": true, "slovakia": true,
	"slovenia": true, "spain": true, "sweden": true,
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isEU(p *model.OrganizationProfile) bool {
	return euJurisdictions[normalize(p.Jurisdiction)]
}

func isFinancialSector(p *model.OrganizationProfile) bool {
	sector := normalize(p.Sector)
	return sector == "finance" || sector == "financial services" || sector == "banking" || sector == "insurance"
}

// csrdRequired CSRD 强制披露判定
// 上市公司、自报大型企业、或同时满足 250 人与 4000 万欧元营业额
// 例外：上市微型企业（<10 人且营业额 <200 万欧元）豁免
func csrdRequired(p *model.OrganizationProfile) bool {
	required := p.IsListed() ||
		p.RevenueBand == model.RevenueLarge ||
		(p.Employees >= 250 && p.AnnualTurnover >= 40_000_000)

	if p.IsListed() && p.RevenueBand == model.RevenueMicro &&
		p.Employees > 0 && p.Employees < 10 && p.AnnualTurnover < 2_000_000 {
		required = false
	}

	return required
}

// catalog 框架规则表
// 构建期固定，运行期只读；匹配结果按此声明顺序返回
var catalog = []Rule{
	{
		ID:        "CSRD",
		Name:      "EU Corporate Sustainability Reporting Directive",
		Basis:     "mandatory",
		Rationale: "适用于大型企业（250人以上且营业额4000万欧元以上）及上市公司",
		Applies:   csrdRequired,
	},
	{
		ID:        "ESRS",
		Name:      "European Sustainability Reporting Standards",
		Basis:     "mandatory",
		Rationale: "CSRD 义务企业须按 ESRS 标准编制报告",
		Applies:   csrdRequired,
	},
	{
		ID:        "VSME",
		Name:      "Voluntary SME Standard",
		Basis:     "recommended",
		Rationale: "面向未纳入 CSRD 义务的欧盟中小企业的自愿标准",
		Applies: func(p *model.OrganizationProfile) bool {
			return isEU(p) &&
				!p.IsListed() &&
				p.RevenueBand != model.RevenueLarge &&
				p.Employees < 250 &&
				p.AnnualTurnover < 40_000_000
		},
	},
	{
		ID:        "TCFD",
		Name:      "Task Force on Climate-related Financial Disclosures",
		Basis:     "recommended",
		Rationale: "上市公司及气候敏感行业建议采用",
		Applies: func(p *model.OrganizationProfile) bool {
			return p.IsListed() || climateSensitiveSectors[normalize(p.Sector)]
		},
	},
	{
		ID:        "SFDR",
		Name:      "Sustainable Finance Disclosure Regulation",
		Basis:     "mandatory",
		Rationale: "适用于欧盟金融市场参与者与金融顾问",
		Applies: func(p *model.OrganizationProfile) bool {
			return isEU(p) && isFinancialSector(p)
		},
	},
	{
		ID:        "GRI",
		Name:      "Global Reporting Initiative",
		Basis:     "recommended",
		Rationale: "大型组织广泛采用的全球通用披露标准",
		Applies: func(p *model.OrganizationProfile) bool {
			return p.RevenueBand == model.RevenueLarge ||
				p.AnnualTurnover > 100_000_000 ||
				p.Employees > 1000
		},
	},
	{
		ID:        "SASB",
		Name:      "Sustainability Accounting Standards Board",
		Basis:     "recommended",
		Rationale: "能源、油气及公用事业等高排放行业建议采用",
		Applies: func(p *model.OrganizationProfile) bool {
			return sasbSectors[normalize(p.Sector)]
		},
	},
	{
		ID:        "CDP",
		Name:      "Carbon Disclosure Project",
		Basis:     "recommended",
		Rationale: "面向投资者的气候信息披露，上市公司通常被要求填报",
		Applies: func(p *model.OrganizationProfile) bool {
			return p.IsListed()
		},
	},
}

// Catalog 获取框架规则表（声明顺序）
func Catalog() []Rule {
	return catalog
}
