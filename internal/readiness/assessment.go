package readiness

import (
	"fmt"
	"math"
)

// Question 评估问卷题目
// 选项按成熟度降序排列，权重与选项一一对应
type Question struct {
	ID      string   `json:"id"`
	Pillar  string   `json:"pillar"` // Environmental / Social / Governance
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Weights []int    `json:"weights"`
}

// 问卷题库，构建期固定
var questions = []Question{
	// 环境
	{
		ID:     "env_1",
		Pillar: PillarEnvironmental,
		Text:   "Does your organization have a formal environmental policy?",
		Options: []string{
			"Yes, comprehensive and regularly reviewed",
			"Yes, but limited in scope",
			"In development",
			"No",
		},
		Weights: []int{3, 2, 1, 0},
	},
	{
		ID:     "env_2",
		Pillar: PillarEnvironmental,
		Text:   "Does your organization track its emissions (Scope 1, 2, and/or 3)?",
		Options: []string{
			"Yes, all scopes comprehensively",
			"Yes, but only Scope 1 and 2",
			"Only basic tracking",
			"No tracking",
		},
		Weights: []int{3, 2, 1, 0},
	},
	{
		ID:     "env_3",
		Pillar: PillarEnvironmental,
		Text:   "Has your organization set specific carbon reduction targets?",
		Options: []string{
			"Yes, science-based targets",
			"Yes, non-science-based targets",
			"Informal targets only",
			"No targets",
		},
		Weights: []int{3, 2, 1, 0},
	},
	{
		ID:     "env_4",
		Pillar: PillarEnvironmental,
		Text:   "Does your organization have waste management and recycling programs?",
		Options: []string{
			"Yes, comprehensive with metrics",
			"Yes, basic program",
			"Limited initiatives",
			"No program",
		},
		Weights: []int{3, 2, 1, 0},
	},

	// 社会
	{
		ID:     "soc_1",
		Pillar: PillarSocial,
		Text:   "Does your organization have diversity and inclusion policies?",
		Options: []string{
			"Yes, comprehensive with targets and metrics",
			"Yes, written policies",
			"Informal practices only",
			"No policies",
		},
		Weights: []int{3, 2, 1, 0},
	},
	{
		ID:     "soc_2",
		Pillar: PillarSocial,
		Text:   "Does your organization regularly assess employee satisfaction?",
		Options: []string{
			"Yes, regular formal surveys with action plans",
			"Yes, occasional surveys",
			"Informal feedback only",
			"No assessment",
		},
		Weights: []int{3, 2, 1, 0},
	},
	{
		ID:     "soc_3",
		Pillar: PillarSocial,
		Text:   "Does your organization have a supplier code of conduct that includes ESG criteria?",
		Options: []string{
			"Yes, comprehensive with verification",
			"Yes, basic requirements",
			"In development",
			"No",
		},
		Weights: []int{3, 2, 1, 0},
	},

	// 治理
	{
		ID:     "gov_1",
		Pillar: PillarGovernance,
		Text:   "Does your organization have board oversight of ESG issues?",
		Options: []string{
			"Yes, dedicated committee",
			"Yes, part of existing committee",
			"Ad-hoc oversight",
			"No oversight",
		},
		Weights: []int{3, 2, 1, 0},
	},
	{
		ID:     "gov_2",
		Pillar: PillarGovernance,
		Text:   "Does your organization have a formal ESG reporting process?",
		Options: []string{
			"Yes, following recognized standards",
			"Yes, but not standardized",
			"Ad-hoc reporting",
			"No reporting",
		},
		Weights: []int{3, 2, 1, 0},
	},
	{
		ID:     "gov_3",
		Pillar: PillarGovernance,
		Text:   "Does your organization have policies on business ethics and anti-corruption?",
		Options: []string{
			"Yes, comprehensive with training",
			"Yes, documented policies",
			"Basic policies only",
			"No policies",
		},
		Weights: []int{3, 2, 1, 0},
	},
}

// 评估维度
const (
	PillarEnvironmental = "Environmental"
	PillarSocial        = "Social"
	PillarGovernance    = "Governance"
)

// 成熟度等级，按总分百分比划档
const (
	LevelAdvanced    = "Advanced"
	LevelEstablished = "Established"
	LevelDeveloping  = "Developing"
	LevelBeginning   = "Beginning"
)

// Result 评估结果
// 各维度得分为百分比（0~100，四舍五入）
type Result struct {
	PillarScores map[string]int `json:"pillarScores"`
	TotalScore   int            `json:"totalScore"`
	Level        string         `json:"level"`
}

// Questions 获取问卷题库（声明顺序）
func Questions() []Question {
	return questions
}

// Score 计算 ESG 成熟度评分
// answers 为题目 ID 到所选选项下标的映射，必须覆盖全部题目
func Score(answers map[string]int) (*Result, error) {
	earned := map[string]int{}
	max := map[string]int{}
	var totalEarned, totalMax int

	for _, q := range questions {
		choice, ok := answers[q.ID]
		if !ok {
			return nil, fmt.Errorf("题目 %s 未作答", q.ID)
		}
		if choice < 0 || choice >= len(q.Weights) {
			return nil, fmt.Errorf("题目 %s 的选项下标越界: %d", q.ID, choice)
		}

		earned[q.Pillar] += q.Weights[choice]
		max[q.Pillar] += q.Weights[0]
		totalEarned += q.Weights[choice]
		totalMax += q.Weights[0]
	}

	result := &Result{PillarScores: make(map[string]int, 3)}
	for pillar, m := range max {
		result.PillarScores[pillar] = int(math.Round(float64(earned[pillar]) / float64(m) * 100))
	}
	result.TotalScore = int(math.Round(float64(totalEarned) / float64(totalMax) * 100))
	result.Level = levelFor(result.TotalScore)

	return result, nil
}

func levelFor(score int) string {
	switch {
	case score >= 75:
		return LevelAdvanced
	case score >= 50:
		return LevelEstablished
	case score >= 25:
		return LevelDeveloping
	default:
		return LevelBeginning
	}
}
