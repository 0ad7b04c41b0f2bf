package advisory

import (
	"encoding/json"
	"fmt"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// systemPrompt 咨询助手系统提示词
const systemPrompt = `You are the Carbon Aegis ESG AI Assistant, specializing in greenhouse gas emissions calculation,
sustainability reporting, ESG frameworks, and environmental regulations.
Provide clear, accurate, and actionable guidance on sustainability topics.

Focus areas:
- GHG emissions calculation methods and standards (GHG Protocol, ISO 14064)
- Emissions reduction strategies and best practices
- ESG reporting frameworks (TCFD, GRI, SASB, CDP)
- Environmental regulations and compliance
- Science-based targets and net-zero pathways

Always be helpful, concise, and practical in your responses.`

// analysisSystemPrompt 排放分析系统提示词（要求 JSON 输出）
const analysisSystemPrompt = `You are an emissions analysis expert. Analyze the provided GHG emissions data
and provide insights and recommendations. Focus on:

1. Key insights about the emissions profile
2. Comparison to industry benchmarks where possible
3. Top 3 actionable recommendations for emissions reduction
4. Areas that may need better data quality

Return your analysis in JSON format with the following structure:
{
  "insights": [],
  "benchmarks": [],
  "recommendations": [],
  "dataQuality": []
}`

// buildAskPrompt 构造问答提示词，附带组织上下文
func buildAskPrompt(query string, orgContext map[string]any) (string, error) {
	if len(orgContext) == 0 {
		return fmt.Sprintf("User query: %s", query), nil
	}

	contextJSON, err := json.Marshal(orgContext)
	if err != nil {
		return "", fmt.Errorf("序列化组织上下文失败: %w", err)
	}
	return fmt.Sprintf("Context about the organization: %s\n\nUser query: %s", contextJSON, query), nil
}

// buildAnalysisPrompt 构造排放分析提示词
func buildAnalysisPrompt(summary *model.EmissionsSummary) (string, error) {
	if summary == nil {
		return "", fmt.Errorf("排放汇总数据为空")
	}

	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("序列化排放数据失败: %w", err)
	}
	return fmt.Sprintf("Please analyze the following emissions data:\n\n%s", summaryJSON), nil
}
