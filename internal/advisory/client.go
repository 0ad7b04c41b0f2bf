package advisory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// ErrNoAPIKey 未配置模型 API Key
var ErrNoAPIKey = errors.New("未配置 AI 助手 API Key")

// Analysis 排放数据分析结果（模型 JSON 输出）
type Analysis struct {
	Insights        []string `json:"insights"`        // 关键洞察
	Benchmarks      []string `json:"benchmarks"`      // 行业对标
	Recommendations []string `json:"recommendations"` // 减排建议
	DataQuality     []string `json:"dataQuality"`     // 数据质量观察
}

// Advisor 可持续发展咨询接口
// API 层只依赖此接口，不直接依赖模型 SDK
type Advisor interface {
	Ask(ctx context.Context, query string, orgContext map[string]any) (string, error)
	AnalyzeEmissions(ctx context.Context, summary *model.EmissionsSummary) (*Analysis, error)
}

// Client 基于 Gemini 的咨询客户端
type Client struct {
	client *genai.Client
	model  string
}

// NewClient 创建咨询客户端
// apiKey 为空返回 ErrNoAPIKey，由调用方决定降级方式
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("创建模型客户端失败: %w", err)
	}

	return &Client{client: client, model: modelName}, nil
}

// Ask 提交可持续发展问题，返回文本回答
func (c *Client) Ask(ctx context.Context, query string, orgContext map[string]any) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", errors.New("问题不能为空")
	}

	prompt, err := buildAskPrompt(query, orgContext)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			MaxOutputTokens:   800,
		},
	)
	if err != nil {
		return "", fmt.Errorf("生成回答失败: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("模型返回空回答")
	}
	return text, nil
}

// AnalyzeEmissions 分析排放汇总数据，返回结构化建议
func (c *Client) AnalyzeEmissions(ctx context.Context, summary *model.EmissionsSummary) (*Analysis, error) {
	prompt, err := buildAnalysisPrompt(summary)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(analysisSystemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			MaxOutputTokens:   1000,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("生成分析失败: %w", err)
	}

	return parseAnalysis(resp.Text())
}

// parseAnalysis 解析模型 JSON 输出
// 兼容模型偶尔附带的 markdown 代码块包裹
func parseAnalysis(text string) (*Analysis, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var analysis Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("解析分析结果失败: %w", err)
	}
	return &analysis, nil
}
