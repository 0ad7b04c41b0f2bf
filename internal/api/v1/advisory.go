package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/calculator"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// AskRequest 咨询问答请求
type AskRequest struct {
	Query   string         `json:"query"`
	Context map[string]any `json:"context"` // 组织背景信息，可为空
}

// AskAdvisor 向 AI 助手提问可持续发展问题
// POST /api/advisory/ask
func (h *Handler) AskAdvisor(c *gin.Context) {
	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI 助手未配置，请设置 API Key 后重试"})
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "问题内容不能为空"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.advisoryTimeout)
	defer cancel()

	answer, err := h.advisor.Ask(ctx, req.Query, req.Context)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI 助手调用失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// AnalyzeRequest 排放数据分析请求
type AnalyzeRequest struct {
	Entries []model.EmissionEntry `json:"entries"`
}

// AnalyzeEmissions 对排放汇总做 AI 分析（洞察/对标/建议/数据质量）
// POST /api/advisory/analyze
func (h *Handler) AnalyzeEmissions(c *gin.Context) {
	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI 助手未配置，请设置 API Key 后重试"})
		return
	}

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数: " + err.Error()})
		return
	}
	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "排放记录不能为空"})
		return
	}

	summary, err := calculator.Summarize(req.Entries)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.advisoryTimeout)
	defer cancel()

	analysis, err := h.advisor.AnalyzeEmissions(ctx, summary)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI 分析失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":  summary,
		"analysis": analysis,
	})
}
