package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/calculator"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// SummarizeRequest 排放汇总请求
type SummarizeRequest struct {
	Entries []model.EmissionEntry `json:"entries"`
}

// SummarizeEmissions 按范围汇总排放记录
// POST /api/emissions/summarize
func (h *Handler) SummarizeEmissions(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数: " + err.Error()})
		return
	}

	summary, err := calculator.Summarize(req.Entries)
	if err != nil {
		var scopeErr *model.InvalidScopeError
		var amountErr *model.InvalidAmountError
		if errors.As(err, &scopeErr) || errors.As(err, &amountErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "汇总排放数据失败: " + err.Error()})
		return
	}

	byCategory, err := calculator.SummarizeByCategory(req.Entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "按类别汇总失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":    summary,
		"byCategory": byCategory,
	})
}

// ComputeRequest 活动数据折算请求
type ComputeRequest struct {
	Activities []model.ActivityRecord `json:"activities"`
}

// ComputeEmissions 将活动数据经排放因子折算为排放记录并汇总
// POST /api/emissions/compute
func (h *Handler) ComputeEmissions(c *gin.Context) {
	var req ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数: " + err.Error()})
		return
	}

	entries, err := calculator.ComputeEntries(req.Activities)
	if err != nil {
		var unknownErr *calculator.UnknownActivityError
		if errors.As(err, &unknownErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "折算活动数据失败: " + err.Error()})
		return
	}

	summary, err := calculator.Summarize(entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "汇总排放数据失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"summary": summary,
	})
}

// ListFactors 获取排放因子表
// GET /api/emissions/factors
func (h *Handler) ListFactors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"factors": calculator.Factors()})
}
