package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/readiness"
)

// ScoreRequest 成熟度评估请求，key 为题目 ID，value 为选项下标
type ScoreRequest struct {
	Answers map[string]int `json:"answers"`
}

// ListReadinessQuestions 获取评估问卷题目
// GET /api/readiness/questions
func (h *Handler) ListReadinessQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": readiness.Questions()})
}

// ScoreReadiness 计算 ESG 成熟度评分
// POST /api/readiness/score
func (h *Handler) ScoreReadiness(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数: " + err.Error()})
		return
	}

	result, err := readiness.Score(req.Answers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
