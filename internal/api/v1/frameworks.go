package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/framework"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

// frameworkInfo 框架目录条目（不含匹配函数）
type frameworkInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Basis string `json:"basis"`
}

// ListFrameworks 获取支持的披露框架目录
// GET /api/frameworks
func (h *Handler) ListFrameworks(c *gin.Context) {
	rules := framework.Catalog()
	infos := make([]frameworkInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, frameworkInfo{
			ID:    r.ID,
			Name:  r.Name,
			Basis: r.Basis,
		})
	}
	c.JSON(http.StatusOK, gin.H{"frameworks": infos})
}

// MatchFrameworks 按组织画像匹配适用框架
// POST /api/frameworks/match
func (h *Handler) MatchFrameworks(c *gin.Context) {
	var profile model.OrganizationProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数: " + err.Error()})
		return
	}

	matched, err := framework.MatchRules(&profile)
	if err != nil {
		var incomplete *model.IncompleteProfileError
		if errors.As(err, &incomplete) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "missingField": incomplete.Field})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matched})
}
