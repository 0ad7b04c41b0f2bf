package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized     bool   `json:"initialized"`     // 是否已有核算数据
	SnapshotCount   int    `json:"snapshotCount"`   // 快照总数
	LastSavedTime   string `json:"lastSavedTime"`   // 最后保存时间（RFC3339，无数据为空）
	AdvisoryEnabled bool   `json:"advisoryEnabled"` // AI 助手是否可用
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	count, err := h.store.CountSnapshots()
	if err != nil {
		count = 0
	}

	lastSaved := ""
	if t, err := h.store.LastSavedAt(); err == nil && !t.IsZero() {
		lastSaved = t.UTC().Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:     count > 0,
		SnapshotCount:   count,
		LastSavedTime:   lastSaved,
		AdvisoryEnabled: h.advisor != nil,
	})
}
