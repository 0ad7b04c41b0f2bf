package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/calculator"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/store"
)

// CreateSnapshotRequest 保存核算快照请求
type CreateSnapshotRequest struct {
	OrganizationName  string                `json:"organizationName"`
	ReportYear        int                   `json:"reportYear"`
	TimePeriod        string                `json:"timePeriod"`
	CalculationMethod string                `json:"calculationMethod"`
	Entries           []model.EmissionEntry `json:"entries"`
}

// CreateSnapshot 保存一次核算快照
// POST /api/snapshots
func (h *Handler) CreateSnapshot(c *gin.Context) {
	var req CreateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数: " + err.Error()})
		return
	}
	if req.OrganizationName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "组织名称不能为空"})
		return
	}
	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "排放记录不能为空"})
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

	snapshot := &model.Snapshot{
		OrganizationName:  req.OrganizationName,
		ReportYear:        req.ReportYear,
		TimePeriod:        req.TimePeriod,
		CalculationMethod: req.CalculationMethod,
		Entries:           req.Entries,
		Scope1Total:       summary.TotalByScope[model.Scope1],
		Scope2Total:       summary.TotalByScope[model.Scope2],
		Scope3Total:       summary.TotalByScope[model.Scope3],
		GrandTotal:        summary.GrandTotal,
	}

	id, err := h.store.SaveSnapshot(snapshot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存快照失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"summary": summary,
	})
}

// ListSnapshots 获取全部核算快照（按创建时间倒序）
// GET /api/snapshots
func (h *Handler) ListSnapshots(c *gin.Context) {
	snapshots, err := h.store.ListSnapshots()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询快照失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

// GetSnapshot 获取单个核算快照
// GET /api/snapshots/:id
func (h *Handler) GetSnapshot(c *gin.Context) {
	id := c.Param("id")

	snapshot, err := h.store.GetSnapshot(id)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "快照不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询快照失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// ListSnapshotReports 获取快照的历史导出报告
// GET /api/snapshots/:id/reports
func (h *Handler) ListSnapshotReports(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.store.GetSnapshot(id); err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "快照不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询快照失败: " + err.Error()})
		return
	}

	reports, err := h.store.ListReports(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询报告失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// DeleteSnapshot 删除核算快照及其关联报告
// DELETE /api/snapshots/:id
func (h *Handler) DeleteSnapshot(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.DeleteSnapshot(id); err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "快照不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除快照失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "快照已删除"})
}
