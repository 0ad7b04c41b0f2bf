package v1

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/store"
)

// ExportRequest 报告导出请求
type ExportRequest struct {
	SnapshotID string `json:"snapshotId"`
	ReportName string `json:"reportName"` // 为空时自动生成
	PreparedBy string `json:"preparedBy"`
	Comment    string `json:"comment"`
}

// Export 导出核算报告 Excel，返回一次性下载地址
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数: " + err.Error()})
		return
	}
	if req.SnapshotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少快照 ID"})
		return
	}

	snapshot, err := h.store.GetSnapshot(req.SnapshotID)
	if err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "快照不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询快照失败: " + err.Error()})
		return
	}

	reportName := req.ReportName
	if reportName == "" {
		reportName = fmt.Sprintf("%s GHG 排放报告 %d", snapshot.OrganizationName, snapshot.ReportYear)
	}

	filePath := filepath.Join(h.exportsDir, fmt.Sprintf("report_%s.xlsx", uuid.NewString()))
	if err := h.exporter.WriteFile(snapshot, filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成报告失败: " + err.Error()})
		return
	}

	report := &model.Report{
		SnapshotID:       snapshot.ID,
		ReportName:       reportName,
		ReportType:       "excel",
		OrganizationName: snapshot.OrganizationName,
		ReportYear:       snapshot.ReportYear,
		PreparedBy:       req.PreparedBy,
		Comment:          req.Comment,
	}
	reportID, err := h.store.SaveReport(report)
	if err != nil {
		_ = os.Remove(filePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存报告记录失败: " + err.Error()})
		return
	}

	downloadName := fmt.Sprintf("%s_%d_emissions.xlsx", snapshot.OrganizationName, snapshot.ReportYear)
	token := h.downloads.put(filePath, downloadName, 10*time.Minute)

	c.JSON(http.StatusOK, gin.H{
		"reportId":    reportID,
		"reportName":  reportName,
		"downloadUrl": "/api/export/download/" + token,
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
