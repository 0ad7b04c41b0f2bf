package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/advisory"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/exporter"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/importer"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	store           *store.Store
	importer        *importer.Importer
	exporter        *exporter.Exporter
	advisor         advisory.Advisor // 未配置 API Key 时为 nil
	advisoryTimeout time.Duration
	exportsDir      string
	downloads       *exportDownloadStore
}

// NewHandler 创建 V1 API 处理器
func NewHandler(store *store.Store, advisor advisory.Advisor, advisoryTimeout time.Duration, exportsDir string) *Handler {
	if advisoryTimeout <= 0 {
		advisoryTimeout = 60 * time.Second
	}
	return &Handler{
		store:           store,
		importer:        importer.NewImporter(),
		exporter:        exporter.NewExporter(),
		advisor:         advisor,
		advisoryTimeout: advisoryTimeout,
		exportsDir:      exportsDir,
		downloads:       newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 排放核算
	router.POST("/emissions/summarize", h.SummarizeEmissions)
	router.POST("/emissions/compute", h.ComputeEmissions)
	router.GET("/emissions/factors", h.ListFactors)

	// 框架匹配
	router.GET("/frameworks", h.ListFrameworks)
	router.POST("/frameworks/match", h.MatchFrameworks)

	// ESG 成熟度评估
	router.GET("/readiness/questions", h.ListReadinessQuestions)
	router.POST("/readiness/score", h.ScoreReadiness)

	// AI 咨询助手
	router.POST("/advisory/ask", h.AskAdvisor)
	router.POST("/advisory/analyze", h.AnalyzeEmissions)

	// 数据导入
	router.POST("/import", h.Import)

	// 核算快照
	router.POST("/snapshots", h.CreateSnapshot)
	router.GET("/snapshots", h.ListSnapshots)
	router.GET("/snapshots/:id", h.GetSnapshot)
	router.GET("/snapshots/:id/reports", h.ListSnapshotReports)
	router.DELETE("/snapshots/:id", h.DeleteSnapshot)

	// 报告导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
