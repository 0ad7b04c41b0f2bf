package server

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/advisory"
	v1 "github.com/ankur-mali/carbonaegis-v2.0/internal/api/v1"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/config"
	"github.com/ankur-mali/carbonaegis-v2.0/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	v1     *v1.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite Store
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "carbonaegis.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// AI 助手可选，未配置 Key 时相关接口返回 503
	var advisor advisory.Advisor
	client, err := advisory.NewClient(context.Background(), cfg.Advisory.APIKey, cfg.Advisory.Model)
	switch {
	case err == nil:
		advisor = client
	case errors.Is(err, advisory.ErrNoAPIKey):
		log.Println("未配置 AI 助手 API Key，咨询功能已禁用")
	default:
		log.Printf("AI 助手初始化失败，咨询功能已禁用: %v", err)
	}

	exportsDir := filepath.Join(dataDir, "exports")
	advisoryTimeout := time.Duration(cfg.Advisory.TimeoutSeconds) * time.Second

	v1Handler := v1.NewHandler(sqliteStore, advisor, advisoryTimeout, exportsDir)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		v1:     v1Handler,
	}

	s.setupRoutes()

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// V1 API 路由
	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 关闭底层存储
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
