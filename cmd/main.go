package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"giraffe_quality_v2_202509/internal/config"
	"giraffe_quality_v2_202509/internal/controller"
	"giraffe_quality_v2_202509/internal/middleware"
	"giraffe_quality_v2_202509/internal/model"
	"giraffe_quality_v2_202509/internal/repository"
	"giraffe_quality_v2_202509/internal/router"
	"giraffe_quality_v2_202509/internal/service"
	"giraffe_quality_v2_202509/pkg/database"
)

// @title ג'ירף מטבחים – איכויות אוכל API
// @version 2.0
// @description 连锁餐厅食品质检打分后台：提交质检、KPI 聚合、Sheets 镜像、数据问答、管理员导出
// @BasePath /
func main() {
	// .env 可选，不存在就算了
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("GQ_CONFIG"))
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()

	// 3. 初始化数据库
	db, err := database.InitDB(cfg.Database.Path, cfg.Database.LogMode, &model.QualityRecord{})
	if err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}

	// 4. 初始化依赖
	deps := initDependencies(cfg, db, logger)

	// 5. 会话令牌配置
	middleware.SetSessionConfig(&middleware.SessionConfig{
		SecretKey:  cfg.Auth.SessionSecret,
		SessionTTL: 12 * time.Hour,
		Issuer:     "giraffe-quality",
	})

	// 6. 初始化路由并启动
	r := router.SetupRouter(cfg.Server.Mode, deps.Controllers)
	startServer(r, cfg, logger)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repo        *repository.CachedQualityRepository
	Services    *Services
	Controllers *router.Controllers
}

// Services 服务集合
type Services struct {
	Auth    *service.AuthService
	Quality *service.QualityService
	Stats   *service.StatsService
	Sheets  *service.SheetsService
	Analyst *service.AnalystService
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *Dependencies {
	// -------- Repo 层 --------
	cacheTTL := time.Duration(cfg.App.CacheTTLSeconds) * time.Second
	repo := repository.NewCachedQualityRepository(repository.NewQualityRecordRepository(db), cacheTTL)

	// -------- 外部服务 --------
	sheetsSvc := service.NewSheetsService(&cfg.Sheets, logger)
	analystSvc := service.NewAnalystService(&cfg.OpenAI, logger)

	// -------- 业务服务 --------
	authSvc := service.NewAuthService(&cfg.App, &cfg.Auth)
	qualitySvc := service.NewQualityService(repo, authSvc, sheetsSvc, &cfg.App, logger)
	statsSvc := service.NewStatsService(repo, cfg.App.MinSamplesTopChef, cfg.App.MinSamplesTopBranch)

	services := &Services{
		Auth:    authSvc,
		Quality: qualitySvc,
		Stats:   statsSvc,
		Sheets:  sheetsSvc,
		Analyst: analystSvc,
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Session:  controller.NewSessionController(authSvc),
		Quality:  controller.NewQualityController(qualitySvc, statsSvc),
		Analysis: controller.NewAnalysisController(analystSvc, qualitySvc),
		Admin:    controller.NewAdminController(qualitySvc, sheetsSvc, repo, cfg),
	}

	return &Dependencies{
		DB:          db,
		Repo:        repo,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r http.Handler, cfg *config.Config, logger *zap.Logger) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		logger.Info("服务启动", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("服务强制关闭", zap.Error(err))
	}

	logger.Info("服务已退出")
}
