package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"giraffe_quality_v2_202509/internal/controller"
	"giraffe_quality_v2_202509/internal/middleware"

	_ "giraffe_quality_v2_202509/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Session  *controller.SessionController
	Quality  *controller.QualityController
	Analysis *controller.AnalysisController
	Admin    *controller.AdminController
}

// SetupRouter 创建 Gin 引擎并注册所有路由
func SetupRouter(mode string, ctls *Controllers) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	// 每个请求先从 cookie 还原会话上下文
	r.Use(middleware.SessionMiddleware())

	InitRoutes(r, ctls)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	{
		// session 会话（角色门 + 管理员门）
		session := api.Group("/session")
		{
			session.GET("", ctls.Session.Current)
			session.POST("/role", ctls.Session.SelectRole)
			session.POST("/logout", ctls.Session.Logout)
			session.POST("/admin/login", ctls.Session.AdminLogin)
			session.POST("/admin/logout", ctls.Session.AdminLogout)
		}

		// checks 质检记录，必须先过角色门
		checks := api.Group("/checks", middleware.RequireRole())
		{
			checks.POST("", ctls.Quality.Submit)
			checks.GET("", ctls.Quality.List)
		}

		// dashboard KPI
		api.GET("/dashboard", middleware.RequireRole(), ctls.Quality.Dashboard)

		// analysis 数据问答
		api.POST("/analysis", middleware.RequireRole(), ctls.Analysis.Ask)

		// admin 导出与诊断，只看管理员门（与角色门互相独立）
		admin := api.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/export/csv", ctls.Admin.ExportCSV)
			admin.GET("/diagnostics", ctls.Admin.Diagnostics)
			admin.POST("/sheets/test", ctls.Admin.SheetsTest)
		}
	}
}
