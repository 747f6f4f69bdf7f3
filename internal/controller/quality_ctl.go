package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giraffe_quality_v2_202509/internal/api/dto"
	"giraffe_quality_v2_202509/internal/middleware"
	"giraffe_quality_v2_202509/internal/service"
)

type QualityController struct {
	qualityService *service.QualityService
	statsService   *service.StatsService
}

func NewQualityController(qualityService *service.QualityService, statsService *service.StatsService) *QualityController {
	return &QualityController{qualityService: qualityService, statsService: statsService}
}

// ==========================================
// 1. 写操作 (Submit)
// ==========================================

// Submit 提交质检记录
// @Summary 提交一条质检记录
// @Description 评分 1-10。窗口内重复的(分店,厨师,菜品)返回 409 提示，带 force=true 重发强制写入。落库后尽力镜像到 Google Sheets，镜像失败只提示不回滚
// @Tags Quality
// @Accept json
// @Produce json
// @Param request body dto.SubmitCheckReq true "提交参数"
// @Success 200 {object} dto.SubmitCheckResp
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 409 {object} map[string]string "疑似重复提交"
// @Router /api/checks [post]
func (h *QualityController) Submit(c *gin.Context) {
	var req dto.SubmitCheckReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := middleware.GetSession(c)
	outcome, err := h.qualityService.SubmitCheck(c.Request.Context(), sess, service.SubmitInput{
		Branch: req.Branch,
		Chef:   req.Chef,
		Dish:   req.Dish,
		Score:  req.Score,
		Notes:  req.Notes,
		Force:  req.Force,
	})
	if err != nil {
		c.JSON(statusForErr(err), gin.H{"error": err.Error()})
		return
	}

	if outcome.DuplicateWarning {
		c.JSON(http.StatusConflict, gin.H{
			"warning": "כבר נשמרה בדיקה זהה לאחרונה — שלחו שוב עם force כדי לשמור בכל זאת",
			"duplicate": true,
		})
		return
	}

	resp := dto.SubmitCheckResp{
		ID:        outcome.Record.ID,
		Branch:    outcome.Record.Branch,
		ChefName:  outcome.Record.ChefName,
		DishName:  outcome.Record.DishName,
		Score:     outcome.Record.Score,
		ScoreHint: outcome.ScoreHint,
		CreatedAt: outcome.Record.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if !outcome.Mirror.OK {
		resp.MirrorWarning = outcome.Mirror.Reason
	}
	c.JSON(http.StatusOK, resp)
}

// ==========================================
// 2. 读操作 (List / Dashboard)
// ==========================================

// List 全量记录
// @Summary 质检记录列表（最新在前）
// @Tags Quality
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/checks [get]
func (h *QualityController) List(c *gin.Context) {
	records, err := h.qualityService.ListRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(records), "records": records})
}

// Dashboard KPI 汇总
// @Summary 仪表盘 KPI
// @Description 全网均分、分店均分、菜品均分（?dish=）、最佳厨师、最佳分店、热门菜品。分店会话固定用自己的分店做对比，总部可用 ?branch= 指定
// @Tags Quality
// @Produce json
// @Param dish query string false "菜品名（对比用）"
// @Param branch query string false "分店名（仅总部会话生效）"
// @Success 200 {object} service.Dashboard
// @Router /api/dashboard [get]
func (h *QualityController) Dashboard(c *gin.Context) {
	sess := middleware.GetSession(c)

	branch := c.Query("branch")
	if sess.BranchScoped() {
		branch = sess.Branch
	}
	dish := c.Query("dish")

	dashboard, err := h.statsService.BuildDashboard(c.Request.Context(), branch, dish)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
