package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giraffe_quality_v2_202509/internal/api/dto"
	"giraffe_quality_v2_202509/internal/config"
	"giraffe_quality_v2_202509/internal/repository"
	"giraffe_quality_v2_202509/internal/service"
)

type AdminController struct {
	qualityService *service.QualityService
	sheetsService  *service.SheetsService
	repo           repository.QualityRecordRepository
	cfg            *config.Config
}

func NewAdminController(
	qualityService *service.QualityService,
	sheetsService *service.SheetsService,
	repo repository.QualityRecordRepository,
	cfg *config.Config,
) *AdminController {
	return &AdminController{
		qualityService: qualityService,
		sheetsService:  sheetsService,
		repo:           repo,
		cfg:            cfg,
	}
}

// ==========================================
// 1. 导出
// ==========================================

// ExportCSV 全表 CSV 导出
// @Summary 导出全部质检记录（CSV）
// @Description UTF-8，列顺序与记录字段一致。仅管理员
// @Tags Admin
// @Produce text/csv
// @Success 200 {string} string "CSV 内容"
// @Failure 401 {object} map[string]string "需要管理员登录"
// @Router /api/admin/export/csv [get]
func (h *AdminController) ExportCSV(c *gin.Context) {
	data, err := h.qualityService.ExportCSV(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="food_quality_export.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ==========================================
// 2. 诊断
// ==========================================

// Diagnostics 技术信息
// @Summary 管理面板技术信息
// @Description 凭据/目标表/模型 key 是否就位，当前记录总数
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.DiagnosticsResp
// @Router /api/admin/diagnostics [get]
func (h *AdminController) Diagnostics(c *gin.Context) {
	total, err := h.repo.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.DiagnosticsResp{
		SheetsCredentialsPresent: h.sheetsService.CredentialsPresent(),
		SheetsTargetConfigured:   h.sheetsService.TargetConfigured(),
		OpenAIKeyPresent:         h.cfg.OpenAI.APIKey != "",
		TotalRecords:             total,
		DatabasePath:             h.cfg.Database.Path,
	})
}

// SheetsTest Google Sheets 连通性测试
// @Summary Sheets 写入测试
// @Description 往目标表写一行 TEST，返回镜像结果
// @Tags Admin
// @Produce json
// @Success 200 {object} service.MirrorResult
// @Router /api/admin/sheets/test [post]
func (h *AdminController) SheetsTest(c *gin.Context) {
	result := h.sheetsService.Ping(c.Request.Context())
	status := http.StatusOK
	if !result.OK {
		status = http.StatusBadGateway
	}
	c.JSON(status, result)
}
