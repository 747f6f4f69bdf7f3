package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"giraffe_quality_v2_202509/internal/api/dto"
	"giraffe_quality_v2_202509/internal/service"
)

type AnalysisController struct {
	analystService *service.AnalystService
	qualityService *service.QualityService
}

func NewAnalysisController(analystService *service.AnalystService, qualityService *service.QualityService) *AnalysisController {
	return &AnalysisController{analystService: analystService, qualityService: qualityService}
}

// Ask 数据问答
// @Summary 对质检数据自由提问
// @Description 把全表快照（CSV，最多 400 行，最新在前）发给 LLM。question 为空时做一次趋势综述。调用失败返回错误文案，不报 HTTP 错误
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AskAnalystReq true "问题（可为空）"
// @Success 200 {object} dto.AskAnalystResp
// @Router /api/analysis [post]
func (h *AnalysisController) Ask(c *gin.Context) {
	var req dto.AskAnalystReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := h.qualityService.ListRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusOK, dto.AskAnalystResp{Answer: "אין נתונים לניתוח עדיין."})
		return
	}

	answer := h.analystService.Ask(c.Request.Context(), req.Question, records)
	c.JSON(http.StatusOK, dto.AskAnalystResp{Answer: answer})
}
