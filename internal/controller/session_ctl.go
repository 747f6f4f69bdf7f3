package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"giraffe_quality_v2_202509/internal/api/dto"
	"giraffe_quality_v2_202509/internal/middleware"
	"giraffe_quality_v2_202509/internal/model"
	"giraffe_quality_v2_202509/internal/repository"
	"giraffe_quality_v2_202509/internal/service"
)

type SessionController struct {
	authService *service.AuthService
}

func NewSessionController(authService *service.AuthService) *SessionController {
	return &SessionController{authService: authService}
}

// statusForErr 业务错误到 HTTP 状态码
func statusForErr(err error) int {
	switch {
	case errors.Is(err, repository.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuthFailed):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrRoleAlreadySet):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeSession 签发新会话并返回当前状态
func writeSession(c *gin.Context, sess model.SessionContext) {
	if err := middleware.WriteSession(c, sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.SessionResp{
		Role:          sess.Role,
		Branch:        sess.Branch,
		AdminLoggedIn: sess.AdminLoggedIn,
	})
}

// ==========================================
// 1. 角色门
// ==========================================

// SelectRole 选择工作模式
// @Summary 选择工作模式（分店/总部）
// @Description branch 模式必须附带枚举内的分店名；meta 模式无需输入。已设置角色时需先退出
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.SelectRoleReq true "角色参数"
// @Success 200 {object} dto.SessionResp
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 409 {object} map[string]string "角色已设置"
// @Router /api/session/role [post]
func (h *SessionController) SelectRole(c *gin.Context) {
	var req dto.SelectRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := middleware.GetSession(c)

	var next model.SessionContext
	var err error
	if req.Role == model.RoleBranch {
		next, err = h.authService.WithBranchRole(sess, req.Branch)
	} else {
		next, err = h.authService.WithMetaRole(sess)
	}
	if err != nil {
		c.JSON(statusForErr(err), gin.H{"error": err.Error()})
		return
	}

	writeSession(c, next)
}

// Logout 退出当前角色
// @Summary 退出工作模式
// @Description 重置角色门回初始状态，管理员门不受影响
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionResp
// @Router /api/session/logout [post]
func (h *SessionController) Logout(c *gin.Context) {
	sess := h.authService.LogoutRole(middleware.GetSession(c))
	writeSession(c, sess)
}

// Current 当前会话状态
// @Summary 查询当前会话
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionResp
// @Router /api/session [get]
func (h *SessionController) Current(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, dto.SessionResp{
		Role:          sess.Role,
		Branch:        sess.Branch,
		AdminLoggedIn: sess.AdminLoggedIn,
	})
}

// ==========================================
// 2. 管理员门
// ==========================================

// AdminLogin 管理员登录
// @Summary 管理员登录
// @Description 静态密码精确比对。失败不锁定、不限流
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginReq true "密码"
// @Success 200 {object} dto.SessionResp
// @Failure 401 {object} map[string]string "密码错误"
// @Router /api/session/admin/login [post]
func (h *SessionController) AdminLogin(c *gin.Context) {
	var req dto.AdminLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next, err := h.authService.AdminLogin(middleware.GetSession(c), req.Password)
	if err != nil {
		c.JSON(statusForErr(err), gin.H{"error": "סיסמה שגויה"})
		return
	}

	writeSession(c, next)
}

// AdminLogout 管理员退出
// @Summary 管理员退出
// @Description 只关管理员门，角色门不受影响
// @Tags Session
// @Produce json
// @Success 200 {object} dto.SessionResp
// @Router /api/session/admin/logout [post]
func (h *SessionController) AdminLogout(c *gin.Context) {
	sess := h.authService.AdminLogout(middleware.GetSession(c))
	writeSession(c, sess)
}
