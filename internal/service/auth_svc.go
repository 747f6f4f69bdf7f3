package service

import (
	"errors"
	"fmt"

	"giraffe_quality_v2_202509/internal/config"
	"giraffe_quality_v2_202509/internal/model"
	"giraffe_quality_v2_202509/internal/repository"
)

// ErrAuthFailed 管理员密码错误。只提示，不锁定、不限流、不计数
var ErrAuthFailed = errors.New("auth failed")

// ErrRoleAlreadySet 角色已设置。切换分店必须先退出当前角色
var ErrRoleAlreadySet = errors.New("role already set")

// ==================== 会话服务 ====================

// AuthService 会话授权
// 两个互不影响的状态机：角色门（unset -> branch(B)/meta -> unset）
// 和管理员门（logged_out <-> logged_in）。所有变更都是
// SessionContext -> SessionContext 的纯函数，返回新值。
type AuthService struct {
	app  *config.AppConfig
	auth *config.AuthConfig
}

// NewAuthService 创建会话服务
func NewAuthService(app *config.AppConfig, auth *config.AuthConfig) *AuthService {
	return &AuthService{app: app, auth: auth}
}

// ==================== 角色门 ====================

// WithBranchRole 进入分店模式，分店必须在枚举列表内且此前未设置角色。
// 选中占位项（空串）不改变状态，直接报校验错误
func (s *AuthService) WithBranchRole(sess model.SessionContext, branch string) (model.SessionContext, error) {
	if sess.HasRole() {
		return sess, ErrRoleAlreadySet
	}
	if branch == "" {
		return sess, fmt.Errorf("%w: 请先选择分店", repository.ErrValidation)
	}
	if !s.app.HasBranch(branch) {
		return sess, fmt.Errorf("%w: 未知分店 %q", repository.ErrValidation, branch)
	}

	sess.Role = model.RoleBranch
	sess.Branch = branch
	return sess, nil
}

// WithMetaRole 进入总部模式，无需任何输入
func (s *AuthService) WithMetaRole(sess model.SessionContext) (model.SessionContext, error) {
	if sess.HasRole() {
		return sess, ErrRoleAlreadySet
	}
	sess.Role = model.RoleMeta
	sess.Branch = ""
	return sess, nil
}

// LogoutRole 重置角色门，管理员门保持不变
func (s *AuthService) LogoutRole(sess model.SessionContext) model.SessionContext {
	sess.Role = model.RoleUnset
	sess.Branch = ""
	return sess
}

// ==================== 管理员门 ====================

// AdminLogin 管理员登录：明文精确比对静态密码。
// 密码错误时状态不变（保持 logged_out）
func (s *AuthService) AdminLogin(sess model.SessionContext, password string) (model.SessionContext, error) {
	if password != s.auth.AdminPassword {
		return sess, fmt.Errorf("%w: 密码错误", ErrAuthFailed)
	}
	sess.AdminLoggedIn = true
	return sess, nil
}

// AdminLogout 管理员退出，角色门保持不变
func (s *AuthService) AdminLogout(sess model.SessionContext) model.SessionContext {
	sess.AdminLoggedIn = false
	return sess
}

// ==================== 提交归属 ====================

// ResolveSubmitBranch 决定一次提交落到哪个分店：
// 分店模式固定用会话绑定的分店（忽略请求里传的值），
// 总部模式每次提交从枚举列表里选
func (s *AuthService) ResolveSubmitBranch(sess model.SessionContext, requested string) (string, error) {
	if sess.BranchScoped() {
		return sess.Branch, nil
	}
	if requested == "" {
		return "", fmt.Errorf("%w: 请选择分店", repository.ErrValidation)
	}
	if !s.app.HasBranch(requested) {
		return "", fmt.Errorf("%w: 未知分店 %q", repository.ErrValidation, requested)
	}
	return requested, nil
}
