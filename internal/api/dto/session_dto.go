package dto

// Request DTO (前端传进来的数据)

// SelectRoleReq 选择工作模式
type SelectRoleReq struct {
	// 角色限定校验
	Role string `json:"role" binding:"required,oneof=branch meta"`
	// branch 模式必须选一个具体分店；meta 模式忽略
	Branch string `json:"branch"`
}

// AdminLoginReq 管理员登录
type AdminLoginReq struct {
	Password string `json:"password" binding:"required"`
}

// Response DTO (返回给前端的数据)

// SessionResp 当前会话状态
type SessionResp struct {
	Role          string `json:"role"`
	Branch        string `json:"branch,omitempty"`
	AdminLoggedIn bool   `json:"admin_logged_in"`
}
