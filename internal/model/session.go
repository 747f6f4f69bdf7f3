package model

// ==================== 会话角色 ====================

// 会话角色：分店模式绑定一个具体分店，总部模式每次提交时自选分店
const (
	RoleUnset  = ""
	RoleBranch = "branch"
	RoleMeta   = "meta"
)

// SessionContext 会话上下文
// 两个互相独立的门：角色门（branch/meta）和管理员门（静态密码）。
// 不落库，作为显式值在请求间传递（签名 cookie 承载），
// 所有状态变更都通过 auth service 的纯函数产生新值，不原地修改。
type SessionContext struct {
	Role          string `json:"role"`
	Branch        string `json:"branch,omitempty"`
	AdminLoggedIn bool   `json:"admin_logged_in"`
}

// HasRole 角色门是否已通过
func (s SessionContext) HasRole() bool {
	return s.Role == RoleBranch || s.Role == RoleMeta
}

// BranchScoped 是否是绑定分店的会话
func (s SessionContext) BranchScoped() bool {
	return s.Role == RoleBranch
}
