package dto

// Request DTO (前端传进来的数据)

// SubmitCheckReq 提交质检记录
type SubmitCheckReq struct {
	// 总部模式必填；分店模式忽略（固定用会话绑定的分店）
	Branch string `json:"branch"`
	Chef   string `json:"chef_name" binding:"required"`
	Dish   string `json:"dish_name" binding:"required"`
	Score  int    `json:"score" binding:"required,min=1,max=10"`
	Notes  string `json:"notes"`
	// 重复提示后带 force 重发即强制写入
	Force bool `json:"force"`
}

// AskAnalystReq 向分析助手提问
type AskAnalystReq struct {
	// 为空时做一次综述（趋势/异常/建议）
	Question string `json:"question"`
}

// Response DTO (返回给前端的数据)

// SubmitCheckResp 提交结果
type SubmitCheckResp struct {
	ID        int64  `json:"id"`
	Branch    string `json:"branch"`
	ChefName  string `json:"chef_name"`
	DishName  string `json:"dish_name"`
	Score     int    `json:"score"`
	ScoreHint string `json:"score_hint"`
	CreatedAt string `json:"created_at"`
	// 镜像失败时带上警告文案，前端只提示不拦截
	MirrorWarning string `json:"mirror_warning,omitempty"`
}

// AskAnalystResp 助手回答
type AskAnalystResp struct {
	Answer string `json:"answer"`
}

// DiagnosticsResp 管理面板技术信息
type DiagnosticsResp struct {
	SheetsCredentialsPresent bool   `json:"sheets_credentials_present"`
	SheetsTargetConfigured   bool   `json:"sheets_target_configured"`
	OpenAIKeyPresent         bool   `json:"openai_key_present"`
	TotalRecords             int64  `json:"total_records"`
	DatabasePath             string `json:"database_path"`
}
