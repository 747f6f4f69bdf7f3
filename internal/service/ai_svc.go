package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"giraffe_quality_v2_202509/internal/config"
	"giraffe_quality_v2_202509/internal/model"
)

// ==================== 配置 ====================

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"

	// AnalystMaxRows 送进模型的记录上限（最新的在前）。
	// 硬上限：历史超过 400 条后，助手看不到更早的数据
	AnalystMaxRows = 400
)

// 数据分析师人设（希伯来语，和面向用户的界面语言一致）
const analystSystemPrompt = "אתה אנליסט דאטה דובר עברית. מוצגת לך טבלה עם העמודות: " +
	"id, branch, chef_name, dish_name, score, notes, created_at. " +
	"ענה בתמציתיות, בעברית, עם דגשים והמלצות קצרות."

// ==================== 服务 ====================

// AnalystService 分析助手
// 把全表快照（CSV，截断到 AnalystMaxRows 行）连同问题发给 LLM。
// 无状态、不重试；任何失败（缺 key / 网络 / 服务端错误）都降级成
// 一条面向用户的错误文案，绝不向调用方抛错误
type AnalystService struct {
	cfg    *config.OpenAIConfig
	client *resty.Client
	logger *zap.Logger
}

// NewAnalystService 创建分析助手
func NewAnalystService(cfg *config.OpenAIConfig, logger *zap.Logger) *AnalystService {
	client := resty.New()
	client.SetTimeout(60 * time.Second)

	return &AnalystService{cfg: cfg, client: client, logger: logger}
}

// ==================== 请求/响应结构 ====================

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ==================== 问答 ====================

// Ask 对数据提问。question 为空时做一次"总结趋势和异常"的综述
func (s *AnalystService) Ask(ctx context.Context, question string, records []model.QualityRecord) string {
	if s.cfg.APIKey == "" {
		return "חסר מפתח OPENAI_API_KEY (בהגדרות או בקובץ ‎.env)."
	}

	tableCSV := RecordsToCSV(records, AnalystMaxRows)

	var userPrompt string
	if strings.TrimSpace(question) == "" {
		userPrompt = fmt.Sprintf("הנה הטבלה בפורמט CSV:\n%s\n\nסכם מגמות, חריגים והמלצות קצרות לניהול.", tableCSV)
	} else {
		userPrompt = fmt.Sprintf("שאלה: %s\n\nהנה הטבלה בפורמט CSV (עד %d שורות):\n%s\n\nענה בעברית, תן נימוק קצר לכל מסקנה.",
			question, AnalystMaxRows, tableCSV)
	}

	req := chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: analystSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.2,
	}

	r := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+s.cfg.APIKey).
		SetBody(req).
		SetResult(&chatResponse{}).
		SetError(&chatResponse{})
	if s.cfg.Organization != "" {
		r.SetHeader("OpenAI-Organization", s.cfg.Organization)
	}
	if s.cfg.Project != "" {
		r.SetHeader("OpenAI-Project", s.cfg.Project)
	}

	resp, err := r.Post(openAIEndpoint)
	if err != nil {
		s.logger.Warn("OpenAI 调用失败", zap.Error(err))
		return fmt.Sprintf("שגיאה בקריאה ל-OpenAI: %v", err)
	}

	if resp.IsError() {
		msg := resp.Status()
		if er, ok := resp.Error().(*chatResponse); ok && er.Error != nil {
			msg = er.Error.Message
		}
		s.logger.Warn("OpenAI 返回错误", zap.Int("status", resp.StatusCode()), zap.String("message", msg))
		return fmt.Sprintf("שגיאה בקריאה ל-OpenAI: %s", msg)
	}

	result, ok := resp.Result().(*chatResponse)
	if !ok || len(result.Choices) == 0 {
		return "שגיאה בקריאה ל-OpenAI: תשובה ריקה"
	}
	return strings.TrimSpace(result.Choices[0].Message.Content)
}

// ==================== CSV 序列化 ====================

// RecordsToCSV 把记录序列化成 CSV 文本，最多取前 maxRows 行
// （记录本身就是最新在前）。列顺序与表结构一致
func RecordsToCSV(records []model.QualityRecord, maxRows int) string {
	if maxRows > 0 && len(records) > maxRows {
		records = records[:maxRows]
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write([]string{"id", "branch", "chef_name", "dish_name", "score", "notes", "created_at"})
	for _, r := range records {
		_ = w.Write([]string{
			strconv.FormatInt(r.ID, 10),
			r.Branch,
			r.ChefName,
			r.DishName,
			strconv.Itoa(r.Score),
			r.Notes,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	w.Flush()
	return sb.String()
}
