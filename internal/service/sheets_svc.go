package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"giraffe_quality_v2_202509/internal/config"
	"giraffe_quality_v2_202509/internal/model"
)

// ==================== 镜像结果 ====================

// MirrorResult 镜像调用结果
// 镜像是尽力而为：本地插入先提交，这里失败只产生一条警告，
// 不回滚、不重试、不向上抛错误
type MirrorResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

func mirrorFail(format string, args ...interface{}) MirrorResult {
	return MirrorResult{OK: false, Reason: fmt.Sprintf(format, args...)}
}

// ==================== 镜像服务 ====================

// 读写表格 + 按表名检索需要的两个 scope
var sheetsScopes = []string{sheets.SpreadsheetsScope, drive.DriveScope}

// 从完整 URL 里抠出 spreadsheet ID
var spreadsheetURLRe = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// SheetsService Google Sheets 镜像
// 每条新记录尽力同步到外部表格一份。凭据解析顺序：
// 配置里的结构化 secret 优先，然后回退 GOOGLE_SERVICE_ACCOUNT 环境变量。
// 目标表依次按 URL、裸 ID、表名解析
type SheetsService struct {
	cfg    *config.SheetsConfig
	logger *zap.Logger
}

// NewSheetsService 创建镜像服务
func NewSheetsService(cfg *config.SheetsConfig, logger *zap.Logger) *SheetsService {
	return &SheetsService{cfg: cfg, logger: logger}
}

// ==================== 凭据 ====================

// CredentialsPresent 是否配置了 service account（诊断用）
func (s *SheetsService) CredentialsPresent() bool {
	return s.cfg.ServiceAccountJSON != "" || os.Getenv("GOOGLE_SERVICE_ACCOUNT") != ""
}

// TargetConfigured 是否配置了目标表（诊断用）
func (s *SheetsService) TargetConfigured() bool {
	return s.cfg.Target != ""
}

func (s *SheetsService) loadCredentials() ([]byte, error) {
	raw := s.cfg.ServiceAccountJSON
	if raw == "" {
		raw = os.Getenv("GOOGLE_SERVICE_ACCOUNT")
	}
	if raw == "" {
		return nil, fmt.Errorf("缺少 google service account 凭据")
	}
	return normalizeServiceAccountJSON(raw)
}

// normalizeServiceAccountJSON 修复复制粘贴凭据的常见坑：
// private_key 里的换行被转义成了字面量 \n，签名前必须还原成真换行
func normalizeServiceAccountJSON(raw string) ([]byte, error) {
	var creds map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, fmt.Errorf("service account JSON 解析失败: %w", err)
	}

	if pk, ok := creds["private_key"].(string); ok {
		creds["private_key"] = strings.ReplaceAll(pk, `\n`, "\n")
	}

	return json.Marshal(creds)
}

// ==================== 目标解析 ====================

// resolveSpreadsheetID 解析目标 spreadsheet：
// 1) URL -> 直接抠 ID
// 2) 当作裸 ID 试探（spreadsheets.get）
// 3) 当作表名，用 Drive 检索（相当于 gspread 的 open(title)）
func (s *SheetsService) resolveSpreadsheetID(ctx context.Context, sheetsSvc *sheets.Service, driveSvc *drive.Service) (string, error) {
	target := strings.TrimSpace(s.cfg.Target)
	if target == "" {
		return "", fmt.Errorf("未配置目标表（URL、ID 或表名）")
	}

	if strings.HasPrefix(strings.ToLower(target), "http://") || strings.HasPrefix(strings.ToLower(target), "https://") {
		m := spreadsheetURLRe.FindStringSubmatch(target)
		if m == nil {
			return "", fmt.Errorf("无法从 URL 解析 spreadsheet ID: %s", target)
		}
		return m[1], nil
	}

	// 裸 ID 试探
	if _, err := sheetsSvc.Spreadsheets.Get(target).Fields("spreadsheetId").Context(ctx).Do(); err == nil {
		return target, nil
	}

	// 按表名检索
	query := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		strings.ReplaceAll(target, "'", `\'`))
	list, err := driveSvc.Files.List().Q(query).Fields("files(id)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("按表名检索失败: %w", err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("找不到名为 %q 的表格", target)
	}
	return list.Files[0].Id, nil
}

// ensureWorksheet 确认工作表存在，不存在就建一个并写表头
func (s *SheetsService) ensureWorksheet(ctx context.Context, sheetsSvc *sheets.Service, spreadsheetID string) error {
	meta, err := sheetsSvc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("读取表格结构失败: %w", err)
	}

	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.cfg.WorksheetTitle {
			return nil
		}
	}

	_, err = sheetsSvc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: s.cfg.WorksheetTitle},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("创建工作表失败: %w", err)
	}

	header := []interface{}{"created_at", "branch", "chef_name", "dish_name", "score", "notes"}
	return s.appendRow(ctx, sheetsSvc, spreadsheetID, header)
}

func (s *SheetsService) appendRow(ctx context.Context, sheetsSvc *sheets.Service, spreadsheetID string, row []interface{}) error {
	_, err := sheetsSvc.Spreadsheets.Values.
		Append(spreadsheetID, s.cfg.WorksheetTitle+"!A1", &sheets.ValueRange{
			Values: [][]interface{}{row},
		}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return err
}

// ==================== 镜像写入 ====================

// Mirror 把一条已落库的记录镜像到表格
// 任何失败都收敛成 MirrorResult，绝不向外抛
func (s *SheetsService) Mirror(ctx context.Context, rec *model.QualityRecord) MirrorResult {
	return s.appendRecordRow(ctx, []interface{}{
		rec.CreatedAt.Format("2006-01-02 15:04:05"),
		rec.Branch,
		rec.ChefName,
		rec.DishName,
		rec.Score,
		rec.Notes,
	})
}

// Ping 连通性测试：往表格写一行 TEST（管理面板用）
func (s *SheetsService) Ping(ctx context.Context) MirrorResult {
	return s.appendRecordRow(ctx, []interface{}{
		time.Now().UTC().Format("2006-01-02 15:04:05"),
		"TEST",
		"BOT",
		"בדיקה",
		0,
		"ping",
	})
}

func (s *SheetsService) appendRecordRow(ctx context.Context, row []interface{}) MirrorResult {
	creds, err := s.loadCredentials()
	if err != nil {
		return mirrorFail("%v", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(creds, sheetsScopes...)
	if err != nil {
		return mirrorFail("凭据无效: %v", err)
	}
	client := jwtCfg.Client(ctx)

	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return mirrorFail("初始化 Sheets 客户端失败: %v", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return mirrorFail("初始化 Drive 客户端失败: %v", err)
	}

	spreadsheetID, err := s.resolveSpreadsheetID(ctx, sheetsSvc, driveSvc)
	if err != nil {
		return mirrorFail("%v", err)
	}

	if err := s.ensureWorksheet(ctx, sheetsSvc, spreadsheetID); err != nil {
		return mirrorFail("%v", err)
	}

	if err := s.appendRow(ctx, sheetsSvc, spreadsheetID, row); err != nil {
		return mirrorFail("写入表格失败: %v", err)
	}

	s.logger.Debug("镜像写入成功", zap.String("spreadsheet_id", spreadsheetID))
	return MirrorResult{OK: true}
}
