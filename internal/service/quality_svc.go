package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"giraffe_quality_v2_202509/internal/config"
	"giraffe_quality_v2_202509/internal/model"
	"giraffe_quality_v2_202509/internal/repository"
)

// ==================== 提交参数/结果 ====================

// SubmitInput 一次质检提交
type SubmitInput struct {
	Branch string // 总部模式必填；分店模式忽略，固定用会话绑定的分店
	Chef   string
	Dish   string
	Score  int
	Notes  string
	// Force 跳过重复提交提示强制写入（重复检测只是建议，用户可以无视）
	Force bool
}

// SubmitOutcome 提交结果
type SubmitOutcome struct {
	// DuplicateWarning 为 true 时没有写入：窗口内已有完全相同的
	// (分店,厨师,菜品) 提交，带 Force 重发即可落库
	DuplicateWarning bool
	Record           *model.QualityRecord
	ScoreHint        string
	// Mirror 外部表格镜像结果，失败不影响本地写入
	Mirror MirrorResult
}

// ==================== 质检服务 ====================

// QualityService 质检记录的提交与读取
type QualityService struct {
	repo   *repository.CachedQualityRepository
	auth   *AuthService
	sheets *SheetsService
	app    *config.AppConfig
	logger *zap.Logger
}

// NewQualityService 创建质检服务
func NewQualityService(
	repo *repository.CachedQualityRepository,
	auth *AuthService,
	sheets *SheetsService,
	app *config.AppConfig,
	logger *zap.Logger,
) *QualityService {
	return &QualityService{repo: repo, auth: auth, sheets: sheets, app: app, logger: logger}
}

// SubmitCheck 提交一条质检记录
// 流程：确定归属分店 -> 校验菜品 -> 重复提示（可强制跳过）->
// 落库（落库即失效读缓存）-> 尽力镜像到外部表格
func (s *QualityService) SubmitCheck(ctx context.Context, sess model.SessionContext, in SubmitInput) (*SubmitOutcome, error) {
	branch, err := s.auth.ResolveSubmitBranch(sess, strings.TrimSpace(in.Branch))
	if err != nil {
		return nil, err
	}

	dish := strings.TrimSpace(in.Dish)
	if dish == "" {
		return nil, fmt.Errorf("%w: 请选择菜品", repository.ErrValidation)
	}
	if !s.app.HasDish(dish) {
		return nil, fmt.Errorf("%w: 未知菜品 %q", repository.ErrValidation, dish)
	}

	if !in.Force {
		window := time.Duration(s.app.DuplicateWindowHours) * time.Hour
		dup, err := s.repo.HasRecentDuplicate(ctx, branch, in.Chef, dish, window)
		if err != nil {
			return nil, err
		}
		if dup {
			return &SubmitOutcome{DuplicateWarning: true}, nil
		}
	}

	rec := &model.QualityRecord{
		Branch:      branch,
		ChefName:    in.Chef,
		DishName:    dish,
		Score:       in.Score,
		Notes:       in.Notes,
		SubmittedBy: sess.Role,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	// 本地已提交，镜像失败只告警
	mirror := s.sheets.Mirror(ctx, rec)
	if !mirror.OK {
		s.logger.Warn("已保存到本地，但未写入 Google Sheets",
			zap.Int64("record_id", rec.ID),
			zap.String("reason", mirror.Reason))
	}

	return &SubmitOutcome{
		Record:    rec,
		ScoreHint: model.ScoreHint(rec.Score),
		Mirror:    mirror,
	}, nil
}

// ListRecords 全量记录（最新在前，经过读缓存）
func (s *QualityService) ListRecords(ctx context.Context) ([]model.QualityRecord, error) {
	return s.repo.ListAll(ctx)
}

// ==================== CSV 导出 ====================

// ExportCSV 全表导出（管理员功能）
// UTF-8，列顺序与记录字段一致，含 submitted_by
func (s *QualityService) ExportCSV(ctx context.Context) ([]byte, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"id", "branch", "chef_name", "dish_name", "score", "notes", "created_at", "submitted_by"}); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.Branch,
			r.ChefName,
			r.DishName,
			strconv.Itoa(r.Score),
			r.Notes,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.SubmittedBy,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}
