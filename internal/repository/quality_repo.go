package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"giraffe_quality_v2_202509/internal/model"
)

// ErrValidation 输入校验失败（必填项为空 / 评分越界）
// 调用方用 errors.Is 判断后映射到 400
var ErrValidation = errors.New("validation failed")

// ==================== 仓储接口 ====================

// QualityRecordRepository 质检记录仓储
// 记录不可变：只有插入和读取，没有更新/删除
type QualityRecordRepository interface {
	// Create 校验并插入一条记录，created_at 由仓储在写入时打 UTC 秒级时间戳
	Create(ctx context.Context, rec *model.QualityRecord) error
	// ListAll 全表读取，按提交时间倒序（最新在前）
	ListAll(ctx context.Context) ([]model.QualityRecord, error)
	// HasRecentDuplicate 重复提交检测：窗口内是否存在完全相同的(分店,厨师,菜品)。
	// window <= 0 时关闭检测，恒为 false。仅作提示，不在存储层拦截
	HasRecentDuplicate(ctx context.Context, branch, chef, dish string, window time.Duration) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// ==================== 仓储实现 ====================

type qualityRecordRepo struct {
	db *gorm.DB
}

// NewQualityRecordRepository 创建质检记录仓储
func NewQualityRecordRepository(db *gorm.DB) QualityRecordRepository {
	return &qualityRecordRepo{db: db}
}

func (r *qualityRecordRepo) Create(ctx context.Context, rec *model.QualityRecord) error {
	rec.Branch = strings.TrimSpace(rec.Branch)
	rec.ChefName = strings.TrimSpace(rec.ChefName)
	rec.DishName = strings.TrimSpace(rec.DishName)
	rec.Notes = strings.TrimSpace(rec.Notes)

	if rec.Branch == "" {
		return fmt.Errorf("%w: 分店不能为空", ErrValidation)
	}
	if rec.ChefName == "" {
		return fmt.Errorf("%w: 厨师姓名不能为空", ErrValidation)
	}
	if rec.DishName == "" {
		return fmt.Errorf("%w: 菜品不能为空", ErrValidation)
	}
	if rec.Score < model.ScoreMin || rec.Score > model.ScoreMax {
		return fmt.Errorf("%w: 评分必须在 %d-%d 之间", ErrValidation, model.ScoreMin, model.ScoreMax)
	}

	// 时间戳一律服务端生成，不信任客户端
	rec.CreatedAt = time.Now().UTC().Truncate(time.Second)

	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *qualityRecordRepo) ListAll(ctx context.Context) ([]model.QualityRecord, error) {
	var records []model.QualityRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	return records, err
}

func (r *qualityRecordRepo) HasRecentDuplicate(ctx context.Context, branch, chef, dish string, window time.Duration) (bool, error) {
	if window <= 0 {
		return false, nil
	}

	cutoff := time.Now().UTC().Add(-window)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.QualityRecord{}).
		Where("branch = ? AND chef_name = ? AND dish_name = ? AND created_at >= ?",
			strings.TrimSpace(branch), strings.TrimSpace(chef), strings.TrimSpace(dish), cutoff).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *qualityRecordRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.QualityRecord{}).Count(&count).Error
	return count, err
}
