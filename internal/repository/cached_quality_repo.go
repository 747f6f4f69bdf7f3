package repository

import (
	"context"
	"time"

	"giraffe_quality_v2_202509/internal/model"
	"giraffe_quality_v2_202509/pkg/utils"
)

// ==================== 缓存装饰 ====================

// CachedQualityRepository 带读缓存的仓储装饰器
// 只缓存 ListAll 的结果（短 TTL），写入走底层仓储并立即失效缓存，
// 保证刚提交的记录在下一次聚合计算里可见。
type CachedQualityRepository struct {
	inner QualityRecordRepository
	cache *utils.TTLCell[[]model.QualityRecord]
}

// NewCachedQualityRepository 包装底层仓储，ttl 一般取 15 秒
func NewCachedQualityRepository(inner QualityRecordRepository, ttl time.Duration) *CachedQualityRepository {
	return &CachedQualityRepository{
		inner: inner,
		cache: utils.NewTTLCell[[]model.QualityRecord](ttl),
	}
}

func (r *CachedQualityRepository) Create(ctx context.Context, rec *model.QualityRecord) error {
	if err := r.inner.Create(ctx, rec); err != nil {
		return err
	}
	r.cache.Invalidate()
	return nil
}

func (r *CachedQualityRepository) ListAll(ctx context.Context) ([]model.QualityRecord, error) {
	if cached, ok := r.cache.Get(); ok {
		return cached, nil
	}

	records, err := r.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.Set(records)
	return records, nil
}

// HasRecentDuplicate 直接穿透到底层，重复检测必须看到最新数据
func (r *CachedQualityRepository) HasRecentDuplicate(ctx context.Context, branch, chef, dish string, window time.Duration) (bool, error) {
	return r.inner.HasRecentDuplicate(ctx, branch, chef, dish, window)
}

func (r *CachedQualityRepository) Count(ctx context.Context) (int64, error) {
	return r.inner.Count(ctx)
}

// Invalidate 手动失效读缓存
func (r *CachedQualityRepository) Invalidate() {
	r.cache.Invalidate()
}
