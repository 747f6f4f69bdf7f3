package utils

import (
	"sync"
	"time"
)

// TTLCell 单值读缓存
// 聚合视图每次刷新都要全表读，这里用一个短 TTL 的缓存挡住重复读取。
// 写入成功后调用 Invalidate，保证刚提交的记录下一次读取立刻可见，
// 不用等 TTL 过期。并发会话之间最多看到 TTL 以内的旧视图，可接受。
type TTLCell[T any] struct {
	mu         sync.Mutex
	value      T
	expiration time.Time
	valid      bool
	ttl        time.Duration
}

// NewTTLCell 创建缓存，ttl <= 0 时等价于不缓存
func NewTTLCell[T any](ttl time.Duration) *TTLCell[T] {
	return &TTLCell[T]{ttl: ttl}
}

// Get 获取缓存值并检查是否过期（懒失效）
func (c *TTLCell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if !c.valid || c.ttl <= 0 {
		return zero, false
	}
	if time.Now().After(c.expiration) {
		c.valid = false
		return zero, false
	}
	return c.value, true
}

// Set 写入缓存
func (c *TTLCell[T]) Set(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.expiration = time.Now().Add(c.ttl)
	c.valid = c.ttl > 0
}

// Invalidate 立即失效（写入成功后调用）
func (c *TTLCell[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}
