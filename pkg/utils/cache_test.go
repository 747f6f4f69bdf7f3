package utils

import (
	"testing"
	"time"
)

func TestTTLCell(t *testing.T) {
	cell := NewTTLCell[int](time.Minute)

	if _, ok := cell.Get(); ok {
		t.Error("空缓存不应命中")
	}

	cell.Set(42)
	if v, ok := cell.Get(); !ok || v != 42 {
		t.Errorf("Get() = (%d, %v), want (42, true)", v, ok)
	}

	cell.Invalidate()
	if _, ok := cell.Get(); ok {
		t.Error("失效后不应命中")
	}
}

func TestTTLCell_Expiry(t *testing.T) {
	cell := NewTTLCell[string](10 * time.Millisecond)
	cell.Set("v")

	if _, ok := cell.Get(); !ok {
		t.Fatal("TTL 内应命中")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := cell.Get(); ok {
		t.Error("过期后不应命中")
	}
}

func TestTTLCell_ZeroTTL(t *testing.T) {
	cell := NewTTLCell[int](0)
	cell.Set(1)
	if _, ok := cell.Get(); ok {
		t.Error("ttl=0 等价于不缓存")
	}
}
