package service

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"giraffe_quality_v2_202509/internal/config"
	"giraffe_quality_v2_202509/internal/model"
)

func TestRecordsToCSV(t *testing.T) {
	created := time.Date(2025, 9, 1, 12, 30, 0, 0, time.UTC)
	records := []model.QualityRecord{
		{ID: 2, Branch: "חיפה", ChefName: "דני", DishName: "פאד תאי", Score: 8, Notes: "טעים, אבל מלוח", CreatedAt: created},
		{ID: 1, Branch: "סביון", ChefName: "יוסי", DishName: "מלאזית", Score: 5, CreatedAt: created},
	}

	out := RecordsToCSV(records, AnalystMaxRows)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("输出不是合法 CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("行数 = %d, want 3", len(rows))
	}
	if rows[0][0] != "id" || rows[0][6] != "created_at" {
		t.Errorf("表头 = %v", rows[0])
	}
	// 带逗号的备注必须被正确转义
	if rows[1][5] != "טעים, אבל מלוח" {
		t.Errorf("notes = %q", rows[1][5])
	}
	if rows[1][0] != "2" || rows[2][0] != "1" {
		t.Errorf("应保持传入顺序（最新在前）: %v / %v", rows[1], rows[2])
	}
	if rows[1][6] != "2025-09-01 12:30:00" {
		t.Errorf("created_at = %q", rows[1][6])
	}
}

func TestRecordsToCSV_Cap(t *testing.T) {
	records := make([]model.QualityRecord, AnalystMaxRows+50)
	for i := range records {
		records[i] = model.QualityRecord{ID: int64(i + 1), Branch: "חיפה", ChefName: "דני", DishName: "פאד תאי", Score: 7}
	}

	out := RecordsToCSV(records, AnalystMaxRows)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("输出不是合法 CSV: %v", err)
	}
	// 超过上限只保留前 maxRows 行（即最新的）
	if len(rows) != AnalystMaxRows+1 {
		t.Errorf("行数 = %d, want %d", len(rows), AnalystMaxRows+1)
	}
	if rows[1][0] != "1" {
		t.Errorf("截断应保留开头的行, got %v", rows[1])
	}
}

func TestAnalyst_MissingKey(t *testing.T) {
	svc := NewAnalystService(&config.OpenAIConfig{Model: "gpt-4o-mini"}, zap.NewNop())

	// 缺 key 降级成面向用户的文案，不报错、不发请求
	answer := svc.Ask(context.Background(), "מה המגמה?", []model.QualityRecord{
		{ID: 1, Branch: "חיפה", ChefName: "דני", DishName: "פאד תאי", Score: 8},
	})
	if !strings.Contains(answer, "OPENAI_API_KEY") {
		t.Errorf("answer = %q", answer)
	}
}
