package service

import (
	"context"
	"testing"
	"time"

	"giraffe_quality_v2_202509/internal/model"
	"giraffe_quality_v2_202509/internal/repository"
)

func rec(branch, chef, dish string, score int) model.QualityRecord {
	return model.QualityRecord{Branch: branch, ChefName: chef, DishName: dish, Score: score}
}

// ==================== 平均分 ====================

func TestNetworkAvg_EmptyIsNoData(t *testing.T) {
	// 空表是"暂无数据"，不是 0，也不是报错
	avg, ok := NetworkAvg(nil)
	if ok {
		t.Errorf("空表 ok 应为 false, avg = %v", avg)
	}
	if avg != 0 {
		t.Errorf("空表 avg 应为零值, got %v", avg)
	}
}

func TestNetworkAvg(t *testing.T) {
	records := []model.QualityRecord{
		rec("חיפה", "דני", "פאד תאי", 8),
		rec("סביון", "יוסי", "מלאזית", 6),
	}
	avg, ok := NetworkAvg(records)
	if !ok || avg != 7.0 {
		t.Errorf("NetworkAvg = (%v, %v), want (7.0, true)", avg, ok)
	}
}

func TestBranchAvg(t *testing.T) {
	records := []model.QualityRecord{
		rec("חיפה", "דני", "פאד תאי", 8),
		rec("חיפה", "דני", "מלאזית", 10),
		rec("סביון", "יוסי", "מלאזית", 2),
	}

	avg, ok := BranchAvg(records, "חיפה")
	if !ok || avg != 9.0 {
		t.Errorf("BranchAvg(חיפה) = (%v, %v), want (9.0, true)", avg, ok)
	}

	if _, ok := BranchAvg(records, "הרצליה"); ok {
		t.Error("没有记录的分店应返回 ok=false")
	}
}

func TestDishAvgs(t *testing.T) {
	records := []model.QualityRecord{
		rec("חיפה", "דני", "פאד תאי", 8),
		rec("סביון", "יוסי", "פאד תאי", 4),
		rec("חיפה", "דני", "מלאזית", 10),
	}

	if avg, ok := DishAvgNetwork(records, "פאד תאי"); !ok || avg != 6.0 {
		t.Errorf("DishAvgNetwork = (%v, %v), want (6.0, true)", avg, ok)
	}
	if avg, ok := DishAvgBranch(records, "חיפה", "פאד תאי"); !ok || avg != 8.0 {
		t.Errorf("DishAvgBranch = (%v, %v), want (8.0, true)", avg, ok)
	}
	if _, ok := DishAvgBranch(records, "סביון", "מלאזית"); ok {
		t.Error("分店没有该菜品记录时应返回 ok=false")
	}
}

// ==================== 最佳厨师 ====================

// 样本量优先：A 4 条均分 9.0，B 6 条均分 6.0，min_n=5 时 B 胜出
func TestTopChef_CountThresholdBeatsAverage(t *testing.T) {
	var records []model.QualityRecord
	for i := 0; i < 4; i++ {
		records = append(records, rec("חיפה", "אלון", "פאד תאי", 9))
	}
	for i := 0; i < 6; i++ {
		records = append(records, rec("סביון", "בני", "מלאזית", 6))
	}

	top, ok := TopChef(records, 5)
	if !ok {
		t.Fatal("有数据时应有结果")
	}
	if top.ChefName != "בני" {
		t.Errorf("达标者应胜出即使均分较低, got %s", top.ChefName)
	}
	if top.Count != 6 || top.Avg != 6.0 {
		t.Errorf("榜单项数据不对: count=%d avg=%v", top.Count, top.Avg)
	}
}

// 没人达标时回退取榜首（样本量最高者）
func TestTopChef_FallbackWhenNobodyQualifies(t *testing.T) {
	records := []model.QualityRecord{
		rec("חיפה", "אלון", "פאד תאי", 9),
		rec("חיפה", "אלון", "מלאזית", 7),
		rec("סביון", "בני", "מלאזית", 10),
	}

	top, ok := TopChef(records, 5)
	if !ok {
		t.Fatal("有数据时应有结果")
	}
	if top.ChefName != "אלון" {
		t.Errorf("回退时取样本量最高者, got %s", top.ChefName)
	}
	if top.Avg != 8.0 {
		t.Errorf("avg = %v, want 8.0", top.Avg)
	}
}

// 样本量相同比均分
func TestTopChef_AvgBreaksCountTie(t *testing.T) {
	records := []model.QualityRecord{
		rec("חיפה", "אלון", "פאד תאי", 6),
		rec("חיפה", "אלון", "מלאזית", 6),
		rec("סביון", "בני", "מלאזית", 9),
		rec("סביון", "בני", "פאד תאי", 9),
	}

	top, _ := TopChef(records, 1)
	if top.ChefName != "בני" {
		t.Errorf("同样本量时均分高者胜出, got %s", top.ChefName)
	}
}

func TestTopChef_DominantBranch(t *testing.T) {
	records := []model.QualityRecord{
		rec("חיפה", "אלון", "פאד תאי", 8),
		rec("חיפה", "אלון", "מלאזית", 8),
		rec("סביון", "אלון", "מלאזית", 8),
	}

	top, _ := TopChef(records, 1)
	if top.Branch != "חיפה" {
		t.Errorf("应取该厨师记录最多的分店, got %s", top.Branch)
	}
}

func TestTopChef_Empty(t *testing.T) {
	if _, ok := TopChef(nil, 5); ok {
		t.Error("空表应返回 ok=false")
	}
}

// ==================== 最佳分店 ====================

// 注意排序主键和最佳厨师相反：先均分再样本量
func TestTopBranchByAvg(t *testing.T) {
	var records []model.QualityRecord
	for i := 0; i < 3; i++ {
		records = append(records, rec("חיפה", "אלון", "פאד תאי", 9))
	}
	for i := 0; i < 5; i++ {
		records = append(records, rec("סביון", "בני", "מלאזית", 6))
	}

	top, ok := TopBranchByAvg(records, 3)
	if !ok {
		t.Fatal("有数据时应有结果")
	}
	if top.Branch != "חיפה" {
		t.Errorf("均分优先（都达标时）, got %s", top.Branch)
	}
	if top.Avg != 9.0 || top.Count != 3 {
		t.Errorf("榜单项数据不对: avg=%v count=%d", top.Avg, top.Count)
	}
}

func TestTopBranchByAvg_ThresholdFallback(t *testing.T) {
	records := []model.QualityRecord{
		rec("חיפה", "אלון", "פאד תאי", 10),
		rec("סביון", "בני", "מלאזית", 6),
		rec("סביון", "בני", "פאד תאי", 6),
	}

	// 没有分店达到 5 条样本，回退取均分榜首
	top, _ := TopBranchByAvg(records, 5)
	if top.Branch != "חיפה" {
		t.Errorf("回退时取均分最高者, got %s", top.Branch)
	}

	// סביון 达标（2 >= 2），虽然均分低于 חיפה 但 חיפה 不达标
	top, _ = TopBranchByAvg(records, 2)
	if top.Branch != "סביון" {
		t.Errorf("应取第一个达标的分店, got %s", top.Branch)
	}
}

// ==================== 热门菜品 ====================

func TestTopDishOverall(t *testing.T) {
	records := []model.QualityRecord{
		rec("חיפה", "אלון", "פאד תאי", 8),
		rec("סביון", "בני", "מלאזית", 6),
		rec("חיפה", "אלון", "מלאזית", 7),
	}

	top, ok := TopDishOverall(records)
	if !ok || top.DishName != "מלאזית" || top.Count != 2 {
		t.Errorf("TopDishOverall = %+v, ok=%v", top, ok)
	}
}

func TestTopDishOverall_TieFirstEncountered(t *testing.T) {
	records := []model.QualityRecord{
		rec("חיפה", "אלון", "פאד תאי", 8),
		rec("סביון", "בני", "מלאזית", 6),
	}

	top, _ := TopDishOverall(records)
	if top.DishName != "פאד תאי" {
		t.Errorf("平局取先出现的菜品, got %s", top.DishName)
	}
}

// ==================== 仪表盘 ====================

func TestBuildDashboard(t *testing.T) {
	db := setupServiceTestDB(t)
	repo := repository.NewCachedQualityRepository(repository.NewQualityRecordRepository(db), time.Minute)
	svc := NewStatsService(repo, 5, 3)
	ctx := context.Background()

	// 空库：网络均分"暂无数据"，榜单全空
	d, err := svc.BuildDashboard(ctx, "", "")
	if err != nil {
		t.Fatalf("BuildDashboard() error = %v", err)
	}
	if d.NetworkAvg.OK {
		t.Error("空库 network_avg 应为无数据")
	}
	if d.TopChef != nil || d.TopBranch != nil || d.TopDish != nil {
		t.Error("空库不应有榜单")
	}

	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, &model.QualityRecord{
			Branch: "חיפה", ChefName: "דני", DishName: "פאד תאי", Score: 8,
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	d, err = svc.BuildDashboard(ctx, "חיפה", "פאד תאי")
	if err != nil {
		t.Fatalf("BuildDashboard() error = %v", err)
	}
	if !d.NetworkAvg.OK || d.NetworkAvg.Avg != 8.0 {
		t.Errorf("network_avg = %+v", d.NetworkAvg)
	}
	if d.BranchAvg == nil || !d.BranchAvg.OK || d.BranchAvg.Avg != 8.0 {
		t.Errorf("branch_avg = %+v", d.BranchAvg)
	}
	if d.DishAvgBranch == nil || !d.DishAvgBranch.OK {
		t.Errorf("dish_avg_branch = %+v", d.DishAvgBranch)
	}
	if d.TopChef == nil || d.TopChef.ChefName != "דני" {
		t.Errorf("top_chef = %+v", d.TopChef)
	}
	if d.TotalRecords != 3 {
		t.Errorf("total_records = %d", d.TotalRecords)
	}
}
