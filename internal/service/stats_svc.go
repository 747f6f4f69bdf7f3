package service

import (
	"context"
	"sort"

	"giraffe_quality_v2_202509/internal/model"
	"giraffe_quality_v2_202509/internal/repository"
)

// ==================== 统计类型 ====================

// AvgStat 平均分。OK 为 false 表示没有可计算的样本（"暂无数据"，不是 0）
type AvgStat struct {
	Avg float64 `json:"avg"`
	OK  bool    `json:"ok"`
}

// ChefStanding 最佳厨师榜单项
type ChefStanding struct {
	ChefName string  `json:"chef_name"`
	Branch   string  `json:"branch"` // 该厨师记录最多的分店
	Count    int     `json:"count"`
	Avg      float64 `json:"avg"`
}

// BranchStanding 最佳分店榜单项
type BranchStanding struct {
	Branch string  `json:"branch"`
	Count  int     `json:"count"`
	Avg    float64 `json:"avg"`
}

// DishStanding 热门菜品榜单项
type DishStanding struct {
	DishName string `json:"dish_name"`
	Count    int    `json:"count"`
}

// Dashboard 仪表盘一次性返回的全部 KPI
type Dashboard struct {
	TotalRecords int     `json:"total_records"`
	NetworkAvg   AvgStat `json:"network_avg"`
	// 对比口径：分店会话固定用自己的分店，总部可任选
	Branch         string   `json:"branch,omitempty"`
	BranchAvg      *AvgStat `json:"branch_avg,omitempty"`
	Dish           string   `json:"dish,omitempty"`
	DishAvgNetwork *AvgStat `json:"dish_avg_network,omitempty"`
	DishAvgBranch  *AvgStat `json:"dish_avg_branch,omitempty"`

	TopChef   *ChefStanding   `json:"top_chef,omitempty"`
	TopBranch *BranchStanding `json:"top_branch,omitempty"`
	TopDish   *DishStanding   `json:"top_dish,omitempty"`
}

// ==================== 平均分 ====================

func meanWhere(records []model.QualityRecord, match func(model.QualityRecord) bool) (float64, bool) {
	sum, n := 0, 0
	for _, r := range records {
		if match(r) {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// NetworkAvg 全网均分
func NetworkAvg(records []model.QualityRecord) (float64, bool) {
	return meanWhere(records, func(model.QualityRecord) bool { return true })
}

// BranchAvg 单分店均分
func BranchAvg(records []model.QualityRecord, branch string) (float64, bool) {
	return meanWhere(records, func(r model.QualityRecord) bool { return r.Branch == branch })
}

// DishAvgNetwork 单菜品全网均分
func DishAvgNetwork(records []model.QualityRecord, dish string) (float64, bool) {
	return meanWhere(records, func(r model.QualityRecord) bool { return r.DishName == dish })
}

// DishAvgBranch 单菜品单分店均分
func DishAvgBranch(records []model.QualityRecord, branch, dish string) (float64, bool) {
	return meanWhere(records, func(r model.QualityRecord) bool {
		return r.Branch == branch && r.DishName == dish
	})
}

// ==================== 榜单 ====================

type chefGroup struct {
	name     string
	count    int
	sum      int
	branches map[string]int
}

// TopChef 最佳厨师
// 排序：样本量降序，样本量相同比均分。取第一个样本量 >= minN 的；
// 没人达标时直接取榜首（样本少也给个结果，前端标注即可）
func TopChef(records []model.QualityRecord, minN int) (ChefStanding, bool) {
	if len(records) == 0 {
		return ChefStanding{}, false
	}

	index := make(map[string]*chefGroup)
	var groups []*chefGroup
	for _, r := range records {
		g, ok := index[r.ChefName]
		if !ok {
			g = &chefGroup{name: r.ChefName, branches: make(map[string]int)}
			index[r.ChefName] = g
			groups = append(groups, g)
		}
		g.count++
		g.sum += r.Score
		g.branches[r.Branch]++
	}

	avg := func(g *chefGroup) float64 { return float64(g.sum) / float64(g.count) }
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return avg(groups[i]) > avg(groups[j])
	})

	pick := groups[0]
	for _, g := range groups {
		if g.count >= minN {
			pick = g
			break
		}
	}

	return ChefStanding{
		ChefName: pick.name,
		Branch:   dominantBranch(pick.branches),
		Count:    pick.count,
		Avg:      avg(pick),
	}, true
}

func dominantBranch(counts map[string]int) string {
	best, bestN := "", -1
	for branch, n := range counts {
		if n > bestN || (n == bestN && branch < best) {
			best, bestN = branch, n
		}
	}
	return best
}

type scoredGroup struct {
	key   string
	count int
	sum   int
}

// TopBranchByAvg 最佳分店
// 注意排序主键和最佳厨师相反：先均分再样本量。取第一个样本量 >= minN 的，
// 没有达标分店时取均分榜首
func TopBranchByAvg(records []model.QualityRecord, minN int) (BranchStanding, bool) {
	if len(records) == 0 {
		return BranchStanding{}, false
	}

	index := make(map[string]*scoredGroup)
	var groups []*scoredGroup
	for _, r := range records {
		g, ok := index[r.Branch]
		if !ok {
			g = &scoredGroup{key: r.Branch}
			index[r.Branch] = g
			groups = append(groups, g)
		}
		g.count++
		g.sum += r.Score
	}

	avg := func(g *scoredGroup) float64 { return float64(g.sum) / float64(g.count) }
	sort.SliceStable(groups, func(i, j int) bool {
		ai, aj := avg(groups[i]), avg(groups[j])
		if ai != aj {
			return ai > aj
		}
		return groups[i].count > groups[j].count
	})

	pick := groups[0]
	for _, g := range groups {
		if g.count >= minN {
			pick = g
			break
		}
	}

	return BranchStanding{Branch: pick.key, Count: pick.count, Avg: avg(pick)}, true
}

// TopDishOverall 热门菜品（提交次数最多；平局取先出现的）
func TopDishOverall(records []model.QualityRecord) (DishStanding, bool) {
	if len(records) == 0 {
		return DishStanding{}, false
	}

	index := make(map[string]*scoredGroup)
	var groups []*scoredGroup
	for _, r := range records {
		g, ok := index[r.DishName]
		if !ok {
			g = &scoredGroup{key: r.DishName}
			index[r.DishName] = g
			groups = append(groups, g)
		}
		g.count++
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })
	return DishStanding{DishName: groups[0].key, Count: groups[0].count}, true
}

// ==================== 统计服务 ====================

// StatsService 基于全量记录快照做 KPI 聚合（经读缓存，数据量级是人手录入的）
type StatsService struct {
	repo interface {
		ListAll(ctx context.Context) ([]model.QualityRecord, error)
	}
	minSamplesTopChef   int
	minSamplesTopBranch int
}

// NewStatsService 创建统计服务
func NewStatsService(repo *repository.CachedQualityRepository, minSamplesTopChef, minSamplesTopBranch int) *StatsService {
	return &StatsService{
		repo:                repo,
		minSamplesTopChef:   minSamplesTopChef,
		minSamplesTopBranch: minSamplesTopBranch,
	}
}

// Records 全量记录快照
func (s *StatsService) Records(ctx context.Context) ([]model.QualityRecord, error) {
	return s.repo.ListAll(ctx)
}

// BuildDashboard 汇总一次仪表盘
// branch/dish 为空就跳过对应的对比项
func (s *StatsService) BuildDashboard(ctx context.Context, branch, dish string) (*Dashboard, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{TotalRecords: len(records)}
	d.NetworkAvg.Avg, d.NetworkAvg.OK = NetworkAvg(records)

	if branch != "" {
		d.Branch = branch
		avg, ok := BranchAvg(records, branch)
		d.BranchAvg = &AvgStat{Avg: avg, OK: ok}
	}
	if dish != "" {
		d.Dish = dish
		avg, ok := DishAvgNetwork(records, dish)
		d.DishAvgNetwork = &AvgStat{Avg: avg, OK: ok}
		if branch != "" {
			avg, ok = DishAvgBranch(records, branch, dish)
			d.DishAvgBranch = &AvgStat{Avg: avg, OK: ok}
		}
	}

	if top, ok := TopChef(records, s.minSamplesTopChef); ok {
		d.TopChef = &top
	}
	if top, ok := TopBranchByAvg(records, s.minSamplesTopBranch); ok {
		d.TopBranch = &top
	}
	if top, ok := TopDishOverall(records); ok {
		d.TopDish = &top
	}

	return d, nil
}
