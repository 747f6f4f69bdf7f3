package model

import "time"

// QualityRecord 食品质检记录（一次打分提交）
// 记录只增不改：没有更新/删除操作，写入后永久保留
type QualityRecord struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Branch    string    `gorm:"not null;index:idx_food_branch_time,priority:1;comment:分店名称" json:"branch"`
	ChefName  string    `gorm:"not null;index:idx_food_chef_dish_time,priority:1;comment:厨师姓名" json:"chef_name"`
	DishName  string    `gorm:"not null;index:idx_food_chef_dish_time,priority:2;comment:菜品名称" json:"dish_name"`
	Score     int       `gorm:"not null;check:score BETWEEN 1 AND 10;comment:质量评分(1-10)" json:"score"`
	Notes     string    `gorm:"default:'';comment:备注" json:"notes"`
	CreatedAt time.Time `gorm:"not null;index:idx_food_branch_time,priority:2;index:idx_food_chef_dish_time,priority:3" json:"created_at"`
	// SubmittedBy 提交时的会话角色（branch/meta）
	SubmittedBy string `gorm:"size:32;comment:提交角色" json:"submitted_by"`
}

func (QualityRecord) TableName() string {
	return "food_quality"
}

// ==================== 评分常量 ====================

const (
	ScoreMin = 1
	ScoreMax = 10
)

// ScoreHint 评分档位提示（沿用前端展示文案，希伯来语）
func ScoreHint(score int) string {
	switch {
	case score <= 3:
		return "חלש" // 弱
	case score <= 6:
		return "סביר" // 一般
	case score <= 8:
		return "טוב" // 好
	default:
		return "מצוין" // 优秀
	}
}
