package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"` // gin 模式: debug/release/test
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

// AppConfig 业务参数
type AppConfig struct {
	// 固定枚举：分店与菜品列表（希伯来语）
	Branches []string `mapstructure:"branches"`
	Dishes   []string `mapstructure:"dishes"`

	// 重复提交检测窗口（小时），<=0 时关闭检测
	DuplicateWindowHours int `mapstructure:"duplicate_window_hours"`

	// KPI 最小样本量门槛（不达标时回退取榜首）
	MinSamplesTopChef   int `mapstructure:"min_samples_top_chef"`
	MinSamplesTopBranch int `mapstructure:"min_samples_top_branch"`

	// 聚合读取缓存 TTL（秒）
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

// AuthConfig 会话与管理员门
type AuthConfig struct {
	// 管理员静态密码，明文比对。内部低风险工具，够用
	AdminPassword string `mapstructure:"admin_password"`
	// 会话 cookie 的签名密钥
	SessionSecret string `mapstructure:"session_secret"`
}

// SheetsConfig Google Sheets 镜像配置
type SheetsConfig struct {
	// 目标表：可以是完整 URL、裸 spreadsheet ID 或表名
	Target string `mapstructure:"target"`
	// 工作表名，不存在时自动创建并写表头
	WorksheetTitle string `mapstructure:"worksheet_title"`
	// service account JSON（结构化 secret 优先；为空时回退 GOOGLE_SERVICE_ACCOUNT 环境变量）
	ServiceAccountJSON string `mapstructure:"service_account_json"`
}

// OpenAIConfig 分析助手配置
type OpenAIConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Organization string `mapstructure:"organization"`
	Project      string `mapstructure:"project"`
	Model        string `mapstructure:"model"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	App      AppConfig      `mapstructure:"app"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
}

// ==================== 默认值 ====================

// 分店列表（含萨维永）
var defaultBranches = []string{
	"חיפה", "ראשל״צ", "רמה״ח", "נס ציונה",
	"לנדמרק", "פתח תקווה", "הרצליה", "סביון",
}

// 菜品列表（初始示例，可在配置里扩充）
var defaultDishes = []string{
	"פאד תאי", "מלאזית", "פיליפינית", "אפגנית",
	"קארי דלעת", "סצ'ואן", "ביף רייס",
	"אורז מטוגן", "מאקי סלמון", "מאקי טונה",
	"ספייסי סלמון", "נודלס ילדים",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.path", "data/food_quality.db")
	v.SetDefault("database.log_mode", false)

	v.SetDefault("app.branches", defaultBranches)
	v.SetDefault("app.dishes", defaultDishes)
	v.SetDefault("app.duplicate_window_hours", 12)
	v.SetDefault("app.min_samples_top_chef", 5)
	v.SetDefault("app.min_samples_top_branch", 3)
	v.SetDefault("app.cache_ttl_seconds", 15)

	v.SetDefault("auth.admin_password", "admin123")
	v.SetDefault("auth.session_secret", "giraffe-quality-session-secret")

	v.SetDefault("sheets.worksheet_title", "food_quality")

	v.SetDefault("openai.model", "gpt-4o-mini")
}

// ==================== 加载 ====================

// Load 读取配置文件并应用环境变量覆盖（前缀 GQ_，如 GQ_SERVER_PORT=9000）。
// path 为空时在当前目录找 config.yaml；文件不存在不算错误，全部走默认值。
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("GQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置失败: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &c, nil
}

// HasBranch 分店是否在枚举列表内
func (c *AppConfig) HasBranch(name string) bool {
	for _, b := range c.Branches {
		if b == name {
			return true
		}
	}
	return false
}

// HasDish 菜品是否在枚举列表内
func (c *AppConfig) HasDish(name string) bool {
	for _, d := range c.Dishes {
		if d == name {
			return true
		}
	}
	return false
}
