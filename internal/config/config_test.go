package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d", cfg.Server.Port)
	}
	if len(cfg.App.Branches) != 8 || len(cfg.App.Dishes) != 12 {
		t.Errorf("枚举列表 = %d 分店 / %d 菜品", len(cfg.App.Branches), len(cfg.App.Dishes))
	}
	if !cfg.App.HasBranch("סביון") {
		t.Error("默认分店列表应含萨维永")
	}
	if cfg.App.DuplicateWindowHours != 12 || cfg.App.CacheTTLSeconds != 15 {
		t.Errorf("app 默认值 = %+v", cfg.App)
	}
	if cfg.Auth.AdminPassword != "admin123" {
		t.Errorf("auth.admin_password = %q", cfg.Auth.AdminPassword)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("openai.model = %q", cfg.OpenAI.Model)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  port: 9000\napp:\n  duplicate_window_hours: 6\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("写配置文件失败: %v", err)
	}

	// 环境变量覆盖优先于文件
	t.Setenv("GQ_SERVER_PORT", "9001")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("server.port = %d, want 9001（环境变量覆盖）", cfg.Server.Port)
	}
	if cfg.App.DuplicateWindowHours != 6 {
		t.Errorf("duplicate_window_hours = %d, want 6（文件覆盖）", cfg.App.DuplicateWindowHours)
	}
	// 文件里没写的仍用默认值
	if cfg.App.CacheTTLSeconds != 15 {
		t.Errorf("cache_ttl_seconds = %d, want 15", cfg.App.CacheTTLSeconds)
	}
}

func TestHasBranchHasDish(t *testing.T) {
	app := &AppConfig{Branches: []string{"חיפה"}, Dishes: []string{"פאד תאי"}}

	if !app.HasBranch("חיפה") || app.HasBranch("תל אביב") {
		t.Error("HasBranch 判定错误")
	}
	if !app.HasDish("פאד תאי") || app.HasDish("פיצה") {
		t.Error("HasDish 判定错误")
	}
}
