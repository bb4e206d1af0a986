// 手动触发内容目录初始化脚本
//
// 默认的任务与成就目录在主应用启动时自动写入（仅当表为空）。
// 此脚本仅用于手动触发，例如清空目录后重新导入默认内容。
//
// 用法: go run scripts/seed_content.go

package main

import (
	"log"
	"os"

	"lifequest_backend/internal/config"
	"lifequest_backend/pkg/database"
	"lifequest_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("写入默认任务与成就目录...")
	if err := database.SeedDefaults(db); err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	log.Println("完成！")
}
