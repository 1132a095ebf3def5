// 命令行工具：模拟项目推进。随机推进未完成项目的进度、KPI与支出，
// 重算状态并写入KPI历史，用于演示环境。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/samidhothar/SafeProvinceMonitor/internal/config"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/repository"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/service"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	count := flag.Int("count", 5, "number of projects to advance per round (0 = all active)")
	interval := flag.Duration("interval", 0, "repeat every interval (0 = run once)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repos := repository.NewRepositories(db)
	sim := service.NewSimulationService(repos.Project, repos.KPIHistory)

	run := func() {
		result, err := sim.AdvanceProjects(context.Background(), *count, time.Now())
		if err != nil {
			log.Printf("Advance failed: %v", err)
			return
		}
		log.Printf("Advanced %d of %d active projects", result.Updated, result.Scanned)
	}

	run()
	if *interval <= 0 {
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for range ticker.C {
		run()
	}
}
