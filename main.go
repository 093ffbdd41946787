package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"spendwise/internal/config"
	"spendwise/internal/database"
	"spendwise/internal/logger"
	"spendwise/internal/router"
	"spendwise/internal/schedule"
	"spendwise/internal/util"

	"github.com/joho/godotenv"
)

func main() {
	processDue := flag.String("process-due", "",
		"run the daily batch for the given YYYY-MM-DD date (or 'today') and exit")
	flag.Parse()

	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(cfg.Upload.Dir); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	appLog := logger.New(cfg.Log)

	// one-shot batch mode for cron; the server never self-schedules
	if *processDue != "" {
		refDate := schedule.Midnight(time.Now())
		if *processDue != "today" {
			d, err := util.ValidateDate(*processDue)
			if err != nil {
				log.Fatalf("invalid -process-due date: %v", err)
			}
			refDate = d
		}
		report, err := schedule.NewRunner(db, appLog).RunDaily(refDate)
		if err != nil {
			log.Fatalf("daily run: %v", err)
		}
		fmt.Printf("processed=%d skipped=%d failed=%d insufficient_funds=%d\n",
			report.ProcessedCount(), report.SkippedCount(),
			report.FailedCount(), report.InsufficientFundsCount())
		return
	}

	r := router.SetupRouter(cfg, db, appLog)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	appLog.Info().Str("addr", addr).Msg("server listening")
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
