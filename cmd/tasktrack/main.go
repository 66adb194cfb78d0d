package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"tasktrack/internal/api"
	"tasktrack/internal/config"
	"tasktrack/internal/repository"
	"tasktrack/internal/service"
)

func main() {
	// Optional; real deployments set env directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	shareRepo := repository.NewShareRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	authSvc := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.TokenTTL)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo, attachmentRepo)
	categorySvc := service.NewCategoryService(categoryRepo, taskRepo)
	shareSvc := service.NewShareService(shareRepo, taskRepo, taskSvc)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, cfg.UploadDir)
	statsSvc := service.NewStatsService(taskRepo, categoryRepo)

	if cfg.SweepInterval > 0 {
		scheduler := service.NewSchedulerService(time.Local)
		if _, err := scheduler.ScheduleInterval(cfg.SweepInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			removed, err := attachmentSvc.SweepOrphans(jobCtx)
			if err != nil {
				log.Printf("uploads sweep: %v", err)
				return
			}
			if removed > 0 {
				log.Printf("uploads sweep: removed %d orphaned files", removed)
			}
		}); err != nil {
			log.Fatalf("schedule uploads sweep: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := api.New(authSvc, categorySvc, taskSvc, shareSvc, attachmentSvc, statsSvc)
	log.Printf("tasktrack listening on %s", cfg.Addr)
	if err := server.Start(cfg.Addr); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
