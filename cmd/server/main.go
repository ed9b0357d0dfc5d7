package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/applytrack/applytrack-server/internal/ai"
	"github.com/applytrack/applytrack-server/internal/config"
	"github.com/applytrack/applytrack-server/internal/database"
	"github.com/applytrack/applytrack-server/internal/handler"
	"github.com/applytrack/applytrack-server/internal/queue"
	"github.com/applytrack/applytrack-server/internal/repository"
	"github.com/applytrack/applytrack-server/internal/router"
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; limiter passes through
	rateCfg := config.LoadRateLimitConfig()

	var aiClient ai.Client
	if cfg.GeminiAPIKey != "" {
		aiClient = ai.NewGeminiClient(cfg.GeminiAPIKey)
	}

	if cfg.QueueEnabled {
		go func() {
			if err := queue.StartActivityConsumer(); err != nil {
				log.Printf("activity consumer stopped: %v", err)
			}
		}()
	}

	users := repository.NewUserRepo(db)
	apps := repository.NewApplicationRepo(db)
	resumes := repository.NewResumeRepo(db)
	emails := repository.NewEmailRepo(db)
	analytics := repository.NewAnalyticsRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.Setup(e, router.Deps{
		Cfg:       cfg,
		RateCfg:   rateCfg,
		Redis:     rdb,
		Users:     users,
		Auth:      handler.NewAuthHandler(cfg, users),
		Apps:      handler.NewApplicationHandler(apps, cfg.QueueEnabled),
		Resumes:   handler.NewResumeHandler(resumes, cfg.UploadDir),
		Analytics: handler.NewAnalyticsHandler(analytics),
		Export:    handler.NewExportHandler(apps),
		User:      handler.NewUserHandler(cfg, users, emails),
		AI:        handler.NewAIHandler(aiClient),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
