// Package router wires the HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/applytrack/applytrack-server/internal/config"
	"github.com/applytrack/applytrack-server/internal/handler"
	"github.com/applytrack/applytrack-server/internal/middleware"
	"github.com/applytrack/applytrack-server/internal/repository"
)

// Deps carries everything the routes need.
type Deps struct {
	Cfg       config.Config
	RateCfg   config.RateLimitConfig
	Redis     *redis.Client
	Users     *repository.UserRepo
	Auth      *handler.AuthHandler
	Apps      *handler.ApplicationHandler
	Resumes   *handler.ResumeHandler
	Analytics *handler.AnalyticsHandler
	Export    *handler.ExportHandler
	User      *handler.UserHandler
	AI        *handler.AIHandler
}

// Setup registers every route on the Echo instance. Health and the auth
// entry points are public; everything else sits behind the JWT middleware
// and the rate limiter.
func Setup(e *echo.Echo, d Deps) {
	api := e.Group("/api")

	api.GET("/health", handler.Health(d.Cfg.Env))

	// Public auth endpoints.
	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)
	api.POST("/auth/logout", d.Auth.Logout)

	// Everything below requires a valid session.
	auth := api.Group("",
		middleware.Auth(d.Cfg.JWTSecret, d.Users),
		middleware.RateLimit(d.RateCfg, d.Redis),
	)

	auth.GET("/auth/me", d.Auth.Me)

	auth.GET("/applications", d.Apps.List)
	auth.POST("/applications", d.Apps.Create)
	auth.GET("/applications/stats/summary", d.Apps.StatsSummary)
	auth.GET("/applications/:id", d.Apps.Get)
	auth.PUT("/applications/:id", d.Apps.Update)
	auth.DELETE("/applications/:id", d.Apps.Delete)

	auth.GET("/resumes", d.Resumes.List)
	auth.POST("/resumes/upload", d.Resumes.Upload)
	auth.GET("/resumes/:id/download", d.Resumes.Download)
	auth.DELETE("/resumes/:id", d.Resumes.Delete)

	auth.GET("/analytics/stats", d.Analytics.StatusCounts)
	auth.GET("/analytics/over-time", d.Analytics.OverTime)
	auth.GET("/analytics/resumes", d.Analytics.ResumeUsage)
	auth.GET("/analytics/companies", d.Analytics.TopCompanies)
	auth.GET("/analytics/follow-ups", d.Analytics.FollowUps)

	auth.GET("/export/json", d.Export.JSON)
	auth.GET("/export/csv", d.Export.CSV)

	auth.GET("/user/emails", d.User.ListEmails)
	auth.POST("/user/emails", d.User.AddEmail)
	auth.DELETE("/user/emails/:id", d.User.DeleteEmail)
	auth.PUT("/user/emails/:id/primary", d.User.SetPrimaryEmail)
	auth.PUT("/user/password", d.User.ChangePassword)

	auth.POST("/ai/cover-letter", d.AI.CoverLetter)
	auth.POST("/ai/match-resume", d.AI.MatchResume)
	auth.POST("/ai/interview-questions", d.AI.InterviewQuestions)
}
