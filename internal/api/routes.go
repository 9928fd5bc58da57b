package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/auth"
	"resumeforge/internal/config"
	"resumeforge/internal/database"
	"resumeforge/internal/editor"
	"resumeforge/internal/storage"
	"resumeforge/internal/tasks"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
) {
	store := database.NewResumeStore(db)
	enqueuer := tasks.NewEnqueuer(asynqClient, 5)
	editorManager := editor.NewManager(store, enqueuer)

	resumeHandler := NewResumeHandler(store, asynqClient, storageClient, cfg.API.MaxResumesPerUser, cfg.Export.DownloadTTL)
	editorHandler := NewEditorHandler(editorManager)
	authHandler := NewAuthHandler(db, authService, redisClient, logger, cfg.API.LoginRateLimitPerHour, cfg.API.LoginLockThreshold, cfg.API.LoginLockTTL, cfg.Auth.CookieDomain)
	wsHandler := NewWsHandler(redisClient, authService, logger, cfg.API.AllowedOrigins)
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		resumeGroup := v1.Group("/resumes")
		resumeGroup.Use(authMiddleware)
		{
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.GET("/:id/export", resumeHandler.ExportResume)
			resumeGroup.GET("/:id/download-link", resumeHandler.GetDownloadLink)
			resumeGroup.GET("/:id/download", resumeHandler.DownloadResume)
		}

		editorGroup := v1.Group("/editor")
		editorGroup.Use(authMiddleware)
		{
			editorGroup.POST("", editorHandler.OpenSession)
			editorGroup.GET("/:sid", editorHandler.GetSession)
			editorGroup.DELETE("/:sid", editorHandler.CloseSession)

			editorGroup.POST("/:sid/advance", editorHandler.Advance)
			editorGroup.POST("/:sid/retreat", editorHandler.Retreat)
			editorGroup.POST("/:sid/jump", editorHandler.Jump)

			editorGroup.PUT("/:sid/title", editorHandler.SetTitle)
			editorGroup.PUT("/:sid/template", editorHandler.SetTemplate)
			editorGroup.PUT("/:sid/personal", editorHandler.UpdatePersonal)

			editorGroup.POST("/:sid/sections/:section/entries", editorHandler.AppendEntry)
			editorGroup.PUT("/:sid/sections/:section/entries/:entryID", editorHandler.UpdateEntry)
			editorGroup.DELETE("/:sid/sections/:section/entries/:entryID", editorHandler.RemoveEntry)

			editorGroup.PUT("/:sid/skills/staging", editorHandler.StageSkill)
			editorGroup.POST("/:sid/skills", editorHandler.AddSkill)
			editorGroup.DELETE("/:sid/skills/:entryID", editorHandler.RemoveSkill)

			editorGroup.POST("/:sid/save", editorHandler.Save)
			editorGroup.POST("/:sid/export", editorHandler.Export)
		}
	}
}
