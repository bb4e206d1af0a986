package app

import (
	"lifequest_backend/docs"
	"lifequest_backend/internal/middleware"
	"lifequest_backend/internal/model"
	"lifequest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)

		// 进步引擎
		authGroup.POST("/activity/events", c.progression.LogEvent)
		authGroup.GET("/activity/events", c.progression.ListEvents)
		authGroup.GET("/activity/streaks", c.progression.GetStreaks)
		authGroup.GET("/activity/summary", c.progression.GetSummary)

		// 任务与成就
		authGroup.GET("/quests", c.quest.ListQuests)
		authGroup.GET("/achievements", c.achievement.GetUserAchievements)
		authGroup.GET("/achievements/leaderboard", c.achievement.GetLeaderboard)

		// 专注会话
		authGroup.POST("/focus/sessions", c.focus.StartSession)
		authGroup.GET("/focus/sessions", c.focus.ListSessions)
		authGroup.POST("/focus/sessions/:id/complete", c.focus.CompleteSession)
		authGroup.POST("/focus/sessions/:id/abandon", c.focus.AbandonSession)

		// 习惯
		authGroup.POST("/habits", c.habit.CreateHabit)
		authGroup.GET("/habits", c.habit.ListHabits)
		authGroup.POST("/habits/:id/complete", c.habit.CompleteHabit)
		authGroup.POST("/habits/:id/archive", c.habit.ArchiveHabit)
		authGroup.GET("/habits/:id/completions", c.habit.ListCompletions)

		// 音频素材
		authGroup.POST("/assets/audio", c.asset.UploadAsset)
		authGroup.GET("/assets/audio", c.asset.ListAssets)
		authGroup.GET("/assets/audio/:id/url", c.asset.GetAssetURL)
		authGroup.DELETE("/assets/audio/:id", c.asset.DeleteAsset)
	}

	// 3. 管理员相关接口：任务与成就目录的编辑面
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(model.RoleAdmin))
	{
		adminGroup.POST("/quests", c.quest.CreateQuest)
		adminGroup.PATCH("/quests/:id/active", c.quest.SetQuestActive)
	}
}
