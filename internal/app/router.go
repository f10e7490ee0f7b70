package app

import (
	"especialidades_backend/docs"
	"especialidades_backend/internal/config"
	"especialidades_backend/internal/middleware"
	"especialidades_backend/internal/model"
	"especialidades_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/specializations", c.bank.ListSpecializations)
		public.GET("/gamification/catalog", c.gamification.GetCatalog)
		public.GET("/gamification/leaderboard", c.gamification.GetLeaderboard)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// Question banks
	rg.GET("/banks/:specialization/questions", c.bank.GetQuestions)
	rg.GET("/banks/:specialization/questions/:number", c.bank.GetQuestion)
	rg.GET("/banks/:specialization/sections", c.bank.GetSections)

	// Practice mode
	rg.POST("/practice/submit", c.practice.Submit)

	// Exam lifecycle
	rg.POST("/exams/preview", c.exam.Preview)
	rg.POST("/exams", c.exam.Start)
	rg.GET("/exams/:id", c.exam.GetSession)
	rg.POST("/exams/:id/answers", c.exam.SubmitAnswer)
	rg.POST("/exams/:id/score", c.exam.Score)

	// Gamification
	rg.GET("/gamification/profile", c.gamification.GetProfile)
	rg.POST("/gamification/checkin", c.gamification.CheckIn)
	rg.GET("/gamification/achievements", c.gamification.GetAchievements)
	rg.GET("/gamification/xp-history", c.gamification.GetXPHistory)

	// Progress
	rg.GET("/progress/streak", c.progress.GetStreak)
	rg.GET("/progress/:specialization/sections", c.progress.GetSectionStats)
	rg.GET("/progress/:specialization/daily", c.progress.GetDailyVolumes)
	rg.GET("/progress/:specialization/exams", c.progress.GetExamHistory)

	// Study assistant
	rg.POST("/chat/ask", c.chat.Ask)
	rg.POST("/chat/stream", c.chat.AskStream)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.PUT("/banks/:specialization", c.admin.ImportBank)
		admin.DELETE("/banks/:specialization", c.admin.DeleteAll)
		admin.GET("/banks/:specialization/export", c.admin.ExportBank)
		admin.POST("/banks/:specialization/questions", c.admin.AppendQuestion)
		admin.DELETE("/banks/:specialization/questions/:number", c.admin.DeleteQuestion)

		admin.GET("/actions", c.admin.GetActionLog)

		admin.POST("/snippets", c.admin.IndexSnippet)
		admin.DELETE("/snippets/:id", c.admin.DeleteSnippet)

		admin.POST("/assets", c.admin.UploadAsset)
	}
}
