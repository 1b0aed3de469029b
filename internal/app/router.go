package app

import (
	"medexam_backend/docs"
	"medexam_backend/internal/config"
	"medexam_backend/internal/middleware"
	"medexam_backend/internal/model"
	"medexam_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.auth.GetProfile)
	group.PUT("/profile", c.user.UpdateProfile)
	group.POST("/profile/avatar", c.user.UploadAvatar)

	exams := group.Group("/exams")
	{
		exams.POST("/start", c.exam.Start)
		exams.GET("/active", c.exam.Active)
		exams.GET("/history", c.exam.History)
		exams.PUT("/:id/sync", c.exam.Sync)
		exams.POST("/:id/pause", c.exam.Pause)
		exams.POST("/:id/answers", c.exam.SubmitAnswer)
		exams.POST("/:id/flag", c.exam.Flag)
		exams.POST("/:id/note", c.exam.Note)
		exams.POST("/:id/finish", c.exam.Finish)
		exams.GET("/:id/result", c.exam.Result)
	}

	group.GET("/topics", c.quiz.Topics)
	quiz := group.Group("/quiz")
	{
		quiz.GET("/questions", c.quiz.Questions)
		quiz.POST("/answers", c.quiz.Answer)
		quiz.POST("/flags", c.quiz.Flag)
	}

	group.GET("/notifications", c.notification.List)
	group.POST("/notifications/:id/read", c.notification.MarkRead)

	group.GET("/ranking", c.ranking.Leaderboard)

	group.POST("/tutor", c.tutor.Ask)
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.GetUsers)

		admin.GET("/questions", c.question.List)
		admin.POST("/questions", c.question.Create)
		admin.PUT("/questions/:id", c.question.Update)
		admin.DELETE("/questions/:id", c.question.Delete)

		admin.POST("/notifications", c.notification.Create)
		admin.PUT("/notifications/:id", c.notification.Update)
		admin.DELETE("/notifications/:id", c.notification.Delete)
	}
}
