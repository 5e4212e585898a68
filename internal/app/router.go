package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"text2learn_backend/docs"
	"text2learn_backend/internal/config"
	"text2learn_backend/internal/middleware"
	"text2learn_backend/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/send-otp", c.auth.SendOTP)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/auth/profile", c.auth.Profile)

		// 课程
		authGroup.POST("/courses/generate", c.course.Generate)
		authGroup.GET("/courses", c.course.List)
		authGroup.GET("/courses/saved", c.course.ListSaved)
		authGroup.GET("/courses/:id", c.course.Get)
		authGroup.DELETE("/courses/:id", c.course.Delete)
		authGroup.POST("/courses/:id/save", c.course.Save)
		authGroup.DELETE("/courses/:id/save", c.course.Unsave)

		// 课时内容生成，归属链出现在路径中
		authGroup.POST("/courses/:id/modules/:moduleId/lessons/:lessonId/generate", c.lesson.GenerateContent)

		// 课时
		authGroup.GET("/lessons/completed", c.lesson.ListCompleted)
		authGroup.GET("/lessons/:id", c.lesson.Get)
		authGroup.PUT("/lessons/:id", c.lesson.Update)
		authGroup.POST("/lessons/:id/complete", c.lesson.ToggleComplete)
		authGroup.POST("/lessons/:id/translate", c.lesson.Translate)
		authGroup.POST("/lessons/:id/export", c.lesson.Export)

		// 工具
		authGroup.GET("/youtube/search", c.utility.SearchVideos)
		authGroup.POST("/translate/hinglish", c.utility.TranslateHinglish)
	}
}
