package routes

import (
	"github.com/MildKid/DegReviews/config"
	"github.com/MildKid/DegReviews/controllers"
	"github.com/MildKid/DegReviews/middleware"
	"github.com/MildKid/DegReviews/services"
	"github.com/MildKid/DegReviews/utils"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.Engine,
	conf config.Config,
	schedule *services.ScheduleService,
	gate *services.GateService,
	validator *services.ValidatorService,
	reviews *services.ReviewService,
	cookies *utils.CookieManager,
) {
	reviewController := controllers.NewReviewController(schedule, gate, validator, reviews, cookies)
	reportController := controllers.NewReportController(reviews)
	authController := controllers.NewAuthController(conf.AdminPassword)

	// 公开路由（表单页面调用）
	public := r.Group("/api/v1")
	{
		public.GET("/review/form", reviewController.GetFormState)
		public.POST("/review", reviewController.SubmitReview)
		public.POST("/auth/login", authController.AdminLogin)
	}

	// 报表路由（仅限管理后台）
	private := r.Group("/api/v1/report")
	private.Use(middleware.AuthMiddleware()) // 应用认证中间件
	{
		private.GET("/wordfreq", reportController.GetWordFrequencies)
		private.GET("/reviews", reportController.ListReviews)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
