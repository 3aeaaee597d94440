package app

import (
	"icsq_backend/docs"
	"icsq_backend/internal/config"
	"icsq_backend/internal/middleware"
	"icsq_backend/internal/model"

	"icsq_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 普通用户接口
		a.registerUserRoutes(authGroup, c)

		// 部门负责人接口
		a.registerHodRoutes(authGroup, c)

		// 管理员接口
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)

		// 生产环境注册走管理员通道，开发环境开放自助注册
		if cfg.Server.Mode == "release" {
			public.POST("/register",
				middleware.AuthMiddleware(cfg),
				middleware.RoleMiddleware(model.RoleAdmin),
				c.auth.Register)
		} else {
			public.POST("/register", c.auth.Register)
		}
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.POST("/logout", c.auth.Logout)

	// 提交问卷前需要部门和类别列表
	rg.GET("/departments", c.department.ListDepartments)
	rg.GET("/departments/:id", c.department.GetDepartment)
	rg.GET("/categories", c.category.ListCategories)

	rg.POST("/surveys", c.survey.SubmitSurvey)

	// 执行人查看并推进自己的行动计划
	rg.GET("/action-plans", c.actionPlan.ListActionPlans)
	rg.GET("/action-plans/:id", c.actionPlan.GetActionPlan)
	rg.PATCH("/action-plans/:id/status", c.actionPlan.UpdateAssigneeStatus)

	rg.GET("/sipoc", c.sipoc.ListSipoc)
	rg.GET("/sipoc/:id", c.sipoc.GetSipoc)
}

func (a *App) registerHodRoutes(rg *gin.RouterGroup, c *controllers) {
	hod := rg.Group("/")
	hod.Use(middleware.RoleMiddleware(model.RoleHOD))
	{
		hod.GET("/users", c.user.ListUsers)
		hod.GET("/users/:id", c.user.GetUser)

		hod.GET("/surveys", c.survey.ListSurveys)
		hod.GET("/surveys/:id", c.survey.GetSurvey)

		analytics := hod.Group("/analytics")
		{
			analytics.GET("/department-scores", c.analytics.GetDepartmentScores)
			analytics.GET("/department-scores/:id", c.analytics.GetSourceScores)
			analytics.GET("/overview", c.analytics.GetOverview)
			analytics.GET("/expectation-data/:id", c.analytics.GetExpectationData)
			analytics.GET("/summarize-expectations/rule", c.analytics.SummarizeByRule)
			analytics.GET("/summarize-expectations/ai", c.analytics.SummarizeByAI)
			analytics.GET("/analyze-trends", c.analytics.AnalyzeTrends)
			analytics.POST("/generate-action-plans", c.analytics.GenerateActionPlans)
		}

		hod.POST("/action-plans", c.actionPlan.CreateActionPlan)
		hod.PUT("/action-plans/bulk", c.actionPlan.BulkUpdateActionPlans)
		hod.PUT("/action-plans/:id", c.actionPlan.UpdateActionPlan)

		hod.POST("/sipoc", c.sipoc.CreateSipoc)
		hod.PUT("/sipoc/:id", c.sipoc.UpdateSipoc)
		hod.POST("/sipoc/:id/diagram", c.sipoc.UploadDiagram)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.PUT("/users/:id", c.user.UpdateUser)
		admin.DELETE("/users/:id", c.user.DeleteUser)

		admin.POST("/departments", c.department.CreateDepartment)
		admin.PUT("/departments/:id", c.department.UpdateDepartment)
		admin.DELETE("/departments/:id", c.department.DeleteDepartment)
		admin.GET("/departments/:id/reviewers", c.department.GetReviewers)
		admin.PUT("/departments/:id/reviewers", c.department.SetReviewers)

		admin.POST("/categories", c.category.CreateCategory)
		admin.PUT("/categories/:id", c.category.UpdateCategory)
		admin.DELETE("/categories/:id", c.category.DeleteCategory)

		admin.PUT("/surveys/:id", c.survey.UpdateSurvey)
		admin.DELETE("/surveys/:id", c.survey.DeleteSurvey)

		admin.DELETE("/action-plans/:id", c.actionPlan.DeleteActionPlan)
		admin.DELETE("/sipoc/:id", c.sipoc.DeleteSipoc)

		admin.GET("/activity", c.activity.ListActivity)
	}
}
