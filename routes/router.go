package routes

import (
	"github.com/BerniceZTT/gwsample_end/controllers"
	"github.com/BerniceZTT/gwsample_end/middleware"
	"github.com/BerniceZTT/gwsample_end/service"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, registry *service.SessionRegistry, secret []byte) {
	// 会话创建不需要认证
	RegisterSessionRoutes(router)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(registry, secret))

	RegisterSearchRoutes(api)
	RegisterSalesOrderRoutes(api)
	RegisterGroupingRoutes(api)
	RegisterValueHelpRoutes(api)
	RegisterDataRoutes(api)

	// 健康检查路由
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 后端状态检查路由
	router.GET("/api/db-status", controllers.GetBackendStatus)
}
