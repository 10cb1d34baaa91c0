package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/gwsample_end/controllers"
)

// RegisterDataRoutes 注册数据维护和会话状态路由
func RegisterDataRoutes(api *gin.RouterGroup) {
	// 重新生成演示数据
	api.POST("/data/regenerate", controllers.RegenerateData)

	// 通知轮询
	api.GET("/notifications", controllers.GetNotifications)

	// 会话状态
	api.GET("/status", controllers.GetStatus)
}
