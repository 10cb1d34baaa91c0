package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/gwsample_end/controllers"
)

// RegisterSessionRoutes 注册会话路由
func RegisterSessionRoutes(router *gin.Engine) {
	router.POST("/api/sessions", controllers.CreateSession)
}
