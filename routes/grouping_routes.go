package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/gwsample_end/controllers"
)

// RegisterGroupingRoutes 注册分组路由
func RegisterGroupingRoutes(api *gin.RouterGroup) {
	grouping := api.Group("/grouping")

	grouping.PUT("", controllers.ApplyGrouping)
	grouping.DELETE("", controllers.ClearGrouping)
	grouping.POST("/toggle", controllers.ToggleGrouping)

	// 分组标题和统计
	grouping.GET("/header", controllers.GetGroupHeader)
	grouping.GET("/statistics", controllers.GetGroupStatistics)
}
