package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/gwsample_end/controllers"
)

// RegisterSearchRoutes 注册查询路由
func RegisterSearchRoutes(api *gin.RouterGroup) {
	search := api.Group("/search")

	// 查询条件
	search.GET("/criteria", controllers.GetSearchCriteria)
	search.PUT("/criteria", controllers.UpdateSearchCriteria)

	// 执行查询
	search.POST("", controllers.ExecuteSearch)

	// 清除查询
	search.DELETE("", controllers.ClearSearch)
}
