package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/gwsample_end/controllers"
)

// RegisterValueHelpRoutes 注册值帮助路由，kind 为 orders、customers 或 products
func RegisterValueHelpRoutes(api *gin.RouterGroup) {
	valueHelp := api.Group("/value-help")

	valueHelp.GET("/:kind", controllers.SearchValueHelp)
	valueHelp.POST("/:kind/select", controllers.SelectValueHelp)
}
