package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BerniceZTT/gwsample_end/controllers"
)

// RegisterSalesOrderRoutes 注册订单和产品路由
func RegisterSalesOrderRoutes(api *gin.RouterGroup) {
	// 当前可见订单（分组视图）
	api.GET("/sales-orders", controllers.GetSalesOrders)

	// 订单详情
	api.GET("/sales-orders/:id", controllers.GetSalesOrder)

	// 产品详情
	api.GET("/products/:id", controllers.GetProduct)
}
