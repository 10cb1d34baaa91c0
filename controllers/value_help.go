package controllers

import (
	"context"
	"strings"

	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/service"
	"github.com/BerniceZTT/gwsample_end/utils"

	"github.com/gin-gonic/gin"
)

// 值帮助类型
const (
	valueHelpOrders    = "orders"
	valueHelpCustomers = "customers"
	valueHelpProducts  = "products"
)

// SearchValueHelp 值帮助查询，q 为空时返回全部
func SearchValueHelp(c *gin.Context) {
	if _, ok := currentSession(c); !ok {
		return
	}

	kind := c.Param("kind")
	query := strings.TrimSpace(c.Query("q"))
	help := service.NewValueHelp(registry.Source())

	var search func(context.Context, string) ([]models.ValueHelpItem, error)
	switch kind {
	case valueHelpOrders:
		search = help.SalesOrders
	case valueHelpCustomers:
		search = help.Customers
	case valueHelpProducts:
		search = help.Products
	default:
		utils.HandleError(c, utils.CreateNotFoundError("值帮助 "+kind))
		return
	}

	items, err := search(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "值帮助")
		return
	}

	utils.LogInfo(map[string]interface{}{
		"kind":  kind,
		"query": query,
		"count": len(items),
	}, "值帮助查询")
	utils.SuccessResponse(c, items, "")
}

// SelectValueHelp 接受值帮助选择并写入查询条件
func SelectValueHelp(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var item models.ValueHelpItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的选择: "+err.Error()))
		return
	}

	switch kind := c.Param("kind"); kind {
	case valueHelpOrders:
		session.Coordinator.SelectSalesOrder(item)
	case valueHelpCustomers:
		session.Coordinator.SelectCustomer(item)
	case valueHelpProducts:
		session.Coordinator.SelectProduct(item)
	default:
		utils.HandleError(c, utils.CreateNotFoundError("值帮助 "+kind))
		return
	}

	utils.SuccessResponse(c, session.Coordinator.Criteria(), "")
}
