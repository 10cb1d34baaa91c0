package controllers

import (
	"strconv"
	"strings"

	"github.com/BerniceZTT/gwsample_end/utils"

	"github.com/gin-gonic/gin"
)

// GetSalesOrders 当前可见订单，按会话分组字段切分
func GetSalesOrders(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	groups, err := session.Coordinator.GroupedOrders(c.Request.Context())
	if err != nil {
		respondError(c, err, "销售订单")
		return
	}

	total := 0
	for _, g := range groups {
		total += len(g.Orders)
	}
	c.Header("X-Total-Count", strconv.Itoa(total))

	utils.SuccessResponse(c, gin.H{
		"groupField": session.Coordinator.GroupField(),
		"groups":     groups,
		"total":      total,
	}, "")
}

// GetSalesOrder 订单详情
func GetSalesOrder(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		utils.HandleError(c, utils.CreateBadRequestError("缺少订单号"))
		return
	}

	order, err := registry.Source().ReadSalesOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "销售订单")
		return
	}
	utils.SuccessResponse(c, order, "")
}
