package controllers

import (
	"errors"
	"io"

	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/utils"

	"github.com/gin-gonic/gin"
)

// GetSearchCriteria 获取当前查询条件
func GetSearchCriteria(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, session.Coordinator.Criteria(), "")
}

// UpdateSearchCriteria 替换查询条件，不执行查询
func UpdateSearchCriteria(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var criteria models.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的查询条件: "+err.Error()))
		return
	}

	session.Coordinator.SetCriteria(criteria)
	utils.SuccessResponse(c, criteria, "")
}

// ExecuteSearch 执行查询，请求体为空时使用会话中保存的条件
func ExecuteSearch(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	criteria := session.Coordinator.Criteria()
	if c.Request.ContentLength != 0 {
		var body models.SearchCriteria
		err := c.ShouldBindJSON(&body)
		switch {
		case err == nil:
			criteria = body
		case !errors.Is(err, io.EOF):
			utils.HandleError(c, utils.CreateBadRequestError("无效的查询条件: "+err.Error()))
			return
		}
	}

	result, err := session.Coordinator.ExecuteSearch(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err, "销售订单")
		return
	}
	utils.SuccessResponse(c, result, "")
}

// ClearSearch 清除查询条件和过滤
func ClearSearch(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	count, err := session.Coordinator.ClearSearch(c.Request.Context())
	if err != nil {
		respondError(c, err, "销售订单")
		return
	}
	utils.SuccessResponse(c, gin.H{"recordCount": count}, "All filters cleared")
}
