package controllers

import (
	"net/http"

	"github.com/BerniceZTT/gwsample_end/utils"

	"github.com/gin-gonic/gin"
)

// GetNotifications 取走会话中待显示的通知
func GetNotifications(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, session.Notifications.Drain(), "")
}

// GetStatus 会话状态：忙碌标志、分组字段、查询条件和可见记录数
func GetStatus(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	status := session.Coordinator.Status()
	response := gin.H{
		"sessionId":  session.ID,
		"busy":       status.Busy,
		"groupField": status.GroupField,
		"criteria":   status.Criteria,
		"filters":    status.Filters,
	}

	count, err := session.Coordinator.RecordCount(c.Request.Context())
	if err != nil {
		utils.LogError(err, map[string]interface{}{"sessionId": session.ID}, "获取记录数失败")
		response["recordCount"] = nil
	} else {
		response["recordCount"] = count
	}
	utils.SuccessResponse(c, response, "")
}

// GetBackendStatus 后端连接状态
func GetBackendStatus(c *gin.Context) {
	status, err := registry.Source().Status(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, "获取后端状态失败: "+err.Error(), http.StatusInternalServerError)
		return
	}
	status["sessions"] = registry.Len()
	c.JSON(http.StatusOK, status)
}
