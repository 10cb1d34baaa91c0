package controllers

import (
	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/utils"

	"github.com/gin-gonic/gin"
)

// groupingRequest 分组请求
type groupingRequest struct {
	Field   string `json:"field" binding:"required"`
	Pressed bool   `json:"pressed"`
}

// bindGroupField 解析请求中的分组字段
func bindGroupField(c *gin.Context) (models.GroupField, bool, bool) {
	var req groupingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的分组请求: "+err.Error()))
		return models.GroupFieldNone, false, false
	}
	field, ok := models.ParseGroupField(req.Field)
	if !ok {
		utils.HandleError(c, utils.CreateBadRequestError("不支持的分组字段: "+req.Field))
		return models.GroupFieldNone, false, false
	}
	return field, req.Pressed, true
}

// ApplyGrouping 按指定字段分组
func ApplyGrouping(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	field, _, ok := bindGroupField(c)
	if !ok {
		return
	}

	if err := session.Coordinator.ApplyGrouping(field); err != nil {
		respondError(c, err, "分组")
		return
	}
	utils.SuccessResponse(c, gin.H{"groupField": field}, "")
}

// ToggleGrouping 分组按钮切换
func ToggleGrouping(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	field, pressed, ok := bindGroupField(c)
	if !ok {
		return
	}

	if err := session.Coordinator.ToggleGrouping(field, pressed); err != nil {
		respondError(c, err, "分组")
		return
	}
	utils.SuccessResponse(c, gin.H{"groupField": session.Coordinator.GroupField()}, "")
}

// ClearGrouping 取消分组
func ClearGrouping(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	if err := session.Coordinator.ResetGrouping(); err != nil {
		respondError(c, err, "分组")
		return
	}
	utils.SuccessResponse(c, gin.H{"groupField": models.GroupFieldNone}, "Grouping cleared")
}

// GetGroupHeader 构造分组标题
func GetGroupHeader(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	header, err := session.Coordinator.BuildGroupHeader(c.Request.Context(), c.Query("key"))
	if err != nil {
		respondError(c, err, "分组")
		return
	}
	utils.SuccessResponse(c, header, "")
}

// GetGroupStatistics 分组统计，未分组时 statistics 为 null
func GetGroupStatistics(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	stats, text, err := session.Coordinator.ShowGroupingStatistics(c.Request.Context())
	if err != nil {
		respondError(c, err, "分组")
		return
	}
	utils.SuccessResponse(c, gin.H{"statistics": stats, "text": text}, "")
}
