package controllers

import (
	"net/http"

	"github.com/BerniceZTT/gwsample_end/utils"

	"github.com/gin-gonic/gin"
)

// CreateSession 创建查询会话并签发令牌
func CreateSession(c *gin.Context) {
	session, err := registry.Create()
	if err != nil {
		respondError(c, err, "会话")
		return
	}

	token, err := utils.GenerateToken(tokenSecret, session.ID, tokenTTL)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"sessionId": session.ID,
		"sessions":  registry.Len(),
	}, "会话已创建")

	utils.SuccessResponse(c, gin.H{
		"sessionId":  session.ID,
		"token":      token,
		"groupField": session.Coordinator.GroupField(),
	}, "", http.StatusCreated)
}
