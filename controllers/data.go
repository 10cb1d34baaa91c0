package controllers

import (
	"errors"
	"io"

	"github.com/BerniceZTT/gwsample_end/service"
	"github.com/BerniceZTT/gwsample_end/utils"

	"github.com/gin-gonic/gin"
)

// regenerateRequest 重新生成请求，数量可省略
type regenerateRequest struct {
	NoOfSalesOrders int `json:"noOfSalesOrders"`
}

// RegenerateData 重新生成演示数据
func RegenerateData(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	req := regenerateRequest{NoOfSalesOrders: regenerateCount}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			utils.HandleError(c, utils.CreateBadRequestError("无效的请求: "+err.Error()))
			return
		}
	}
	if req.NoOfSalesOrders <= 0 {
		req.NoOfSalesOrders = regenerateCount
	}

	message, err := session.Coordinator.RegenerateData(c.Request.Context(), req.NoOfSalesOrders)
	if err != nil {
		var remoteErr *service.RemoteError
		if errors.As(err, &remoteErr) {
			utils.HandleError(c, utils.CreateBackendError(service.RemoteErrorMessage(err, "Data regeneration failed")))
			return
		}
		respondError(c, err, "数据")
		return
	}
	utils.SuccessResponse(c, gin.H{"noOfSalesOrders": req.NoOfSalesOrders}, message)
}
