package controllers

import (
	"strings"

	"github.com/BerniceZTT/gwsample_end/utils"

	"github.com/gin-gonic/gin"
)

// GetProduct 产品详情，包含供应商
func GetProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		utils.HandleError(c, utils.CreateBadRequestError("缺少产品ID"))
		return
	}

	product, err := registry.Source().ReadProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "产品")
		return
	}
	utils.SuccessResponse(c, product, "")
}
