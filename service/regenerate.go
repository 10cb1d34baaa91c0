package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/BerniceZTT/gwsample_end/utils"
)

// DefaultRegenerateCount 默认重新生成的销售订单数量
const DefaultRegenerateCount = 50

// RegenerateData 调用后端重新生成演示数据，成功后清除查询并刷新列表
func (c *Coordinator) RegenerateData(ctx context.Context, noOfSalesOrders int) (string, error) {
	if c.backend == nil {
		c.alert("Data regeneration failed")
		return "", ErrBindingUnavailable
	}
	if noOfSalesOrders <= 0 {
		noOfSalesOrders = DefaultRegenerateCount
	}

	// 进行中的产品过滤会被取消，其结果视为过期
	c.mu.Lock()
	gen := c.supersedeLocked()
	c.busy = true
	c.mu.Unlock()

	result, err := c.backend.CallFunction(ctx, RegenerateAllDataPath, CallOptions{
		Method: http.MethodPost,
		Params: map[string]string{"NoOfSalesOrders": strconv.Itoa(noOfSalesOrders)},
	})

	c.mu.Lock()
	if gen == c.generation {
		c.busy = false
	}
	c.mu.Unlock()

	if err != nil {
		msg := RemoteErrorMessage(err, "Data regeneration failed")
		utils.Logger.Error().Err(err).Str("message", msg).Msg("重新生成数据失败")
		c.alert(msg)
		return "", err
	}

	message := "Data regeneration completed successfully!"
	if result != nil && result.String != "" {
		message = result.String
	}
	c.toast(message)

	utils.Logger.Info().Int("salesOrders", noOfSalesOrders).Msg("演示数据已重新生成")

	if _, err := c.ClearSearch(ctx); err != nil {
		utils.Logger.Warn().Err(err).Msg("重新生成后刷新列表失败")
	}
	return message, nil
}
