package odata

import (
	"context"
	"net/url"
	"sync"

	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/service"
)

// SalesOrderList 绑定到远程 SalesOrderSet 的列表，过滤和排序由服务端执行
type SalesOrderList struct {
	client *Client

	mu      sync.RWMutex
	filter  string
	orderBy string
}

// NewSalesOrderList 创建远程订单列表绑定
func NewSalesOrderList(client *Client) *SalesOrderList {
	orderBy, _ := RenderOrderBy(nil, "SalesOrderID")
	return &SalesOrderList{client: client, orderBy: orderBy}
}

// Filter 替换 $filter
func (l *SalesOrderList) Filter(filters []models.Predicate) error {
	expr, err := RenderFilter(filters)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.filter = expr
	l.mu.Unlock()
	return nil
}

// Sort 替换 $orderby
func (l *SalesOrderList) Sort(keys []models.SortKey) error {
	expr, err := RenderOrderBy(keys, "SalesOrderID")
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.orderBy = expr
	l.mu.Unlock()
	return nil
}

// Query 当前请求参数
func (l *SalesOrderList) Query() url.Values {
	l.mu.RLock()
	defer l.mu.RUnlock()

	query := url.Values{}
	if l.filter != "" {
		query.Set("$filter", l.filter)
	}
	if l.orderBy != "" {
		query.Set("$orderby", l.orderBy)
	}
	return query
}

// Contexts 读取当前可见订单
func (l *SalesOrderList) Contexts(ctx context.Context) ([]models.SalesOrder, error) {
	var resp collection[wireSalesOrder]
	if err := l.client.get(ctx, service.SalesOrderSetPath, l.Query(), &resp); err != nil {
		return nil, err
	}
	return toSalesOrders(resp.D.Results), nil
}
