package odata

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/service"
	"github.com/BerniceZTT/gwsample_end/utils"
)

// 远程实体集
const (
	salesOrderSet      = "SalesOrderSet"
	productSet         = "ProductSet"
	businessPartnerSet = "BusinessPartnerSet"
)

// NewListBinding 为会话创建独立的远程列表绑定
func (c *Client) NewListBinding() service.ListBinding {
	return NewSalesOrderList(c)
}

// Status 返回远程服务地址和订单数量
func (c *Client) Status(ctx context.Context) (map[string]interface{}, error) {
	body, err := c.getRaw(ctx, service.SalesOrderSetPath+"/$count")
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"connected":   true,
		"backend":     "odata",
		"serviceUrl":  c.baseURL,
		"salesOrders": count,
	}, nil
}

// ReadSalesOrders 读取完整订单集合
func (c *Client) ReadSalesOrders(ctx context.Context, opts service.ReadOptions) ([]models.SalesOrder, error) {
	query := url.Values{}
	if len(opts.Expand) > 0 {
		query.Set("$expand", strings.Join(opts.Expand, ","))
	}

	var resp collection[wireSalesOrder]
	if err := c.get(ctx, service.SalesOrderSetPath, query, &resp); err != nil {
		return nil, err
	}

	orders := toSalesOrders(resp.D.Results)
	utils.LogBackendOperation("GET", salesOrderSet, opts.Expand, len(orders))
	return orders, nil
}

// CallFunction 调用函数导入，参数以查询字符串传递
func (c *Client) CallFunction(ctx context.Context, path string, opts service.CallOptions) (*service.FunctionResult, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	query := url.Values{}
	for k, v := range opts.Params {
		query.Set(k, v)
	}
	query.Set("$format", "json")

	body, err := c.do(ctx, method, path, query, nil)
	if err != nil {
		return nil, err
	}
	text, err := functionResult(body)
	if err != nil {
		utils.Logger.Warn().Err(err).Str("function", path).Msg("函数返回值无法解析")
		return &service.FunctionResult{}, nil
	}
	return &service.FunctionResult{String: text}, nil
}

// ReadSalesOrder 读取订单详情，展开行项目产品和业务伙伴
func (c *Client) ReadSalesOrder(ctx context.Context, salesOrderID string) (*models.SalesOrder, error) {
	query := url.Values{}
	query.Set("$expand", "ToLineItems,ToLineItems/ToProduct,ToBusinessPartner")

	var resp entity[wireSalesOrder]
	if err := c.get(ctx, entityKey(salesOrderSet, salesOrderID), query, &resp); err != nil {
		return nil, notFound(err)
	}
	order := resp.D.toModel()
	return &order, nil
}

// ReadProduct 读取产品详情，展开供应商
func (c *Client) ReadProduct(ctx context.Context, productID string) (*models.Product, error) {
	query := url.Values{}
	query.Set("$expand", "ToSupplier")

	var resp entity[wireProduct]
	if err := c.get(ctx, entityKey(productSet, productID), query, &resp); err != nil {
		return nil, notFound(err)
	}
	product := resp.D.toModel()
	return &product, nil
}

// SearchSalesOrders 订单值帮助查询
func (c *Client) SearchSalesOrders(ctx context.Context, filters []models.Predicate) ([]models.SalesOrder, error) {
	query, err := searchQuery(filters, "SalesOrderID")
	if err != nil {
		return nil, err
	}
	var resp collection[wireSalesOrder]
	if err := c.get(ctx, "/"+salesOrderSet, query, &resp); err != nil {
		return nil, err
	}
	return toSalesOrders(resp.D.Results), nil
}

// SearchBusinessPartners 客户值帮助查询
func (c *Client) SearchBusinessPartners(ctx context.Context, filters []models.Predicate) ([]models.BusinessPartner, error) {
	query, err := searchQuery(filters, "CompanyName")
	if err != nil {
		return nil, err
	}
	var resp collection[models.BusinessPartner]
	if err := c.get(ctx, "/"+businessPartnerSet, query, &resp); err != nil {
		return nil, err
	}
	return resp.D.Results, nil
}

// SearchProducts 产品值帮助查询
func (c *Client) SearchProducts(ctx context.Context, filters []models.Predicate) ([]models.Product, error) {
	query, err := searchQuery(filters, "Name")
	if err != nil {
		return nil, err
	}
	var resp collection[wireProduct]
	if err := c.get(ctx, "/"+productSet, query, &resp); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(resp.D.Results))
	for _, p := range resp.D.Results {
		products = append(products, p.toModel())
	}
	return products, nil
}

func searchQuery(filters []models.Predicate, orderBy string) (url.Values, error) {
	query := url.Values{}
	expr, err := RenderFilter(filters)
	if err != nil {
		return nil, err
	}
	if expr != "" {
		query.Set("$filter", expr)
	}
	query.Set("$orderby", orderBy+" asc")
	return query, nil
}

// notFound 保证实体不存在时返回 service.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return service.ErrNotFound
	}
	return err
}
