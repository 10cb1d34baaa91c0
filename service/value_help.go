package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerniceZTT/gwsample_end/models"
)

// productDescriptionSeparator 产品值帮助描述中ID与类别的分隔符
const productDescriptionSeparator = " - "

// ValueHelp 订单、客户、产品选择对话框的数据查询
type ValueHelp struct {
	source ValueHelpSource
}

// NewValueHelp 创建值帮助服务
func NewValueHelp(source ValueHelpSource) *ValueHelp {
	return &ValueHelp{source: source}
}

// SalesOrders 按订单号模糊查询
func (v *ValueHelp) SalesOrders(ctx context.Context, query string) ([]models.ValueHelpItem, error) {
	filters := []models.Predicate{}
	if query != "" {
		filters = append(filters, models.NewFilter(FieldSalesOrderID, models.FilterOperatorContains, query))
	}

	orders, err := v.source.SearchSalesOrders(ctx, filters)
	if err != nil {
		return nil, err
	}

	items := make([]models.ValueHelpItem, 0, len(orders))
	for _, o := range orders {
		items = append(items, models.ValueHelpItem{Title: o.SalesOrderID, Description: o.CustomerName})
	}
	return items, nil
}

// Customers 按公司名称模糊查询
func (v *ValueHelp) Customers(ctx context.Context, query string) ([]models.ValueHelpItem, error) {
	filters := []models.Predicate{}
	if query != "" {
		filters = append(filters, models.NewFilter(FieldCompanyName, models.FilterOperatorContains, query))
	}

	partners, err := v.source.SearchBusinessPartners(ctx, filters)
	if err != nil {
		return nil, err
	}

	items := make([]models.ValueHelpItem, 0, len(partners))
	for _, p := range partners {
		items = append(items, models.ValueHelpItem{Title: p.CompanyName, Description: p.BusinessPartnerID})
	}
	return items, nil
}

// Products 按产品名称或产品ID模糊查询
func (v *ValueHelp) Products(ctx context.Context, query string) ([]models.ValueHelpItem, error) {
	filters := []models.Predicate{}
	if query != "" {
		filters = append(filters, models.NewOrFilter(
			models.NewFilter(FieldProductName, models.FilterOperatorContains, query),
			models.NewFilter(FieldProductID, models.FilterOperatorContains, query),
		))
	}

	products, err := v.source.SearchProducts(ctx, filters)
	if err != nil {
		return nil, err
	}

	items := make([]models.ValueHelpItem, 0, len(products))
	for _, p := range products {
		items = append(items, models.ValueHelpItem{
			Title:       p.Name,
			Description: fmt.Sprintf("%s%s%s", p.ProductID, productDescriptionSeparator, p.Category),
		})
	}
	return items, nil
}

// SelectSalesOrder 接受订单选择
func (c *Coordinator) SelectSalesOrder(item models.ValueHelpItem) {
	c.updateCriteria(func(sc *models.SearchCriteria) {
		sc.SalesOrderID = item.Title
	})
	c.toast("Selected Order: " + item.Title)
}

// SelectCustomer 接受客户选择，同时写入名称和ID
func (c *Coordinator) SelectCustomer(item models.ValueHelpItem) {
	c.updateCriteria(func(sc *models.SearchCriteria) {
		sc.CustomerName = item.Title
		sc.CustomerID = item.Description
	})
	c.toast("Selected Customer: " + item.Title)
}

// SelectProduct 接受产品选择，产品ID取描述中分隔符之前的部分
func (c *Coordinator) SelectProduct(item models.ValueHelpItem) {
	productID := ""
	if item.Description != "" {
		productID, _, _ = strings.Cut(item.Description, productDescriptionSeparator)
	}
	c.updateCriteria(func(sc *models.SearchCriteria) {
		sc.ProductName = item.Title
		sc.ProductID = productID
	})
	c.toast("Selected Product: " + item.Title)
}
