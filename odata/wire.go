package odata

import (
	"encoding/json"

	"github.com/BerniceZTT/gwsample_end/models"
)

// collection OData v2 集合响应 {"d":{"results":[...]}}
type collection[T any] struct {
	D struct {
		Results []T `json:"results"`
	} `json:"d"`
}

// entity OData v2 单实体响应 {"d":{...}}
type entity[T any] struct {
	D T `json:"d"`
}

// navigation 展开的一对多导航属性，未展开时只有 __deferred
type navigation[T any] struct {
	Results []T `json:"results"`
}

type wireSalesOrder struct {
	models.SalesOrder
	ToLineItems       *navigation[wireLineItem] `json:"ToLineItems"`
	ToBusinessPartner *models.BusinessPartner   `json:"ToBusinessPartner"`
}

type wireLineItem struct {
	models.LineItem
	ToProduct *wireProduct `json:"ToProduct"`
}

type wireProduct struct {
	models.Product
	ToSupplier *models.BusinessPartner `json:"ToSupplier"`
}

// partnerOrNil 未展开的导航属性解码为空结构，视为不存在
func partnerOrNil(p *models.BusinessPartner) *models.BusinessPartner {
	if p == nil || p.BusinessPartnerID == "" {
		return nil
	}
	return p
}

func (w wireProduct) toModel() models.Product {
	product := w.Product
	product.Supplier = partnerOrNil(w.ToSupplier)
	return product
}

func (w wireSalesOrder) toModel() models.SalesOrder {
	order := w.SalesOrder
	order.LineItems = nil
	if w.ToLineItems != nil {
		for _, item := range w.ToLineItems.Results {
			line := item.LineItem
			if item.ToProduct != nil && item.ToProduct.ProductID != "" {
				product := item.ToProduct.toModel()
				line.Product = &product
			}
			order.LineItems = append(order.LineItems, line)
		}
	}
	order.BusinessPartner = partnerOrNil(w.ToBusinessPartner)
	return order
}

func toSalesOrders(items []wireSalesOrder) []models.SalesOrder {
	orders := make([]models.SalesOrder, 0, len(items))
	for _, item := range items {
		orders = append(orders, item.toModel())
	}
	return orders
}

// functionResult 解析函数导入返回值，兼容 {"d":{"String":..}} 与 {"d":{"<Name>":{"String":..}}}
func functionResult(body []byte) (string, error) {
	var env entity[map[string]json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return "", err
	}

	if raw, ok := env.D["String"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, nil
		}
	}
	for key, raw := range env.D {
		if key == "__metadata" {
			continue
		}
		var nested struct {
			String string `json:"String"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && nested.String != "" {
			return nested.String, nil
		}
	}
	return "", nil
}
