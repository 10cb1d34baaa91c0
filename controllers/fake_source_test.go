package controllers_test

import (
	"context"
	"sync"

	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/service"
)

// memorySource 内存数据后端，只支持订单号、客户ID的等值过滤和 OR 组合
type memorySource struct {
	orders    []models.SalesOrder
	partners  []models.BusinessPartner
	products  []models.Product
	noBinding bool
	callErr   error
}

func (s *memorySource) NewListBinding() service.ListBinding {
	if s.noBinding {
		return nil
	}
	return &memoryList{orders: s.orders}
}

func (s *memorySource) Status(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"connected": true, "salesOrders": len(s.orders)}, nil
}

func (s *memorySource) ReadSalesOrders(ctx context.Context, opts service.ReadOptions) ([]models.SalesOrder, error) {
	return s.orders, nil
}

func (s *memorySource) CallFunction(ctx context.Context, path string, opts service.CallOptions) (*service.FunctionResult, error) {
	if s.callErr != nil {
		return nil, s.callErr
	}
	return &service.FunctionResult{String: opts.Params["NoOfSalesOrders"] + " sales orders have been generated"}, nil
}

func (s *memorySource) ReadSalesOrder(ctx context.Context, id string) (*models.SalesOrder, error) {
	for _, o := range s.orders {
		if o.SalesOrderID == id {
			o := o
			return &o, nil
		}
	}
	return nil, service.ErrNotFound
}

func (s *memorySource) ReadProduct(ctx context.Context, id string) (*models.Product, error) {
	for _, p := range s.products {
		if p.ProductID == id {
			p := p
			return &p, nil
		}
	}
	return nil, service.ErrNotFound
}

func (s *memorySource) SearchSalesOrders(ctx context.Context, filters []models.Predicate) ([]models.SalesOrder, error) {
	return s.orders, nil
}

func (s *memorySource) SearchBusinessPartners(ctx context.Context, filters []models.Predicate) ([]models.BusinessPartner, error) {
	return s.partners, nil
}

func (s *memorySource) SearchProducts(ctx context.Context, filters []models.Predicate) ([]models.Product, error) {
	return s.products, nil
}

type memoryList struct {
	mu      sync.Mutex
	orders  []models.SalesOrder
	filters []models.Predicate
}

func (l *memoryList) Filter(filters []models.Predicate) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filters = filters
	return nil
}

func (l *memoryList) Sort(keys []models.SortKey) error {
	return nil
}

func (l *memoryList) Contexts(ctx context.Context) ([]models.SalesOrder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	visible := []models.SalesOrder{}
	for _, o := range l.orders {
		if matchAll(o, l.filters) {
			visible = append(visible, o)
		}
	}
	return visible, nil
}

func matchAll(o models.SalesOrder, filters []models.Predicate) bool {
	for _, p := range filters {
		if !match(o, p) {
			return false
		}
	}
	return true
}

func match(o models.SalesOrder, p models.Predicate) bool {
	if p.IsGroup() {
		for _, sub := range p.Filters {
			if match(o, sub) {
				return true
			}
		}
		return false
	}
	switch p.Field {
	case service.FieldSalesOrderID:
		return o.SalesOrderID == p.Value
	case service.FieldCustomerID:
		return o.CustomerID == p.Value
	}
	return true
}
