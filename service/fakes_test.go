package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/BerniceZTT/gwsample_end/models"
)

// evaluatePredicates 按列表绑定语义在内存中求值：顶层 AND，组内按 And 标志组合
func evaluatePredicates(order models.SalesOrder, filters []models.Predicate) bool {
	for _, p := range filters {
		if !evaluatePredicate(order, p) {
			return false
		}
	}
	return true
}

func evaluatePredicate(order models.SalesOrder, p models.Predicate) bool {
	if p.IsGroup() {
		for _, sub := range p.Filters {
			ok := evaluatePredicate(order, sub)
			if p.And && !ok {
				return false
			}
			if !p.And && ok {
				return true
			}
		}
		return p.And
	}

	value := orderFieldValue(order, p.Field)
	switch p.Operator {
	case models.FilterOperatorEQ:
		return value == p.Value
	case models.FilterOperatorContains:
		return strings.Contains(value, p.Value)
	}
	return false
}

func orderFieldValue(order models.SalesOrder, field string) string {
	switch field {
	case FieldSalesOrderID:
		return order.SalesOrderID
	case FieldCustomerID:
		return order.CustomerID
	case FieldCustomerName:
		return order.CustomerName
	case string(models.GroupFieldDeliveryStatus):
		return order.DeliveryStatus
	case string(models.GroupFieldBillingStatus):
		return order.BillingStatus
	}
	return ""
}

// fakeList 内存列表绑定
type fakeList struct {
	mu        sync.Mutex
	orders    []models.SalesOrder
	filters   []models.Predicate
	sortKeys  []models.SortKey
	filterErr error

	filterCalls int
	sortCalls   int
}

func newFakeList(orders ...models.SalesOrder) *fakeList {
	return &fakeList{orders: orders}
}

func (l *fakeList) Filter(filters []models.Predicate) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filterCalls++
	if l.filterErr != nil {
		return l.filterErr
	}
	l.filters = filters
	return nil
}

func (l *fakeList) Sort(keys []models.SortKey) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sortCalls++
	l.sortKeys = keys
	return nil
}

func (l *fakeList) Contexts(ctx context.Context) ([]models.SalesOrder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	visible := []models.SalesOrder{}
	for _, o := range l.orders {
		if evaluatePredicates(o, l.filters) {
			o.LineItems = nil
			visible = append(visible, o)
		}
	}
	keys := l.sortKeys
	sort.SliceStable(visible, func(i, j int) bool {
		for _, k := range keys {
			a, b := orderFieldValue(visible[i], k.Field), orderFieldValue(visible[j], k.Field)
			if a != b {
				return a < b
			}
		}
		return false
	})
	return visible, nil
}

func (l *fakeList) currentFilters() []models.Predicate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filters
}

func (l *fakeList) currentSort() []models.SortKey {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sortKeys
}

// fakeBackend 可控的订单后端
type fakeBackend struct {
	mu     sync.Mutex
	orders []models.SalesOrder
	err    error

	// started 非空时，读取开始后发送信号；release 非空时，读取阻塞到收到信号或 ctx 取消
	started chan struct{}
	release chan struct{}

	reads    int
	expands  [][]string
	callPath string
	callOpts CallOptions
	callRes  *FunctionResult
	callErr  error
}

func (b *fakeBackend) ReadSalesOrders(ctx context.Context, opts ReadOptions) ([]models.SalesOrder, error) {
	b.mu.Lock()
	b.reads++
	b.expands = append(b.expands, opts.Expand)
	started, release := b.started, b.release
	orders, err := b.orders, b.err
	b.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (b *fakeBackend) CallFunction(ctx context.Context, path string, opts CallOptions) (*FunctionResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callPath = path
	b.callOpts = opts
	if b.callErr != nil {
		return nil, b.callErr
	}
	return b.callRes, nil
}

func (b *fakeBackend) readCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reads
}

// fakeSource 完整数据后端，每个会话一个新的内存列表
type fakeSource struct {
	*fakeBackend
	orders   []models.SalesOrder
	partners []models.BusinessPartner
	products []models.Product

	lists      []*fakeList
	lastFilter []models.Predicate
}

func (s *fakeSource) NewListBinding() ListBinding {
	list := newFakeList(s.orders...)
	s.lists = append(s.lists, list)
	return list
}

func (s *fakeSource) Status(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"connected": true}, nil
}

func (s *fakeSource) ReadSalesOrder(ctx context.Context, id string) (*models.SalesOrder, error) {
	for _, o := range s.orders {
		if o.SalesOrderID == id {
			o := o
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeSource) ReadProduct(ctx context.Context, id string) (*models.Product, error) {
	for _, p := range s.products {
		if p.ProductID == id {
			p := p
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeSource) SearchSalesOrders(ctx context.Context, filters []models.Predicate) ([]models.SalesOrder, error) {
	s.lastFilter = filters
	if s.fakeBackend != nil && s.fakeBackend.err != nil {
		return nil, s.fakeBackend.err
	}
	result := []models.SalesOrder{}
	for _, o := range s.orders {
		if evaluatePredicates(o, filters) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (s *fakeSource) SearchBusinessPartners(ctx context.Context, filters []models.Predicate) ([]models.BusinessPartner, error) {
	s.lastFilter = filters
	return s.partners, nil
}

func (s *fakeSource) SearchProducts(ctx context.Context, filters []models.Predicate) ([]models.Product, error) {
	s.lastFilter = filters
	return s.products, nil
}

var errBackendDown = errors.New("backend down")

// recorder 记录通知
type recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recorder) messages(level NotificationLevel) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.items {
		if n.Level == level {
			out = append(out, n.Message)
		}
	}
	return out
}

// sampleOrders 测试用订单
func sampleOrders() []models.SalesOrder {
	return []models.SalesOrder{
		{
			SalesOrderID: "0500000001", CustomerID: "C1", CustomerName: "SAP", GrossAmount: "100.00",
			DeliveryStatus: "D", DeliveryStatusDescription: "Delivered", BillingStatus: "P", BillingStatusDescription: "Paid",
			LineItems: []models.LineItem{{ProductID: "HT-1000"}, {ProductID: "HT-1001"}},
		},
		{
			SalesOrderID: "0500000002", CustomerID: "C2", CustomerName: "Becker Berlin", GrossAmount: "250.50",
			DeliveryStatus: "I", DeliveryStatusDescription: "Initial", BillingStatus: "I", BillingStatusDescription: "Initial",
			LineItems: []models.LineItem{{ProductID: "HT-1030"}},
		},
		{
			SalesOrderID: "0500000003", CustomerID: "C1", CustomerName: "SAP", GrossAmount: "abc",
			DeliveryStatus: "D", DeliveryStatusDescription: "Delivered", BillingStatus: "I", BillingStatusDescription: "Initial",
			LineItems: []models.LineItem{{ProductID: "HT-1030"}, {ProductID: "HT-1000"}},
		},
	}
}

// orderIDs 提取订单号
func orderIDs(orders []models.SalesOrder) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.SalesOrderID)
	}
	return ids
}
