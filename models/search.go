package models

import "strings"

// SearchCriteria 销售订单查询条件，所有字段可选
type SearchCriteria struct {
	SalesOrderID string `json:"salesOrderId"`
	CustomerName string `json:"customerName"`
	CustomerID   string `json:"customerId"`
	ProductName  string `json:"productName"`
	ProductID    string `json:"productId"`
}

// Trimmed 返回去除首尾空白后的查询条件
func (c SearchCriteria) Trimmed() SearchCriteria {
	return SearchCriteria{
		SalesOrderID: strings.TrimSpace(c.SalesOrderID),
		CustomerName: strings.TrimSpace(c.CustomerName),
		CustomerID:   strings.TrimSpace(c.CustomerID),
		ProductName:  strings.TrimSpace(c.ProductName),
		ProductID:    strings.TrimSpace(c.ProductID),
	}
}

// NeedsProductFilter 产品条件无法在服务端表达，需要走客户端过滤
func (c SearchCriteria) NeedsProductFilter() bool {
	t := c.Trimmed()
	return t.ProductID != "" || t.ProductName != ""
}

// IsEmpty 判断所有条件是否均为空
func (c SearchCriteria) IsEmpty() bool {
	return c.Trimmed() == SearchCriteria{}
}

// FilterOperator 过滤操作符
type FilterOperator string

const (
	FilterOperatorEQ       FilterOperator = "EQ"
	FilterOperatorContains FilterOperator = "Contains"
)

// Predicate 过滤条件。Filters 非空时表示嵌套组合，And 为 false 时按 OR 组合
type Predicate struct {
	Field    string         `json:"field,omitempty"`
	Operator FilterOperator `json:"operator,omitempty"`
	Value    string         `json:"value,omitempty"`
	Filters  []Predicate    `json:"filters,omitempty"`
	And      bool           `json:"and,omitempty"`
}

// NewFilter 创建单字段过滤条件
func NewFilter(field string, op FilterOperator, value string) Predicate {
	return Predicate{Field: field, Operator: op, Value: value}
}

// NewOrFilter 创建 OR 组合过滤条件
func NewOrFilter(filters ...Predicate) Predicate {
	return Predicate{Filters: filters, And: false}
}

// IsGroup 是否为嵌套组合条件
func (p Predicate) IsGroup() bool {
	return len(p.Filters) > 0
}

// SortKey 排序/分组键
type SortKey struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending,omitempty"`
	Group      bool   `json:"group,omitempty"`
}

// GroupField 分组字段
type GroupField string

const (
	GroupFieldNone           GroupField = ""
	GroupFieldDeliveryStatus GroupField = "DeliveryStatus"
	GroupFieldBillingStatus  GroupField = "BillingStatus"
)

// ParseGroupField 解析分组字段名称
func ParseGroupField(s string) (GroupField, bool) {
	switch GroupField(s) {
	case GroupFieldDeliveryStatus, GroupFieldBillingStatus:
		return GroupField(s), true
	}
	return GroupFieldNone, false
}

// GroupHeader 分组标题
type GroupHeader struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Count    int    `json:"count"`
	HasCount bool   `json:"hasCount"`
}

// GroupBucket 分组统计项
type GroupBucket struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
	Key        string  `json:"key"`
}

// GroupStatistics 分组统计结果
type GroupStatistics struct {
	Groups     map[string]GroupBucket `json:"groups"`
	TotalItems int                    `json:"totalItems"`
	GroupField GroupField             `json:"groupField"`
}

// OrderGroup 分组视图中的一组订单
type OrderGroup struct {
	Header GroupHeader  `json:"header"`
	Orders []SalesOrder `json:"orders"`
}

// ValueHelpItem 值帮助列表项
type ValueHelpItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
