package service

import (
	"strings"

	"github.com/BerniceZTT/gwsample_end/models"
)

// 字段名
const (
	FieldSalesOrderID = "SalesOrderID"
	FieldCustomerID   = "CustomerID"
	FieldCustomerName = "CustomerName"
	FieldProductID    = "ProductID"
	FieldProductName  = "Name"
	FieldCompanyName  = "CompanyName"
)

// NoMatchSentinel 不可能命中的订单号，用于构造空结果过滤
const NoMatchSentinel = "NO_MATCH_FOUND"

// BuildStandardFilters 构造服务端可表达的过滤条件。
// 客户ID优先于客户名称，两者互斥。
func BuildStandardFilters(criteria models.SearchCriteria) []models.Predicate {
	c := criteria.Trimmed()
	filters := []models.Predicate{}

	if c.SalesOrderID != "" {
		filters = append(filters, models.NewFilter(FieldSalesOrderID, models.FilterOperatorEQ, c.SalesOrderID))
	}

	if c.CustomerID != "" {
		filters = append(filters, models.NewFilter(FieldCustomerID, models.FilterOperatorEQ, c.CustomerID))
	} else if c.CustomerName != "" {
		filters = append(filters, models.NewFilter(FieldCustomerName, models.FilterOperatorContains, c.CustomerName))
	}

	return filters
}

// CountActiveFilters 统计生效的查询条件数量，产品名称不单独计数
func CountActiveFilters(criteria models.SearchCriteria) int {
	c := criteria.Trimmed()
	count := 0
	if c.SalesOrderID != "" {
		count++
	}
	if c.CustomerID != "" || c.CustomerName != "" {
		count++
	}
	if c.ProductID != "" {
		count++
	}
	return count
}

// MatchOrder 判断单条订单是否满足全部生效条件
func MatchOrder(order models.SalesOrder, criteria models.SearchCriteria) bool {
	c := criteria.Trimmed()

	if c.SalesOrderID != "" && order.SalesOrderID != c.SalesOrderID {
		return false
	}

	if c.CustomerID != "" {
		if order.CustomerID != c.CustomerID {
			return false
		}
	} else if c.CustomerName != "" {
		if !strings.Contains(strings.ToLower(order.CustomerName), strings.ToLower(c.CustomerName)) {
			return false
		}
	}

	if c.ProductID != "" && !order.HasProduct(c.ProductID) {
		return false
	}

	return true
}

// FilterOrdersByProduct 在完整集合上执行客户端匹配，保持原有顺序
func FilterOrdersByProduct(orders []models.SalesOrder, criteria models.SearchCriteria) []models.SalesOrder {
	matched := make([]models.SalesOrder, 0, len(orders))
	for _, order := range orders {
		if MatchOrder(order, criteria) {
			matched = append(matched, order)
		}
	}
	return matched
}

// BuildProxyFilter 把客户端匹配结果转换为服务端可执行的订单号过滤
func BuildProxyFilter(matched []models.SalesOrder) []models.Predicate {
	if len(matched) == 0 {
		return []models.Predicate{
			models.NewFilter(FieldSalesOrderID, models.FilterOperatorEQ, NoMatchSentinel),
		}
	}

	idFilters := make([]models.Predicate, 0, len(matched))
	for _, order := range matched {
		idFilters = append(idFilters, models.NewFilter(FieldSalesOrderID, models.FilterOperatorEQ, order.SalesOrderID))
	}
	return []models.Predicate{models.NewOrFilter(idFilters...)}
}
