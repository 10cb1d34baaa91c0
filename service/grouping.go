package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BerniceZTT/gwsample_end/models"
)

// UngroupedTitle 未分组时的标题
const UngroupedTitle = "Ungrouped Items"

// groupFieldDef 分组字段的取值与描述字段
type groupFieldDef struct {
	title       string
	key         func(models.SalesOrder) string
	description func(models.SalesOrder) string
}

// groupFields 分组字段与描述字段的对应表，新增分组字段只需在此登记
var groupFields = map[models.GroupField]groupFieldDef{
	models.GroupFieldDeliveryStatus: {
		title:       "Delivery Status",
		key:         func(o models.SalesOrder) string { return o.DeliveryStatus },
		description: func(o models.SalesOrder) string { return o.DeliveryStatusDescription },
	},
	models.GroupFieldBillingStatus: {
		title:       "Billing Status",
		key:         func(o models.SalesOrder) string { return o.BillingStatus },
		description: func(o models.SalesOrder) string { return o.BillingStatusDescription },
	},
}

// groupFieldTitle 分组字段的显示名称
func groupFieldTitle(field models.GroupField) string {
	if def, ok := groupFields[field]; ok {
		return def.title
	}
	return string(field)
}

// groupKey 读取订单在分组字段上的原始值
func groupKey(field models.GroupField, order models.SalesOrder) (string, bool) {
	def, ok := groupFields[field]
	if !ok {
		return "", false
	}
	return def.key(order), true
}

// displayLabel 优先使用描述字段，缺失时回退到原始键
func displayLabel(field models.GroupField, order models.SalesOrder, key string) string {
	def, ok := groupFields[field]
	if !ok {
		return key
	}
	if desc := def.description(order); desc != "" {
		return desc
	}
	return key
}

// BuildGroupHeader 根据当前可见记录构造分组标题
func BuildGroupHeader(field models.GroupField, orders []models.SalesOrder, key string) models.GroupHeader {
	if field == models.GroupFieldNone {
		return models.GroupHeader{Key: key, Title: UngroupedTitle}
	}

	// 标签取第一条带描述的记录，均无描述时使用分组键
	label := key
	count := 0
	for _, order := range orders {
		value, ok := groupKey(field, order)
		if !ok || value != key {
			continue
		}
		count++
		if label == key {
			label = displayLabel(field, order, key)
		}
	}

	return models.GroupHeader{
		Key:      key,
		Title:    fmt.Sprintf("%s (%d orders)", label, count),
		Count:    count,
		HasCount: true,
	}
}

// ComputeGroupStatistics 单次扫描可见记录，按显示标签汇总数量和金额
func ComputeGroupStatistics(field models.GroupField, orders []models.SalesOrder) *models.GroupStatistics {
	if field == models.GroupFieldNone {
		return nil
	}

	totals := map[string]decimal.Decimal{}
	stats := &models.GroupStatistics{
		Groups:     map[string]models.GroupBucket{},
		GroupField: field,
	}

	for _, order := range orders {
		key, _ := groupKey(field, order)
		label := displayLabel(field, order, key)

		bucket, ok := stats.Groups[label]
		if !ok {
			bucket = models.GroupBucket{Key: key}
		}
		bucket.Count++
		stats.Groups[label] = bucket
		totals[label] = totals[label].Add(parseAmount(order.GrossAmount))
		stats.TotalItems++
	}

	for label, total := range totals {
		bucket := stats.Groups[label]
		bucket.TotalValue = total.InexactFloat64()
		stats.Groups[label] = bucket
	}

	return stats
}

// amountPrefix 金额开头的数字部分，如 "100 EUR" 中的 100
var amountPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseAmount 解析金额开头的数字，忽略其后的单位等字符，无数字时按0计
func parseAmount(s string) decimal.Decimal {
	num := amountPrefix.FindString(strings.TrimSpace(s))
	if num == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// GroupOrders 按分组键切分可见记录，保持列表顺序
func GroupOrders(field models.GroupField, orders []models.SalesOrder) []models.OrderGroup {
	if field == models.GroupFieldNone {
		return []models.OrderGroup{{
			Header: BuildGroupHeader(field, orders, ""),
			Orders: orders,
		}}
	}

	groups := []models.OrderGroup{}
	index := map[string]int{}
	for _, order := range orders {
		key, _ := groupKey(field, order)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.OrderGroup{
				Header: BuildGroupHeader(field, orders, key),
			})
		}
		groups[i].Orders = append(groups[i].Orders, order)
	}
	return groups
}

// FormatGroupStatistics 生成统计信息文本
func FormatGroupStatistics(stats *models.GroupStatistics) string {
	if stats == nil {
		return "No grouping applied or data available."
	}

	var b strings.Builder
	b.WriteString("Grouping Statistics:\n\n")
	fmt.Fprintf(&b, "Grouped by: %s\n", stats.GroupField)
	fmt.Fprintf(&b, "Total Items: %d\n\n", stats.TotalItems)

	labels := make([]string, 0, len(stats.Groups))
	for label := range stats.Groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		group := stats.Groups[label]
		fmt.Fprintf(&b, "%s: %d orders (Total Value: %s)\n",
			label, group.Count, decimal.NewFromFloat(group.TotalValue).StringFixed(2))
	}
	return b.String()
}
