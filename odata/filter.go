package odata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BerniceZTT/gwsample_end/models"
)

var propertyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_/]*$`)

// RenderFilter 生成 $filter 表达式，顶层条件按 and 组合
func RenderFilter(filters []models.Predicate) (string, error) {
	parts := make([]string, 0, len(filters))
	for _, p := range filters {
		expr, err := renderPredicate(p)
		if err != nil {
			return "", err
		}
		parts = append(parts, expr)
	}
	return strings.Join(parts, " and "), nil
}

func renderPredicate(p models.Predicate) (string, error) {
	if p.IsGroup() {
		parts := make([]string, 0, len(p.Filters))
		for _, sub := range p.Filters {
			expr, err := renderPredicate(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, expr)
		}
		sep := " or "
		if p.And {
			sep = " and "
		}
		return "(" + strings.Join(parts, sep) + ")", nil
	}

	if !propertyPattern.MatchString(p.Field) {
		return "", fmt.Errorf("无效的属性名: %q", p.Field)
	}

	switch p.Operator {
	case models.FilterOperatorEQ:
		return fmt.Sprintf("%s eq %s", p.Field, quote(p.Value)), nil
	case models.FilterOperatorContains:
		return fmt.Sprintf("substringof(%s,%s)", quote(p.Value), p.Field), nil
	}
	return "", fmt.Errorf("不支持的过滤操作符: %s", p.Operator)
}

// RenderOrderBy 生成 $orderby 表达式，末尾按订单号保证顺序稳定
func RenderOrderBy(keys []models.SortKey, tieBreaker string) (string, error) {
	parts := make([]string, 0, len(keys)+1)
	seen := false
	for _, key := range keys {
		if !propertyPattern.MatchString(key.Field) {
			return "", fmt.Errorf("无效的排序属性: %q", key.Field)
		}
		direction := "asc"
		if key.Descending {
			direction = "desc"
		}
		parts = append(parts, key.Field+" "+direction)
		if key.Field == tieBreaker {
			seen = true
		}
	}
	if tieBreaker != "" && !seen {
		parts = append(parts, tieBreaker+" asc")
	}
	return strings.Join(parts, ","), nil
}

// quote 生成字符串字面量，单引号按 OData 规则转义为两个单引号
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// entityKey 生成实体键路径，如 /SalesOrderSet('0500000000')
func entityKey(set, id string) string {
	return fmt.Sprintf("/%s(%s)", set, quote(id))
}
