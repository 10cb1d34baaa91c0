package repository

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/BerniceZTT/gwsample_end/models"
)

// fieldMap 实体属性名到文档字段名的映射
type fieldMap map[string]string

var salesOrderFields = fieldMap{
	"SalesOrderID":              "salesOrderId",
	"CustomerID":                "customerId",
	"CustomerName":              "customerName",
	"CurrencyCode":              "currencyCode",
	"GrossAmount":               "grossAmount",
	"LifecycleStatus":           "lifecycleStatus",
	"DeliveryStatus":            "deliveryStatus",
	"DeliveryStatusDescription": "deliveryStatusDescription",
	"BillingStatus":             "billingStatus",
	"BillingStatusDescription":  "billingStatusDescription",
}

var productFields = fieldMap{
	"ProductID":  "productId",
	"Name":       "name",
	"Category":   "category",
	"SupplierID": "supplierId",
}

var businessPartnerFields = fieldMap{
	"BusinessPartnerID": "businessPartnerId",
	"CompanyName":       "companyName",
	"City":              "city",
	"Country":           "country",
}

// buildQuery 将过滤条件转换为 MongoDB 查询，顶层条件按 AND 组合
func buildQuery(filters []models.Predicate, fields fieldMap) (bson.M, error) {
	conds := make([]bson.M, 0, len(filters))
	for _, p := range filters {
		cond, err := buildCondition(p, fields)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}

	switch len(conds) {
	case 0:
		return bson.M{}, nil
	case 1:
		return conds[0], nil
	}
	return bson.M{"$and": conds}, nil
}

func buildCondition(p models.Predicate, fields fieldMap) (bson.M, error) {
	if p.IsGroup() {
		subs := make([]bson.M, 0, len(p.Filters))
		for _, sub := range p.Filters {
			cond, err := buildCondition(sub, fields)
			if err != nil {
				return nil, err
			}
			subs = append(subs, cond)
		}
		if p.And {
			return bson.M{"$and": subs}, nil
		}
		return bson.M{"$or": subs}, nil
	}

	field, ok := fields[p.Field]
	if !ok {
		return nil, fmt.Errorf("不支持的过滤字段: %s", p.Field)
	}

	switch p.Operator {
	case models.FilterOperatorEQ:
		return bson.M{field: p.Value}, nil
	case models.FilterOperatorContains:
		return bson.M{field: bson.M{"$regex": regexp.QuoteMeta(p.Value)}}, nil
	}
	return nil, fmt.Errorf("不支持的过滤操作符: %s", p.Operator)
}

// buildSort 将排序键转换为 MongoDB 排序，未知字段忽略，最后按订单号稳定排序
func buildSort(keys []models.SortKey, fields fieldMap, tieBreaker string) bson.D {
	sort := bson.D{}
	for _, key := range keys {
		field, ok := fields[key.Field]
		if !ok {
			continue
		}
		direction := 1
		if key.Descending {
			direction = -1
		}
		sort = append(sort, bson.E{Key: field, Value: direction})
	}
	if tieBreaker == "" {
		return sort
	}
	for _, e := range sort {
		if e.Key == tieBreaker {
			return sort
		}
	}
	return append(sort, bson.E{Key: tieBreaker, Value: 1})
}
