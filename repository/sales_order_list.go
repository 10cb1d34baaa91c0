package repository

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BerniceZTT/gwsample_end/models"
)

// SalesOrderList 绑定到销售订单集合的列表，保存当前过滤和排序
type SalesOrderList struct {
	mu    sync.RWMutex
	coll  *mongo.Collection
	query bson.M
	sort  bson.D
}

// NewSalesOrderList 创建订单列表绑定
func NewSalesOrderList(database *mongo.Database) *SalesOrderList {
	return &SalesOrderList{
		coll:  database.Collection(SalesOrdersCollection),
		query: bson.M{},
		sort:  buildSort(nil, salesOrderFields, "salesOrderId"),
	}
}

// Filter 替换过滤条件
func (l *SalesOrderList) Filter(filters []models.Predicate) error {
	query, err := buildQuery(filters, salesOrderFields)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.query = query
	l.mu.Unlock()
	return nil
}

// Sort 替换排序键
func (l *SalesOrderList) Sort(keys []models.SortKey) error {
	sort := buildSort(keys, salesOrderFields, "salesOrderId")

	l.mu.Lock()
	l.sort = sort
	l.mu.Unlock()
	return nil
}

// Contexts 查询当前可见订单，不展开行项目
func (l *SalesOrderList) Contexts(ctx context.Context) ([]models.SalesOrder, error) {
	l.mu.RLock()
	query, sort := l.query, l.sort
	l.mu.RUnlock()

	findOptions := options.Find().
		SetSort(sort).
		SetProjection(bson.M{"lineItems": 0})

	result, err := ExecuteDbOperation(func() (interface{}, error) {
		cursor, err := l.coll.Find(ctx, query, findOptions)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		orders := []models.SalesOrder{}
		if err := cursor.All(ctx, &orders); err != nil {
			return nil, err
		}
		return orders, nil
	}, 3)
	if err != nil {
		return nil, err
	}
	return result.([]models.SalesOrder), nil
}
