package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/service"
	"github.com/BerniceZTT/gwsample_end/utils"
)

// MongoSource 基于MongoDB的数据后端
type MongoSource struct {
	db *mongo.Database
}

// NewMongoSource 创建MongoDB数据后端
func NewMongoSource(database *mongo.Database) *MongoSource {
	return &MongoSource{db: database}
}

// NewListBinding 为会话创建独立的订单列表绑定
func (s *MongoSource) NewListBinding() service.ListBinding {
	return NewSalesOrderList(s.db)
}

// Status 返回各集合计数
func (s *MongoSource) Status(ctx context.Context) (map[string]interface{}, error) {
	return GetDatabaseStatus(ctx, s.db)
}

// ReadSalesOrders 读取完整订单集合，仅在请求展开时返回行项目
func (s *MongoSource) ReadSalesOrders(ctx context.Context, opts service.ReadOptions) ([]models.SalesOrder, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "salesOrderId", Value: 1}})
	if !expands(opts.Expand, service.ExpandLineItems) {
		findOptions.SetProjection(bson.M{"lineItems": 0})
	}

	orders := []models.SalesOrder{}
	if err := s.find(ctx, SalesOrdersCollection, bson.M{}, findOptions, &orders); err != nil {
		return nil, err
	}

	utils.LogBackendOperation("find", SalesOrdersCollection, opts.Expand, len(orders))
	return orders, nil
}

// CallFunction 执行后端函数，目前支持重新生成演示数据
func (s *MongoSource) CallFunction(ctx context.Context, path string, opts service.CallOptions) (*service.FunctionResult, error) {
	switch path {
	case service.RegenerateAllDataPath:
		count, err := strconv.Atoi(opts.Params["NoOfSalesOrders"])
		if err != nil || count <= 0 {
			return nil, functionError(http.StatusBadRequest, "Invalid value for NoOfSalesOrders")
		}
		generated, err := RegenerateSalesOrders(ctx, s.db, count)
		if err != nil {
			return nil, err
		}
		return &service.FunctionResult{
			String: fmt.Sprintf("%d sales orders have been generated", generated),
		}, nil
	}
	return nil, functionError(http.StatusNotFound, "Function import "+path+" not found")
}

// functionError 以结构化错误返回函数调用失败
func functionError(status int, message string) error {
	payload := map[string]interface{}{
		"error": map[string]interface{}{
			"code":    strconv.Itoa(status),
			"message": map[string]string{"lang": "en", "value": message},
		},
	}
	body, _ := json.Marshal(payload)
	return &service.RemoteError{StatusCode: status, Body: string(body)}
}

// ReadSalesOrder 读取订单详情，展开行项目产品和业务伙伴
func (s *MongoSource) ReadSalesOrder(ctx context.Context, salesOrderID string) (*models.SalesOrder, error) {
	var order models.SalesOrder
	err := s.db.Collection(SalesOrdersCollection).
		FindOne(ctx, bson.M{"salesOrderId": salesOrderID}).
		Decode(&order)
	if err != nil {
		return nil, notFound(err)
	}

	productIDs := make([]string, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		productIDs = append(productIDs, item.ProductID)
	}
	if len(productIDs) > 0 {
		products := []models.Product{}
		if err := s.find(ctx, ProductsCollection, bson.M{"productId": bson.M{"$in": productIDs}}, nil, &products); err != nil {
			return nil, err
		}
		byID := make(map[string]models.Product, len(products))
		for _, p := range products {
			byID[p.ProductID] = p
		}
		for i := range order.LineItems {
			if p, ok := byID[order.LineItems[i].ProductID]; ok {
				p := p
				order.LineItems[i].Product = &p
			}
		}
	}

	partner, err := s.findPartner(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	order.BusinessPartner = partner

	return &order, nil
}

// ReadProduct 读取产品详情，展开供应商
func (s *MongoSource) ReadProduct(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	err := s.db.Collection(ProductsCollection).
		FindOne(ctx, bson.M{"productId": productID}).
		Decode(&product)
	if err != nil {
		return nil, notFound(err)
	}

	supplier, err := s.findPartner(ctx, product.SupplierID)
	if err != nil {
		return nil, err
	}
	product.Supplier = supplier
	return &product, nil
}

// findPartner 按ID查找业务伙伴，不存在时返回 nil
func (s *MongoSource) findPartner(ctx context.Context, id string) (*models.BusinessPartner, error) {
	if id == "" {
		return nil, nil
	}
	var partner models.BusinessPartner
	err := s.db.Collection(BusinessPartnersCollection).
		FindOne(ctx, bson.M{"businessPartnerId": id}).
		Decode(&partner)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.Logger.Warn().Str("businessPartnerId", id).Msg("业务伙伴不存在")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &partner, nil
}

// SearchSalesOrders 订单值帮助查询
func (s *MongoSource) SearchSalesOrders(ctx context.Context, filters []models.Predicate) ([]models.SalesOrder, error) {
	query, err := buildQuery(filters, salesOrderFields)
	if err != nil {
		return nil, err
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "salesOrderId", Value: 1}}).
		SetProjection(bson.M{"lineItems": 0})

	orders := []models.SalesOrder{}
	if err := s.find(ctx, SalesOrdersCollection, query, findOptions, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SearchBusinessPartners 客户值帮助查询
func (s *MongoSource) SearchBusinessPartners(ctx context.Context, filters []models.Predicate) ([]models.BusinessPartner, error) {
	query, err := buildQuery(filters, businessPartnerFields)
	if err != nil {
		return nil, err
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "companyName", Value: 1}})

	partners := []models.BusinessPartner{}
	if err := s.find(ctx, BusinessPartnersCollection, query, findOptions, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

// SearchProducts 产品值帮助查询
func (s *MongoSource) SearchProducts(ctx context.Context, filters []models.Predicate) ([]models.Product, error) {
	query, err := buildQuery(filters, productFields)
	if err != nil {
		return nil, err
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	products := []models.Product{}
	if err := s.find(ctx, ProductsCollection, query, findOptions, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// find 执行查询并解码全部结果
func (s *MongoSource) find(ctx context.Context, collName string, query bson.M, findOptions *options.FindOptions, out interface{}) error {
	_, err := ExecuteDbOperation(func() (interface{}, error) {
		var opts []*options.FindOptions
		if findOptions != nil {
			opts = append(opts, findOptions)
		}
		cursor, err := s.db.Collection(collName).Find(ctx, query, opts...)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)
		return nil, cursor.All(ctx, out)
	}, 3)
	return err
}

// expands 判断展开参数中是否包含指定导航属性
func expands(expand []string, nav string) bool {
	for _, e := range expand {
		if e == nav {
			return true
		}
	}
	return false
}

// notFound 将未找到文档转换为 service.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return service.ErrNotFound
	}
	return err
}
