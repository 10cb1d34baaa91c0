package repository

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/utils"
)

// taxRate 订单毛额按19%税率计算
var taxRate = decimal.RequireFromString("0.19")

// seedPartners 演示业务伙伴
var seedPartners = []models.BusinessPartner{
	{BusinessPartnerID: "0100000000", CompanyName: "SAP", BusinessPartnerRole: models.BusinessPartnerRoleCustomer, EmailAddress: "do.not.reply@sap.com", PhoneNumber: "0622734567", City: "Walldorf", Country: "DE", CurrencyCode: "EUR"},
	{BusinessPartnerID: "0100000001", CompanyName: "Becker Berlin", BusinessPartnerRole: models.BusinessPartnerRoleCustomer, EmailAddress: "do.not.reply@becker.de", PhoneNumber: "3088530", City: "Berlin", Country: "DE", CurrencyCode: "EUR"},
	{BusinessPartnerID: "0100000002", CompanyName: "DelBont Industries", BusinessPartnerRole: models.BusinessPartnerRoleCustomer, EmailAddress: "do.not.reply@delbont.com", PhoneNumber: "5553411", City: "Antwerp", Country: "BE", CurrencyCode: "EUR"},
	{BusinessPartnerID: "0100000003", CompanyName: "Talpa", BusinessPartnerRole: models.BusinessPartnerRoleCustomer, EmailAddress: "do.not.reply@talpa.com", PhoneNumber: "6345789", City: "Rome", Country: "IT", CurrencyCode: "EUR"},
	{BusinessPartnerID: "0100000004", CompanyName: "Panorama Studios", BusinessPartnerRole: models.BusinessPartnerRoleCustomer, EmailAddress: "do.not.reply@panorama.com", PhoneNumber: "3105551234", City: "Hollywood", Country: "US", CurrencyCode: "USD"},
	{BusinessPartnerID: "0100000005", CompanyName: "TECUM", BusinessPartnerRole: models.BusinessPartnerRoleSupplier, EmailAddress: "do.not.reply@tecum.com", PhoneNumber: "9034567", City: "Munich", Country: "DE", CurrencyCode: "EUR"},
	{BusinessPartnerID: "0100000006", CompanyName: "Asia High tech", BusinessPartnerRole: models.BusinessPartnerRoleSupplier, EmailAddress: "do.not.reply@asiahightech.jp", PhoneNumber: "3324567", City: "Tokyo", Country: "JP", CurrencyCode: "JPY"},
}

// seedProducts 演示产品
var seedProducts = []models.Product{
	{ProductID: "HT-1000", Category: "Notebooks", Name: "Notebook Basic 15", Description: "Notebook Basic 15 with 2,80 GHz quad core", SupplierID: "0100000005", SupplierName: "TECUM", Price: "956.00", CurrencyCode: "USD", WeightMeasure: "4.2", WeightUnit: "KG", Width: "30", Depth: "18", Height: "3", DimUnit: "CM"},
	{ProductID: "HT-1001", Category: "Notebooks", Name: "Notebook Basic 17", Description: "Notebook Basic 17 with 2,80 GHz quad core", SupplierID: "0100000005", SupplierName: "TECUM", Price: "1249.00", CurrencyCode: "USD", WeightMeasure: "4.5", WeightUnit: "KG", Width: "29", Depth: "17", Height: "3.1", DimUnit: "CM"},
	{ProductID: "HT-1010", Category: "Notebooks", Name: "Notebook Professional 15", Description: "Notebook Professional 15 with 2,80 GHz quad core", SupplierID: "0100000006", SupplierName: "Asia High tech", Price: "1999.00", CurrencyCode: "USD", WeightMeasure: "4.3", WeightUnit: "KG", Width: "33", Depth: "20", Height: "3", DimUnit: "CM"},
	{ProductID: "HT-1030", Category: "Flat Screen Monitors", Name: "Flat Future", Description: "Optimum Hi-Resolution max. 1600 x 1200 @ 85Hz", SupplierID: "0100000006", SupplierName: "Asia High tech", Price: "1230.00", CurrencyCode: "USD", WeightMeasure: "14.8", WeightUnit: "KG", Width: "46", Depth: "24", Height: "41", DimUnit: "CM"},
	{ProductID: "HT-1050", Category: "Laser Printers", Name: "Laser Professional Eco", Description: "Print 2400 dpi image quality color documents", SupplierID: "0100000005", SupplierName: "TECUM", Price: "830.00", CurrencyCode: "USD", WeightMeasure: "32", WeightUnit: "KG", Width: "51", Depth: "46", Height: "30", DimUnit: "CM"},
	{ProductID: "HT-1063", Category: "Keyboards", Name: "Ergonomic Keyboard", Description: "Ergonomic USB Keyboard for Desktop", SupplierID: "0100000006", SupplierName: "Asia High tech", Price: "14.00", CurrencyCode: "USD", WeightMeasure: "0.6", WeightUnit: "KG", Width: "47", Depth: "18", Height: "3", DimUnit: "CM"},
	{ProductID: "HT-1070", Category: "Graphic Cards", Name: "Proctra X", Description: "Proctra X: PCI-E GDDR5 3072MB", SupplierID: "0100000005", SupplierName: "TECUM", Price: "70.90", CurrencyCode: "USD", WeightMeasure: "0.395", WeightUnit: "KG", Width: "17", Depth: "11", Height: "1.5", DimUnit: "CM"},
	{ProductID: "HT-1100", Category: "Accessories", Name: "Professional Mouse", Description: "Optical USB mouse, 5 buttons", SupplierID: "0100000006", SupplierName: "Asia High tech", Price: "25.00", CurrencyCode: "USD", WeightMeasure: "0.09", WeightUnit: "KG", Width: "7", Depth: "11", Height: "3", DimUnit: "CM"},
}

// SeedMasterData 集合为空时写入演示产品和业务伙伴
func SeedMasterData(seedCtx context.Context, database *mongo.Database) error {
	if err := seedIfEmpty(seedCtx, database.Collection(BusinessPartnersCollection), toDocuments(seedPartners)); err != nil {
		return fmt.Errorf("初始化业务伙伴失败: %w", err)
	}
	if err := seedIfEmpty(seedCtx, database.Collection(ProductsCollection), toDocuments(seedProducts)); err != nil {
		return fmt.Errorf("初始化产品失败: %w", err)
	}

	count, err := database.Collection(SalesOrdersCollection).CountDocuments(seedCtx, bson.M{})
	if err != nil {
		return fmt.Errorf("检查销售订单失败: %w", err)
	}
	if count == 0 {
		if _, err := RegenerateSalesOrders(seedCtx, database, 50); err != nil {
			return err
		}
	}
	return nil
}

func seedIfEmpty(seedCtx context.Context, coll *mongo.Collection, docs []interface{}) error {
	count, err := coll.CountDocuments(seedCtx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		utils.Logger.Info().Str("collection", coll.Name()).Int64("count", count).Msg("数据已存在，跳过初始化")
		return nil
	}
	if _, err := coll.InsertMany(seedCtx, docs); err != nil {
		return err
	}
	utils.Logger.Info().Str("collection", coll.Name()).Int("count", len(docs)).Msg("已写入演示数据")
	return nil
}

func toDocuments[T any](items []T) []interface{} {
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		docs = append(docs, item)
	}
	return docs
}

// RegenerateSalesOrders 删除全部销售订单并重新生成 count 条
func RegenerateSalesOrders(genCtx context.Context, database *mongo.Database, count int) (int, error) {
	products := []models.Product{}
	partners := []models.BusinessPartner{}

	cursor, err := database.Collection(ProductsCollection).Find(genCtx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("读取产品失败: %w", err)
	}
	if err := cursor.All(genCtx, &products); err != nil {
		return 0, fmt.Errorf("解析产品失败: %w", err)
	}

	cursor, err = database.Collection(BusinessPartnersCollection).Find(genCtx, bson.M{"businessPartnerRole": models.BusinessPartnerRoleCustomer})
	if err != nil {
		return 0, fmt.Errorf("读取客户失败: %w", err)
	}
	if err := cursor.All(genCtx, &partners); err != nil {
		return 0, fmt.Errorf("解析客户失败: %w", err)
	}

	if len(products) == 0 || len(partners) == 0 {
		return 0, fmt.Errorf("缺少产品或客户主数据，无法生成订单")
	}

	seed := uint64(time.Now().UnixNano())
	orders := GenerateSalesOrders(rand.New(rand.NewPCG(seed, seed>>1)), products, partners, count)

	coll := database.Collection(SalesOrdersCollection)
	if _, err := coll.DeleteMany(genCtx, bson.M{}); err != nil {
		return 0, fmt.Errorf("删除销售订单失败: %w", err)
	}
	if _, err := coll.InsertMany(genCtx, toDocuments(orders)); err != nil {
		return 0, fmt.Errorf("写入销售订单失败: %w", err)
	}

	utils.Logger.Info().Int("count", len(orders)).Msg("销售订单已重新生成")
	return len(orders), nil
}

// GenerateSalesOrders 生成演示订单，每单1到4个行项目
func GenerateSalesOrders(rng *rand.Rand, products []models.Product, partners []models.BusinessPartner, count int) []models.SalesOrder {
	deliveryStatuses := []string{models.DeliveryStatusInitial, models.DeliveryStatusDelivered}
	billingStatuses := []string{models.BillingStatusInitial, models.BillingStatusPaid}

	orders := make([]models.SalesOrder, 0, count)
	for i := 0; i < count; i++ {
		customer := partners[rng.IntN(len(partners))]
		order := models.SalesOrder{
			SalesOrderID:    fmt.Sprintf("05%08d", i),
			CustomerID:      customer.BusinessPartnerID,
			CustomerName:    customer.CompanyName,
			CurrencyCode:    "USD",
			LifecycleStatus: "N",
		}

		delivery := deliveryStatuses[rng.IntN(len(deliveryStatuses))]
		billing := billingStatuses[rng.IntN(len(billingStatuses))]
		order.DeliveryStatus = delivery
		order.DeliveryStatusDescription = models.DeliveryStatusDescriptions[delivery]
		order.BillingStatus = billing
		order.BillingStatusDescription = models.BillingStatusDescriptions[billing]

		net := decimal.Zero
		items := 1 + rng.IntN(4)
		for pos := 1; pos <= items; pos++ {
			product := products[rng.IntN(len(products))]
			quantity := int64(1 + rng.IntN(10))
			price, err := decimal.NewFromString(product.Price)
			if err != nil {
				price = decimal.Zero
			}
			itemNet := price.Mul(decimal.NewFromInt(quantity))
			net = net.Add(itemNet)

			order.LineItems = append(order.LineItems, models.LineItem{
				SalesOrderID: order.SalesOrderID,
				ItemPosition: fmt.Sprintf("%010d", pos*10),
				ProductID:    product.ProductID,
				Quantity:     decimal.NewFromInt(quantity).String(),
				QuantityUnit: "EA",
				CurrencyCode: order.CurrencyCode,
				GrossAmount:  itemNet.Add(itemNet.Mul(taxRate)).StringFixed(2),
			})
		}

		tax := net.Mul(taxRate)
		order.NetAmount = net.StringFixed(2)
		order.TaxAmount = tax.StringFixed(2)
		order.GrossAmount = net.Add(tax).StringFixed(2)
		orders = append(orders, order)
	}
	return orders
}
