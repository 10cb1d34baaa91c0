package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SalesOrder 销售订单
type SalesOrder struct {
	ID                        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	SalesOrderID              string             `json:"SalesOrderID" bson:"salesOrderId"`
	Note                      string             `json:"Note,omitempty" bson:"note,omitempty"`
	CustomerID                string             `json:"CustomerID" bson:"customerId"`
	CustomerName              string             `json:"CustomerName" bson:"customerName"`
	CurrencyCode              string             `json:"CurrencyCode" bson:"currencyCode"`
	GrossAmount               string             `json:"GrossAmount" bson:"grossAmount"`
	NetAmount                 string             `json:"NetAmount,omitempty" bson:"netAmount,omitempty"`
	TaxAmount                 string             `json:"TaxAmount,omitempty" bson:"taxAmount,omitempty"`
	LifecycleStatus           string             `json:"LifecycleStatus,omitempty" bson:"lifecycleStatus,omitempty"`
	DeliveryStatus            string             `json:"DeliveryStatus" bson:"deliveryStatus"`
	DeliveryStatusDescription string             `json:"DeliveryStatusDescription" bson:"deliveryStatusDescription"`
	BillingStatus             string             `json:"BillingStatus" bson:"billingStatus"`
	BillingStatusDescription  string             `json:"BillingStatusDescription" bson:"billingStatusDescription"`
	LineItems                 []LineItem         `json:"ToLineItems,omitempty" bson:"lineItems,omitempty"`
	BusinessPartner           *BusinessPartner   `json:"ToBusinessPartner,omitempty" bson:"-"`
}

// LineItem 销售订单行项目
type LineItem struct {
	SalesOrderID string   `json:"SalesOrderID" bson:"salesOrderId"`
	ItemPosition string   `json:"ItemPosition" bson:"itemPosition"`
	ProductID    string   `json:"ProductID" bson:"productId"`
	Note         string   `json:"Note,omitempty" bson:"note,omitempty"`
	Quantity     string   `json:"Quantity" bson:"quantity"`
	QuantityUnit string   `json:"QuantityUnit" bson:"quantityUnit"`
	CurrencyCode string   `json:"CurrencyCode" bson:"currencyCode"`
	GrossAmount  string   `json:"GrossAmount" bson:"grossAmount"`
	Product      *Product `json:"ToProduct,omitempty" bson:"-"`
}

// HasProduct 判断订单行项目中是否包含指定产品
func (o SalesOrder) HasProduct(productID string) bool {
	for _, item := range o.LineItems {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// 交货状态
const (
	DeliveryStatusInitial   = "I"
	DeliveryStatusDelivered = "D"
)

// 开票状态
const (
	BillingStatusInitial = "I"
	BillingStatusPaid    = "P"
)

// DeliveryStatusDescriptions 交货状态描述
var DeliveryStatusDescriptions = map[string]string{
	DeliveryStatusInitial:   "Initial",
	DeliveryStatusDelivered: "Delivered",
}

// BillingStatusDescriptions 开票状态描述
var BillingStatusDescriptions = map[string]string{
	BillingStatusInitial: "Initial",
	BillingStatusPaid:    "Paid",
}
