package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product 产品模型
type Product struct {
	ID            primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ProductID     string             `json:"ProductID" bson:"productId"`
	TypeCode      string             `json:"TypeCode,omitempty" bson:"typeCode,omitempty"`
	Category      string             `json:"Category" bson:"category"`
	Name          string             `json:"Name" bson:"name"`
	Description   string             `json:"Description" bson:"description"`
	SupplierID    string             `json:"SupplierID" bson:"supplierId"`
	SupplierName  string             `json:"SupplierName" bson:"supplierName"`
	TaxTarifCode  int                `json:"TaxTarifCode,omitempty" bson:"taxTarifCode,omitempty"`
	MeasureUnit   string             `json:"MeasureUnit,omitempty" bson:"measureUnit,omitempty"`
	WeightMeasure string             `json:"WeightMeasure" bson:"weightMeasure"`
	WeightUnit    string             `json:"WeightUnit" bson:"weightUnit"`
	CurrencyCode  string             `json:"CurrencyCode" bson:"currencyCode"`
	Price         string             `json:"Price" bson:"price"`
	Width         string             `json:"Width" bson:"width"`
	Depth         string             `json:"Depth" bson:"depth"`
	Height        string             `json:"Height" bson:"height"`
	DimUnit       string             `json:"DimUnit" bson:"dimUnit"`
	Supplier      *BusinessPartner   `json:"ToSupplier,omitempty" bson:"-"`
}

// BusinessPartner 业务伙伴（客户/供应商）
type BusinessPartner struct {
	ID                  primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	BusinessPartnerID   string             `json:"BusinessPartnerID" bson:"businessPartnerId"`
	CompanyName         string             `json:"CompanyName" bson:"companyName"`
	BusinessPartnerRole string             `json:"BusinessPartnerRole,omitempty" bson:"businessPartnerRole,omitempty"`
	EmailAddress        string             `json:"EmailAddress" bson:"emailAddress"`
	PhoneNumber         string             `json:"PhoneNumber" bson:"phoneNumber"`
	WebAddress          string             `json:"WebAddress,omitempty" bson:"webAddress,omitempty"`
	CurrencyCode        string             `json:"CurrencyCode,omitempty" bson:"currencyCode,omitempty"`
	City                string             `json:"City" bson:"city"`
	Street              string             `json:"Street,omitempty" bson:"street,omitempty"`
	PostalCode          string             `json:"PostalCode,omitempty" bson:"postalCode,omitempty"`
	Country             string             `json:"Country" bson:"country"`
}

// 业务伙伴角色
const (
	BusinessPartnerRoleCustomer = "01"
	BusinessPartnerRoleSupplier = "02"
)
