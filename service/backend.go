package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BerniceZTT/gwsample_end/models"
)

// 集合路径与远程函数
const (
	SalesOrderSetPath     = "/SalesOrderSet"
	ExpandLineItems       = "ToLineItems"
	RegenerateAllDataPath = "/RegenerateAllData"
)

var (
	// ErrBindingUnavailable 列表绑定尚未就绪
	ErrBindingUnavailable = errors.New("list binding not available")
	// ErrNotFound 实体不存在
	ErrNotFound = errors.New("entity not found")
)

// ListBinding 可过滤、可排序的有序订单列表
type ListBinding interface {
	// Filter 替换当前全部过滤条件，顶层条件按 AND 组合
	Filter(filters []models.Predicate) error
	// Sort 替换当前全部排序键，空切片清除分组
	Sort(keys []models.SortKey) error
	// Contexts 返回当前可见（过滤、排序后）的记录
	Contexts(ctx context.Context) ([]models.SalesOrder, error)
}

// ReadOptions 集合读取参数
type ReadOptions struct {
	Expand []string
}

// CallOptions 远程函数调用参数
type CallOptions struct {
	Method string
	Params map[string]string
}

// FunctionResult 远程函数返回值
type FunctionResult struct {
	String string `json:"String"`
}

// Backend 订单数据后端
type Backend interface {
	// ReadSalesOrders 一次性读取完整销售订单集合
	ReadSalesOrders(ctx context.Context, opts ReadOptions) ([]models.SalesOrder, error)
	// CallFunction 调用远程函数
	CallFunction(ctx context.Context, path string, opts CallOptions) (*FunctionResult, error)
}

// EntityReader 按实体路径读取单条记录
type EntityReader interface {
	ReadSalesOrder(ctx context.Context, salesOrderID string) (*models.SalesOrder, error)
	ReadProduct(ctx context.Context, productID string) (*models.Product, error)
}

// ValueHelpSource 值帮助数据来源
type ValueHelpSource interface {
	SearchSalesOrders(ctx context.Context, filters []models.Predicate) ([]models.SalesOrder, error)
	SearchBusinessPartners(ctx context.Context, filters []models.Predicate) ([]models.BusinessPartner, error)
	SearchProducts(ctx context.Context, filters []models.Predicate) ([]models.Product, error)
}

// DataSource 完整的数据后端
type DataSource interface {
	Backend
	EntityReader
	ValueHelpSource
	NewListBinding() ListBinding
	Status(ctx context.Context) (map[string]interface{}, error)
}

// RemoteError 远程调用失败
type RemoteError struct {
	StatusCode int
	Body       string
	Err        error
}

// Error 实现error接口
func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote call failed: %v", e.Err)
	}
	return fmt.Sprintf("remote call failed with status %d", e.StatusCode)
}

// Unwrap 返回底层错误
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// odataErrorPayload OData 结构化错误
type odataErrorPayload struct {
	Error struct {
		Code    string `json:"code"`
		Message struct {
			Lang  string `json:"lang"`
			Value string `json:"value"`
		} `json:"message"`
	} `json:"error"`
}

// RemoteErrorMessage 从结构化错误中提取消息，无法解析时返回 fallback
func RemoteErrorMessage(err error, fallback string) string {
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) || remoteErr.Body == "" {
		return fallback
	}

	var payload odataErrorPayload
	if jsonErr := json.Unmarshal([]byte(remoteErr.Body), &payload); jsonErr != nil {
		return fallback
	}
	if payload.Error.Message.Value == "" {
		return fallback
	}
	return payload.Error.Message.Value
}

// errorDetail 尽量给出可读的失败原因
func errorDetail(err error) string {
	if err == nil {
		return "Unknown error"
	}
	if msg := RemoteErrorMessage(err, ""); msg != "" {
		return msg
	}
	return err.Error()
}
