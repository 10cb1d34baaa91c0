package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/utils"
)

// SearchMode 过滤执行方式
type SearchMode string

const (
	SearchModeServer SearchMode = "server"
	SearchModeClient SearchMode = "client"
)

// SearchResult 查询执行结果
type SearchResult struct {
	Mode          SearchMode         `json:"mode"`
	Filters       []models.Predicate `json:"filters"`
	ActiveFilters int                `json:"activeFilters"`
	Matches       int                `json:"matches"`
	Stale         bool               `json:"stale,omitempty"`
}

// CoordinatorStatus 会话状态快照
type CoordinatorStatus struct {
	Busy       bool                  `json:"busy"`
	GroupField models.GroupField     `json:"groupField"`
	Criteria   models.SearchCriteria `json:"criteria"`
	Filters    []models.Predicate    `json:"filters"`
}

// Coordinator 订单查询协调器：选择过滤策略、执行并回写列表，维护分组状态。
// 每个会话一个实例，所有状态都保存在结构体内。
type Coordinator struct {
	mu       sync.Mutex
	list     ListBinding
	backend  Backend
	notifier Notifier

	criteria   models.SearchCriteria
	filters    []models.Predicate
	groupField models.GroupField
	busy       bool

	// generation 每次查询或清除都会递增，过期的客户端过滤结果被丢弃
	generation  uint64
	cancelFetch context.CancelFunc
}

// NewCoordinator 创建查询协调器
func NewCoordinator(list ListBinding, backend Backend, notifier Notifier) *Coordinator {
	if notifier == nil {
		notifier = NewMessageQueue(0)
	}
	return &Coordinator{
		list:     list,
		backend:  backend,
		notifier: notifier,
	}
}

func (c *Coordinator) toast(msg string) {
	c.notifier.Notify(Notification{Level: NotificationToast, Message: msg, Time: time.Now()})
}

func (c *Coordinator) alert(msg string) {
	c.notifier.Notify(Notification{Level: NotificationError, Message: msg, Time: time.Now()})
}

func (c *Coordinator) info(msg string) {
	c.notifier.Notify(Notification{Level: NotificationInfo, Message: msg, Time: time.Now()})
}

// Criteria 返回当前查询条件
func (c *Coordinator) Criteria() models.SearchCriteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// SetCriteria 替换当前查询条件，不触发查询
func (c *Coordinator) SetCriteria(criteria models.SearchCriteria) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.criteria = criteria
}

// updateCriteria 修改单个查询字段
func (c *Coordinator) updateCriteria(fn func(*models.SearchCriteria)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.criteria)
}

// GroupField 返回当前分组字段
func (c *Coordinator) GroupField() models.GroupField {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.groupField
}

// Busy 客户端过滤请求是否进行中
func (c *Coordinator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Status 返回状态快照
func (c *Coordinator) Status() CoordinatorStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	filters := make([]models.Predicate, len(c.filters))
	copy(filters, c.filters)
	return CoordinatorStatus{
		Busy:       c.busy,
		GroupField: c.groupField,
		Criteria:   c.criteria,
		Filters:    filters,
	}
}

// supersedeLocked 递增代数并取消进行中的客户端过滤，调用方需持有锁
func (c *Coordinator) supersedeLocked() uint64 {
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
	c.generation++
	c.busy = false
	return c.generation
}

// ExecuteSearch 执行查询。含产品条件时走客户端过滤，否则交给服务端过滤。
func (c *Coordinator) ExecuteSearch(ctx context.Context, criteria models.SearchCriteria) (*SearchResult, error) {
	if c.list == nil {
		c.alert("Main table not accessible!")
		return nil, ErrBindingUnavailable
	}

	utils.Logger.Debug().Interface("criteria", criteria).Msg("执行订单查询")

	if criteria.NeedsProductFilter() {
		return c.executeProductBasedFilter(ctx, criteria)
	}

	filters := BuildStandardFilters(criteria)

	c.mu.Lock()
	if err := c.list.Filter(filters); err != nil {
		c.mu.Unlock()
		c.alert("Filter Error: " + err.Error())
		return nil, err
	}
	c.supersedeLocked()
	c.criteria = criteria
	c.filters = filters
	c.mu.Unlock()

	utils.Logger.Info().Int("filters", len(filters)).Msg("已应用服务端过滤")
	c.toast(fmt.Sprintf("Filters applied: %d", len(filters)))

	result := &SearchResult{
		Mode:          SearchModeServer,
		Filters:       filters,
		ActiveFilters: CountActiveFilters(criteria),
	}
	if count, err := c.RecordCount(ctx); err != nil {
		utils.Logger.Warn().Err(err).Msg("刷新记录数失败")
	} else {
		result.Matches = count
	}
	return result, nil
}

// executeProductBasedFilter 读取带行项目的完整集合，在本地匹配后转换为订单号过滤
func (c *Coordinator) executeProductBasedFilter(ctx context.Context, criteria models.SearchCriteria) (*SearchResult, error) {
	if c.backend == nil {
		c.alert("Product filter failed: backend not available")
		return nil, ErrBindingUnavailable
	}

	c.mu.Lock()
	gen := c.supersedeLocked()
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelFetch = cancel
	c.busy = true
	c.mu.Unlock()
	defer cancel()

	orders, err := c.backend.ReadSalesOrders(fetchCtx, ReadOptions{Expand: []string{ExpandLineItems}})

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		utils.Logger.Info().Uint64("generation", gen).Msg("丢弃过期的产品过滤结果")
		return &SearchResult{Mode: SearchModeClient, Stale: true}, nil
	}
	c.busy = false
	c.cancelFetch = nil

	if err != nil {
		utils.Logger.Error().Err(err).Msg("产品过滤读取失败")
		c.alert("Product filter failed: " + errorDetail(err))
		return nil, err
	}

	matched := FilterOrdersByProduct(orders, criteria)
	filters := BuildProxyFilter(matched)
	if err := c.list.Filter(filters); err != nil {
		c.alert("Product filter failed: " + err.Error())
		return nil, err
	}
	c.criteria = criteria
	c.filters = filters

	active := CountActiveFilters(criteria)
	utils.Logger.Info().
		Int("loaded", len(orders)).
		Int("matched", len(matched)).
		Msg("已应用产品过滤结果")
	c.toast(fmt.Sprintf("Product filter completed. Found %d orders with %d criteria.", len(matched), active))

	return &SearchResult{
		Mode:          SearchModeClient,
		Filters:       filters,
		ActiveFilters: active,
		Matches:       len(matched),
	}, nil
}

// ClearSearch 清空查询条件和列表过滤，返回刷新后的记录数
func (c *Coordinator) ClearSearch(ctx context.Context) (int, error) {
	c.mu.Lock()
	c.criteria = models.SearchCriteria{}
	c.supersedeLocked()
	if c.list != nil {
		if err := c.list.Filter([]models.Predicate{}); err != nil {
			c.mu.Unlock()
			c.alert("Clear Error: " + err.Error())
			return 0, err
		}
	}
	c.filters = nil
	c.mu.Unlock()

	utils.Logger.Info().Msg("已清除全部过滤条件")
	c.toast("All filters cleared")

	if c.list == nil {
		return 0, nil
	}
	return c.RecordCount(ctx)
}

// RecordCount 当前可见记录数
func (c *Coordinator) RecordCount(ctx context.Context) (int, error) {
	if c.list == nil {
		return 0, ErrBindingUnavailable
	}
	orders, err := c.list.Contexts(ctx)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

// VisibleOrders 当前可见记录
func (c *Coordinator) VisibleOrders(ctx context.Context) ([]models.SalesOrder, error) {
	if c.list == nil {
		return nil, ErrBindingUnavailable
	}
	return c.list.Contexts(ctx)
}
