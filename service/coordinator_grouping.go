package service

import (
	"context"

	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/utils"
)

// ApplyGrouping 设置分组字段并按该字段升序分组排序。
// 互斥由调用方保证，这里只记录所请求的字段。
func (c *Coordinator) ApplyGrouping(field models.GroupField) error {
	if c.list == nil {
		c.alert("Main table not accessible for grouping!")
		return ErrBindingUnavailable
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.list.Sort([]models.SortKey{{Field: string(field), Group: true}}); err != nil {
		c.alert("Grouping Error: " + err.Error())
		return err
	}
	c.groupField = field

	utils.Logger.Info().Str("groupField", string(field)).Msg("已应用分组")
	return nil
}

// ClearGrouping 取消分组
func (c *Coordinator) ClearGrouping() error {
	if c.list == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.list.Sort([]models.SortKey{}); err != nil {
		c.alert("Clear Grouping Error: " + err.Error())
		return err
	}
	c.groupField = models.GroupFieldNone

	utils.Logger.Info().Msg("已清除分组")
	return nil
}

// ResetGrouping 取消分组并提示
func (c *Coordinator) ResetGrouping() error {
	if err := c.ClearGrouping(); err != nil {
		return err
	}
	c.toast("Grouping cleared")
	return nil
}

// ToggleGrouping 分组开关：按下时切换到该字段，松开当前字段时取消分组，
// 松开非当前字段不做处理。
func (c *Coordinator) ToggleGrouping(field models.GroupField, pressed bool) error {
	if pressed {
		if err := c.ApplyGrouping(field); err != nil {
			return err
		}
		c.toast("Grouped by " + groupFieldTitle(field))
		return nil
	}

	if c.GroupField() != field {
		return nil
	}
	return c.ClearGrouping()
}

// BuildGroupHeader 构造指定分组键的标题，计数基于过滤后的可见记录
func (c *Coordinator) BuildGroupHeader(ctx context.Context, key string) (models.GroupHeader, error) {
	field := c.GroupField()
	if field == models.GroupFieldNone {
		return BuildGroupHeader(field, nil, key), nil
	}

	orders, err := c.VisibleOrders(ctx)
	if err != nil {
		return models.GroupHeader{}, err
	}
	return BuildGroupHeader(field, orders, key), nil
}

// GroupingStatistics 计算分组统计，未分组时返回 nil
func (c *Coordinator) GroupingStatistics(ctx context.Context) (*models.GroupStatistics, error) {
	field := c.GroupField()
	if field == models.GroupFieldNone || c.list == nil {
		return nil, nil
	}

	orders, err := c.list.Contexts(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeGroupStatistics(field, orders), nil
}

// ShowGroupingStatistics 计算统计并以信息提示输出文本
func (c *Coordinator) ShowGroupingStatistics(ctx context.Context) (*models.GroupStatistics, string, error) {
	stats, err := c.GroupingStatistics(ctx)
	if err != nil {
		return nil, "", err
	}
	text := FormatGroupStatistics(stats)
	c.info(text)
	return stats, text, nil
}

// GroupedOrders 返回按当前分组切分的可见记录
func (c *Coordinator) GroupedOrders(ctx context.Context) ([]models.OrderGroup, error) {
	field := c.GroupField()
	orders, err := c.VisibleOrders(ctx)
	if err != nil {
		return nil, err
	}
	return GroupOrders(field, orders), nil
}
