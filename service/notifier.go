package service

import (
	"sync"
	"time"

	"github.com/BerniceZTT/gwsample_end/utils"
)

// NotificationLevel 通知级别
type NotificationLevel string

const (
	// NotificationToast 成功提示，短暂显示
	NotificationToast NotificationLevel = "toast"
	// NotificationError 阻塞式错误提示
	NotificationError NotificationLevel = "error"
	// NotificationInfo 阻塞式信息提示
	NotificationInfo NotificationLevel = "info"
)

// Notification 用户通知
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	Time    time.Time         `json:"time"`
}

// Notifier 通知接收方
type Notifier interface {
	Notify(n Notification)
}

const defaultQueueLimit = 50

// MessageQueue 会话级通知队列，前端轮询取走
type MessageQueue struct {
	mu    sync.Mutex
	items []Notification
	limit int
}

// NewMessageQueue 创建通知队列
func NewMessageQueue(limit int) *MessageQueue {
	if limit <= 0 {
		limit = defaultQueueLimit
	}
	return &MessageQueue{limit: limit}
}

// Notify 记录并入队
func (q *MessageQueue) Notify(n Notification) {
	if n.Time.IsZero() {
		n.Time = time.Now()
	}

	event := utils.Logger.Info()
	if n.Level == NotificationError {
		event = utils.Logger.Warn()
	}
	event.Str("level", string(n.Level)).Msg(n.Message)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, n)
	if len(q.items) > q.limit {
		q.items = q.items[len(q.items)-q.limit:]
	}
}

// Drain 取走全部通知
func (q *MessageQueue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	if items == nil {
		return []Notification{}
	}
	return items
}
