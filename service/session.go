package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BerniceZTT/gwsample_end/models"
	"github.com/BerniceZTT/gwsample_end/utils"
)

// Session 客户端会话，对应一个列表视图
type Session struct {
	ID            string
	Coordinator   *Coordinator
	Notifications *MessageQueue
	CreatedAt     time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen 最近一次访问时间
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionRegistry 会话注册表
type SessionRegistry struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	source       DataSource
	ttl          time.Duration
	initialGroup models.GroupField
	now          func() time.Time
}

// NewSessionRegistry 创建会话注册表
func NewSessionRegistry(source DataSource, ttl time.Duration, initialGroup models.GroupField) *SessionRegistry {
	return &SessionRegistry{
		sessions:     map[string]*Session{},
		source:       source,
		ttl:          ttl,
		initialGroup: initialGroup,
		now:          time.Now,
	}
}

// Source 返回数据后端
func (r *SessionRegistry) Source() DataSource {
	return r.source
}

// Create 创建会话并应用初始分组
func (r *SessionRegistry) Create() (*Session, error) {
	queue := NewMessageQueue(0)
	coordinator := NewCoordinator(r.source.NewListBinding(), r.source, queue)

	if r.initialGroup != models.GroupFieldNone {
		if err := coordinator.ApplyGrouping(r.initialGroup); err != nil {
			return nil, err
		}
	}

	now := r.now()
	session := &Session{
		ID:            uuid.NewString(),
		Coordinator:   coordinator,
		Notifications: queue,
		CreatedAt:     now,
		lastSeen:      now,
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	utils.Logger.Info().
		Str("sessionId", session.ID).
		Str("initialGroup", string(r.initialGroup)).
		Msg("创建会话")
	return session, nil
}

// Get 查找会话并刷新访问时间
func (r *SessionRegistry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	session.touch(r.now())
	return session, true
}

// Len 会话数量
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep 清理过期会话，返回清理数量
func (r *SessionRegistry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	deadline := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.LastSeen().Before(deadline) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		utils.Logger.Info().Int("removed", removed).Msg("已清理过期会话")
	}
	return removed
}

// StartSweeper 定时清理过期会话，ctx 结束时退出
func (r *SessionRegistry) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}
